// Package predicate implements the zero-width assertions (anchors and word
// boundaries) that the NFA treats as first-class transitions before
// predicate elimination folds them away. A Predicate pairs a constraint on
// the character behind the cursor with a constraint on the character
// ahead of it; both constraints must hold for the predicate to pass.
package predicate

import "github.com/go-rxdfa/rxdfa/charset"

// PredicatePart constrains one side (behind or ahead) of the cursor. A
// part with Chars empty and AnyChar false matches only the start/end of
// the text (no character on that side at all). AnyChar set means "don't
// care what's on this side".
type PredicatePart struct {
	// Chars restricts which character may appear on this side. Empty and
	// !AnyChar means "no character" (i.e. start or end of input).
	Chars charset.CharSet
	// AnyChar means any character, including "no character", satisfies
	// this part - used for predicates that only care about one side.
	AnyChar bool
}

// AnyPart returns a PredicatePart that is satisfied unconditionally.
func AnyPart() PredicatePart { return PredicatePart{AnyChar: true} }

// NonePart returns a PredicatePart satisfied only by "no character here"
// (i.e. the corresponding side is the start or end of the text).
func NonePart() PredicatePart { return PredicatePart{} }

// CharsPart returns a PredicatePart satisfied by exactly the characters in
// cs (and not by "no character").
func CharsPart(cs charset.CharSet) PredicatePart { return PredicatePart{Chars: cs} }

// Matches reports whether part is satisfied when c is present (present
// false means the cursor is at the start/end of text on this side).
func (p PredicatePart) Matches(c rune, present bool) bool {
	if p.AnyChar {
		return true
	}
	if !present {
		return p.Chars.IsEmpty()
	}
	return p.Chars.Contains(c)
}

// Predicate is a zero-width assertion: it inspects the character behind
// and ahead of the cursor without consuming any input.
type Predicate struct {
	Behind PredicatePart
	Ahead  PredicatePart
}

// wordChars is the ASCII word-character class used by \b and \B: ASCII
// letters, digits and underscore. Non-ASCII letters and digits are not
// word characters here.
func wordChars() charset.CharSet {
	return charset.NewCharSet(
		charset.CharRange{Lo: '0', Hi: '9'},
		charset.CharRange{Lo: 'A', Hi: 'Z'},
		charset.CharRange{Lo: 'a', Hi: 'z'},
		charset.Single('_'),
	)
}

// StartOfText is the ^ anchor (with no multiline mode): behind must be
// "no character", ahead is unconstrained.
func StartOfText() Predicate {
	return Predicate{Behind: NonePart(), Ahead: AnyPart()}
}

// EndOfText is the $ anchor (with no multiline mode): ahead must be "no
// character", behind is unconstrained.
func EndOfText() Predicate {
	return Predicate{Behind: AnyPart(), Ahead: NonePart()}
}

// WordBoundary is \b: exactly one of the two sides is a word character.
// Because a single Predicate can only express a conjunction of one
// constraint per side, \b is represented as the union of its two
// satisfying shapes; see WordBoundaryPredicates.
func WordBoundaryPredicates() []Predicate {
	word := wordChars()
	nonWord := word.Negate()
	return []Predicate{
		{Behind: CharsPart(nonWord), Ahead: CharsPart(word)},
		{Behind: CharsPart(word), Ahead: CharsPart(nonWord)},
		// Start/end of text counts as a non-word character on that side.
		{Behind: NonePart(), Ahead: CharsPart(word)},
		{Behind: CharsPart(word), Ahead: NonePart()},
	}
}

// NonWordBoundaryPredicates is \B: both sides agree on word-ness.
func NonWordBoundaryPredicates() []Predicate {
	word := wordChars()
	nonWord := word.Negate()
	return []Predicate{
		{Behind: CharsPart(word), Ahead: CharsPart(word)},
		{Behind: CharsPart(nonWord), Ahead: CharsPart(nonWord)},
		{Behind: NonePart(), Ahead: NonePart()},
		{Behind: NonePart(), Ahead: CharsPart(nonWord)},
		{Behind: CharsPart(nonWord), Ahead: NonePart()},
	}
}

// Matches reports whether the predicate is satisfied given the characters
// (and their presence) behind and ahead of the cursor.
func (p Predicate) Matches(behindChar rune, behindPresent bool, aheadChar rune, aheadPresent bool) bool {
	return p.Behind.Matches(behindChar, behindPresent) && p.Ahead.Matches(aheadChar, aheadPresent)
}

// Intersect returns a predicate whose Behind/Ahead parts are the
// pointwise intersection of p and o, or ok=false if either side's
// intersection is unsatisfiable (so the predicate can never fire and
// should be dropped).
func (p Predicate) Intersect(o Predicate) (Predicate, bool) {
	behind, ok := intersectParts(p.Behind, o.Behind)
	if !ok {
		return Predicate{}, false
	}
	ahead, ok := intersectParts(p.Ahead, o.Ahead)
	if !ok {
		return Predicate{}, false
	}
	return Predicate{Behind: behind, Ahead: ahead}, true
}

func intersectParts(a, b PredicatePart) (PredicatePart, bool) {
	if a.AnyChar {
		return b, true
	}
	if b.AnyChar {
		return a, true
	}
	// Both are "chars-or-none" parts. "None" only combines with "none".
	aIsNone := a.Chars.IsEmpty()
	bIsNone := b.Chars.IsEmpty()
	if aIsNone && bIsNone {
		return NonePart(), true
	}
	if aIsNone != bIsNone {
		return PredicatePart{}, false
	}
	inter := a.Chars.Intersect(b.Chars)
	if inter.IsEmpty() {
		return PredicatePart{}, false
	}
	return CharsPart(inter), true
}
