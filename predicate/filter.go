package predicate

import "github.com/go-rxdfa/rxdfa/charset"

// BehindCharSet returns the set of characters that satisfy this
// predicate's look-behind part when a real character is present. A
// look-behind part that only accepts "no character" (start of text)
// cannot be satisfied by any real incoming character, so it yields the
// empty set here; the start-of-text case is handled separately via the
// initial-state machinery.
func (p Predicate) BehindCharSet() charset.CharSet {
	return charSetFor(p.Behind)
}

// AheadCharSet is the look-ahead counterpart of BehindCharSet.
func (p Predicate) AheadCharSet() charset.CharSet {
	return charSetFor(p.Ahead)
}

func charSetFor(part PredicatePart) charset.CharSet {
	if part.AnyChar {
		return charset.Full()
	}
	return part.Chars
}

// BehindAllowsNone reports whether this predicate's look-behind part is
// satisfied by the start of text (no preceding character).
func (p Predicate) BehindAllowsNone() bool {
	return p.Behind.AnyChar || p.Behind.Chars.IsEmpty()
}

// AheadAllowsNone reports whether this predicate's look-ahead part is
// satisfied by the end of text (no following character).
func (p Predicate) AheadAllowsNone() bool {
	return p.Ahead.AnyChar || p.Ahead.Chars.IsEmpty()
}

// FilterAccept restricts an Accept profile by this predicate's look-ahead
// part: at_eoi survives only if the end of text satisfies the look-ahead,
// and at_char is narrowed to the characters the look-ahead allows.
func (p Predicate) FilterAccept(a Accept) Accept {
	out := Accept{}
	if a.AtEOI && p.AheadAllowsNone() {
		out.AtEOI = true
	}
	out.AtChar = a.AtChar.Intersect(p.AheadCharSet())
	return out
}
