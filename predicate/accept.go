package predicate

import "github.com/go-rxdfa/rxdfa/charset"

// Accept describes the conditions under which an NFA state set is
// accepting, expressed the same way a predicate constrains its ahead
// side: either the end of input, or a specific set of next characters
// (used by states still carrying trailing predicates before byte
// lowering, e.g. "accept if the next char is absent or non-word" for a
// trailing \b).
type Accept struct {
	AtEOI  bool
	AtChar charset.CharSet
}

// Never is an Accept that never holds.
func Never() Accept { return Accept{} }

// Always is an Accept that holds unconditionally (end of input or any
// character).
func Always() Accept {
	return Accept{AtEOI: true, AtChar: charset.Full()}
}

// IsNever reports whether the accept condition can never hold.
func (a Accept) IsNever() bool {
	return !a.AtEOI && a.AtChar.IsEmpty()
}

// Union returns the accept condition that holds whenever either a or o
// holds.
func (a Accept) Union(o Accept) Accept {
	return Accept{
		AtEOI:  a.AtEOI || o.AtEOI,
		AtChar: a.AtChar.Union(o.AtChar),
	}
}

// DfaAccept is the byte-lowered counterpart of Accept: since DFA
// transitions are on raw bytes (not code points), "accept on next
// character" becomes "accept, but only after backing up BytesBehind
// bytes" - capturing that under the shortest-match optimization a match
// may be recognized partway through decoding a multi-byte UTF-8 sequence
// and the true match end is some bytes behind the state that detects it.
type DfaAccept struct {
	// AtEOI reports whether this is an accept at the true end of input.
	AtEOI bool
	// Otherwise reports whether the state otherwise accepts (regardless
	// of what the next byte is), BytesBehind bytes back from wherever the
	// DFA currently sits.
	Otherwise bool
	// BytesBehind is how many bytes of input, already consumed, the
	// actual match end sits behind the state reporting acceptance. This
	// is 0 unless a trailing predicate forced the DFA to look one or more
	// bytes past the true match end to resolve it (e.g. \b needs to see
	// the first byte of the following rune to know it is non-word).
	BytesBehind int
}

// NeverDfa is a DfaAccept that never holds.
func NeverDfa() DfaAccept { return DfaAccept{} }

// AcceptDfa builds a DfaAccept that holds at end-of-input and/or
// otherwise, bytesBehind bytes back.
func AcceptDfa(atEOI, otherwise bool, bytesBehind int) DfaAccept {
	return DfaAccept{AtEOI: atEOI, Otherwise: otherwise, BytesBehind: bytesBehind}
}

// IsNever reports whether the accept condition can never hold.
func (d DfaAccept) IsNever() bool {
	return !d.AtEOI && !d.Otherwise
}

// UnionShortest merges two DfaAccept values the way predicate elimination
// merges the accept conditions of states folded together by
// epsilon-closure: under shortest-match semantics, the state that detects
// a match *sooner* (smaller BytesBehind) always wins, since the engine
// stops at the first accept it can report.
func (d DfaAccept) UnionShortest(o DfaAccept) DfaAccept {
	if d.IsNever() {
		return o
	}
	if o.IsNever() {
		return d
	}
	behind := d.BytesBehind
	if o.BytesBehind < behind {
		behind = o.BytesBehind
	}
	return DfaAccept{
		AtEOI:       d.AtEOI || o.AtEOI,
		Otherwise:   d.Otherwise || o.Otherwise,
		BytesBehind: behind,
	}
}
