package automaton

import "sort"

// Program is the compiled form of a Dfa that the threaded execution
// engine steps through one byte at a time.
type Program struct {
	dfa *Dfa
}

// NewProgram wraps dfa for execution.
func NewProgram(dfa *Dfa) *Program { return &Program{dfa: dfa} }

// NumStates returns the number of states in the underlying Dfa, the size
// a thread-dedup bitmap must be allocated to.
func (p *Program) NumStates() int { return p.dfa.Len() }

// Step consumes byte b from state, returning the resulting state (ok is
// false if no transition matches, i.e. this thread dies), whether arrival
// at the resulting state constitutes an unconditional accept
// ("otherwise"), and how many bytes back from the position after
// consuming b the actual match end sits (0 unless a trailing predicate
// required reading ahead to resolve).
//
// Unlike the NFA-level simultaneous-thread simulation this package's
// determinization is built to replace, a fully subset-constructed state
// already carries the unioned accept profile of every NFA state it
// stands for (see NFA.DfaAccept), so no intermediate lookahead-only state
// is ever exposed to the engine mid-step: retry is always false here.
func (p *Program) Step(state StateID, b byte) (next StateID, accept bool, bytesBehind int, retry bool, ok bool) {
	st := p.dfa.states[state]
	idx := sort.Search(len(st.Transitions), func(i int) bool {
		return int(st.Transitions[i].Range.Hi) >= int(b)
	})
	if idx >= len(st.Transitions) || int(st.Transitions[idx].Range.Lo) > int(b) {
		return InvalidState, false, 0, false, false
	}
	next = st.Transitions[idx].To
	nextAccept := p.dfa.states[next].Accept
	return next, nextAccept.Otherwise, nextAccept.BytesBehind, false, true
}

// CheckEOI reports whether state accepts at the true end of input.
func (p *Program) CheckEOI(state StateID) bool {
	return p.dfa.states[state].Accept.AtEOI
}

// StateAfter returns the initial state to use given the byte immediately
// preceding the current position, or nil if this is the very start of
// input: InitAtStart is preferred at the true start of input,
// InitAfterChar is preferred when a preceding byte is known and covered,
// and InitOtherwise is the fallback in both cases.
func (p *Program) StateAfter(lastByte *byte) (StateID, bool) {
	if lastByte == nil {
		if id, ok := p.dfa.InitAtStart(); ok {
			return id, true
		}
		return p.dfa.InitOtherwise()
	}
	if id, ok := p.dfa.InitAfterChar(*lastByte); ok {
		return id, true
	}
	return p.dfa.InitOtherwise()
}
