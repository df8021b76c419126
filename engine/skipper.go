package engine

import "github.com/go-rxdfa/rxdfa/automaton"

// Skipper fast-forwards input to the next plausible match start. It must
// advance monotonically: resumePos >= from. Literal-prefix extraction (the
// usual source of a non-trivial skipper) is out of this module's scope;
// NoopSkipper below is the only implementation provided here.
type Skipper interface {
	Skip(text []byte, from int, lastByte *byte) (matchStart, resumePos int, initState automaton.StateID, ok bool)
}

// NoopSkipper never fast-forwards: it reports the current position as the
// next plausible match start, deferring entirely to the automaton's own
// initial-state table. This is a correct (if unoptimized) skipper for any
// automaton - sufficient in the absence of literal-prefix extraction.
type NoopSkipper struct {
	Prog *automaton.Program
}

// Skip implements Skipper.
func (s NoopSkipper) Skip(text []byte, from int, lastByte *byte) (int, int, automaton.StateID, bool) {
	state, ok := s.Prog.StateAfter(lastByte)
	if !ok {
		return 0, 0, automaton.InvalidState, false
	}
	return from, from, state, true
}
