package automaton

import (
	"testing"

	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/nfa"
	"github.com/go-rxdfa/rxdfa/predicate"
)

func buildLoweredA(t *testing.T) *nfa.NFA {
	t.Helper()
	n := nfa.New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddInitState(s0)
	if err := n.ByteMe(nfa.Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteMe: %v", err)
	}
	if err := n.ByteAccept(nfa.Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteAccept: %v", err)
	}
	return n
}

func TestDeterminizeSingleByteLiteral(t *testing.T) {
	n := buildLoweredA(t)
	dfa, err := Determinize(n, nfa.Limits{MaxStates: 1000})
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	start, ok := dfa.InitOtherwise()
	if !ok {
		t.Fatal("expected an unconditional initial DFA state")
	}
	prog := NewProgram(dfa)
	next, accept, _, _, ok := prog.Step(start, 'a')
	if !ok {
		t.Fatal("expected 'a' to be a valid transition from the initial state")
	}
	if !accept {
		t.Fatal("expected the state reached after 'a' to be accepting")
	}
	if prog.CheckEOI(next) {
		// This state's accept is Otherwise-based (any next byte), not
		// strictly EOI, which is the expected shape for an unanchored 'a'.
	}
}

func TestDeterminizeRespectsMaxStates(t *testing.T) {
	n := buildLoweredA(t)
	if _, err := Determinize(n, nfa.Limits{MaxStates: 1}); err == nil {
		t.Fatal("expected TooManyStates error with an unreasonably tight cap")
	}
}
