package engine

import (
	"testing"

	"github.com/go-rxdfa/rxdfa/automaton"
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/nfa"
	"github.com/go-rxdfa/rxdfa/predicate"
)

func compile(t *testing.T, build func(n *nfa.NFA)) *ThreadedEngine {
	t.Helper()
	n := nfa.New()
	build(n)

	limits := nfa.Limits{MaxStates: 10000}
	if err := n.RemovePredicates(limits); err != nil {
		t.Fatalf("RemovePredicates: %v", err)
	}
	n.OptimizeForShortestMatch()
	n.TrimUnreachable()
	if err := n.ByteMe(limits); err != nil {
		t.Fatalf("ByteMe: %v", err)
	}
	if err := n.ByteAccept(limits); err != nil {
		t.Fatalf("ByteAccept: %v", err)
	}

	dfa, err := automaton.Determinize(n, limits)
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	prog := automaton.NewProgram(dfa)
	return NewThreadedEngine(prog, NoopSkipper{Prog: prog})
}

func buildAPlus(n *nfa.NFA) {
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddTransition(s1, s1, charset.Single('a'))
	n.AddInitState(s0)
}

func TestEngineShortestMatchAPlus(t *testing.T) {
	eng := compile(t, buildAPlus)
	start, end, ok := eng.Search([]byte("baaac"))
	if !ok || start != 1 || end != 2 {
		t.Fatalf("a+ on %q: got (%d,%d,%v), want (1,2,true)", "baaac", start, end, ok)
	}
}

func buildWordBoundaryA(n *nfa.NFA) {
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Never())
	s2 := n.AddState(predicate.Never())
	s3 := n.AddState(predicate.Always())
	for _, p := range predicate.WordBoundaryPredicates() {
		n.AddPredicate(s0, s1, p)
	}
	n.AddTransition(s1, s2, charset.Single('a'))
	for _, p := range predicate.WordBoundaryPredicates() {
		n.AddPredicate(s2, s3, p)
	}
	n.AddInitState(s0)
}

// TestSearchClearsStaleThreadsAcrossCalls guards against a reused engine
// silently dropping its seed thread on a later call because the dedup
// bitmap still has a bit set from a thread a prior call left alive (e.g.
// via an early return on a match). It manually recreates exactly that
// leftover state - a present bit set at the automaton's initial state,
// with no corresponding call to Search having cleared it yet - and checks
// that Search still finds the real match rather than silently keeping
// the stale thread.
func TestSearchClearsStaleThreadsAcrossCalls(t *testing.T) {
	eng := compile(t, buildAPlus)

	eng.threads.cur.add(0, 99)
	if !eng.threads.cur.present[0] {
		t.Fatal("setup: expected state 0 marked present before Search")
	}

	start, end, ok := eng.Search([]byte("baaac"))
	if !ok || start != 1 || end != 2 {
		t.Fatalf("got (%d,%d,%v), want (1,2,true) despite a stale thread left at the initial state", start, end, ok)
	}
}

func TestEngineWordBoundaryMatch(t *testing.T) {
	eng := compile(t, buildWordBoundaryA)

	if start, end, ok := eng.Search([]byte(" a ")); !ok || start != 1 || end != 2 {
		t.Fatalf("\\ba\\b on %q: got (%d,%d,%v), want (1,2,true)", " a ", start, end, ok)
	}
	if _, _, ok := eng.Search([]byte("ba")); ok {
		t.Fatalf("\\ba\\b on %q: expected no match", "ba")
	}
}
