package nfa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

func buildStartAnchoredA(t *testing.T) (*NFA, StateID, StateID) {
	t.Helper()
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Never())
	s2 := n.AddState(predicate.Always())
	n.AddPredicate(s0, s1, predicate.StartOfText())
	n.AddTransition(s1, s2, charset.Single('a'))
	n.AddInitState(s0)
	return n, s0, s2
}

func TestRemovePredicatesStartAnchor(t *testing.T) {
	n, _, accept := buildStartAnchoredA(t)
	before := n.Len()

	if err := n.RemovePredicates(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("RemovePredicates: %v", err)
	}

	if n.Len() <= before {
		t.Fatalf("expected at least one new state from predicate elimination, before=%d after=%d", before, n.Len())
	}
	for i := 0; i < n.Len(); i++ {
		if len(n.State(StateID(i)).Predicates) != 0 {
			t.Fatalf("state %d still carries predicates after elimination", i)
		}
	}
	if len(n.InitAtStart()) == 0 {
		t.Fatal("expected InitAtStart to gain the promoted state")
	}

	// The promoted state must have an 'a' transition reaching the
	// original accept state.
	found := false
	for _, id := range n.InitAtStart() {
		for _, e := range n.State(id).Consuming {
			if e.Range.Contains('a') && e.To == accept {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected promoted start-anchored state to have an 'a' transition to the accept state")
	}
}

func TestRemovePredicatesWordBoundaryBeginning(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Never())
	s2 := n.AddState(predicate.Always())
	preds := predicate.WordBoundaryPredicates()
	for _, p := range preds {
		n.AddPredicate(s0, s1, p)
	}
	n.AddTransition(s1, s2, charset.Single('a'))
	n.AddInitState(s0)

	if err := n.RemovePredicates(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("RemovePredicates: %v", err)
	}

	if n.InitAfterChar().Len() == 0 {
		t.Fatal("expected InitAfterChar to be populated by a word-boundary predicate at the start of the automaton")
	}
}

func TestOptimizeForShortestMatchIdempotent(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddEps(s1, s0)
	n.AddInitState(s0)

	n.OptimizeForShortestMatch()
	first := snapshotEdges(n)
	n.OptimizeForShortestMatch()
	second := snapshotEdges(n)
	if first != second {
		t.Fatalf("OptimizeForShortestMatch not idempotent: %q != %q", first, second)
	}
}

func snapshotEdges(n *NFA) string {
	var b strings.Builder
	for i := 0; i < n.Len(); i++ {
		st := n.State(StateID(i))
		fmt.Fprintf(&b, "%d:%d,%d,%d ", i, len(st.Consuming), len(st.Eps), len(st.Predicates))
	}
	return b.String()
}

func TestTrimUnreachableDropsDeadStates(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	dead := n.AddState(predicate.Never())
	_ = dead
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddInitState(s0)

	n.TrimUnreachable()
	if n.Len() != 2 {
		t.Fatalf("expected trim to drop the unreachable dead state, got %d states", n.Len())
	}
}
