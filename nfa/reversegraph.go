package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/internal/conv"
	"github.com/go-rxdfa/rxdfa/internal/sparse"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// revConsuming is a consuming edge recorded from the perspective of its
// target: From is the predecessor, Range the character range that leads
// from From into the state this entry is filed under.
type revConsuming struct {
	Range charset.CharRange
	From  StateID
}

type revPredicate struct {
	Pred predicate.Predicate
	From StateID
}

// reverseGraph mirrors the forward graph so that "edges into a state set"
// is an O(1) lookup. It is a snapshot, not patched in place:
// RemovePredicates rebuilds one from scratch for every predicate job,
// after removing that job's predicate edge, so it reflects every edge
// that earlier jobs of the same round added or removed.
type reverseGraph struct {
	epsIn        [][]StateID
	consumingIn  [][]revConsuming
	predicatesIn [][]revPredicate
}

func newReverseGraph(n *NFA) *reverseGraph {
	rg := &reverseGraph{}
	rg.grow(len(n.states))
	for from := range n.states {
		st := &n.states[from]
		for _, to := range st.Eps {
			rg.epsIn[to] = append(rg.epsIn[to], StateID(from))
		}
		for _, e := range st.Consuming {
			rg.consumingIn[e.To] = append(rg.consumingIn[e.To], revConsuming{Range: e.Range, From: StateID(from)})
		}
		for _, p := range st.Predicates {
			rg.predicatesIn[p.To] = append(rg.predicatesIn[p.To], revPredicate{Pred: p.Pred, From: StateID(from)})
		}
	}
	return rg
}

func (rg *reverseGraph) grow(n int) {
	for len(rg.epsIn) < n {
		rg.epsIn = append(rg.epsIn, nil)
		rg.consumingIn = append(rg.consumingIn, nil)
		rg.predicatesIn = append(rg.predicatesIn, nil)
	}
}

// epsClosure computes the epsilon-closure in the reverse graph, i.e. the
// set of states that can reach any seed by following only (forward)
// epsilon edges - used to compute reverse_eps_closure(a) in predicate
// elimination.
func (rg *reverseGraph) epsClosure(seeds charset.StateSet) charset.StateSet {
	visited := sparse.NewSparseSet(conv.IntToUint32(len(rg.epsIn)))
	var stack []StateID
	for _, s := range seeds {
		if !visited.Contains(uint32(s)) {
			visited.Insert(uint32(s))
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(s) < len(rg.epsIn) {
			for _, prev := range rg.epsIn[s] {
				if !visited.Contains(uint32(prev)) {
					visited.Insert(uint32(prev))
					stack = append(stack, prev)
				}
			}
		}
	}
	out := make(charset.StateSet, 0, visited.Size())
	for _, v := range visited.Values() {
		out = append(out, StateID(v))
	}
	return charset.NewStateSet(out...)
}

// transitionsInto collects every consuming edge whose target is in set,
// viewed as (range, predecessor) pairs.
func (rg *reverseGraph) transitionsInto(set charset.StateSet) []revConsuming {
	var out []revConsuming
	for _, s := range set {
		if int(s) < len(rg.consumingIn) {
			out = append(out, rg.consumingIn[s]...)
		}
	}
	return out
}

// predicatesInto collects every predicate edge whose target is in set.
func (rg *reverseGraph) predicatesInto(set charset.StateSet) []revPredicate {
	var out []revPredicate
	for _, s := range set {
		if int(s) < len(rg.predicatesIn) {
			out = append(out, rg.predicatesIn[s]...)
		}
	}
	return out
}
