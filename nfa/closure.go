package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/internal/conv"
	"github.com/go-rxdfa/rxdfa/internal/sparse"
)

// EpsClosure returns the set of states reachable from seeds by following
// only epsilon transitions, including the seeds themselves - the least
// fixed point of seeds under epsilon edges.
func (n *NFA) EpsClosure(seeds charset.StateSet) charset.StateSet {
	visited := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
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
		for _, next := range n.states[s].Eps {
			if !visited.Contains(uint32(next)) {
				visited.Insert(uint32(next))
				stack = append(stack, next)
			}
		}
	}
	out := make(charset.StateSet, 0, visited.Size())
	for _, v := range visited.Values() {
		out = append(out, StateID(v))
	}
	return charset.NewStateSet(out...)
}

// EpsClosureSingle is a convenience wrapper for a single seed state.
func (n *NFA) EpsClosureSingle(seed StateID) charset.StateSet {
	return n.EpsClosure(charset.NewStateSet(seed))
}
