package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/internal/conv"
	"github.com/go-rxdfa/rxdfa/internal/sparse"
)

// alwaysAccepting reports whether the union of the accept profiles of the
// epsilon-closure of id is unconditional (AtEOI && AtChar is full), i.e.
// once the engine arrives at id no further input can matter for a
// shortest-match search.
func (n *NFA) alwaysAccepting(id StateID) bool {
	acc := n.Accept(n.EpsClosureSingle(id))
	return acc.AtEOI && acc.AtChar.IsFull()
}

// OptimizeForShortestMatch clears the outgoing consuming/predicate edges
// of every state whose epsilon-closure is always-accepting (further matching from there
// can never improve a shortest-match result), and clears the
// epsilon-transitions of states that are themselves always-accepting.
// Idempotent: a second call finds nothing left to clear.
func (n *NFA) OptimizeForShortestMatch() {
	for i := range n.states {
		id := StateID(i)
		if n.alwaysAccepting(id) {
			n.states[i].Consuming = nil
			n.states[i].Predicates = nil
		}
		acc := n.states[i].Accept
		if acc.AtEOI && acc.AtChar.IsFull() {
			n.states[i].Eps = nil
		}
	}
}

// ReachableFrom returns every state reachable from seeds by following
// epsilon, consuming, and predicate edges forward.
func (n *NFA) ReachableFrom(seeds charset.StateSet) charset.StateSet {
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
		st := n.states[s]
		push := func(t StateID) {
			if !visited.Contains(uint32(t)) {
				visited.Insert(uint32(t))
				stack = append(stack, t)
			}
		}
		for _, t := range st.Eps {
			push(t)
		}
		for _, e := range st.Consuming {
			push(e.To)
		}
		for _, p := range st.Predicates {
			push(p.To)
		}
	}
	out := make(charset.StateSet, 0, visited.Size())
	for _, v := range visited.Values() {
		out = append(out, StateID(v))
	}
	return charset.NewStateSet(out...)
}

// ReachableStates returns the set of states that are both reachable from
// some initial state and able to reach some accepting state - the exact
// set TrimUnreachable must preserve.
func (n *NFA) ReachableStates() charset.StateSet {
	forward := n.ReachableFrom(n.allInitialStates())
	backward := n.Reversed().ReachableFrom(n.acceptingStates())
	return intersectSets(forward, backward)
}

func (n *NFA) allInitialStates() charset.StateSet {
	all := n.init.Union(n.initAtStart)
	for _, e := range n.initAfterChar.Entries() {
		all = all.Union(e.Value)
	}
	return all
}

func (n *NFA) acceptingStates() charset.StateSet {
	var out charset.StateSet
	for i := range n.states {
		acc := n.states[i].Accept
		dfa := n.states[i].DfaAccept
		if !acc.IsNever() || !dfa.IsNever() {
			out = append(out, StateID(i))
		}
	}
	return charset.NewStateSet(out...)
}

func intersectSets(a, b charset.StateSet) charset.StateSet {
	var out charset.StateSet
	for _, s := range a {
		if b.Contains(s) {
			out = append(out, s)
		}
	}
	return charset.NewStateSet(out...)
}

// TrimUnreachable compacts the state array down to ReachableStates,
// rebuilding every index reference - transitions, epsilon edges,
// predicates, and the three initial-state structures.
func (n *NFA) TrimUnreachable() {
	keep := n.ReachableStates()
	if len(keep) == len(n.states) {
		return
	}

	remap := make(map[StateID]StateID, len(keep))
	newStates := make([]NfaState, 0, len(keep))
	for _, old := range keep {
		remap[old] = StateID(len(newStates))
		newStates = append(newStates, n.states[old])
	}

	remapID := func(id StateID) (StateID, bool) {
		if id == InvalidState {
			return InvalidState, true
		}
		r, ok := remap[id]
		return r, ok
	}

	for i := range newStates {
		st := &newStates[i]

		consuming := st.Consuming[:0]
		for _, e := range st.Consuming {
			if r, ok := remapID(e.To); ok {
				consuming = append(consuming, ConsumingEdge{Range: e.Range, To: r})
			}
		}
		st.Consuming = consuming

		eps := st.Eps[:0]
		for _, t := range st.Eps {
			if r, ok := remapID(t); ok {
				eps = append(eps, r)
			}
		}
		st.Eps = eps

		preds := st.Predicates[:0]
		for _, p := range st.Predicates {
			if r, ok := remapID(p.To); ok {
				preds = append(preds, PredicateEdge{Pred: p.Pred, To: r})
			}
		}
		st.Predicates = preds
	}

	n.states = newStates
	n.init = remapStateSet(n.init, remap)
	n.initAtStart = remapStateSet(n.initAtStart, remap)

	newInitAfterChar := charset.NewCharMap[charset.StateSet]()
	for _, e := range n.initAfterChar.Entries() {
		remapped := remapStateSet(e.Value, remap)
		if len(remapped) > 0 {
			newInitAfterChar.Insert(e.Range, remapped)
		}
	}
	n.initAfterChar = newInitAfterChar
}

func remapStateSet(set charset.StateSet, remap map[StateID]StateID) charset.StateSet {
	var out charset.StateSet
	for _, s := range set {
		if r, ok := remap[s]; ok {
			out = append(out, r)
		}
	}
	return charset.NewStateSet(out...)
}
