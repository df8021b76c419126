package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// AddState appends a new state with the given accept profile and returns
// its id.
func (n *NFA) AddState(accept predicate.Accept) StateID {
	n.states = append(n.states, NfaState{Accept: accept})
	return StateID(len(n.states) - 1)
}

// AddTransition adds a consuming edge from -> to over r. Panics if either
// state id is out of range: an invariant breach here is a programmer
// error, not a runtime condition.
func (n *NFA) AddTransition(from, to StateID, r charset.CharRange) {
	n.mustValidSet(from, to)
	n.states[from].Consuming = append(n.states[from].Consuming, ConsumingEdge{Range: r, To: to})
}

// AddEps adds an epsilon transition from -> to, preserving insertion
// order (the order epsilon targets are tried in matters for
// leftmost-first-style construction upstream of this package).
func (n *NFA) AddEps(from, to StateID) {
	n.mustValidSet(from, to)
	n.states[from].Eps = append(n.states[from].Eps, to)
}

// AddPredicate adds a predicate-guarded edge from -> to.
func (n *NFA) AddPredicate(from, to StateID, p predicate.Predicate) {
	n.mustValidSet(from, to)
	n.states[from].Predicates = append(n.states[from].Predicates, PredicateEdge{Pred: p, To: to})
}

// AddInitState marks id as unconditionally initial, keeping Init sorted.
// Panics if id is out of range, including when no states have been added
// yet: an empty state vector has no valid id to mark initial.
func (n *NFA) AddInitState(id StateID) {
	if len(n.states) == 0 || int(id) >= len(n.states) {
		panic("nfa: add_init_state: state index out of range")
	}
	n.init = insertSorted(n.init, id)
}

// AddInitAtStartState marks id as initial only at the start of input,
// keeping InitAtStart sorted. Same empty-state guard as AddInitState.
func (n *NFA) AddInitAtStartState(id StateID) {
	if len(n.states) == 0 || int(id) >= len(n.states) {
		panic("nfa: add_init_at_start_state: state index out of range")
	}
	n.initAtStart = insertSorted(n.initAtStart, id)
}

// SetByteAccept overwrites the byte-level accept profile of id.
func (n *NFA) SetByteAccept(id StateID, acc predicate.DfaAccept) {
	n.mustValid(id)
	n.states[id].DfaAccept = acc
}

func insertSorted(set charset.StateSet, id charset.StateID) charset.StateSet {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return charset.NewStateSet(append(append(charset.StateSet(nil), set...), id)...)
}
