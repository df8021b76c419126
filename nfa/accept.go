package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// Accept returns the union of the Accept profiles of every state in set -
// the aggregate "what causes acceptance" for a closure of states, as used
// when a fresh predicate-elimination state inherits the accept condition
// of the states it replaces.
func (n *NFA) Accept(set charset.StateSet) predicate.Accept {
	acc := predicate.Never()
	for _, s := range set {
		acc = acc.Union(n.states[s].Accept)
	}
	return acc
}

// DfaAccept returns the union (under shortest-match precedence) of the
// byte-level accept profiles of every state in set.
func (n *NFA) DfaAccept(set charset.StateSet) predicate.DfaAccept {
	acc := predicate.NeverDfa()
	for _, s := range set {
		acc = acc.UnionShortest(n.states[s].DfaAccept)
	}
	return acc
}
