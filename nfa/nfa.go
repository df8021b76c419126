// Package nfa implements the predicate-carrying, code-point-range NFA that
// sits at the center of the compiler: construction, predicate elimination,
// UTF-8 byte lowering, shortest-match optimization, and reversal.
package nfa

import (
	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// StateID identifies a state within an NFA. Aliased to charset.StateID so
// StateSet-based algorithms (epsilon-closure, subset construction) can
// operate on either package's values without conversion.
type StateID = charset.StateID

// InvalidState is never a valid index into an NFA's state vector; it marks
// the absence of a target (addUtf8Sequences takes it to mean "allocate a
// fresh terminal state").
const InvalidState StateID = ^StateID(0)

// ConsumingEdge is one entry of a state's consuming transition table: a
// code-point range mapped to a target state. consuming is modeled as a
// multi-valued mapping (one range may, after predicate elimination or
// construction from an alternation, reach more than one target), so it is
// kept as a flat slice rather than a single-valued map.
type ConsumingEdge struct {
	Range charset.CharRange
	To    StateID
}

// PredicateEdge is one entry of a state's predicate table: a zero-width
// assertion guarding passage to a target state.
type PredicateEdge struct {
	Pred predicate.Predicate
	To   StateID
}

// NfaState is a single state of the NFA, as specified: a set of consuming
// transitions, an ordered list of epsilon targets, a set of
// predicate-guarded transitions, a code-point accept profile, and its
// byte-lowered counterpart.
type NfaState struct {
	Consuming  []ConsumingEdge
	Eps        []StateID
	Predicates []PredicateEdge
	Accept     predicate.Accept
	DfaAccept  predicate.DfaAccept
}

// NFA is an ordered sequence of states plus the three initial-state
// classes described in the data model: states unconditionally initial
// (Init), states additionally initial only at the start of input
// (InitAtStart), and states additionally initial when the preceding
// character falls in a given range (InitAfterChar).
type NFA struct {
	states        []NfaState
	init          charset.StateSet
	initAtStart   charset.StateSet
	initAfterChar *charset.CharMap[charset.StateSet]

	// reverse is never set: RemovePredicates builds its reverseGraph as a
	// local value for each predicate job, so this field is always nil.
	reverse *reverseGraph
}

// New returns an empty NFA with no states and no initial states set.
func New() *NFA {
	return &NFA{initAfterChar: charset.NewCharMap[charset.StateSet]()}
}

// Len returns the number of states.
func (n *NFA) Len() int { return len(n.states) }

// State returns a copy of the state at id. Panics (contract violation) if
// id is out of range.
func (n *NFA) State(id StateID) NfaState {
	n.mustValid(id)
	return n.states[id]
}

// Init returns the unconditionally-initial state set.
func (n *NFA) Init() charset.StateSet { return n.init }

// InitAtStart returns the start-of-input-only initial state set.
func (n *NFA) InitAtStart() charset.StateSet { return n.initAtStart }

// InitAfterChar returns the preceding-character-conditioned initial state
// map.
func (n *NFA) InitAfterChar() *charset.CharMap[charset.StateSet] { return n.initAfterChar }

func (n *NFA) mustValid(id StateID) {
	if int(id) >= len(n.states) {
		panic("nfa: state index out of range")
	}
}

func (n *NFA) mustValidSet(ids ...StateID) {
	for _, id := range ids {
		n.mustValid(id)
	}
}
