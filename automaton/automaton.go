// Package automaton subset-constructs a deterministic byte-level automaton
// from a predicate-free, byte-lowered NFA, and exposes the compiled
// Program (stepping, EOI checks and initial-state lookup) that the
// threaded execution engine consumes.
package automaton

import (
	"fmt"

	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/nfa"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// StateID identifies a state within a Dfa.
type StateID = charset.StateID

// InvalidState marks the absence of a DFA state (an unset initial-state
// slot, or a transition's implicit dead-state).
const InvalidState StateID = ^StateID(0)

// ByteTransition is one outgoing edge of a Dfa state: a single-byte range
// and its target.
type ByteTransition struct {
	Range charset.CharRange // always clipped to [0, 255]
	To    StateID
}

// DfaState is one state of the compiled automaton: its sorted byte-range
// transition table and its byte-level accept profile.
type DfaState struct {
	Transitions []ByteTransition
	Accept      predicate.DfaAccept
}

// Dfa is the output of Determinize: a byte-level deterministic automaton
// with the three initial-state classes preserved from the source NFA.
type Dfa struct {
	states []DfaState

	hasInitOtherwise bool
	initOtherwise    StateID

	hasInitAtStart bool
	initAtStart    StateID

	initAfterChar *charset.CharMap[StateID]
}

// Len returns the number of DFA states.
func (d *Dfa) Len() int { return len(d.states) }

// State returns a copy of the state at id.
func (d *Dfa) State(id StateID) DfaState { return d.states[id] }

// InitOtherwise returns the state reachable from the unconditional
// initial NFA states, if any.
func (d *Dfa) InitOtherwise() (StateID, bool) { return d.initOtherwise, d.hasInitOtherwise }

// InitAtStart returns the state to use at the very start of input, if the
// source NFA had any start-anchored initial states.
func (d *Dfa) InitAtStart() (StateID, bool) { return d.initAtStart, d.hasInitAtStart }

// InitAfterChar returns the state to use when the preceding byte is
// prevByte, if the source NFA had any after-character initial states
// whose trigger range covers that byte.
func (d *Dfa) InitAfterChar(prevByte byte) (StateID, bool) {
	return d.initAfterChar.Get(rune(prevByte))
}

// ErrorKind classifies the one dynamic error determinization can raise.
type ErrorKind uint8

const (
	// TooManyStates indicates subset construction would register more
	// DFA states than the configured limit.
	TooManyStates ErrorKind = iota
)

func (k ErrorKind) String() string {
	if k == TooManyStates {
		return "TooManyStates"
	}
	return fmt.Sprintf("UnknownErrorKind(%d)", k)
}

// CompileError is returned by Determinize when it would exceed
// Limits.MaxStates.
type CompileError struct {
	Kind       ErrorKind
	Wanted     int
	MaxAllowed int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: wanted %d states, limit is %d", e.Kind, e.Wanted, e.MaxAllowed)
}

// determinizer holds subset-construction state scoped to a single
// Determinize call.
type determinizer struct {
	n        *nfa.NFA
	limits   nfa.Limits
	stateMap map[string]StateID
	sets     []charset.StateSet // DFA state id -> underlying NFA state set
	worklist []StateID
	dfa      *Dfa
}

// Determinize subset-constructs a Dfa from a byte-lowered, predicate-free
// NFA, respecting its three initial-state classes and enforcing
// limits.MaxStates across every state registered.
func Determinize(n *nfa.NFA, limits nfa.Limits) (*Dfa, error) {
	d := &determinizer{
		n:        n,
		limits:   limits,
		stateMap: make(map[string]StateID),
		dfa:      &Dfa{initAfterChar: charset.NewCharMap[StateID]()},
	}

	if set := n.EpsClosure(n.Init()); !set.IsEmpty() {
		id, err := d.register(set)
		if err != nil {
			return nil, err
		}
		d.dfa.initOtherwise = id
		d.dfa.hasInitOtherwise = true
	}

	if set := n.EpsClosure(n.InitAtStart()); !set.IsEmpty() {
		id, err := d.register(set)
		if err != nil {
			return nil, err
		}
		d.dfa.initAtStart = id
		d.dfa.hasInitAtStart = true
	}

	unconditional := n.EpsClosure(n.Init())
	for _, e := range n.InitAfterChar().Entries() {
		combined := n.EpsClosure(e.Value).Union(unconditional)
		if combined.IsEmpty() {
			continue
		}
		id, err := d.register(combined)
		if err != nil {
			return nil, err
		}
		d.dfa.initAfterChar.Insert(e.Range, id)
	}

	for len(d.worklist) > 0 {
		id := d.worklist[len(d.worklist)-1]
		d.worklist = d.worklist[:len(d.worklist)-1]

		set := d.sets[id]
		trans, err := d.transitionsFor(set)
		if err != nil {
			return nil, err
		}
		d.dfa.states[id].Transitions = trans
		d.dfa.states[id].Accept = n.DfaAccept(set)
	}

	return d.dfa, nil
}

// register finds or creates the DFA state for set, enforcing the state
// cap on creation.
func (d *determinizer) register(set charset.StateSet) (StateID, error) {
	key := set.Key()
	if id, ok := d.stateMap[key]; ok {
		return id, nil
	}
	wanted := len(d.dfa.states) + 1
	if err := d.limits.Check(wanted); err != nil {
		return InvalidState, &CompileError{Kind: TooManyStates, Wanted: wanted, MaxAllowed: d.limits.MaxStates}
	}
	id := StateID(len(d.dfa.states))
	d.dfa.states = append(d.dfa.states, DfaState{})
	d.sets = append(d.sets, set)
	d.stateMap[key] = id
	d.worklist = append(d.worklist, id)
	return id, nil
}

// transitionsFor computes the per-byte-range outgoing transitions of the
// DFA state underlain by set: every consuming edge of every member state
// is swept into disjoint byte-range groups, each mapped to the
// union-then-epsilon-closure of its covering targets.
func (d *determinizer) transitionsFor(set charset.StateSet) ([]ByteTransition, error) {
	mm := charset.NewCharMultiMap[StateID]()
	for _, s := range set {
		for _, e := range d.n.State(s).Consuming {
			mm.Insert(e.Range, e.To)
		}
	}
	groups := mm.Group(func(a, b StateID) bool { return a == b })

	out := make([]ByteTransition, 0, len(groups))
	for _, g := range groups {
		targetSet := charset.NewStateSet(g.Values...)
		closure := d.n.EpsClosure(targetSet)
		if closure.IsEmpty() {
			continue
		}
		id, err := d.register(closure)
		if err != nil {
			return nil, err
		}
		out = append(out, ByteTransition{Range: g.Range, To: id})
	}
	return out, nil
}
