package nfa

// Reversed returns a new NFA with every consuming, epsilon, and predicate
// edge pointing the opposite direction. Accept and DfaAccept profiles are
// not meaningful on a reversed graph (it no longer represents a
// left-to-right scan) and are left as Never/NeverDfa, matching how the
// mirrored reverse graph used internally by RemovePredicates treats them.
// Reversing a reversed NFA restores the original edge set (state indices
// preserved); the three initial-state classes are carried over unchanged
// since reversal only concerns edge direction.
func (n *NFA) Reversed() *NFA {
	out := New()
	out.states = make([]NfaState, len(n.states))

	for from := range n.states {
		st := n.states[from]
		for _, e := range st.Consuming {
			out.states[e.To].Consuming = append(out.states[e.To].Consuming, ConsumingEdge{Range: e.Range, To: StateID(from)})
		}
		for _, to := range st.Eps {
			out.states[to].Eps = append(out.states[to].Eps, StateID(from))
		}
		for _, p := range st.Predicates {
			out.states[p.To].Predicates = append(out.states[p.To].Predicates, PredicateEdge{Pred: p.Pred, To: StateID(from)})
		}
	}

	out.init = n.init
	out.initAtStart = n.initAtStart
	out.initAfterChar = n.initAfterChar
	return out
}
