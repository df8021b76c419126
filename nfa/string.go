package nfa

import (
	"fmt"
	"strings"
)

// String renders a one-line summary of the NFA, in the terse
// state-count-and-flags style used elsewhere in this codebase for
// debugging large automata without dumping every state.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, init: %d, initAtStart: %d, initAfterChar: %d}",
		len(n.states), len(n.init), len(n.initAtStart), n.initAfterChar.Len())
}

// GoString dumps every state's edges, one line per state, for use with
// %#v during debugging.
func (n *NFA) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{\n  init: %v\n  initAtStart: %v\n", n.init, n.initAtStart)
	for _, e := range n.initAfterChar.Entries() {
		fmt.Fprintf(&b, "  initAfterChar[%s]: %v\n", e.Range, e.Value)
	}
	for i, st := range n.states {
		fmt.Fprintf(&b, "  %d: consuming=%d eps=%v predicates=%d accept=%+v dfaAccept=%+v\n",
			i, len(st.Consuming), st.Eps, len(st.Predicates), st.Accept, st.DfaAccept)
	}
	b.WriteString("}")
	return b.String()
}
