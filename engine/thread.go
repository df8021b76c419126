package engine

import "github.com/go-rxdfa/rxdfa/automaton"

// Thread is a single candidate match in flight: the automaton state it
// currently occupies and the byte index its candidate match started at.
type Thread struct {
	State automaton.StateID
	Start int
}

// threadList is one of the two lists (cur/next) the engine alternates
// between each step, backed by a dedup bitmap sized to the program's
// state count so at most one thread per state survives a single step.
type threadList struct {
	items   []Thread
	present []bool
}

func newThreadList(numStates int) *threadList {
	return &threadList{present: make([]bool, numStates)}
}

// add appends a thread at state/start unless a thread already occupies
// state this step; the first (earliest-appended, hence earliest-start
// under this engine's insertion order) occupant wins.
func (t *threadList) add(state automaton.StateID, start int) {
	if t.present[state] {
		return
	}
	t.present[state] = true
	t.items = append(t.items, Thread{State: state, Start: start})
}

// reset drops this step's items. The dedup bitmap is not touched here: it
// is cleared lazily, one bit per thread, as Search iterates the list
// being retired - correct only because every item in the list being reset
// has already been walked (and its present bit flipped off) earlier in
// the same step. It must never be used to clear state across calls to
// Search; use clear for that.
func (t *threadList) reset() {
	t.items = t.items[:0]
}

// clear drops this list's items and zeroes every present bit, regardless
// of whether each one was visited this step. Search uses this at the
// start of every call so that threads left live by an earlier call's
// early return or final EOI check can never shadow a seed thread in a
// later call on the same (reused) engine.
func (t *threadList) clear() {
	t.items = t.items[:0]
	for i := range t.present {
		t.present[i] = false
	}
}

// progThreads holds the cur/next thread lists the engine swaps between
// each input byte.
type progThreads struct {
	cur, next *threadList
}

func newProgThreads(numStates int) *progThreads {
	return &progThreads{
		cur:  newThreadList(numStates),
		next: newThreadList(numStates),
	}
}

// swap exchanges cur and next; the caller must reset the new next
// afterward once it has finished reading the old cur's items (clearing
// present bits as it goes).
func (p *progThreads) swap() {
	p.cur, p.next = p.next, p.cur
}

// clear fully resets both lists, for use at the start of a fresh Search
// call on a reused engine.
func (p *progThreads) clear() {
	p.cur.clear()
	p.next.clear()
}
