// Package engine implements the simultaneous-thread (Pike-VM-style)
// matcher that executes a compiled automaton.Program against UTF-8 text
// and returns the earliest-starting, then shortest, match.
package engine

import "github.com/go-rxdfa/rxdfa/automaton"

// ThreadedEngine executes a compiled program against input. A single
// instance is not safe for concurrent queries: its two thread lists are
// reused scratch space across calls to Search, fully cleared at the start
// of each call, mirroring how the source this engine is modeled on
// borrows them from an interior-mutable cell shared by reference but
// never concurrently entered. Callers needing concurrency must use one
// engine per concurrent matcher, or external locking.
type ThreadedEngine struct {
	prog    *automaton.Program
	skipper Skipper
	threads *progThreads
}

// NewThreadedEngine builds an engine over prog, fast-forwarding with
// skip.
func NewThreadedEngine(prog *automaton.Program, skip Skipper) *ThreadedEngine {
	return &ThreadedEngine{
		prog:    prog,
		skipper: skip,
		threads: newProgThreads(prog.NumStates()),
	}
}

// Search returns the earliest-starting, shortest match in text, or
// ok=false if none exists. start <= end are byte offsets into text.
func (e *ThreadedEngine) Search(text []byte) (start, end int, ok bool) {
	pt := e.threads
	pt.clear()

	matchStart, resumePos, initState, seeded := e.skipper.Skip(text, 0, nil)
	if !seeded {
		return 0, 0, false
	}
	pt.cur.add(initState, matchStart)
	pos := resumePos

	matched := false
	var bestStart, bestEnd int

	for pos < len(text) {
		b := text[pos]

		for _, th := range pt.cur.items {
			pt.cur.present[th.State] = false

			next, accept, bytesBehind, _, stepOK := e.prog.Step(th.State, b)
			if !stepOK {
				continue
			}
			if accept {
				end := pos + 1 - bytesBehind
				switch {
				case !matched || th.Start < bestStart:
					matched = true
					bestStart = th.Start
					bestEnd = end
				case th.Start == bestStart && end < bestEnd:
					bestEnd = end
				}
			}
			pt.next.add(next, th.Start)
		}

		pt.swap()
		pt.next.reset()

		if matched && allStartAtOrAfter(pt.cur.items, bestStart) {
			return bestStart, bestEnd, true
		}

		lastByte := b
		pos++

		if len(pt.cur.items) == 0 {
			ms, rp, st, sOK := e.skipper.Skip(text, pos, &lastByte)
			if !sOK {
				break
			}
			pt.cur.add(st, ms)
			pos = rp
		} else if st, sOK := e.prog.StateAfter(&lastByte); sOK {
			pt.cur.add(st, pos)
		}
	}

	for _, th := range pt.cur.items {
		if !e.prog.CheckEOI(th.State) {
			continue
		}
		switch {
		case !matched || th.Start < bestStart:
			matched = true
			bestStart = th.Start
			bestEnd = len(text)
		case th.Start == bestStart && len(text) < bestEnd:
			bestEnd = len(text)
		}
	}

	if !matched {
		return 0, 0, false
	}
	return bestStart, bestEnd, true
}

func allStartAtOrAfter(threads []Thread, start int) bool {
	for _, th := range threads {
		if th.Start < start {
			return false
		}
	}
	return true
}
