package nfa

import (
	"sort"

	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

// ByteMe re-encodes every code-point consuming transition into a chain of
// single-byte transitions over the UTF-8 encoding of the original
// code-point range, sharing prefix states between sequences that share
// leading bytes via MergedUtf8Sequences. Must run on a predicate-free
// NFA (RemovePredicates must have already run).
func (n *NFA) ByteMe(limits Limits) error {
	// Only the states present before lowering begins carry code-point
	// edges; iterate that fixed prefix even as new byte-chain states are
	// appended.
	originalLen := len(n.states)
	for i := 0; i < originalLen; i++ {
		from := StateID(i)
		edges := n.states[from].Consuming
		n.states[from].Consuming = nil

		byTarget := make(map[StateID][]charset.CharRange)
		var targets []StateID
		for _, e := range edges {
			if _, ok := byTarget[e.To]; !ok {
				targets = append(targets, e.To)
			}
			byTarget[e.To] = append(byTarget[e.To], e.Range)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

		for _, target := range targets {
			if err := n.addUtf8Sequences(from, byTarget[target], target, limits); err != nil {
				return err
			}
		}
	}
	return nil
}

// ByteAccept copies each state's code-point accept profile into its
// byte-level counterpart: at_eoi carries over directly; a full at_char
// set becomes dfa_accept.otherwise; anything narrower is lowered into
// byte sub-paths terminating in dedicated states whose bytes_behind
// records how many bytes of lookahead were needed to resolve the accept.
func (n *NFA) ByteAccept(limits Limits) error {
	originalLen := len(n.states)
	for i := 0; i < originalLen; i++ {
		id := StateID(i)
		acc := n.states[id].Accept

		n.states[id].DfaAccept.AtEOI = acc.AtEOI
		if acc.AtChar.IsFull() {
			n.states[id].DfaAccept.Otherwise = true
			continue
		}
		if acc.AtChar.IsEmpty() {
			continue
		}
		if err := n.addUtf8Sequences(id, acc.AtChar, InvalidState, limits); err != nil {
			return err
		}
	}
	return nil
}

// addUtf8Sequences expands ranges into merged UTF-8 byte sequences and
// chains fresh intermediate states from "from" for every sequence group's
// leading bytes, ending either at "target" (if it is a real state) or at
// a dedicated fresh terminal state per group (if target is InvalidState),
// in which case the terminal's DfaAccept.BytesBehind is set to the
// group's head length plus one. A group's trailing byte ranges (Tails)
// are not contiguous in general, so each gets its own transition into the
// shared destination rather than being folded into one range.
func (n *NFA) addUtf8Sequences(from StateID, ranges []charset.CharRange, target StateID, limits Limits) error {
	var seqs []charset.Utf8Sequence
	for _, r := range ranges {
		lo, hi, ok := r.ToCharPair()
		if !ok {
			continue
		}
		seqs = append(seqs, charset.Utf8Sequences(lo, hi)...)
	}
	if len(seqs) == 0 {
		return nil
	}
	merged := charset.MergedUtf8Sequences(seqs)

	want := 0
	for _, m := range merged {
		want += len(m.Head)
		if target == InvalidState {
			want++
		}
	}
	if err := limits.check(len(n.states) + want); err != nil {
		return err
	}

	for _, m := range merged {
		cur := from
		for _, hb := range m.Head {
			mid := n.AddState(predicate.Never())
			n.AddTransition(cur, mid, byteRangeToChar(hb))
			cur = mid
		}

		dest := target
		if dest == InvalidState {
			dest = n.AddState(predicate.Never())
			n.SetByteAccept(dest, predicate.AcceptDfa(false, true, len(m.Head)+1))
		}
		for _, tail := range m.Tails {
			n.AddTransition(cur, dest, byteRangeToChar(tail))
		}
	}
	return nil
}

func byteRangeToChar(r charset.Utf8Range) charset.CharRange {
	return charset.CharRange{Lo: rune(r.Lo), Hi: rune(r.Hi)}
}
