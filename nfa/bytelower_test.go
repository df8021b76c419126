package nfa

import (
	"testing"

	"github.com/go-rxdfa/rxdfa/charset"
	"github.com/go-rxdfa/rxdfa/predicate"
)

func TestByteMeLowersASCIIDirectly(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddInitState(s0)

	if err := n.ByteMe(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteMe: %v", err)
	}

	st := n.State(s0)
	if len(st.Consuming) != 1 {
		t.Fatalf("expected exactly one byte transition from the ASCII source state, got %d", len(st.Consuming))
	}
	e := st.Consuming[0]
	if e.Range.Lo != 'a' || e.Range.Hi != 'a' || e.To != s1 {
		t.Fatalf("unexpected lowered transition: %+v", e)
	}
}

func TestByteMeLowersMultiByteRune(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	// U+00E9 'é' encodes as two UTF-8 bytes.
	n.AddTransition(s0, s1, charset.Single('é'))
	n.AddInitState(s0)

	before := n.Len()
	if err := n.ByteMe(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteMe: %v", err)
	}
	if n.Len() <= before {
		t.Fatal("expected an intermediate state for the two-byte sequence")
	}
	st := n.State(s0)
	if len(st.Consuming) != 1 {
		t.Fatalf("expected one leading-byte transition, got %d", len(st.Consuming))
	}
	if st.Consuming[0].Range.Hi > 255 {
		t.Fatal("expected lowered transition range to fit in a byte")
	}
}

func TestByteMeDoesNotMergeGappedSingleByteClass(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Never())
	s1 := n.AddState(predicate.Always())
	// The class [ac]: two single-byte ranges with a real gap at 'b'.
	n.AddTransition(s0, s1, charset.Single('a'))
	n.AddTransition(s0, s1, charset.Single('c'))
	n.AddInitState(s0)

	if err := n.ByteMe(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteMe: %v", err)
	}

	st := n.State(s0)
	for _, e := range st.Consuming {
		if e.Range.Lo <= 'b' && e.Range.Hi >= 'b' {
			t.Fatalf("lowered transition %+v wrongly accepts 'b'", e)
		}
	}
	if len(st.Consuming) != 2 {
		t.Fatalf("expected two separate single-byte transitions for [ac], got %d: %+v", len(st.Consuming), st.Consuming)
	}
}

func TestByteAcceptOtherwiseForFullAccept(t *testing.T) {
	n := New()
	s0 := n.AddState(predicate.Always())
	n.AddInitState(s0)

	if err := n.ByteAccept(Limits{MaxStates: 1000}); err != nil {
		t.Fatalf("ByteAccept: %v", err)
	}
	got := n.State(s0).DfaAccept
	if !got.AtEOI || !got.Otherwise {
		t.Fatalf("expected always-accept to lower to {AtEOI: true, Otherwise: true}, got %+v", got)
	}
}
