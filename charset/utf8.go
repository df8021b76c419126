package charset

import "sort"

// Utf8Range is an inclusive range of raw byte values occupying a single
// byte position of a UTF-8 encoded sequence.
type Utf8Range struct {
	Lo, Hi byte
}

// Utf8Sequence is an ordered list of Utf8Range, one per byte position,
// describing every byte string that encodes a scalar value in some
// contiguous sub-range of a Unicode scalar-value range. A single
// Utf8Sequence always has length 1, 2, 3 or 4, matching the UTF-8 encoding
// length of the scalar values it covers.
type Utf8Sequence []Utf8Range

// utf8Len widths (in bits) and additive bases per encoded byte position,
// indexed by encoded length 1..4. These come directly from the UTF-8
// encoding scheme: the leading byte reserves some bits for the length tag
// (base) and devotes the rest (width) to payload; continuation bytes
// always reserve the top two bits (base 0x80) and devote 6 bits to
// payload.
var utf8Widths = [5][]uint{
	1: {7},
	2: {5, 6},
	3: {4, 6, 6},
	4: {3, 6, 6, 6},
}

var utf8Bases = [5][]byte{
	1: {0x00},
	2: {0xC0, 0x80},
	3: {0xE0, 0x80, 0x80},
	4: {0xF0, 0x80, 0x80, 0x80},
}

// scalarLen returns the UTF-8 encoded length of a scalar value.
func scalarLen(r rune) int {
	switch {
	case r <= 0x7F:
		return 1
	case r <= 0x7FF:
		return 2
	case r <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// maxScalarForLen returns the largest scalar value encodable in n bytes.
func maxScalarForLen(n int) rune {
	switch n {
	case 1:
		return 0x7F
	case 2:
		return 0x7FF
	case 3:
		return 0xFFFF
	default:
		return MaxRune
	}
}

// Utf8Sequences expands an inclusive scalar-value range [lo, hi] into a
// list of Utf8Sequence values whose union of encoded byte strings is
// exactly the set of UTF-8 encodings of scalar values in [lo, hi]. The
// list is not always the shortest possible one (a low partial whose rest
// starts at zero is emitted separately from the middle run). Surrogate
// code points inside [lo, hi] are not skipped; they get the three-byte
// encodings their values would have.
//
// The scalar range is first split at UTF-8-length boundaries (ranges never
// cross a length boundary within a single call to splitDigits), then each
// same-length sub-range is split recursively by encoded byte position: at
// each position either the full remaining digit range fits (producing one
// range for that position and recursing on the rest), or it must be split
// into a low partial, a full middle run, and a high partial, each handled
// independently. The recursion always emits the low partial before the
// middle run before the high partial, which guarantees that any two
// sequences sharing the same leading bytes are produced consecutively -
// required by MergedUtf8Sequences's single left-to-right scan.
func Utf8Sequences(lo, hi rune) []Utf8Sequence {
	if lo > hi {
		return nil
	}
	var out []Utf8Sequence
	for length := 1; length <= 4; length++ {
		segLo := lo
		segHi := hi
		maxLen := maxScalarForLen(length)
		minLen := rune(0)
		if length > 1 {
			minLen = maxScalarForLen(length-1) + 1
		}
		if segLo < minLen {
			segLo = minLen
		}
		if segHi > maxLen {
			segHi = maxLen
		}
		if segLo > segHi {
			continue
		}
		splitDigits(segLo, segHi, utf8Widths[length], utf8Bases[length], nil, &out)
	}
	return out
}

// splitDigits recursively partitions the scalar range [lo, hi] (both known
// to share the same UTF-8 encoded length) into Utf8Sequence values,
// position by position. widths/bases describe the remaining byte
// positions; prefix holds the Utf8Ranges already fixed for byte positions
// already decided.
func splitDigits(lo, hi rune, widths []uint, bases []byte, prefix []Utf8Range, out *[]Utf8Sequence) {
	if len(widths) == 0 {
		seq := make(Utf8Sequence, len(prefix))
		copy(seq, prefix)
		*out = append(*out, seq)
		return
	}

	base := bases[0]
	shift := uint(0)
	for _, w := range widths[1:] {
		shift += w
	}
	mask := rune(1)<<shift - 1

	loDigit := byte(lo>>shift) + base
	hiDigit := byte(hi>>shift) + base
	loRest := lo & mask
	hiRest := hi & mask

	restLo := rune(0)
	restHi := mask

	if loDigit == hiDigit {
		// Single leading value at this position; recurse on the rest with
		// the true sub-range.
		appendPrefixed(prefix, Utf8Range{Lo: loDigit, Hi: hiDigit}, widths[1:], bases[1:], loRest, hiRest, out)
		return
	}

	// Low partial: loDigit fixed, rest ranges from loRest to max.
	appendPrefixed(prefix, Utf8Range{Lo: loDigit, Hi: loDigit}, widths[1:], bases[1:], loRest, restHi, out)

	// Full middle run: every digit strictly between loDigit and hiDigit
	// covers the full rest range, so it collapses into one sequence
	// entry covering [loDigit+1, hiDigit-1] with the rest unconstrained.
	if loDigit+1 <= hiDigit-1 {
		appendPrefixed(prefix, Utf8Range{Lo: loDigit + 1, Hi: hiDigit - 1}, widths[1:], bases[1:], restLo, restHi, out)
	}

	// High partial: hiDigit fixed, rest ranges from min to hiRest.
	appendPrefixed(prefix, Utf8Range{Lo: hiDigit, Hi: hiDigit}, widths[1:], bases[1:], restLo, hiRest, out)
}

func appendPrefixed(prefix []Utf8Range, r Utf8Range, widths []uint, bases []byte, restLo, restHi rune, out *[]Utf8Sequence) {
	newPrefix := append(append([]Utf8Range(nil), prefix...), r)
	splitDigits(restLo, restHi, widths, bases, newPrefix, out)
}

// MergedUtf8Sequence is a group of Utf8Sequence values that share the same
// leading byte ranges (Head): one chain of intermediate states can serve
// all of them, branching only at the final byte position, where each
// entry of Tails gets its own transition into the shared destination.
// Tails is kept as a list rather than collapsed into one range: its
// entries need not be contiguous (e.g. the class [ac] lowers to two
// single-byte sequences with an empty Head and Tails {'a','a'},
// {'c','c'} - merging those into one Lo='a',Hi='c' range would wrongly
// also accept 'b').
type MergedUtf8Sequence struct {
	Head  []Utf8Range
	Tails []Utf8Range
}

// MergedUtf8Sequences groups consecutive Utf8Sequence values produced by
// Utf8Sequences that share the same leading byte range. This is the
// structure byte lowering (nfa.ByteMe/ByteAccept) consumes: one chain of
// NFA states per distinct head rather than one per scalar sub-range,
// which keeps the lowered automaton from growing with every sub-range.
//
// Sequences must be supplied in the order Utf8Sequences produces them;
// grouping is a single linear scan comparing each sequence's head (every
// range but the last) against the previous one.
func MergedUtf8Sequences(seqs []Utf8Sequence) []MergedUtf8Sequence {
	if len(seqs) == 0 {
		return nil
	}
	out := make([]MergedUtf8Sequence, 0, len(seqs))
	head := headOf(seqs[0])
	tails := []Utf8Range{tailOf(seqs[0])}
	for _, s := range seqs[1:] {
		h := headOf(s)
		if headEqual(head, h) {
			tails = append(tails, tailOf(s))
			continue
		}
		out = append(out, MergedUtf8Sequence{Head: cloneRanges(head), Tails: tails})
		head = h
		tails = []Utf8Range{tailOf(s)}
	}
	out = append(out, MergedUtf8Sequence{Head: cloneRanges(head), Tails: tails})
	return out
}

func headOf(s Utf8Sequence) []Utf8Range { return s[:len(s)-1] }

func tailOf(s Utf8Sequence) Utf8Range { return s[len(s)-1] }

func cloneRanges(s []Utf8Range) []Utf8Range {
	return append([]Utf8Range(nil), s...)
}

func headEqual(a, b []Utf8Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SortUtf8Sequences orders sequences lexicographically by their ranges,
// primarily useful in tests asserting a specific expansion shape.
func SortUtf8Sequences(seqs []Utf8Sequence) {
	sort.Slice(seqs, func(i, j int) bool {
		a, b := seqs[i], seqs[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k].Lo != b[k].Lo {
				return a[k].Lo < b[k].Lo
			}
			if a[k].Hi != b[k].Hi {
				return a[k].Hi < b[k].Hi
			}
		}
		return len(a) < len(b)
	})
}
