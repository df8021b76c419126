package predicate

import "testing"

func TestStartOfTextMatchesOnlyAtStart(t *testing.T) {
	p := StartOfText()
	if !p.Matches(0, false, 'a', true) {
		t.Fatal("expected ^ to match at start of text")
	}
	if p.Matches('x', true, 'a', true) {
		t.Fatal("expected ^ to fail when a character precedes the cursor")
	}
}

func TestWordBoundaryPredicatesCoverBothDirections(t *testing.T) {
	preds := WordBoundaryPredicates()
	found := false
	for _, p := range preds {
		if p.Matches('a', true, ' ', true) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected some \\b predicate to match word-to-nonword transition")
	}
}

func TestIntersectUnsatisfiable(t *testing.T) {
	a := Predicate{Behind: NonePart(), Ahead: AnyPart()}
	b := Predicate{Behind: CharsPart(wordChars()), Ahead: AnyPart()}
	if _, ok := a.Intersect(b); ok {
		t.Fatal("expected none-vs-chars intersection to be unsatisfiable")
	}
}
