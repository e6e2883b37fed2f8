package filter

import (
	"reflect"
	"testing"

	"github.com/matheuskafuri/billwatch/internal/congress"
)

func bill(title string) congress.BillSummary {
	return congress.BillSummary{Bill: &congress.BillRef{Title: title, Number: title}}
}

func titles(bills []congress.BillSummary) []string {
	out := make([]string, len(bills))
	for i, b := range bills {
		out[i] = b.Title()
	}
	return out
}

func sample() []congress.BillSummary {
	return []congress.BillSummary{
		bill("Tax Relief Act"),
		bill("Honoring the Alpha Team"),
		bill("Beta Infrastructure Act"),
		bill("alpha beta gamma"),
		{VersionCode: "untitled"},
	}
}

func TestApplyIdentity(t *testing.T) {
	in := sample()
	got := Apply(in, "", nil)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Apply with no query or terms changed the collection: %v", titles(got))
	}
}

func TestApplyWhitespaceQueryMatchesAll(t *testing.T) {
	if got := Apply(sample(), "   \t", nil); len(got) != len(sample()) {
		t.Errorf("expected all records, got %d", len(got))
	}
}

func TestApplySearchIsORAcrossTokens(t *testing.T) {
	in := sample()
	alpha := Apply(in, "alpha", nil)
	beta := Apply(in, "beta", nil)
	both := Apply(in, "ALPHA beta", nil)

	have := map[string]bool{}
	for _, b := range both {
		have[b.Title()] = true
	}
	for _, b := range append(alpha, beta...) {
		if !have[b.Title()] {
			t.Errorf("%q matched a single token but not the combined query", b.Title())
		}
	}
	want := []string{"Honoring the Alpha Team", "Beta Infrastructure Act", "alpha beta gamma"}
	if !reflect.DeepEqual(titles(both), want) {
		t.Errorf("got %v, want %v", titles(both), want)
	}
}

func TestApplySearchDropsUntitled(t *testing.T) {
	for _, b := range Apply(sample(), "act", nil) {
		if b.Title() == "" {
			t.Error("untitled record survived a search")
		}
	}
}

func TestApplyExclusionTerms(t *testing.T) {
	got := Apply(sample(), "", []string{"HONORING"})
	for _, b := range got {
		if b.Title() == "Honoring the Alpha Team" {
			t.Error("excluded record is still present")
		}
	}
	if len(got) != len(sample())-1 {
		t.Errorf("expected exactly one record removed, got %v", titles(got))
	}
	// The untitled record passes the exclusion step.
	if got[len(got)-1].VersionCode != "untitled" {
		t.Error("untitled record should survive exclusion terms")
	}
}

func TestApplySearchThenExclude(t *testing.T) {
	got := Apply(sample(), "alpha", []string{"honoring"})
	want := []string{"alpha beta gamma"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestApplyIgnoresBlankTerms(t *testing.T) {
	if got := Apply(sample(), "", []string{""}); len(got) != len(sample()) {
		t.Errorf("blank term should not exclude anything, got %d records", len(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	snapshot := append([]congress.BillSummary(nil), in...)
	Apply(in, "alpha", DefaultTerms)
	if !reflect.DeepEqual(in, snapshot) {
		t.Error("Apply modified its input")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	once := Apply(sample(), "act alpha", DefaultTerms)
	twice := Apply(once, "act alpha", DefaultTerms)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed result: %v vs %v", titles(once), titles(twice))
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("  Clean  WATER\tact ")
	want := []string{"clean", "water", "act"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

func TestTerms(t *testing.T) {
	terms := NewTerms(DefaultTerms)
	if terms.Len() != len(DefaultTerms) {
		t.Fatalf("expected %d seeded terms, got %d", len(DefaultTerms), terms.Len())
	}

	if !terms.Add("  Appropriations ") {
		t.Error("expected Add to accept a new term")
	}
	if terms.Add("appropriations") {
		t.Error("expected case-insensitive duplicate to be rejected")
	}
	if terms.Add("   ") {
		t.Error("expected blank term to be rejected")
	}
	list := terms.List()
	if list[len(list)-1] != "Appropriations" {
		t.Errorf("expected trimmed term appended last, got %q", list[len(list)-1])
	}

	if terms.Remove("honoring") {
		t.Error("expected Remove to require the exact term")
	}
	if terms.Remove(" Honoring ") {
		t.Error("expected Remove not to trim")
	}
	if !terms.Remove("Honoring") {
		t.Error("expected Remove to delete the exact term")
	}
	if terms.Remove("Honoring") {
		t.Error("term removed twice")
	}
	if !terms.RemoveAt(0) || terms.List()[0] != "Recognizing" {
		t.Errorf("RemoveAt(0) left %v", terms.List())
	}
	if terms.RemoveAt(99) {
		t.Error("RemoveAt out of range should fail")
	}

	// List returns a copy.
	list = terms.List()
	list[0] = "mutated"
	if terms.List()[0] == "mutated" {
		t.Error("List exposed internal storage")
	}
}
