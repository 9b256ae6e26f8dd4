package analysis

import (
	"strings"
	"testing"
)

func TestExtractQuestions_Empty(t *testing.T) {
	if got := ExtractQuestions(""); len(got) != 0 {
		t.Errorf("expected no questions, got %v", got)
	}
	if got := ExtractQuestions("nothing interrogative in this text at all"); len(got) != 0 {
		t.Errorf("expected no questions, got %v", got)
	}
}

func TestExtractQuestions_NumberedAndAuditPatterns(t *testing.T) {
	text := "1. Is there a written policy? Yes, implemented fully.\n2. Does the team review it quarterly?"
	got := ExtractQuestions(text)

	if len(got) == 0 {
		t.Fatal("expected questions")
	}
	if got[0] != "1. Is there a written policy?" {
		t.Errorf("numbered match should come first, got %q", got[0])
	}
	if got[1] != "2. Does the team review it quarterly?" {
		t.Errorf("second numbered match expected, got %q", got[1])
	}

	want := map[string]bool{
		"Is there a written policy?":        false,
		"Does the team review it quarterly?": false,
	}
	for _, q := range got {
		if _, ok := want[q]; ok {
			want[q] = true
		}
	}
	for q, found := range want {
		if !found {
			t.Errorf("expected candidate %q in %v", q, got)
		}
	}
}

func TestExtractQuestions_MinLengthAndShape(t *testing.T) {
	text := "Ok? Fine? 3. Is the incident response plan tested annually?"
	for _, q := range ExtractQuestions(text) {
		if len(q) <= 10 {
			t.Errorf("short candidate %q should have been dropped", q)
		}
		if q != strings.TrimSpace(q) {
			t.Errorf("candidate %q not trimmed", q)
		}
	}
}

func TestExtractQuestions_Deduplicates(t *testing.T) {
	text := "Does the system log access? Some filler. Does the system log access?"
	got := ExtractQuestions(text)

	seen := map[string]int{}
	for _, q := range got {
		seen[q]++
	}
	for q, n := range seen {
		if n > 1 {
			t.Errorf("question %q appears %d times", q, n)
		}
	}
}

func TestExtractQuestions_FirstSeenWinsOrdering(t *testing.T) {
	got := ExtractQuestions("1. Does the backup run nightly?")
	if len(got) < 2 {
		t.Fatalf("expected numbered and bare variants, got %v", got)
	}
	if got[0] != "1. Does the backup run nightly?" {
		t.Errorf("family-1 match must precede overlapping matches, got %q first", got[0])
	}
	if got[1] != "Does the backup run nightly?" {
		t.Errorf("expected bare variant second, got %q", got[1])
	}
}
