package vecutil

import (
	"regexp"
	"testing"
)

func TestApplyRegex(t *testing.T) {
	re := regexp.MustCompile(`^(\d+)-([A-Z]+)$`)
	if got := ApplyRegex(re, "123-AB"); got != "123" {
		t.Errorf("ApplyRegex = %q, want 123", got)
	}
	if got := ApplyRegex(re, "nope"); got != "" {
		t.Errorf("ApplyRegex no-match = %q, want empty", got)
	}

	noGroup := regexp.MustCompile(`abc`)
	if got := ApplyRegex(noGroup, "xxabcxx"); got != "abc" {
		t.Errorf("ApplyRegex no-group = %q, want abc", got)
	}
}

func TestVectorizedApplyRegex(t *testing.T) {
	re := regexp.MustCompile(`(\d+)`)
	got := VectorizedApplyRegex(re, []string{"a1", "b22", "c"})
	want := []string{"1", "22", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestMatchesRegex(t *testing.T) {
	re := regexp.MustCompile(`ab+c`)
	if !MatchesRegex(re, "xxabbbcxx") {
		t.Errorf("expected match")
	}
	if MatchesRegex(re, "nope") {
		t.Errorf("expected no match")
	}
}
