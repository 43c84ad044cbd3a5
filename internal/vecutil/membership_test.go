package vecutil

import "testing"

func TestIsIn(t *testing.T) {
	haystack := []any{"a", "b", 3}
	if !IsIn("b", haystack) {
		t.Errorf("expected b to be in haystack")
	}
	if IsIn("c", haystack) {
		t.Errorf("expected c not to be in haystack")
	}
	if !IsIn(3, haystack) {
		t.Errorf("expected 3 to be in haystack")
	}
}

func TestIsInCaseInsensitive(t *testing.T) {
	haystack := []any{"Alice", "BOB"}
	if !IsInCaseInsensitive("alice", haystack) {
		t.Errorf("expected case-insensitive match for alice")
	}
	if !IsInCaseInsensitive("bob", haystack) {
		t.Errorf("expected case-insensitive match for bob")
	}
	if IsInCaseInsensitive("carol", haystack) {
		t.Errorf("expected no match for carol")
	}
}
