package vecutil

import "testing"

func TestIsValidDate(t *testing.T) {
	valid := []string{"2021-03-04T10:20:30Z", "2021-03-04", "2021-03", "2021"}
	for _, s := range valid {
		if !IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	if IsValidDate("not a date") {
		t.Errorf("IsValidDate(not a date) = true, want false")
	}
}

func TestIsCompleteDate(t *testing.T) {
	if !IsCompleteDate("2021-03-04T10:20:30Z") {
		t.Errorf("expected complete date")
	}
	if IsCompleteDate("2021-03-04") {
		t.Errorf("date-only should not be complete")
	}
	if IsCompleteDate("2021") {
		t.Errorf("bare year should not be complete")
	}
}

func TestDateComponent(t *testing.T) {
	y, ok := DateComponent(Year, "2021-03-04T10:20:30Z")
	if !ok || y != 2021 {
		t.Errorf("Year = %d, %v, want 2021, true", y, ok)
	}
	if _, ok := DateComponent(Hour, "2021-03-04"); ok {
		t.Errorf("Hour on date-only value should be false")
	}
	if _, ok := DateComponent(Year, "garbage"); ok {
		t.Errorf("Year on unparsable value should be false")
	}
}

func TestCompareDateComponent(t *testing.T) {
	if !CompareDateComponent(Year, "2021-01-01", "2021-06-01", "eq") {
		t.Errorf("expected equal years")
	}
	if !CompareDateComponent(Month, "2021-01-01", "2021-06-01", "lt") {
		t.Errorf("expected January < June")
	}
	if CompareDateComponent(Year, "garbage", "2021-06-01", "eq") {
		t.Errorf("unparsable left should compare false")
	}
}
