package vecutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFloatToDecimal(t *testing.T) {
	got := FloatToDecimal(0.1)
	want := decimal.RequireFromString("0.1")
	if !got.Equal(want) {
		t.Errorf("FloatToDecimal(0.1) = %s, want %s", got, want)
	}
}

func TestParseDecimal(t *testing.T) {
	d, ok := ParseDecimal("3.14")
	if !ok || !d.Equal(decimal.RequireFromString("3.14")) {
		t.Errorf("ParseDecimal(3.14) = %s, %v", d, ok)
	}
	if _, ok := ParseDecimal("not-a-number"); ok {
		t.Errorf("ParseDecimal(not-a-number) reported ok")
	}
}
