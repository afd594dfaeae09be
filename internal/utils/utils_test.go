package utils

import "testing"

func TestParseFloatOrZero(t *testing.T) {
	tests := map[string]float64{
		"12":    12,
		" 3.5 ": 3.5,
		"19,99": 19.99,
		"":      0,
		"abc":   0,
		"-2":    -2,
		"NaN":   0,
	}
	for in, want := range tests {
		if got := ParseFloatOrZero(in); got != want {
			t.Errorf("ParseFloatOrZero(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	got := SanitizeFileName("F-2024-001 Acme/é.pdf")
	if got != "F-2024-001_Acme.pdf" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestPointers(t *testing.T) {
	if ToPtrNil("") != nil {
		t.Error("expected nil for empty string")
	}
	if FromPtr(ToPtrNil("x")) != "x" {
		t.Error("expected round trip")
	}
	if FromPtr[string](nil) != "" {
		t.Error("expected zero value")
	}
	if *ToPtr(3) != 3 {
		t.Error("expected pointer to 3")
	}
}

func TestParseDecimal(t *testing.T) {
	for in, want := range map[string]float64{"5,5": 5.5, " 5.5 ": 5.5, "20": 20, "-0,25": -0.25} {
		got, err := ParseDecimal(in)
		if err != nil || got != want {
			t.Errorf("ParseDecimal(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "1 200,5", "NaN", "Inf"} {
		if _, err := ParseDecimal(in); err == nil {
			t.Errorf("ParseDecimal(%q) should fail", in)
		}
	}
}
