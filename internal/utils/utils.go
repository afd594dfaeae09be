package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func ToPtr[T any](t T) *T {
	return &t
}

func FromPtr[T any](t *T) T {
	var zero T
	if t == nil {
		return zero
	}
	return *t
}

func ToPtrNil(t string) *string {
	if t == "" {
		return nil
	}
	return &t
}

// ParseDecimal parses a finite number written with a decimal point or comma.
func ParseDecimal(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// ParseFloatOrZero coerces user input to a number; anything unparseable is 0.
func ParseFloatOrZero(s string) float64 {
	f, err := ParseDecimal(s)
	if err != nil {
		return 0
	}
	return f
}

// SanitizeFileName keeps letters, digits, '_', '-' and '.', and turns spaces into '_'.
func SanitizeFileName(fileName string) string {
	var b strings.Builder
	for _, r := range fileName {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
