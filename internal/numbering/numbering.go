// Package numbering produces human readable document numbers such as F-2024-007.
package numbering

import (
	"fmt"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

// Format renders a number with the sequence zero padded to at least three digits.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// Next increments the counter for kind and returns the formatted number along with the
// updated counters. The counter never resets; only the displayed year changes.
func Next(kind models.DocumentType, prefix string, year int, counters models.Counters) (string, models.Counters) {
	seq := counters.Get(kind) + 1
	return Format(prefix, year, seq), counters.With(kind, seq)
}
