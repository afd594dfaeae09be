package numbering

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func TestNextStartsAtOne(t *testing.T) {
	number, counters := Next(models.DocumentTypeInvoice, "F", 2024, models.Counters{})

	require.Equal(t, "F-2024-001", number)
	require.Equal(t, models.Counters{Invoice: 1}, counters)
}

func TestNextIsMonotonicWithoutGaps(t *testing.T) {
	counters := models.Counters{}
	for i := 1; i <= 25; i++ {
		var number string
		number, counters = Next(models.DocumentTypeInvoice, "F", 2024, counters)
		require.Equal(t, fmt.Sprintf("F-2024-%03d", i), number)
	}
	require.Equal(t, 25, counters.Invoice)
	require.Zero(t, counters.Quote)
}

func TestNextKeepsKindsSeparate(t *testing.T) {
	counters := models.Counters{Invoice: 6, Quote: 41}

	number, counters := Next(models.DocumentTypeQuote, "D", 2025, counters)
	require.Equal(t, "D-2025-042", number)

	number, counters = Next(models.DocumentTypeInvoice, "F", 2025, counters)
	require.Equal(t, "F-2025-007", number)
	require.Equal(t, models.Counters{Invoice: 7, Quote: 42}, counters)
}

func TestNextWidensPastThreeDigits(t *testing.T) {
	number, _ := Next(models.DocumentTypeInvoice, "INV", 2026, models.Counters{Invoice: 999})
	require.Equal(t, "INV-2026-1000", number)
}

func TestNextDoesNotResetOnYearChange(t *testing.T) {
	number, counters := Next(models.DocumentTypeInvoice, "F", 2024, models.Counters{Invoice: 12})
	require.Equal(t, "F-2024-013", number)

	number, _ = Next(models.DocumentTypeInvoice, "F", 2025, counters)
	require.Equal(t, "F-2025-014", number)
}

func TestNextDoesNotMutateInput(t *testing.T) {
	in := models.Counters{Invoice: 3, Quote: 3}
	Next(models.DocumentTypeQuote, "D", 2024, in)
	require.Equal(t, models.Counters{Invoice: 3, Quote: 3}, in)
}
