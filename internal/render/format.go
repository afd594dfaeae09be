package render

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jesses-code-adventures/facturier/internal/totals"
)

// FormatCurrency prints an amount the French way: 1 234,56 €.
func FormatCurrency(amount float64) string {
	return humanize.FormatFloat("# ###,##", totals.Round2(amount)) + " €"
}

// FormatDate turns an ISO date into DD/MM/YYYY. Anything unparseable is returned as is.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}

// FormatNumber prints quantities and rates without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func FormatRate(rate float64) string {
	return FormatNumber(rate) + "%"
}
