// Package totals turns line items into the HT / TVA / TTC figures printed on a document.
//
// Every aggregation step is rounded to the cent so that the printed breakdown rows
// always foot to the printed totals.
package totals

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimals, ties away from zero.
func Round2(n float64) float64 {
	return round(decimal.NewFromFloat(n)).InexactFloat64()
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal is the pre-tax amount of a single line.
func LineTotal(item models.LineItem) float64 {
	return lineTotal(item).InexactFloat64()
}

func lineTotal(item models.LineItem) decimal.Decimal {
	return round(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice)))
}

type rateBucket struct {
	rate decimal.Decimal
	base decimal.Decimal
}

// Compute aggregates items into totals. Items are not modified and the result does not
// depend on their order.
func Compute(items []models.LineItem) models.Totals {
	totalHT := decimal.Zero
	buckets := make(map[string]*rateBucket)

	for _, item := range items {
		line := lineTotal(item)
		totalHT = totalHT.Add(line)

		rate := decimal.NewFromFloat(item.TvaRate)
		key := rate.String()
		b, ok := buckets[key]
		if !ok {
			b = &rateBucket{rate: rate, base: decimal.Zero}
			buckets[key] = b
		}
		b.base = b.base.Add(line)
	}

	sorted := make([]*rateBucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].rate.LessThan(sorted[j].rate)
	})

	totalTVA := decimal.Zero
	breakdown := make([]models.TaxLine, 0, len(sorted))
	for _, b := range sorted {
		base := round(b.base)
		tva := round(base.Mul(b.rate).Div(hundred))
		totalTVA = totalTVA.Add(tva)
		breakdown = append(breakdown, models.TaxLine{
			Rate: b.rate.InexactFloat64(),
			Base: base.InexactFloat64(),
			Tva:  tva.InexactFloat64(),
		})
	}

	totalHT = round(totalHT)
	totalTVA = round(totalTVA)

	return models.Totals{
		TotalHT:      totalHT.InexactFloat64(),
		TotalTVA:     totalTVA.InexactFloat64(),
		TotalTTC:     round(totalHT.Add(totalTVA)).InexactFloat64(),
		TvaBreakdown: breakdown,
	}
}
