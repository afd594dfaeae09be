package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jesses-code-adventures/facturier/internal/models"
	"github.com/jesses-code-adventures/facturier/internal/service"
	"github.com/jesses-code-adventures/facturier/internal/utils"
)

// confirm asks a y/N question on stdin. assumeYes skips the prompt.
func confirm(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s (y/N): ", question)

	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// parseItem reads a line given as "description|quantity|unit price|tva rate".
// Quantity defaults to 1, price to 0 and the rate to defaultTva.
func parseItem(raw string, defaultTva float64) (models.LineItem, error) {
	parts := strings.Split(raw, "|")
	if len(parts) > 4 {
		return models.LineItem{}, fmt.Errorf("invalid item %q: expected description|quantity|price|tva", raw)
	}

	item := models.LineItem{
		ID:          models.NewUUID(),
		Description: strings.TrimSpace(parts[0]),
		Quantity:    1,
		TvaRate:     defaultTva,
	}
	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	if q := field(1); q != "" {
		item.Quantity = utils.ParseFloatOrZero(q)
	}
	item.UnitPrice = utils.ParseFloatOrZero(field(2))
	if rate := field(3); rate != "" {
		item.TvaRate = utils.ParseFloatOrZero(strings.TrimSuffix(rate, "%"))
	}
	return item, nil
}

func parseItems(values []string, defaultTva float64) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(values))
	for _, raw := range values {
		item, err := parseItem(raw, defaultTva)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func warn(err error) {
	fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("  %s: %s\n", label, value)
	}
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// storageOnly reports whether err is nil or only a failure to persist, in which case
// the change is still applied in memory.
func storageOnly(err error) bool {
	var storageErr *service.StorageError
	return err == nil || errors.As(err, &storageErr)
}
