package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		raw      string
		desc     string
		qty      float64
		price    float64
		tvaRate  float64
		hasError bool
	}{
		{raw: "Conseil|2|50|10", desc: "Conseil", qty: 2, price: 50, tvaRate: 10},
		{raw: "Conseil", desc: "Conseil", qty: 1, price: 0, tvaRate: 20},
		{raw: " Audit | | 1 200,5 ", desc: "Audit", qty: 1, price: 0, tvaRate: 20},
		{raw: "Audit|1|1200,5|5.5%", desc: "Audit", qty: 1, price: 1200.5, tvaRate: 5.5},
		{raw: "Audit|0,5|abc", desc: "Audit", qty: 0.5, price: 0, tvaRate: 20},
		{raw: "a|1|2|3|4", hasError: true},
	}

	for _, tt := range tests {
		item, err := parseItem(tt.raw, 20)
		if tt.hasError {
			require.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		require.NotEmpty(t, item.ID)
		require.Equal(t, tt.desc, item.Description, tt.raw)
		require.Equal(t, tt.qty, item.Quantity, tt.raw)
		require.Equal(t, tt.price, item.UnitPrice, tt.raw)
		require.Equal(t, tt.tvaRate, item.TvaRate, tt.raw)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	require.Equal(t, "69003 Lyon", joinNonEmpty(" ", "69003", "Lyon"))
	require.Equal(t, "Lyon", joinNonEmpty(" ", " ", "Lyon"))
	require.Equal(t, "", joinNonEmpty(" "))
}
