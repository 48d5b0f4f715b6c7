// Package pricing computes unit prices from sparse published price tables.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

// SortedQuantities returns the table's quantity keys sorted ascending.
func SortedQuantities(table types.PriceTable) []int {
	qs := make([]int, 0, len(table))
	for q := range table {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

// NearestBracket returns the adjacent quantity pair with
// lower <= qty <= upper. ok is false when fewer than two quantities exist
// or qty falls outside every adjacent pair.
func NearestBracket(qty decimal.Decimal, quantities []int) (lower, upper int, ok bool) {
	if len(quantities) < 2 {
		return 0, 0, false
	}

	for i := 0; i < len(quantities)-1; i++ {
		lo := decimal.NewFromInt(int64(quantities[i]))
		hi := decimal.NewFromInt(int64(quantities[i+1]))
		if qty.GreaterThanOrEqual(lo) && qty.LessThanOrEqual(hi) {
			return quantities[i], quantities[i+1], true
		}
	}

	return 0, 0, false
}

// Lerp linearly interpolates y at x between the points (x1, y1) and (x2, y2).
func Lerp(x, x1, y1, x2, y2 decimal.Decimal) decimal.Decimal {
	return y1.Add(y2.Sub(y1).Mul(x.Sub(x1)).Div(x2.Sub(x1)))
}
