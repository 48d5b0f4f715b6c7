package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

const (
	ReasonQuantityNotPositive = "quantity must be positive"
	ReasonCPFCountNotPositive = "cpf count must be positive"
	ReasonEmptyTable          = "empty price table"
	ReasonNoBracket           = "could not interpolate"
)

// Result is the outcome of one price calculation. Business-rule misses are
// carried in FailureReason; Calculate never returns an error.
type Result struct {
	Price         decimal.Decimal `json:"price"`
	FailureReason string          `json:"failure_reason,omitempty"`
}

func (r Result) OK() bool { return r.FailureReason == "" }

func success(price decimal.Decimal) Result { return Result{Price: price} }

func failure(reason string) Result { return Result{FailureReason: reason} }

// Flat tables carry no usable slope signal, so extrapolation below the
// minimum falls back to a fixed default slope.
var defaultFlatSlope = decimal.NewFromInt(-1).Div(decimal.NewFromInt(30))

// Calculate prices a proposal of `quantity` thousand miles split across
// cpfCount CPFs against the published table. customMaxPrice is the
// optional per-program ceiling; it never applies to the at-saturation
// floor branch.
func Calculate(quantity decimal.Decimal, cpfCount int, table types.PriceTable, customMaxPrice *decimal.Decimal) Result {
	if quantity.Sign() <= 0 {
		return failure(ReasonQuantityNotPositive)
	}
	if cpfCount <= 0 {
		return failure(ReasonCPFCountNotPositive)
	}

	qs := SortedQuantities(table)
	if len(qs) == 0 {
		return failure(ReasonEmptyTable)
	}

	minQty := qs[0]
	maxQty := qs[len(qs)-1]
	priceAtMinQty := table[minQty]

	minPrice := table[qs[0]]
	maxPrice := table[qs[0]]
	allPricesSame := true
	for _, q := range qs[1:] {
		p := table[q]
		if p.LessThan(minPrice) {
			minPrice = p
		}
		if p.GreaterThan(maxPrice) {
			maxPrice = p
		}
		if !p.Equal(table[qs[0]]) {
			allPricesSame = false
		}
	}

	clampAndRound := func(price decimal.Decimal, applyCeiling bool) Result {
		effectiveMax := maxPrice
		if applyCeiling && customMaxPrice != nil && customMaxPrice.LessThan(effectiveMax) {
			effectiveMax = *customMaxPrice
		}
		if price.LessThan(minPrice) {
			price = minPrice
		}
		if price.GreaterThan(effectiveMax) {
			price = effectiveMax
		}
		return success(roundToQuarter(price))
	}

	perCpf := quantity.Div(decimal.NewFromInt(int64(cpfCount)))
	minQtyDec := decimal.NewFromInt(int64(minQty))
	maxQtyDec := decimal.NewFromInt(int64(maxQty))

	switch {
	case perCpf.Equal(minQtyDec):
		return clampAndRound(priceAtMinQty, true)

	case perCpf.LessThan(minQtyDec):
		// Flat 2-point tables with no ceiling skip extrapolation
		// entirely and serve the published price as-is.
		if allPricesSame && len(qs) == 2 && customMaxPrice == nil {
			return success(priceAtMinQty)
		}
		if len(qs) < 2 {
			return clampAndRound(priceAtMinQty, true)
		}

		slope := table[qs[1]].Sub(priceAtMinQty).
			Div(decimal.NewFromInt(int64(qs[1] - minQty)))
		if allPricesSame && len(qs) >= 3 {
			slope = defaultFlatSlope
		}

		price := priceAtMinQty.Add(slope.Mul(perCpf.Sub(minQtyDec)))
		return clampAndRound(price, true)

	case perCpf.GreaterThanOrEqual(maxQtyDec):
		// At saturation, sell at the table's global floor. The custom
		// ceiling deliberately does not apply here.
		return clampAndRound(minPrice, false)

	default:
		lower, upper, ok := NearestBracket(perCpf, qs)
		if !ok {
			return failure(ReasonNoBracket)
		}

		lowerPrice := table[lower]
		upperPrice := table[upper]
		if lowerPrice.Equal(upperPrice) {
			return clampAndRound(lowerPrice, true)
		}

		price := Lerp(perCpf,
			decimal.NewFromInt(int64(lower)), lowerPrice,
			decimal.NewFromInt(int64(upper)), upperPrice)
		return clampAndRound(price, true)
	}
}

// roundToQuarter rounds to the nearest 0.25.
func roundToQuarter(price decimal.Decimal) decimal.Decimal {
	four := decimal.NewFromInt(4)
	return price.Mul(four).Round(0).Div(four)
}
