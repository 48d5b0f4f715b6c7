package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSortedQuantities(t *testing.T) {
	table := types.PriceTable{50: dec("16"), 15: dec("20"), 30: dec("18")}
	assert.Equal(t, []int{15, 30, 50}, SortedQuantities(table))

	assert.Empty(t, SortedQuantities(types.PriceTable{}))
}

func TestNearestBracket(t *testing.T) {
	qs := []int{15, 30, 50}

	lo, hi, ok := NearestBracket(dec("22"), qs)
	require.True(t, ok)
	assert.Equal(t, 15, lo)
	assert.Equal(t, 30, hi)

	lo, hi, ok = NearestBracket(dec("30"), qs)
	require.True(t, ok)
	assert.Equal(t, 15, lo)
	assert.Equal(t, 30, hi, "boundary quantity lands in the first pair containing it")

	_, _, ok = NearestBracket(dec("10"), qs)
	assert.False(t, ok)

	_, _, ok = NearestBracket(dec("60"), qs)
	assert.False(t, ok)

	_, _, ok = NearestBracket(dec("20"), []int{15})
	assert.False(t, ok)
}

func TestLerp(t *testing.T) {
	got := Lerp(dec("22"), dec("15"), dec("20"), dec("30"), dec("18"))
	// 20 + (18-20)*(22-15)/(30-15) = 19.0666...
	assert.True(t, got.GreaterThan(dec("19.06")) && got.LessThan(dec("19.07")), "got %s", got)

	assert.True(t, Lerp(dec("15"), dec("15"), dec("20"), dec("30"), dec("18")).Equal(dec("20")))
	assert.True(t, Lerp(dec("30"), dec("15"), dec("20"), dec("30"), dec("18")).Equal(dec("18")))
}
