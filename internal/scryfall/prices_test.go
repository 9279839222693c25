package scryfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func printing(oracleID, set, collector string, prices map[string]*string) *Card {
	return &Card{OracleID: oracleID, Set: set, CollectorNumber: collector, Prices: prices}
}

func TestPriceIndex_CollectsFinishes(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "neo", "123", map[string]*string{
		"usd":        strPtr("0.25"),
		"usd_foil":   strPtr("1.10"),
		"usd_etched": strPtr("4.99"),
	}))

	ps, ok := x.Summarize("o1")
	require.True(t, ok)
	assert.Equal(t, 3, ps.Count)
	assert.InDelta(t, 0.25, ps.Lowest, 1e-9)
	assert.InDelta(t, 1.10, ps.Median, 1e-9)
	assert.InDelta(t, 4.99, ps.Highest, 1e-9)
	assert.Equal(t, "nonfoil", ps.Finish)
	assert.Equal(t, "neo", ps.Set)
	assert.Equal(t, "123", ps.Collector)
}

func TestPriceIndex_OrderingInvariant(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "a", "1", map[string]*string{"usd": strPtr("3.00")}))
	x.Add(printing("o1", "b", "2", map[string]*string{"usd": strPtr("1.00")}))
	x.Add(printing("o1", "c", "3", map[string]*string{"usd": strPtr("2.00")}))

	ps, ok := x.Summarize("o1")
	require.True(t, ok)
	assert.LessOrEqual(t, ps.Lowest, ps.Median)
	assert.LessOrEqual(t, ps.Median, ps.Highest)
}

func TestPriceIndex_MedianEvenCount(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "a", "1", map[string]*string{"usd": strPtr("1.00")}))
	x.Add(printing("o1", "b", "2", map[string]*string{"usd": strPtr("2.00")}))
	x.Add(printing("o1", "c", "3", map[string]*string{"usd": strPtr("3.00")}))
	x.Add(printing("o1", "d", "4", map[string]*string{"usd": strPtr("10.00")}))

	ps, _ := x.Summarize("o1")
	assert.InDelta(t, 2.5, ps.Median, 1e-9)
}

func TestPriceIndex_TieBreakFirstInInputOrder(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "zzz", "9", map[string]*string{"usd": strPtr("0.10")}))
	x.Add(printing("o1", "aaa", "1", map[string]*string{"usd": strPtr("0.10")}))

	ps, _ := x.Summarize("o1")
	assert.Equal(t, "zzz", ps.Set, "identical minimum prices resolve to the first printing seen")
	assert.Equal(t, "9", ps.Collector)
}

func TestPriceIndex_SkipsUnparsablePrices(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "neo", "1", map[string]*string{
		"usd":      strPtr("garbage"),
		"usd_foil": strPtr("2.00"),
	}))

	ps, ok := x.Summarize("o1")
	require.True(t, ok)
	assert.Equal(t, 1, ps.Count)
	assert.Equal(t, "foil", ps.Finish)
}

func TestPriceIndex_NilAndEmptyPricesIgnored(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "neo", "1", map[string]*string{"usd": nil, "usd_foil": strPtr("")}))
	x.Add(&Card{Set: "neo", CollectorNumber: "2", Prices: map[string]*string{"usd": strPtr("1.00")}}) // no oracle id

	_, ok := x.Summarize("o1")
	assert.False(t, ok)
	assert.Equal(t, 0, x.Len())
}

func TestSummarize_MissingOracleID(t *testing.T) {
	x := NewPriceIndex()
	ps, ok := x.Summarize("never-seen")
	assert.False(t, ok)
	assert.Equal(t, 0, ps.Count)
}

func TestPriceSummary_String(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "neo", "123", map[string]*string{"usd": strPtr("0.25"), "usd_foil": strPtr("4.99")}))

	ps, _ := x.Summarize("o1")
	assert.Equal(t, "$0.25 (cheapest: NEO #123, nonfoil) Range $0.25–$4.99. median $2.62.", ps.String())
}

func TestPriceSummary_String_SingleObservation(t *testing.T) {
	x := NewPriceIndex()
	x.Add(printing("o1", "m10", "146", map[string]*string{"usd": strPtr("1.00")}))

	ps, _ := x.Summarize("o1")
	assert.Equal(t, "$1.00 (cheapest: M10 #146, nonfoil)", ps.String())
}

func TestPriceSummary_String_Empty(t *testing.T) {
	assert.Equal(t, NoPricingData, PriceSummary{}.String())
}
