package scryfall

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NoPricingData is the fixed summary text for cards with zero priced
// printings.
const NoPricingData = "No pricing data available."

// finishKeys maps Scryfall price keys to finish names, in the fixed order
// observations are collected for one printing.
var finishKeys = []struct {
	key    string
	finish string
}{
	{"usd", "nonfoil"},
	{"usd_foil", "foil"},
	{"usd_etched", "etched"},
}

// Observation is one (printing, finish) pair with a defined USD price.
// Ephemeral input to the aggregation.
type Observation struct {
	Price     float64
	Finish    string
	Set       string
	Collector string
}

// PriceSummary is the aggregate of all observations for one oracle id.
// Numeric fields are meaningful only when Count > 0.
type PriceSummary struct {
	Count     int
	Lowest    float64
	Median    float64
	Highest   float64
	Finish    string // finish of the cheapest printing
	Set       string // set code of the cheapest printing
	Collector string // collector number of the cheapest printing
}

// PriceIndex accumulates observations from the printing-level dataset,
// keyed by oracle id.
type PriceIndex struct {
	byID map[string][]Observation
}

func NewPriceIndex() *PriceIndex {
	return &PriceIndex{byID: make(map[string][]Observation)}
}

// Add extracts the priced finishes from one printing record. Printings
// without an oracle id or without any parseable USD price contribute
// nothing.
func (x *PriceIndex) Add(c *Card) {
	if c.OracleID == "" || len(c.Prices) == 0 {
		return
	}
	for _, fk := range finishKeys {
		raw := c.Prices[fk.key]
		if raw == nil || *raw == "" {
			continue
		}
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			continue
		}
		x.byID[c.OracleID] = append(x.byID[c.OracleID], Observation{
			Price:     price,
			Finish:    fk.finish,
			Set:       c.Set,
			Collector: c.CollectorNumber,
		})
	}
}

// Len returns the number of oracle ids with at least one observation.
func (x *PriceIndex) Len() int { return len(x.byID) }

// Summarize aggregates the observations for one oracle id. The second
// return is false when the id has no priced printing; the caller records a
// missing join key and emits an empty summary.
//
// Ties on the minimum price resolve to the first observation in canonical
// input order (stable sort), so provenance is deterministic.
func (x *PriceIndex) Summarize(oracleID string) (PriceSummary, bool) {
	obs := x.byID[oracleID]
	if len(obs) == 0 {
		return PriceSummary{}, false
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	cheapest := sorted[0]
	return PriceSummary{
		Count:     len(sorted),
		Lowest:    cheapest.Price,
		Median:    medianOf(sorted),
		Highest:   sorted[len(sorted)-1].Price,
		Finish:    cheapest.Finish,
		Set:       cheapest.Set,
		Collector: cheapest.Collector,
	}, true
}

// medianOf computes the statistical median of already-sorted observations:
// the middle value, or the mean of the two middle values for an even count.
func medianOf(sorted []Observation) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2].Price
	}
	return (sorted[n/2-1].Price + sorted[n/2].Price) / 2
}

// String renders the one-line human-readable price summary, e.g.
//
//	$0.25 (cheapest: NEO #123, nonfoil) Range $0.25–$4.99. median $1.10.
//
// The range/median sentence appears only with more than one observation.
func (s PriceSummary) String() string {
	if s.Count == 0 {
		return NoPricingData
	}
	parts := []string{
		fmt.Sprintf("$%.2f", s.Lowest),
		fmt.Sprintf("(cheapest: %s #%s, %s)", strings.ToUpper(s.Set), s.Collector, s.Finish),
	}
	if s.Count > 1 {
		parts = append(parts,
			fmt.Sprintf("Range $%.2f–$%.2f.", s.Lowest, s.Highest),
			fmt.Sprintf("median $%.2f.", s.Median),
		)
	}
	return strings.Join(parts, " ")
}
