package scryfall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccx/internal/pipeline"
)

const oracleFixture = `[
  {"oracle_id":"o-bolt","name":"Lightning Bolt","layout":"normal","type_line":"Instant","oracle_text":"Lightning Bolt deals 3 damage to any target.","colors":["R"],"color_identity":["R"],"legalities":{"modern":"legal","standard":"not_legal"}},
  {"oracle_id":"o-bolt","name":"Lightning Bolt","layout":"normal","type_line":"Instant","oracle_text":"Lightning Bolt deals 3 damage to any target.","set":"m10"},
  {"oracle_id":"o-token","name":"Goblin","layout":"token","type_line":"Token Creature — Goblin"},
  {"oracle_id":"o-opt","name":"Opt","layout":"normal","type_line":"Instant","oracle_text":"Scry 1."}
]`

const pricesFixture = `[
  {"oracle_id":"o-bolt","set":"lea","collector_number":"161","prices":{"usd":"200.00"}},
  {"oracle_id":"o-bolt","set":"m10","collector_number":"146","prices":{"usd":"1.50","usd_foil":"9.00"}},
  {"oracle_id":"o-token","set":"tm10","collector_number":"1","prices":{"usd":"0.10"}},
  {"oracle_id":"o-unrelated","set":"xxx","collector_number":"2","prices":{"usd":"0.99"}}
]`

func TestReadOracle_FilterMergeCounts(t *testing.T) {
	sum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := ReadOracle(strings.NewReader(oracleFixture), sum)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Decoded)
	assert.Equal(t, 3, sum.Accepted, "token layout filtered out")
	assert.Equal(t, 2, merger.Len(), "duplicate oracle id merged")
	assert.True(t, merger.Has("o-bolt"))
	assert.False(t, merger.Has("o-token"))
}

func TestReadOracle_MalformedTopLevel(t *testing.T) {
	sum := &pipeline.Summary{Dataset: "oracle_cards"}
	_, err := ReadOracle(strings.NewReader(`{"data":[]}`), sum)
	require.Error(t, err)
	assert.True(t, pipeline.IsMalformedInput(err))
}

func TestReadPrices_OnlySurvivingOracleIDs(t *testing.T) {
	oracleSum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := ReadOracle(strings.NewReader(oracleFixture), oracleSum)
	require.NoError(t, err)

	priceSum := &pipeline.Summary{Dataset: "default_cards"}
	index, err := ReadPrices(strings.NewReader(pricesFixture), merger.Has, priceSum)
	require.NoError(t, err)

	assert.Equal(t, 1, index.Len(), "only o-bolt survives filtering and has prices")
	_, ok := index.Summarize("o-token")
	assert.False(t, ok, "filtered cards never aggregate prices")
	_, ok = index.Summarize("o-unrelated")
	assert.False(t, ok)
}

func TestBuildRows_OrderingAndJoin(t *testing.T) {
	oracleSum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := ReadOracle(strings.NewReader(oracleFixture), oracleSum)
	require.NoError(t, err)

	priceSum := &pipeline.Summary{Dataset: "default_cards"}
	index, err := ReadPrices(strings.NewReader(pricesFixture), merger.Has, priceSum)
	require.NoError(t, err)

	rows := BuildRows(merger, index, oracleSum)
	require.Len(t, rows, 2)

	// Alphabetical by name.
	assert.Equal(t, "Lightning Bolt", rows[0].Name)
	assert.Equal(t, "Opt", rows[1].Name)

	// Joined price data.
	assert.Equal(t, "1.50", rows[0].LowestPriceUSD)
	assert.Equal(t, "m10", rows[0].LowestPriceSet)
	assert.Equal(t, "200.00", rows[0].HighestPriceUSD)

	// Missing join key: empty summary, counted, not fatal.
	assert.Equal(t, "", rows[1].LowestPriceUSD)
	assert.Equal(t, NoPricingData, rows[1].PriceSummary)
	assert.Equal(t, 1, oracleSum.MissingJoinKeys)
}

func TestBuildRows_DistinctOracleIDsPreserved(t *testing.T) {
	sum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := ReadOracle(strings.NewReader(oracleFixture), sum)
	require.NoError(t, err)

	rows := BuildRows(merger, NewPriceIndex(), sum)

	seen := make(map[string]bool)
	for _, r := range rows {
		assert.False(t, seen[r.OracleID], "no duplicate oracle ids in output")
		seen[r.OracleID] = true
	}
	assert.Equal(t, merger.Len(), len(rows))
}

func TestReadOracle_SkipsUndecodableElement(t *testing.T) {
	input := `[
  {"oracle_id":"o1","name":"Opt","layout":"normal","type_line":"Instant"},
  {"oracle_id":"o2","name":12345,"layout":"normal","type_line":"Instant"}
]`
	sum := &pipeline.Summary{Dataset: "oracle_cards"}
	merger, err := ReadOracle(strings.NewReader(input), sum)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.SkippedDecode)
	assert.Equal(t, 1, merger.Len())
}
