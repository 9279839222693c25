package scryfall

import (
	"encoding/json"
	"io"
	"sort"

	"ccx/internal/pipeline"
	"ccx/internal/stream"
)

// ReadOracle streams the oracle-cards dataset from r, filtering to playable
// cards and merging into one canonical record per oracle id. Counts land in
// sum. The returned error is nil or a fatal structural failure.
func ReadOracle(r io.Reader, sum *pipeline.Summary) (*Merger, error) {
	dec, err := stream.NewArrayDecoder(r, sum.Dataset)
	if err != nil {
		return nil, err
	}

	merger := NewMerger()
	for {
		raw, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var card Card
		if err := json.Unmarshal(raw, &card); err != nil {
			sum.SkippedDecode++
			continue
		}
		sum.Decoded++
		if !Playable(&card) {
			continue
		}
		sum.Accepted++
		merger.Add(&card)
	}
	sum.MissingOracleID = merger.MissingOracleID()
	return merger, nil
}

// ReadPrices streams the printing-level dataset from r, collecting price
// observations only for oracle ids accepted by keep. The filter decisions
// of the oracle pass gate aggregation, so pricing work is bounded by the
// surviving card set.
func ReadPrices(r io.Reader, keep func(string) bool, sum *pipeline.Summary) (*PriceIndex, error) {
	dec, err := stream.NewArrayDecoder(r, sum.Dataset)
	if err != nil {
		return nil, err
	}

	index := NewPriceIndex()
	for {
		raw, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var card Card
		if err := json.Unmarshal(raw, &card); err != nil {
			sum.SkippedDecode++
			continue
		}
		sum.Decoded++
		if !keep(card.OracleID) {
			continue
		}
		sum.Accepted++
		index.Add(&card)
	}
	return index, nil
}

// BuildRows flattens every merged card against the price index and returns
// the rows in the canonical output ordering: alphabetical by name, oracle
// id as tie-break. Oracle ids absent from the price index are counted as
// missing join keys and emitted with an empty price summary.
func BuildRows(merger *Merger, prices *PriceIndex, sum *pipeline.Summary) []FlatRow {
	cards := merger.Cards()
	rows := make([]FlatRow, 0, len(cards))
	for _, c := range cards {
		ps, ok := prices.Summarize(c.OracleID)
		if !ok {
			sum.MissingJoinKeys++
		}
		rows = append(rows, Flatten(c, ps, ok))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].OracleID < rows[j].OracleID
	})
	return rows
}
