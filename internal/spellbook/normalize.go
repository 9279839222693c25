package spellbook

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"ccx/internal/pipeline"
	"ccx/internal/stream"
)

// Normalize trims one raw variant to the canonical combo shape. The second
// return is false for variants missing the required identity or card
// references: no id, or no used card carrying an oracle id.
func Normalize(v *Variant) (*Combo, bool) {
	if v.ID == "" {
		return nil, false
	}

	var uses []UsedCard
	for _, u := range v.Uses {
		if u.Card == nil {
			continue
		}
		if u.Card.Name == "" && u.Card.OracleID == "" && u.Card.TypeLine == "" {
			continue
		}
		uses = append(uses, *u.Card)
	}
	hasOracleRef := false
	for _, u := range uses {
		if u.OracleID != "" {
			hasOracleRef = true
			break
		}
	}
	if !hasOracleRef {
		return nil, false
	}

	var produces []Feature
	for _, p := range v.Produces {
		if p.Feature != nil && p.Feature.Name != "" {
			produces = append(produces, *p.Feature)
		}
	}

	return &Combo{
		ID:              v.ID,
		Status:          v.Status,
		Identity:        v.Identity,
		ManaNeeded:      v.ManaNeeded,
		ManaValueNeeded: v.ManaValueNeeded,
		Description:     v.Description,
		Notes:           v.Notes,
		Popularity:      v.Popularity,
		BracketTag:      v.BracketTag,
		Legalities:      v.Legalities,
		Prices:          v.Prices,
		VariantCount:    v.VariantCount,
		Uses:            uses,
		Produces:        produces,
		Requires:        v.Requires,
		Includes:        v.Includes,
	}, true
}

// Read streams the variants document from r and returns the normalized
// combos in first-seen order, which is the canonical output ordering for
// every spellbook format.
func Read(r io.Reader, sum *pipeline.Summary) ([]*Combo, error) {
	dec, err := stream.NewArrayDecoder(r, sum.Dataset, "variants")
	if err != nil {
		return nil, err
	}

	var combos []*Combo
	for {
		raw, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var v Variant
		if err := json.Unmarshal(raw, &v); err != nil {
			sum.SkippedDecode++
			continue
		}
		sum.Decoded++
		combo, ok := Normalize(&v)
		if !ok {
			continue
		}
		sum.Accepted++
		combos = append(combos, combo)
	}
	return combos, nil
}

// SummaryHeader is the CSV column order for the combo summary form.
var SummaryHeader = []string{
	"id", "identity", "manaNeeded", "manaValueNeeded", "popularity",
	"features", "card1", "card2", "card3", "card_count",
}

// SummaryRecord renders the flat CSV summary of one combo: scalar metadata,
// produced features joined with "; ", and up to three card name columns
// plus the total card count.
func (c *Combo) SummaryRecord() []string {
	var features []string
	for _, f := range c.Produces {
		features = append(features, f.Name)
	}
	var cards []string
	for _, u := range c.Uses {
		cards = append(cards, u.Name)
	}

	rec := []string{
		c.ID,
		c.Identity,
		c.ManaNeeded,
		optInt(c.ManaValueNeeded),
		optInt(c.Popularity),
		strings.Join(features, "; "),
	}
	for i := 0; i < 3; i++ {
		if i < len(cards) {
			rec = append(rec, cards[i])
		} else {
			rec = append(rec, "")
		}
	}
	return append(rec, strconv.Itoa(len(cards)))
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
