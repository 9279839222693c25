// Package spellbook implements the combo half of the pipeline: streaming
// the Commander Spellbook variants document, trimming each variant to the
// retained shape, and building the reverse card-to-combo index.
package spellbook

import "encoding/json"

// Variant is one raw combo variant as decoded from the source document.
// Deeply nested; only the fields retained downstream are declared.
type Variant struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	Identity        string          `json:"identity"`
	ManaNeeded      string          `json:"manaNeeded"`
	ManaValueNeeded *int            `json:"manaValueNeeded"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes"`
	Popularity      *int            `json:"popularity"`
	BracketTag      string          `json:"bracketTag"`
	Legalities      json.RawMessage `json:"legalities"`
	Prices          json.RawMessage `json:"prices"`
	VariantCount    *int            `json:"variantCount"`
	Uses            []Use           `json:"uses"`
	Produces        []Produce       `json:"produces"`
	Requires        json.RawMessage `json:"requires"`
	Includes        json.RawMessage `json:"includes"`
}

// Use references one card the combo is built from.
type Use struct {
	Card *UsedCard `json:"card"`
}

// UsedCard is the card reference retained from a Use.
type UsedCard struct {
	Name     string `json:"name,omitempty"`
	OracleID string `json:"oracleId,omitempty"`
	TypeLine string `json:"typeLine,omitempty"`
}

// Produce names one effect the combo produces.
type Produce struct {
	Feature *Feature `json:"feature"`
}

// Feature is a produced-effect name.
type Feature struct {
	Name string `json:"name"`
}

// Combo is the canonical, trimmed combo record. The JSONL form marshals
// this struct directly, retaining the nested uses/produces structure; the
// CSV form summarizes it via SummaryRecord.
type Combo struct {
	ID              string          `json:"id"`
	Status          string          `json:"status,omitempty"`
	Identity        string          `json:"identity,omitempty"`
	ManaNeeded      string          `json:"manaNeeded,omitempty"`
	ManaValueNeeded *int            `json:"manaValueNeeded,omitempty"`
	Description     string          `json:"description,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Popularity      *int            `json:"popularity,omitempty"`
	BracketTag      string          `json:"bracketTag,omitempty"`
	Legalities      json.RawMessage `json:"legalities,omitempty"`
	Prices          json.RawMessage `json:"prices,omitempty"`
	VariantCount    *int            `json:"variantCount,omitempty"`
	Uses            []UsedCard      `json:"uses,omitempty"`
	Produces        []Feature       `json:"produces,omitempty"`
	Requires        json.RawMessage `json:"requires,omitempty"`
	Includes        json.RawMessage `json:"includes,omitempty"`
}

// CardIndexEntry maps one referenced card to every combo that uses it.
type CardIndexEntry struct {
	OracleID string   `json:"oracleId"`
	Name     string   `json:"name"`
	ComboIDs []string `json:"combo_ids"`
}
