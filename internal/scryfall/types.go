// Package scryfall implements the card half of the pipeline: streaming the
// Scryfall bulk datasets, filtering to playable cards, merging printings and
// faces into one canonical record per oracle id, aggregating USD prices
// across printings, and flattening to the fixed output schema.
package scryfall

// Card is one raw record decoded from a Scryfall bulk dataset. Ephemeral:
// consumed immediately by the filter/merger/price index, never persisted.
type Card struct {
	OracleID        string             `json:"oracle_id"`
	Name            string             `json:"name"`
	Layout          string             `json:"layout"`
	ManaCost        string             `json:"mana_cost"`
	CMC             float64            `json:"cmc"`
	TypeLine        string             `json:"type_line"`
	OracleText      string             `json:"oracle_text"`
	Reserved        bool               `json:"reserved"`
	Set             string             `json:"set"`
	SetName         string             `json:"set_name"`
	SetType         string             `json:"set_type"`
	Rarity          string             `json:"rarity"`
	CollectorNumber string             `json:"collector_number"`
	Colors          []string           `json:"colors"`
	ColorIdentity   []string           `json:"color_identity"`
	Keywords        []string           `json:"keywords"`
	Legalities      map[string]string  `json:"legalities"`
	CardFaces       []CardFace         `json:"card_faces"`
	Prices          map[string]*string `json:"prices"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name       string `json:"name"`
	ManaCost   string `json:"mana_cost"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text"`
}

// Canonical is the single merged record for one oracle id. Oracle text of
// multi-faced cards is already joined across faces.
type Canonical struct {
	OracleID      string
	Name          string
	ManaCost      string
	CMC           float64
	TypeLine      string
	OracleText    string
	Reserved      bool
	Set           string
	SetName       string
	Rarity        string
	Colors        []string
	ColorIdentity []string
	Keywords      []string
	Legalities    map[string]string
}

// FlatRow is the final output unit: one canonical card plus its price
// summary and derived string fields, in a fixed schema shared by the CSV,
// JSONL and Markdown writers. Immutable once constructed.
type FlatRow struct {
	OracleID   string  `json:"oracle_id"`
	Name       string  `json:"name"`
	ManaCost   string  `json:"mana_cost"`
	CMC        float64 `json:"cmc"`
	TypeLine   string  `json:"type_line"`
	OracleText string  `json:"oracle_text"`
	Reserved   bool    `json:"reserved"`
	Set        string  `json:"set"`
	SetName    string  `json:"set_name"`
	Rarity     string  `json:"rarity"`

	// Compact JSON text forms of the nested fields, embeddable in CSV.
	Colors        string `json:"colors"`
	ColorsStr     string `json:"colors_str"`
	ColorIdentity string `json:"color_identity"`
	ColorIdentStr string `json:"color_identity_str"`
	Keywords      string `json:"keywords"`
	KeywordsJoin  string `json:"keywords_joined"`
	Legalities    string `json:"legalities"`

	LegalStandard  string `json:"legal_standard"`
	LegalPioneer   string `json:"legal_pioneer"`
	LegalModern    string `json:"legal_modern"`
	LegalLegacy    string `json:"legal_legacy"`
	LegalVintage   string `json:"legal_vintage"`
	LegalPauper    string `json:"legal_pauper"`
	LegalCommander string `json:"legal_commander"`
	LegalSummary   string `json:"legal_summary"`

	// Price fields stay empty strings, never zero, when no priced printing
	// exists for the oracle id.
	LowestPriceUSD       string `json:"lowest_price_usd"`
	LowestPriceFinish    string `json:"lowest_price_finish"`
	LowestPriceSet       string `json:"lowest_price_set"`
	LowestPriceCollector string `json:"lowest_price_collector"`
	MedianPriceUSD       string `json:"median_price_usd"`
	HighestPriceUSD      string `json:"highest_price_usd"`
	PriceSummary         string `json:"price_summary"`
}

// FlatHeader is the CSV column order for FlatRow.
var FlatHeader = []string{
	"oracle_id",
	"name",
	"mana_cost",
	"cmc",
	"type_line",
	"oracle_text",
	"reserved",
	"set",
	"set_name",
	"rarity",
	"colors",
	"colors_str",
	"color_identity",
	"color_identity_str",
	"keywords",
	"keywords_joined",
	"legalities",
	"legal_standard",
	"legal_pioneer",
	"legal_modern",
	"legal_legacy",
	"legal_vintage",
	"legal_pauper",
	"legal_commander",
	"legal_summary",
	"lowest_price_usd",
	"lowest_price_finish",
	"lowest_price_set",
	"lowest_price_collector",
	"median_price_usd",
	"highest_price_usd",
	"price_summary",
}
