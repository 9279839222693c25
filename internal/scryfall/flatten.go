package scryfall

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// WUBRG is the fixed color order for derived color strings.
var WUBRG = []string{"W", "U", "B", "R", "G"}

// TrackedFormats are the play formats that get individual legality columns.
var TrackedFormats = []string{
	"standard", "pioneer", "modern", "legacy", "vintage", "pauper", "commander",
}

// Flatten maps one canonical record and its price summary to the fixed
// output schema. Pure and total: every input produces a row. priced is
// false when the oracle id had no printing-side price data, leaving the
// numeric price fields as explicit empty strings.
func Flatten(c *Canonical, ps PriceSummary, priced bool) FlatRow {
	row := FlatRow{
		OracleID:   c.OracleID,
		Name:       c.Name,
		ManaCost:   c.ManaCost,
		CMC:        c.CMC,
		TypeLine:   c.TypeLine,
		OracleText: c.OracleText,
		Reserved:   c.Reserved,
		Set:        c.Set,
		SetName:    c.SetName,
		Rarity:     c.Rarity,

		Colors:        compactJSON(emptySlice(c.Colors)),
		ColorsStr:     colorString(c.Colors),
		ColorIdentity: compactJSON(emptySlice(c.ColorIdentity)),
		ColorIdentStr: colorString(c.ColorIdentity),
		Keywords:      compactJSON(emptySlice(c.Keywords)),
		KeywordsJoin:  strings.Join(c.Keywords, "; "),
		Legalities:    compactJSON(emptyMap(c.Legalities)),
		LegalSummary:  legalSummary(c.Legalities),

		PriceSummary: NoPricingData,
	}

	row.LegalStandard = c.Legalities["standard"]
	row.LegalPioneer = c.Legalities["pioneer"]
	row.LegalModern = c.Legalities["modern"]
	row.LegalLegacy = c.Legalities["legacy"]
	row.LegalVintage = c.Legalities["vintage"]
	row.LegalPauper = c.Legalities["pauper"]
	row.LegalCommander = c.Legalities["commander"]

	if priced && ps.Count > 0 {
		row.LowestPriceUSD = fmt.Sprintf("%.2f", ps.Lowest)
		row.LowestPriceFinish = ps.Finish
		row.LowestPriceSet = ps.Set
		row.LowestPriceCollector = ps.Collector
		row.MedianPriceUSD = fmt.Sprintf("%.2f", ps.Median)
		row.HighestPriceUSD = fmt.Sprintf("%.2f", ps.Highest)
		row.PriceSummary = ps.String()
	}
	return row
}

// Record renders the row as CSV fields in FlatHeader order.
func (r FlatRow) Record() []string {
	return []string{
		r.OracleID,
		r.Name,
		r.ManaCost,
		strconv.FormatFloat(r.CMC, 'g', -1, 64),
		r.TypeLine,
		r.OracleText,
		strconv.FormatBool(r.Reserved),
		r.Set,
		r.SetName,
		r.Rarity,
		r.Colors,
		r.ColorsStr,
		r.ColorIdentity,
		r.ColorIdentStr,
		r.Keywords,
		r.KeywordsJoin,
		r.Legalities,
		r.LegalStandard,
		r.LegalPioneer,
		r.LegalModern,
		r.LegalLegacy,
		r.LegalVintage,
		r.LegalPauper,
		r.LegalCommander,
		r.LegalSummary,
		r.LowestPriceUSD,
		r.LowestPriceFinish,
		r.LowestPriceSet,
		r.LowestPriceCollector,
		r.MedianPriceUSD,
		r.HighestPriceUSD,
		r.PriceSummary,
	}
}

// colorString filters WUBRG down to the members present in lst, preserving
// the fixed order regardless of input order: ["R","G"] becomes "GR".
func colorString(lst []string) string {
	present := make(map[string]bool, len(lst))
	for _, c := range lst {
		present[c] = true
	}
	var b strings.Builder
	for _, c := range WUBRG {
		if present[c] {
			b.WriteString(c)
		}
	}
	return b.String()
}

// legalSummary builds the human-readable legality line: the legal formats,
// then not-legal, then banned, each group sorted and comma-joined, groups
// joined with " • ", empty groups omitted.
func legalSummary(leg map[string]string) string {
	var legal, notLegal, banned []string
	for fmtName, status := range leg {
		switch status {
		case "legal":
			legal = append(legal, fmtName)
		case "not_legal":
			notLegal = append(notLegal, fmtName)
		case "banned":
			banned = append(banned, fmtName)
		}
	}
	var parts []string
	if len(legal) > 0 {
		sort.Strings(legal)
		parts = append(parts, "Legal: "+strings.Join(legal, ", "))
	}
	if len(notLegal) > 0 {
		sort.Strings(notLegal)
		parts = append(parts, "Not legal: "+strings.Join(notLegal, ", "))
	}
	if len(banned) > 0 {
		sort.Strings(banned)
		parts = append(parts, "Banned: "+strings.Join(banned, ", "))
	}
	return strings.Join(parts, " • ")
}

// compactJSON marshals v as compact JSON text without HTML escaping, so the
// field is both machine-parseable and embeddable in a CSV cell. Map keys
// marshal in sorted order, keeping output deterministic.
func compactJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
