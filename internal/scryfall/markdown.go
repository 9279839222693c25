package scryfall

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderMarkdown renders one card as a human-readable Markdown section,
// terminated by a horizontal rule so consecutive sections concatenate into
// a valid document.
func RenderMarkdown(r FlatRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	fmt.Fprintf(&b, "**Type:** %s\n\n", r.TypeLine)

	if r.ManaCost != "" {
		fmt.Fprintf(&b, "**Mana cost:** %s (MV %s)\n\n", r.ManaCost, strconv.FormatFloat(r.CMC, 'g', -1, 64))
	}

	if r.OracleText != "" {
		b.WriteString("**Text:**\n\n")
		fmt.Fprintf(&b, "%s\n\n", r.OracleText)
	}

	var meta []string
	if r.ColorsStr != "" {
		meta = append(meta, "Colors: "+r.ColorsStr)
	}
	if r.ColorIdentStr != "" {
		meta = append(meta, "Identity: "+r.ColorIdentStr)
	}
	if r.KeywordsJoin != "" {
		meta = append(meta, "Keywords: "+r.KeywordsJoin)
	}
	if r.Rarity != "" {
		meta = append(meta, "Rarity: "+r.Rarity)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "**%s**\n\n", strings.Join(meta, ", "))
	}

	fmt.Fprintf(&b, "**Price:** %s\n\n", r.PriceSummary)

	if r.LegalSummary != "" {
		fmt.Fprintf(&b, "**Legality:** %s\n\n", r.LegalSummary)
	}

	b.WriteString("---\n\n")
	return b.String()
}
