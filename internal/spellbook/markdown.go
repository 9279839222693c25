package spellbook

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderMarkdown renders one combo as a human-readable Markdown section,
// terminated by a horizontal rule so sections concatenate cleanly.
func RenderMarkdown(c *Combo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.ID)

	if len(c.Uses) > 0 {
		b.WriteString("**Cards:**\n\n")
		for _, u := range c.Uses {
			name := u.Name
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(c.Produces) > 0 {
		var features []string
		for _, f := range c.Produces {
			features = append(features, f.Name)
		}
		fmt.Fprintf(&b, "**Produces:** %s\n\n", strings.Join(features, ", "))
	}

	var meta []string
	if c.ManaNeeded != "" {
		meta = append(meta, "Mana: "+c.ManaNeeded)
	}
	if c.ManaValueNeeded != nil {
		meta = append(meta, "MV: "+strconv.Itoa(*c.ManaValueNeeded))
	}
	if c.Identity != "" {
		meta = append(meta, "Colors: "+c.Identity)
	}
	if c.Popularity != nil {
		meta = append(meta, "Popularity: "+strconv.Itoa(*c.Popularity))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "**%s**\n\n", strings.Join(meta, ", "))
	}

	if c.Description != "" {
		b.WriteString("**Steps:**\n\n")
		fmt.Fprintf(&b, "%s\n\n", c.Description)
	}

	b.WriteString("---\n\n")
	return b.String()
}
