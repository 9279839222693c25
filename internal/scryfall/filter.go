package scryfall

import "strings"

// Layouts that mark a record as a non-playable construct.
var excludedLayouts = map[string]bool{
	"art_series":         true,
	"token":              true,
	"double_faced_token": true,
	"emblem":             true,
}

// Playable reports whether a raw card record is a playable game object.
//
// Rejected: art series / token / emblem layouts, memorabilia sets, Art
// Series sets (some predate the art_series layout and carry only the set
// name), and records with neither oracle text nor a type line. Pure
// predicate; accepted records keep their input order.
func Playable(c *Card) bool {
	if excludedLayouts[c.Layout] {
		return false
	}
	if c.SetType == "memorabilia" {
		return false
	}
	if strings.Contains(c.SetName, "Art Series") {
		return false
	}
	if c.OracleText == "" && c.TypeLine == "" && !hasFaceText(c) {
		return false
	}
	return true
}

func hasFaceText(c *Card) bool {
	for _, f := range c.CardFaces {
		if f.OracleText != "" || f.TypeLine != "" {
			return true
		}
	}
	return false
}
