package scryfall

import "strings"

// FaceSeparator joins the oracle text of a multi-faced card's faces.
const FaceSeparator = " // "

// Merger folds filtered card records into exactly one Canonical per
// distinct oracle id, preserving first-seen order. The first record seen
// for an oracle id wins; later printings are ignored (prices come from the
// printing dataset, not from here).
type Merger struct {
	byID      map[string]*Canonical
	order     []string
	missingID int
}

func NewMerger() *Merger {
	return &Merger{byID: make(map[string]*Canonical)}
}

// Add folds one filtered record into the merger. Records without an oracle
// id are dropped and counted; that is an upstream data defect, not a fatal
// condition.
func (m *Merger) Add(c *Card) {
	if c.OracleID == "" {
		m.missingID++
		return
	}
	if _, seen := m.byID[c.OracleID]; seen {
		return
	}
	m.byID[c.OracleID] = canonicalize(c)
	m.order = append(m.order, c.OracleID)
}

// Has reports whether an oracle id survived filtering and merging.
func (m *Merger) Has(oracleID string) bool {
	_, ok := m.byID[oracleID]
	return ok
}

// Cards returns the canonical records in first-seen order.
func (m *Merger) Cards() []*Canonical {
	out := make([]*Canonical, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Len returns the number of distinct oracle ids merged.
func (m *Merger) Len() int { return len(m.order) }

// MissingOracleID returns the count of dropped records without an oracle id.
func (m *Merger) MissingOracleID() int { return m.missingID }

// canonicalize builds the canonical record for one raw card. For multi-faced
// cards the oracle text is the concatenation of all face texts in face
// order; the front face supplies mana cost and type line unless the source
// carries explicit combined top-level values.
func canonicalize(c *Card) *Canonical {
	out := &Canonical{
		OracleID:      c.OracleID,
		Name:          c.Name,
		ManaCost:      c.ManaCost,
		CMC:           c.CMC,
		TypeLine:      c.TypeLine,
		OracleText:    c.OracleText,
		Reserved:      c.Reserved,
		Set:           c.Set,
		SetName:       c.SetName,
		Rarity:        c.Rarity,
		Colors:        c.Colors,
		ColorIdentity: c.ColorIdentity,
		Keywords:      c.Keywords,
		Legalities:    c.Legalities,
	}

	if len(c.CardFaces) == 0 {
		return out
	}

	var texts []string
	for _, f := range c.CardFaces {
		if f.OracleText != "" {
			texts = append(texts, f.OracleText)
		}
	}
	if len(texts) > 0 {
		out.OracleText = strings.Join(texts, FaceSeparator)
	}
	if out.ManaCost == "" {
		out.ManaCost = c.CardFaces[0].ManaCost
	}
	if out.TypeLine == "" {
		out.TypeLine = c.CardFaces[0].TypeLine
	}
	return out
}
