package spellbook

import "sort"

// BuildCardIndex inverts the normalized combo stream into one entry per
// referenced oracle id with the complete set of combo ids using that card.
// A second pass over already-normalized combos, not interleaved with the
// first.
//
// Combo ids keep first-seen order with duplicates suppressed; entries sort
// by card name (oracle id as tie-break) for reproducibility.
func BuildCardIndex(combos []*Combo) []CardIndexEntry {
	type acc struct {
		entry CardIndexEntry
		seen  map[string]bool
	}
	byID := make(map[string]*acc)
	var order []string

	for _, combo := range combos {
		for _, u := range combo.Uses {
			if u.OracleID == "" {
				continue
			}
			a, ok := byID[u.OracleID]
			if !ok {
				a = &acc{
					entry: CardIndexEntry{OracleID: u.OracleID, Name: u.Name},
					seen:  make(map[string]bool),
				}
				byID[u.OracleID] = a
				order = append(order, u.OracleID)
			}
			if !a.seen[combo.ID] {
				a.seen[combo.ID] = true
				a.entry.ComboIDs = append(a.entry.ComboIDs, combo.ID)
			}
		}
	}

	entries := make([]CardIndexEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, byID[id].entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].OracleID < entries[j].OracleID
	})
	return entries
}
