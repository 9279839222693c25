package spellbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combo(id string, cards ...UsedCard) *Combo {
	return &Combo{ID: id, Uses: cards}
}

func TestBuildCardIndex_InvertsReferences(t *testing.T) {
	x := UsedCard{Name: "Dualcaster Mage", OracleID: "o-x"}
	y := UsedCard{Name: "Twinflame", OracleID: "o-y"}
	z := UsedCard{Name: "Heat Shimmer", OracleID: "o-z"}

	entries := BuildCardIndex([]*Combo{
		combo("c1", x, y),
		combo("c2", x, z),
	})

	require.Len(t, entries, 3)
	byID := make(map[string]CardIndexEntry)
	for _, e := range entries {
		byID[e.OracleID] = e
	}

	assert.Equal(t, []string{"c1", "c2"}, byID["o-x"].ComboIDs)
	assert.Equal(t, []string{"c1"}, byID["o-y"].ComboIDs)
	assert.Equal(t, []string{"c2"}, byID["o-z"].ComboIDs)
}

func TestBuildCardIndex_SortedByName(t *testing.T) {
	entries := BuildCardIndex([]*Combo{
		combo("c1",
			UsedCard{Name: "Zealous Conscripts", OracleID: "o-z"},
			UsedCard{Name: "Kiki-Jiki, Mirror Breaker", OracleID: "o-k"},
		),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "Kiki-Jiki, Mirror Breaker", entries[0].Name)
	assert.Equal(t, "Zealous Conscripts", entries[1].Name)
}

func TestBuildCardIndex_DeduplicatesComboIDs(t *testing.T) {
	// The same card can appear twice in one variant's uses.
	x := UsedCard{Name: "Clone", OracleID: "o-c"}
	entries := BuildCardIndex([]*Combo{combo("c1", x, x)})

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"c1"}, entries[0].ComboIDs)
}

func TestBuildCardIndex_SkipsCardsWithoutOracleID(t *testing.T) {
	entries := BuildCardIndex([]*Combo{
		combo("c1", UsedCard{Name: "Unidentified"}, UsedCard{Name: "Known", OracleID: "o-k"}),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "o-k", entries[0].OracleID)
}

func TestBuildCardIndex_Empty(t *testing.T) {
	assert.Empty(t, BuildCardIndex(nil))
}
