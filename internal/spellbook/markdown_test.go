package spellbook

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown_Golden(t *testing.T) {
	c, ok := Normalize(variantFixture())
	require.True(t, ok)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "combo_twinflame", []byte(RenderMarkdown(c)))
}

func TestRenderMarkdown_MinimalCombo(t *testing.T) {
	c := &Combo{ID: "only-id", Uses: []UsedCard{{OracleID: "o-1"}}}
	md := RenderMarkdown(c)

	assert.Contains(t, md, "# only-id\n")
	assert.Contains(t, md, "- Unknown\n", "card without a name renders as Unknown")
	assert.NotContains(t, md, "**Produces:**")
	assert.NotContains(t, md, "**Steps:**")
	assert.Contains(t, md, "---\n\n")
}
