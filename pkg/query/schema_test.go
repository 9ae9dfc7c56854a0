package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierDetailed, tier)

	for _, want := range []DetailTier{TierBasic, TierDetailed, TierFull} {
		tier, err := ParseTier(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, tier)
	}

	_, err = ParseTier("verbose")
	assert.EqualError(t, err, "invalid detail level: verbose")
}

func TestSchemas_ToolNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Schemas() {
		assert.False(t, seen[s.Tool], "duplicate tool %s", s.Tool)
		seen[s.Tool] = true

		assert.NotEmpty(t, s.Singular)
		assert.NotEmpty(t, s.Plural)
		assert.NotEmpty(t, s.NameFields)
		assert.NotEmpty(t, s.Basic)
	}
	assert.Len(t, seen, 8)
}

func TestSchemaFor_UnknownKind(t *testing.T) {
	_, ok := SchemaFor("load_balancer")
	assert.False(t, ok)
}
