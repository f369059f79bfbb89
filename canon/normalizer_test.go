package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ResolvesScrollMapperNames(t *testing.T) {
	n := Default()

	tests := []struct {
		raw  string
		want string
	}{
		{"Genesis", "GEN"},
		{"I Samuel", "1SA"},
		{"1 Samuel", "1SA"},
		{"Psalms", "PSA"},
		{"Song of Solomon", "SNG"},
		{"III John", "3JN"},
		{"Revelation of John", "REV"},
		{"  Genesis  ", "GEN"},
		{"genesis", "GEN"},
		{"REVELATION", "REV"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := n.Resolve(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	n := Default()

	for _, raw := range []string{"", "   ", "Tobit", "Genesis 2"} {
		id, ok := n.Resolve(raw)
		assert.False(t, ok, "raw %q should not resolve", raw)
		assert.Empty(t, id)
	}
}

func TestNew_CustomTable(t *testing.T) {
	n := New(map[string]string{"Exodus": "EXO"})

	_, ok := n.Resolve("Genesis")
	assert.False(t, ok, "custom table should not know Genesis")

	id, ok := n.Resolve("Exodus")
	require.True(t, ok)
	assert.Equal(t, "EXO", id)
}

func TestNew_CopiesTable(t *testing.T) {
	table := map[string]string{"Genesis": "GEN"}
	n := New(table)
	table["Genesis"] = "XXX"
	table["Exodus"] = "EXO"

	id, ok := n.Resolve("Genesis")
	require.True(t, ok)
	assert.Equal(t, "GEN", id)

	_, ok = n.Resolve("Exodus")
	assert.False(t, ok)
}

func TestNew_SkipsBlankEntries(t *testing.T) {
	n := New(map[string]string{"": "GEN", "Exodus": " ", "Leviticus": "LEV"})
	assert.Equal(t, 1, n.Len())
}

func TestDefaultTable_CoversCanon(t *testing.T) {
	ids := CanonicalIDs()
	assert.Len(t, ids, 66)

	seen := make(map[string]bool)
	for _, id := range DefaultTable() {
		seen[id] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id], "canonical id %s has no raw name", id)
	}
}
