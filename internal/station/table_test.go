package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 55, table.Len())
}

func TestLookup(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	c, ok := table.Lookup("大安")
	require.True(t, ok)
	assert.InDelta(t, 25.0263, c.Latitude, 0.0001)
	assert.InDelta(t, 121.5438, c.Longitude, 0.0001)
}

func TestLookupTrimsWhitespace(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	_, ok := table.Lookup("  大安 ")
	assert.True(t, ok)
}

func TestLookupUnknown(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	_, ok := table.Lookup("未知測站")
	assert.False(t, ok)
	_, ok = table.Lookup("")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	names := table.Names()
	require.Len(t, names, table.Len())
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	assert.Contains(t, names, "大安")
}

func TestReference(t *testing.T) {
	assert.InDelta(t, 25.0478, Reference.Latitude, 0.0001)
	assert.InDelta(t, 121.5170, Reference.Longitude, 0.0001)
}
