package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"", "goldmark", "blackfriday"} {
		c, err := New(name)
		require.NoError(t, err, name)
		require.NotNil(t, c)
	}

	_, err := New("pandoc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc")
	assert.Equal(t, []string{"blackfriday", "goldmark"}, Engines())
}

func TestConvert(t *testing.T) {
	src := "Some *emphasis* and `code`.\n\n- one\n- two\n"
	for _, name := range Engines() {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			require.NoError(t, err)

			got, err := c.Convert(src)
			require.NoError(t, err)
			assert.Contains(t, got, "<em>emphasis</em>")
			assert.Contains(t, got, "<code>code</code>")
			assert.Contains(t, got, "<li>one</li>")

			again, err := c.Convert(src)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestConvertEmpty(t *testing.T) {
	for _, name := range Engines() {
		c, err := New(name)
		require.NoError(t, err)
		got, err := c.Convert("")
		require.NoError(t, err)
		assert.Empty(t, got, name)
	}
}

func TestGoldmarkTables(t *testing.T) {
	got, err := NewGoldmark().Convert("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>1</td>")
}
