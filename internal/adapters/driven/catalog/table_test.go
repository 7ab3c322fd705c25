package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	data := "\xEF\xBB\xBF name \turl\tstars\n" +
		"a\thttps://a.example\t10\n" +
		"short\thttps://b.example\n" +
		"extra\thttps://c.example\t1\tignored\n"

	rows, err := parseTable([]byte(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "a", rows[0].Get("name", ""), "BOM and header padding are stripped")
	assert.Equal(t, "10", rows[0].Get("stars", ""))
	assert.False(t, rows[1].Has("stars"))
	assert.Equal(t, "0", rows[1].Get("stars", "0"))
	assert.Equal(t, "1", rows[2].Get("stars", ""))
}

func TestParseTable_Empty(t *testing.T) {
	rows, err := parseTable(nil)

	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = parseTable([]byte("name\turl\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseTable_StrayQuote(t *testing.T) {
	data := "name\turl\tnote\n" +
		"one\thttps://one.example\t\"Awesome\" curated list\n" +
		"two\thttps://two.example\tplain\n" +
		"three\thttps://three.example\tsays \"hi\n"

	rows, err := parseTable([]byte(data))
	require.NoError(t, err)
	require.Len(t, rows, 3, "a quote inside a cell never spans lines")

	assert.Equal(t, `"Awesome" curated list`, rows[0].Get("note", ""))
	assert.Equal(t, "https://two.example", rows[1].Get("url", ""))
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, `says "hi`, rows[2].Get("note", ""))
	assert.Equal(t, 4, rows[2].Line)
}

func TestParseTable_QuotedCells(t *testing.T) {
	data := "name\tnote\r\n" +
		"\r\n" +
		"a\t\"say \"\"hi\"\"\"\r\n" +
		"b\t\"\"\r\n"

	rows, err := parseTable([]byte(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, `say "hi"`, rows[0].Get("note", ""))
	assert.Equal(t, 3, rows[0].Line, "blank lines still count")
	assert.False(t, rows[1].Has("note"))
}

func TestRow_Get(t *testing.T) {
	row := NewRow(4, map[string]string{"name": "  x  ", "blank": "   "})

	assert.Equal(t, "x", row.Get("name", "def"))
	assert.Equal(t, "def", row.Get("blank", "def"))
	assert.Equal(t, "def", row.Get("missing", "def"))
	assert.True(t, row.Has("name"))
	assert.False(t, row.Has("blank"))
}
