package extraction

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const rowsHTML = `
<table class="items"><tbody>
	<tr>
		<td class="name"><a href="/a/profil/trainer/1" title="Alpha">  Alpha&nbsp;One </a></td>
		<td class="club"><img src="/wappen/131.png" alt="Barça"></td>
	</tr>
	<tr>
		<td class="name"><a href="/b/profil/trainer/2" title="Beta">Beta</a></td>
		<td class="club"></td>
	</tr>
</tbody></table>`

func TestTextOf(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	assert.Equal(t, "Alpha One", TextOf(doc, Text("td.name a")))
	assert.Equal(t, "/a/profil/trainer/1", TextOf(doc, Attr("td.name a", "href")))
	assert.Equal(t, "", TextOf(doc, Text("td.missing")))
	assert.Equal(t, "", TextOf(doc, Attr("td.name a", "data-none")))
}

// TestLookup_DistinguishesEmptyFromMissing verifies the optional form keeps
// "matched an empty node" apart from "matched nothing".
func TestLookup_DistinguishesEmptyFromMissing(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	v, ok := Lookup(doc, Text("tr:nth-child(2) td.club"))
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, ok = Lookup(doc, Text("td.nope"))
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestListOf(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	assert.Equal(t, []string{"Alpha One", "Beta"}, ListOf(doc, Text("td.name a")))
	assert.Equal(t, []string{"Alpha", "Beta"}, ListOf(doc, Attr("td.name a", "title")))
	assert.Equal(t, []string{}, ListOf(doc, Text("td.missing")))
}

// TestRowValues_KeepsRowsAligned verifies a row without the optional cell yields
// nil instead of shifting the following values up.
func TestRowValues_KeepsRowsAligned(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	crests := RowValues(doc, "table.items > tbody > tr", Attr("td.club img", "src"))
	require.Len(t, crests, 2)
	require.NotNil(t, crests[0])
	assert.Equal(t, "/wappen/131.png", *crests[0])
	assert.Nil(t, crests[1])

	// An empty query selects the row itself.
	rows := RowValues(doc, "table.items > tbody > tr", Text(""))
	require.Len(t, rows, 2)
	assert.Equal(t, "Beta", *rows[1])
}

func TestExtractFields(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	got := ExtractFields(doc, []Field{
		{Key: "name", Selector: Text("td.name a")},
		{Key: "club.crest", Selector: Attr("td.club img", "src")},
		{Key: "club.name", Selector: Attr("td.club img", "alt")},
		{Key: "missing", Selector: Text("span.none")},
	})

	assert.Equal(t, Record{
		"name":    "Alpha One",
		"club":    Record{"crest": "/wappen/131.png", "name": "Barça"},
		"missing": nil,
	}, got)
}

func TestAssertFound(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, rowsHTML)

	require.NoError(t, AssertFound(doc, Text("table.items")))

	err := AssertFound(doc, Text("header.data-header"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "header.data-header")

	assert.ErrorIs(t, AssertFound(nil, Text("table")), ErrNotFound)
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"  a \n\t b  ", "a b"},
		{"x\u00a0\u00a0y", "x y"},
		// "e" + combining acute composes to a single rune.
		{"Jose\u0301", "Jos\u00e9"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "CleanText(%q)", tt.in)
	}
}

func TestSelector_Within(t *testing.T) {
	t.Parallel()

	s := Attr("a", "href").Within("div.box")
	assert.Equal(t, Selector{Query: "div.box a", Attr: "href"}, s)
	assert.Equal(t, "div.box a@href", s.String())
	assert.Equal(t, Text("a"), Text("a").Within("  "))
}
