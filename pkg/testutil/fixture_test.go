package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	CreateFile(t, dir, "simple.yaml", `
mode: bibliography
style: "<style/>"
items:
  - id: a
    type: book
    title: Alpha
result: "Alpha.\n"
`)
	CreateFile(t, dir, "notes.txt", "not a fixture")

	fixtures := LoadFixtures(t, dir)

	require.Len(t, fixtures, 1)
	f := fixtures[0]
	assert.Equal(t, "simple", f.Name)
	assert.Equal(t, "bibliography", f.Mode)
	assert.Equal(t, "<style/>", f.Style)
	require.Len(t, f.Items, 1)
	assert.Equal(t, "Alpha", f.Items[0]["title"])
	assert.Equal(t, Results{"text": "Alpha.\n"}, f.Result)
}

func TestResultFormats(t *testing.T) {
	dir := t.TempDir()
	CreateFile(t, dir, "multi.yaml", `
mode: bibliography
style: "<style/>"
items: []
result:
  text: "plain"
  html: "<b>rich</b>"
`)

	fixtures := LoadFixtures(t, dir)

	require.Len(t, fixtures, 1)
	assert.Equal(t, Results{"text": "plain", "html": "<b>rich</b>"}, fixtures[0].Result)
}

func TestItemIDBatches(t *testing.T) {
	t.Run("flat list is one batch", func(t *testing.T) {
		dir := t.TempDir()
		CreateFile(t, dir, "flat.yaml", `
mode: citation
style: "<style/>"
items: []
itemIds: [a, b]
result: ""
`)
		fixtures := LoadFixtures(t, dir)
		require.Len(t, fixtures, 1)
		assert.Equal(t, IDBatches{{"a", "b"}}, fixtures[0].ItemIDs)
	})

	t.Run("nested lists are separate batches", func(t *testing.T) {
		dir := t.TempDir()
		CreateFile(t, dir, "nested.yaml", `
mode: citation
style: "<style/>"
items: []
itemIds:
  - [a]
  - [b, c]
result: ""
`)
		fixtures := LoadFixtures(t, dir)
		require.Len(t, fixtures, 1)
		assert.Equal(t, IDBatches{{"a"}, {"b", "c"}}, fixtures[0].ItemIDs)
	})
}

func TestFixtureCitations(t *testing.T) {
	dir := t.TempDir()
	CreateFile(t, dir, "cites.yaml", `
mode: citation
style: "<style/>"
items: []
citations:
  - citationItems:
      - id: a
        locator: "12"
        label: page
    properties:
      noteIndex: 3
result: ""
`)

	fixtures := LoadFixtures(t, dir)

	require.Len(t, fixtures, 1)
	cites := fixtures[0].Citations
	require.Len(t, cites, 1)
	require.Len(t, cites[0].Items, 1)
	assert.Equal(t, "a", cites[0].Items[0].ID)
	assert.Equal(t, "12", cites[0].Items[0].Locator)
	assert.Equal(t, "page", cites[0].Items[0].Label)
	assert.Equal(t, 3, cites[0].Properties.NoteIndex)
}

func TestFixtureProvider(t *testing.T) {
	f := Fixture{
		Name: "inline",
		Items: []map[string]interface{}{
			{"id": "a", "type": "book", "title": "Alpha"},
			{"id": "b", "type": "article-journal", "title": "Beta"},
		},
	}

	p := f.Provider(t)

	assert.Equal(t, []string{"a", "b"}, p.IDs())
	item, ok := p.Item("a")
	require.True(t, ok)
	title, _ := item.Variable("title")
	assert.Equal(t, "Alpha", title)
}
