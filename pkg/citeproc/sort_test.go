package citeproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/provider"
	"github.com/arthur-debert/citekit/pkg/style"
)

func TestBibliographySortByMacro(t *testing.T) {
	p := newProcessor(t, authorDateStyle, johnson(), lycklama(), ritchie())
	require.NoError(t, p.RegisterCitationItems("ritchie1973", "lycklama1978", "johnson1973"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"johnson1973", "lycklama1978", "ritchie1973"}, bib.IDs)
}

func TestBibliographySortDescending(t *testing.T) {
	st := parseStyle(t, authorDateStyle)
	st.Bibliography.Sort.Keys[0].Descending = true

	p, err := New(provider.NewListProvider(johnson(), lycklama(), ritchie()), st)
	require.NoError(t, err)
	require.NoError(t, p.RegisterCitationItems("johnson1973", "lycklama1978", "ritchie1973"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"ritchie1973", "lycklama1978", "johnson1973"}, bib.IDs)
}

func TestBibliographySortTieKeepsRegistrationOrder(t *testing.T) {
	p := newProcessor(t, authorDateStyle, doeAlpha(), doeBeta())

	// same author, same year: the sort keys tie, registration decides
	require.NoError(t, p.RegisterCitationItems("doe2020b", "doe2020"))
	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"doe2020b", "doe2020"}, bib.IDs)
}

func TestBibliographySortEmptyKeysLast(t *testing.T) {
	early := csl.NewItem("early", csl.TypeBook).
		Set("title", "Early").
		AddAuthor("A.", "Ames").
		SetDate("issued", csl.NewDate(1971, 0, 0))
	late := csl.NewItem("late", csl.TypeBook).
		Set("title", "Late").
		AddAuthor("B.", "Bond").
		SetDate("issued", csl.NewDate(1995, 0, 0))
	undated := csl.NewItem("undated", csl.TypeBook).
		Set("title", "Undated").
		AddAuthor("C.", "Cole")

	newSorted := func(t *testing.T, descending bool) *Processor {
		t.Helper()
		st := parseStyle(t, authorDateStyle)
		st.Bibliography.Sort.Keys = []style.SortKey{{Variable: "issued", Descending: descending}}
		p, err := New(provider.NewListProvider(early, late, undated), st)
		require.NoError(t, err)
		require.NoError(t, p.RegisterCitationItems("undated", "late", "early"))
		return p
	}

	bib, err := newSorted(t, false).MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "undated"}, bib.IDs)

	// descending flips the dated items but the undated one stays last
	bib, err = newSorted(t, true).MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early", "undated"}, bib.IDs)
}

func TestBibliographySortByNameVariable(t *testing.T) {
	st := parseStyle(t, authorDateStyle)
	st.Bibliography.Sort.Keys = []style.SortKey{{Variable: "author"}}

	p, err := New(provider.NewListProvider(johnson(), lycklama(), ritchie()), st)
	require.NoError(t, err)
	require.NoError(t, p.RegisterCitationItems("ritchie1973", "johnson1973", "lycklama1978"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"johnson1973", "lycklama1978", "ritchie1973"}, bib.IDs)
}

func TestCitationSortOrdersCites(t *testing.T) {
	st := parseStyle(t, authorDateStyle)
	st.Citation.Sort = &style.Sort{Keys: []style.SortKey{{Macro: "author-short"}}}

	p, err := New(provider.NewListProvider(johnson(), ritchie()), st)
	require.NoError(t, err)

	cites, err := p.MakeCitation(Cite("ritchie1973", "johnson1973"))
	require.NoError(t, err)
	require.Len(t, cites, 1)
	assert.Equal(t, "(Johnson & Kernighan, 1973; Ritchie & Thompson, 1973)", cites[0].Text)
}

func TestSortableNames(t *testing.T) {
	assert.Equal(t, "Beethoven Ludwig van", sortableNames([]csl.Name{
		{Given: "Ludwig", Family: "Beethoven", DroppingParticle: "van"},
	}))
	assert.Equal(t, "ACME Corporation", sortableNames([]csl.Name{
		{Literal: "ACME Corporation"},
	}))
	assert.Equal(t, "Smith Adam Jones Bob", sortableNames([]csl.Name{
		{Given: "Adam", Family: "Smith"},
		{Given: "Bob", Family: "Jones"},
	}))
}

func TestPadNumeric(t *testing.T) {
	assert.Equal(t, "00000002", padNumeric("2"))
	assert.Equal(t, "00000012", padNumeric("12"))
	assert.Equal(t, "00000003rd ed.", padNumeric("3rd ed."))
	assert.Equal(t, "draft", padNumeric("draft"))
}
