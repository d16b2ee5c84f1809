package citeproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/provider"
	"github.com/arthur-debert/citekit/pkg/style"
)

func TestMakeBibliographyNumeric(t *testing.T) {
	p := newProcessor(t, numericStyle, johnson(), lycklama())
	require.NoError(t, p.RegisterCitationItems("johnson1973", "lycklama1978"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, []string{"johnson1973", "lycklama1978"}, bib.IDs)
	require.Len(t, bib.Entries, 2)
	assert.Equal(t, "[1]S. C. Johnson and B. W. Kernighan, “The Programming Language B,” 1973.\n", bib.Entries[0])
	assert.Equal(t, "[2]H. Lycklama, “UNIX Time-Sharing System: UNIX on a Microprocessor,” 1978.\n", bib.Entries[1])
	assert.Equal(t, bib.Entries[0]+bib.Entries[1], bib.MakeString())
}

func TestMakeBibliographyRequiresLayout(t *testing.T) {
	p := newProcessor(t, etAlStyle, johnson())

	_, err := p.MakeBibliography()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStyleInvalid))
}

func TestMakeBibliographyIsIdempotent(t *testing.T) {
	p := newProcessor(t, authorDateStyle, johnson(), ritchie())
	require.NoError(t, p.RegisterCitationItems("ritchie1973", "johnson1973"))

	first, err := p.MakeBibliography()
	require.NoError(t, err)
	second, err := p.MakeBibliography()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBibliographyCarriesYearSuffixes(t *testing.T) {
	p := newProcessor(t, authorDateStyle, doeAlpha(), doeBeta())
	require.NoError(t, p.RegisterCitationItems("doe2020", "doe2020b"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	require.Len(t, bib.Entries, 2)
	assert.Equal(t, "Doe, J., Alpha, 2020a.\n", bib.Entries[0])
	assert.Equal(t, "Doe, J., Beta, 2020b.\n", bib.Entries[1])
}

func TestSubsequentAuthorSubstitute(t *testing.T) {
	repeat := csl.NewItem("doe2021", csl.TypeBook).
		Set("title", "Beta").
		AddAuthor("John", "Doe").
		SetDate("issued", csl.NewDate(2021, 0, 0))
	other := csl.NewItem("roe1999", csl.TypeBook).
		Set("title", "Gamma").
		AddAuthor("Jane", "Roe").
		SetDate("issued", csl.NewDate(1999, 0, 0))

	st := parseStyle(t, authorDateStyle)
	st.Bibliography.SubsequentAuthorSubstitute = "———"

	p, err := New(provider.NewListProvider(doeAlpha(), repeat, other), st)
	require.NoError(t, err)
	require.NoError(t, p.RegisterCitationItems("doe2020", "doe2021", "roe1999"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	require.Len(t, bib.Entries, 3)
	assert.Equal(t, "Doe, J., Alpha, 2020.\n", bib.Entries[0])
	assert.Equal(t, "———, Beta, 2021.\n", bib.Entries[1])
	assert.Equal(t, "Roe, J., Gamma, 1999.\n", bib.Entries[2])
}

func TestMakeBibliographyHTML(t *testing.T) {
	st := parseStyle(t, numericStyle)
	st.Bibliography.Layout.Children = append(st.Bibliography.Layout.Children,
		&style.Text{Attrs: style.Attrs{Prefix: " "}, Variable: "URL"})

	p, err := New(provider.NewListProvider(kraemer().Set("URL", "https://michelkraemer.com")), st,
		WithFormat("html"), WithConvertLinks(true))
	require.NoError(t, err)
	require.NoError(t, p.RegisterCitationItems("kraemer2013"))

	bib, err := p.MakeBibliography()
	require.NoError(t, err)
	require.Len(t, bib.Entries, 1)
	assert.Contains(t, bib.Entries[0], `<div class="csl-left-margin">[1]</div>`)
	assert.Contains(t, bib.Entries[0], `csl-right-inline`)
	assert.Contains(t, bib.Entries[0], "“citeproc and friends,”")
	assert.Contains(t, bib.Entries[0], `<a href="https://michelkraemer.com">https://michelkraemer.com</a>`)
	assert.Contains(t, bib.MakeString(), `csl-bib-body`)
}

func TestAdhocBibliography(t *testing.T) {
	st := parseStyle(t, numericStyle)

	bib, err := AdhocBibliography(st, "text", kraemer())
	require.NoError(t, err)
	require.Len(t, bib.Entries, 1)
	assert.Equal(t, "[1]M. Krämer, “citeproc and friends,” Sep. 09, 2013.\n", bib.Entries[0])
}

func TestAdhocCitation(t *testing.T) {
	st := parseStyle(t, authorDateStyle)

	text, err := AdhocCitation(st, "text", johnson(), ritchie())
	require.NoError(t, err)
	assert.Equal(t, "(Johnson & Kernighan, 1973; Ritchie & Thompson, 1973)", text)
}

func TestAdhocUnknownFormat(t *testing.T) {
	_, err := AdhocBibliography(parseStyle(t, numericStyle), "docx", kraemer())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormatUnknown))
}
