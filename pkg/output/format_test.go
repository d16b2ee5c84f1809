package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/token"
)

func TestFormatRegistry(t *testing.T) {
	t.Run("all encodings are registered", func(t *testing.T) {
		assert.Equal(t, []string{"asciidoc", "fo", "html", "markdown", "term", "text"}, Names())
	})

	t.Run("lookup by name", func(t *testing.T) {
		f, err := Get("html")
		require.NoError(t, err)
		assert.Equal(t, "html", f.Name())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Get("docx")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFormatUnknown))
	})
}

func entryTokens() *token.Buffer {
	buf := token.NewBuffer()
	buf.Append("M. Krämer, ", token.Text)
	buf.Append("“", token.OpenQuote)
	buf.Append("citeproc and friends,", token.Text)
	buf.Append("”", token.CloseQuote)
	buf.Append(" Sep. 09, 2013.", token.Text)
	return buf
}

func numberedEntry() Entry {
	return Entry{
		ID:    "kraemer2013",
		First: token.NewBuffer().Append("[1]", token.Text),
		Body:  entryTokens(),
	}
}

func TestTextFormat(t *testing.T) {
	f, err := Get("text")
	require.NoError(t, err)

	t.Run("aligned entry concatenates number and body", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{})
		assert.Equal(t, "[1]M. Krämer, “citeproc and friends,” Sep. 09, 2013.\n", got)
	})

	t.Run("plain entry", func(t *testing.T) {
		got := f.Entry(Entry{ID: "x", Body: entryTokens()}, Options{})
		assert.Equal(t, "M. Krämer, “citeproc and friends,” Sep. 09, 2013.\n", got)
	})

	t.Run("formatting drops away", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "Title",
			Type:   token.Text,
			Format: token.Formatting{FontStyle: token.FontStyleItalic},
		})
		assert.Equal(t, "Title", f.Citation(buf, Options{}))
	})

	t.Run("links stay bare even when converted", func(t *testing.T) {
		buf := token.NewBuffer().Append("https://example.com", token.URL)
		assert.Equal(t, "https://example.com", f.Citation(buf, Options{ConvertLinks: true}))
	})

	t.Run("no bibliography wrapper", func(t *testing.T) {
		assert.Equal(t, "", f.BibliographyStart(Meta{}))
		assert.Equal(t, "", f.BibliographyEnd(Meta{}))
	})
}

func TestHTMLFormat(t *testing.T) {
	f, err := Get("html")
	require.NoError(t, err)

	t.Run("escapes entities", func(t *testing.T) {
		buf := token.NewBuffer().Append("Krämer & Söhne", token.Text)
		assert.Equal(t, "Kr&auml;mer &amp; S&ouml;hne", f.Citation(buf, Options{}))
	})

	t.Run("quote glyphs become entities", func(t *testing.T) {
		got := f.Citation(entryTokens(), Options{})
		assert.Equal(t, "M. Kr&auml;mer, &ldquo;citeproc and friends,&rdquo; Sep. 09, 2013.", got)
	})

	t.Run("aligned entry frames margin and inline divs", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{})
		want := "  <div class=\"csl-entry\">\n" +
			"    <div class=\"csl-left-margin\">[1]</div>" +
			"<div class=\"csl-right-inline\">M. Kr&auml;mer, &ldquo;citeproc and friends,&rdquo; Sep. 09, 2013.</div>\n" +
			"  </div>\n"
		assert.Equal(t, want, got)
	})

	t.Run("plain entry is a single div", func(t *testing.T) {
		body := token.NewBuffer().Append("An entry.", token.Text)
		got := f.Entry(Entry{ID: "x", Body: body}, Options{})
		assert.Equal(t, "  <div class=\"csl-entry\">An entry.</div>\n", got)
	})

	t.Run("bibliography body wrapper", func(t *testing.T) {
		assert.Equal(t, "<div class=\"csl-bib-body\">\n", f.BibliographyStart(Meta{}))
		assert.Equal(t, "</div>\n", f.BibliographyEnd(Meta{}))
	})

	t.Run("urls stay plain without convert-links", func(t *testing.T) {
		buf := token.NewBuffer().Append("https://example.com/a", token.URL)
		assert.Equal(t, "https://example.com/a", f.Citation(buf, Options{}))
	})

	t.Run("convert-links wraps urls in anchors", func(t *testing.T) {
		buf := token.NewBuffer().Append("https://example.com/a", token.URL)
		got := f.Citation(buf, Options{ConvertLinks: true})
		assert.Equal(t, "<a href=\"https://example.com/a\">https://example.com/a</a>", got)
	})

	t.Run("convert-links resolves dois", func(t *testing.T) {
		buf := token.NewBuffer().Append("10.1000/182", token.DOI)
		got := f.Citation(buf, Options{ConvertLinks: true})
		assert.Equal(t, "<a href=\"https://doi.org/10.1000/182\">10.1000/182</a>", got)
	})

	t.Run("italic runs fold into one tag", func(t *testing.T) {
		italic := token.Formatting{FontStyle: token.FontStyleItalic}
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{Text: "The Programming", Type: token.Text, Format: italic})
		buf.AppendToken(token.Token{Text: " Language B", Type: token.Text, Format: italic})
		buf.Append(", 1973.", token.Text)
		got := f.Citation(buf, Options{})
		assert.Equal(t, "<i>The Programming Language B</i>, 1973.", got)
	})

	t.Run("bold and small caps wrap", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "ACM",
			Type:   token.Text,
			Format: token.Formatting{FontWeight: token.FontWeightBold, FontVariant: token.FontVariantSmallCaps},
		})
		got := f.Citation(buf, Options{})
		assert.Equal(t, "<b><span style=\"font-variant: small-caps\">ACM</span></b>", got)
	})
}

func TestAsciiDocFormat(t *testing.T) {
	f, err := Get("asciidoc")
	require.NoError(t, err)

	t.Run("aligned entry", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{})
		want := "[.csl-entry]\n" +
			"[.csl-left-margin]##[1]##" +
			"[.csl-right-inline]##M. Krämer, “citeproc and friends,” Sep. 09, 2013.##\n"
		assert.Equal(t, want, got)
	})

	t.Run("plain entry", func(t *testing.T) {
		body := token.NewBuffer().Append("An entry.", token.Text)
		got := f.Entry(Entry{ID: "x", Body: body}, Options{})
		assert.Equal(t, "[.csl-entry]\nAn entry.\n", got)
	})

	t.Run("italic markup", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "Title",
			Type:   token.Text,
			Format: token.Formatting{FontStyle: token.FontStyleItalic},
		})
		assert.Equal(t, "__Title__", f.Citation(buf, Options{}))
	})

	t.Run("links", func(t *testing.T) {
		buf := token.NewBuffer().Append("https://example.com", token.URL)
		got := f.Citation(buf, Options{ConvertLinks: true})
		assert.Equal(t, "link:https://example.com[https://example.com]", got)
	})
}

func TestFOFormat(t *testing.T) {
	f, err := Get("fo")
	require.NoError(t, err)

	t.Run("aligned entry builds the two-column table", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{})
		want := "<fo:block id=\"kraemer2013\">\n" +
			"  <fo:table table-layout=\"fixed\" width=\"100%\">\n" +
			"    <fo:table-column column-number=\"1\" column-width=\"2.5em\"/>\n" +
			"    <fo:table-column column-number=\"2\" column-width=\"proportional-column-width(1)\"/>\n" +
			"    <fo:table-body>\n" +
			"      <fo:table-row>\n" +
			"        <fo:table-cell>\n" +
			"          <fo:block>[1]</fo:block>\n" +
			"        </fo:table-cell>\n" +
			"        <fo:table-cell>\n" +
			"          <fo:block>M. Krämer, “citeproc and friends,” Sep. 09, 2013.</fo:block>\n" +
			"        </fo:table-cell>\n" +
			"      </fo:table-row>\n" +
			"    </fo:table-body>\n" +
			"  </fo:table>\n" +
			"</fo:block>\n"
		assert.Equal(t, want, got)
	})

	t.Run("plain entry is one block with the item id", func(t *testing.T) {
		body := token.NewBuffer().Append("An entry.", token.Text)
		got := f.Entry(Entry{ID: "Johnson:1973", Body: body}, Options{})
		assert.Equal(t, "<fo:block id=\"Johnson:1973\">An entry.</fo:block>\n", got)
	})

	t.Run("xml specials escape, unicode stays", func(t *testing.T) {
		buf := token.NewBuffer().Append("Krämer & Söhne <eds>", token.Text)
		assert.Equal(t, "Krämer &amp; Söhne &lt;eds&gt;", f.Citation(buf, Options{}))
	})

	t.Run("italic becomes an inline attribute", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "Title",
			Type:   token.Text,
			Format: token.Formatting{FontStyle: token.FontStyleItalic},
		})
		got := f.Citation(buf, Options{})
		assert.Equal(t, "<fo:inline font-style=\"italic\">Title</fo:inline>", got)
	})

	t.Run("links become basic-links", func(t *testing.T) {
		buf := token.NewBuffer().Append("10.1000/182", token.DOI)
		got := f.Citation(buf, Options{ConvertLinks: true})
		assert.Equal(t,
			"<fo:basic-link external-destination=\"url('https://doi.org/10.1000/182')\">10.1000/182</fo:basic-link>",
			got)
	})
}

func TestMarkdownFormat(t *testing.T) {
	f, err := Get("markdown")
	require.NoError(t, err)

	t.Run("emphasis", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "Title",
			Type:   token.Text,
			Format: token.Formatting{FontStyle: token.FontStyleItalic},
		})
		assert.Equal(t, "*Title*", f.Citation(buf, Options{}))
	})

	t.Run("specials are escaped", func(t *testing.T) {
		buf := token.NewBuffer().Append("a*b_c[d]", token.Text)
		assert.Equal(t, "a\\*b\\_c\\[d\\]", f.Citation(buf, Options{}))
	})

	t.Run("links", func(t *testing.T) {
		buf := token.NewBuffer().Append("https://example.com", token.URL)
		got := f.Citation(buf, Options{ConvertLinks: true})
		assert.Equal(t, "[https://example.com](https://example.com)", got)
	})

	t.Run("aligned entry escapes the bracketed number", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{})
		assert.Equal(t, "\\[1\\] M. Krämer, “citeproc and friends,” Sep. 09, 2013.\n", got)
	})
}

func TestTermFormat(t *testing.T) {
	f, err := Get("term")
	require.NoError(t, err)

	t.Run("no color renders plain", func(t *testing.T) {
		got := f.Entry(numberedEntry(), Options{NoColor: true})
		assert.Equal(t, "[1] M. Krämer, “citeproc and friends,” Sep. 09, 2013.\n", got)
	})

	t.Run("small caps approximate with uppercase", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "acm",
			Type:   token.Text,
			Format: token.Formatting{FontVariant: token.FontVariantSmallCaps},
		})
		got := f.Citation(buf, Options{NoColor: true})
		assert.Equal(t, "ACM", got)
	})

	t.Run("styled text keeps its content", func(t *testing.T) {
		buf := token.NewBuffer()
		buf.AppendToken(token.Token{
			Text:   "Title",
			Type:   token.Text,
			Format: token.Formatting{FontStyle: token.FontStyleItalic},
		})
		got := f.Citation(buf, Options{})
		assert.True(t, strings.Contains(got, "Title"))
	})
}
