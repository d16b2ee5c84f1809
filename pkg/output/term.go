package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/citekit/pkg/token"
)

// termFormat renders for terminals: ANSI styling through lipgloss and
// OSC 8 hyperlinks. NoColor falls back to plain text.
type termFormat struct{}

func (f *termFormat) Name() string { return "term" }

type termMarkup struct {
	noColor bool
}

func (m *termMarkup) wrapFormat(s string, fm token.Formatting) string {
	if fm.FontVariant == token.FontVariantSmallCaps {
		// terminals have no small caps; uppercase reads closest
		s = strings.ToUpper(s)
	}
	if m.noColor {
		return s
	}
	st := lipgloss.NewStyle()
	styled := false
	if fm.FontStyle == token.FontStyleItalic || fm.FontStyle == token.FontStyleOblique {
		st = st.Italic(true)
		styled = true
	}
	switch fm.FontWeight {
	case token.FontWeightBold:
		st = st.Bold(true)
		styled = true
	case token.FontWeightLight:
		st = st.Faint(true)
		styled = true
	}
	if fm.TextDecoration == token.TextDecorationUnderline {
		st = st.Underline(true)
		styled = true
	}
	if !styled {
		return s
	}
	return st.Render(s)
}

func (m *termMarkup) link(href, label string) string {
	if m.noColor {
		return label
	}
	return termenv.Hyperlink(href, label)
}

func (f *termFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, noEscape, &termMarkup{noColor: opts.NoColor})
}

func (f *termFormat) Entry(e Entry, opts Options) string {
	m := &termMarkup{noColor: opts.NoColor}
	var out string
	if e.First != nil {
		out = inline(e.First, opts, noEscape, m) + " "
	}
	return out + inline(e.Body, opts, noEscape, m) + "\n"
}

func (f *termFormat) BibliographyStart(Meta) string { return "" }

func (f *termFormat) BibliographyEnd(Meta) string { return "" }
