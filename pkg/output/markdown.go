package output

import (
	"strings"

	"github.com/arthur-debert/citekit/pkg/token"
)

var markdownEscaper = strings.NewReplacer(
	"*", "\\*", "_", "\\_", "[", "\\[", "]", "\\]", "`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

type markdownFormat struct{}

func (f *markdownFormat) Name() string { return "markdown" }

func (f *markdownFormat) wrapFormat(s string, fm token.Formatting) string {
	if fm.FontWeight == token.FontWeightBold {
		s = "**" + s + "**"
	}
	if fm.FontStyle == token.FontStyleItalic || fm.FontStyle == token.FontStyleOblique {
		s = "*" + s + "*"
	}
	return s
}

func (f *markdownFormat) link(href, label string) string {
	return "[" + label + "](" + href + ")"
}

func (f *markdownFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, escapeMarkdown, f)
}

func (f *markdownFormat) Entry(e Entry, opts Options) string {
	var out string
	if e.First != nil {
		out = inline(e.First, opts, escapeMarkdown, f) + " "
	}
	return out + inline(e.Body, opts, escapeMarkdown, f) + "\n"
}

func (f *markdownFormat) BibliographyStart(Meta) string { return "" }

func (f *markdownFormat) BibliographyEnd(Meta) string { return "" }
