package output

import "github.com/arthur-debert/citekit/pkg/token"

// asciidocFormat renders AsciiDoc with role-classed entries
type asciidocFormat struct{}

func (f *asciidocFormat) Name() string { return "asciidoc" }

func (f *asciidocFormat) wrapFormat(s string, fm token.Formatting) string {
	switch fm.VerticalAlign {
	case token.VerticalAlignSup:
		s = "^" + s + "^"
	case token.VerticalAlignSub:
		s = "~" + s + "~"
	}
	if fm.TextDecoration == token.TextDecorationUnderline {
		s = "[underline]#" + s + "#"
	}
	if fm.FontVariant == token.FontVariantSmallCaps {
		s = "[smallcaps]#" + s + "#"
	}
	if fm.FontWeight == token.FontWeightBold {
		s = "**" + s + "**"
	}
	if fm.FontStyle == token.FontStyleItalic || fm.FontStyle == token.FontStyleOblique {
		s = "__" + s + "__"
	}
	return s
}

func (f *asciidocFormat) link(href, label string) string {
	return "link:" + href + "[" + label + "]"
}

func (f *asciidocFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, noEscape, f)
}

func (f *asciidocFormat) Entry(e Entry, opts Options) string {
	body := inline(e.Body, opts, noEscape, f)
	if e.First == nil {
		return "[.csl-entry]\n" + body + "\n"
	}
	first := inline(e.First, opts, noEscape, f)
	return "[.csl-entry]\n" +
		"[.csl-left-margin]##" + first + "##" +
		"[.csl-right-inline]##" + body + "##\n"
}

func (f *asciidocFormat) BibliographyStart(Meta) string { return "" }

func (f *asciidocFormat) BibliographyEnd(Meta) string { return "" }
