package output

import "github.com/arthur-debert/citekit/pkg/token"

// textFormat renders plain text: formatting drops away, links stay bare
type textFormat struct{}

func (f *textFormat) Name() string { return "text" }

func (f *textFormat) wrapFormat(s string, _ token.Formatting) string { return s }

func (f *textFormat) link(_, label string) string { return label }

func (f *textFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, noEscape, f)
}

func (f *textFormat) Entry(e Entry, opts Options) string {
	var out string
	if e.First != nil {
		out = inline(e.First, opts, noEscape, f)
	}
	return out + inline(e.Body, opts, noEscape, f) + "\n"
}

func (f *textFormat) BibliographyStart(Meta) string { return "" }

func (f *textFormat) BibliographyEnd(Meta) string { return "" }
