// Package output encodes rendered token streams into concrete markup.
// Formats are looked up by name through a process-wide registry, so callers
// select them with a plain string ("html", "text") the way they arrive from
// a CLI flag or an API parameter.
package output

import (
	"strings"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/registry"
	"github.com/arthur-debert/citekit/pkg/token"
)

// Options adjust how a format encodes a token stream
type Options struct {
	// ConvertLinks wraps URL and DOI tokens in the format's link markup
	ConvertLinks bool
	// NoColor disables ANSI styling in the term format
	NoColor bool
}

// Entry is one bibliography entry handed to a format. First carries the
// separated leading field when the style aligns it into its own column,
// and is nil otherwise.
type Entry struct {
	ID    string
	First *token.Buffer
	Body  *token.Buffer
}

// Meta carries the bibliography layout hints a format may frame with
type Meta struct {
	SecondFieldAlign string
	HangingIndent    bool
	LineSpacing      int
	EntrySpacing     int
}

// Format encodes token streams for one output encoding
type Format interface {
	// Name is the registry key
	Name() string
	// Citation encodes an inline citation
	Citation(buf *token.Buffer, opts Options) string
	// Entry encodes one framed bibliography entry
	Entry(e Entry, opts Options) string
	// BibliographyStart and BibliographyEnd wrap the assembled entries
	BibliographyStart(meta Meta) string
	BibliographyEnd(meta Meta) string
}

var formats = registry.New[Format]()

func register(f Format) {
	registry.MustRegister(formats, f.Name(), f)
}

func init() {
	register(&textFormat{})
	register(&htmlFormat{})
	register(&markdownFormat{})
	register(&asciidocFormat{})
	register(&foFormat{})
	register(&termFormat{})
}

// Get returns the format registered under name
func Get(name string) (Format, error) {
	f, err := formats.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrFormatUnknown, "unknown output format %q", name).
			WithDetail("format", name)
	}
	return f, nil
}

// Names lists the registered format names in sorted order
func Names() []string {
	return formats.List()
}

// escaper translates raw text into format-safe text
type escaper func(string) string

func noEscape(s string) string { return s }

// markup is the per-format hook set the shared inline encoder drives
type markup interface {
	wrapFormat(s string, f token.Formatting) string
	link(href, label string) string
}

// inline encodes a token stream without entry framing. Consecutive tokens
// with identical formatting fold into one markup span so encodings do not
// open and close the same tag between words.
func inline(buf *token.Buffer, opts Options, esc escaper, m markup) string {
	var sb strings.Builder
	var run strings.Builder
	var runFormat token.Formatting
	started := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.wrapFormat(run.String(), runFormat))
		run.Reset()
	}

	for _, t := range buf.Tokens() {
		if t.Text == "" {
			continue
		}
		if !started || t.Format != runFormat {
			flush()
			runFormat = t.Format
			started = true
		}
		text := esc(t.Text)
		if opts.ConvertLinks {
			switch t.Type {
			case token.URL:
				text = m.link(t.Text, text)
			case token.DOI:
				text = m.link("https://doi.org/"+t.Text, text)
			}
		}
		run.WriteString(text)
	}
	flush()
	return sb.String()
}
