package render

import (
	"strings"

	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

// The behaviors below transform a finished buffer in place. They never
// fail; malformed inputs render untransformed.

// ApplyAffixes wraps a non-empty buffer with prefix and suffix tokens. An
// empty buffer stays empty, affixes never stand alone.
func ApplyAffixes(buf *token.Buffer, prefix, suffix string) {
	if buf.IsEmpty() {
		return
	}
	if prefix != "" {
		buf.Prepend(prefix, token.Prefix)
	}
	if suffix != "" {
		buf.Append(suffix, token.Suffix)
	}
}

// ApplyLayout applies a layout's formatting and affixes to a finished
// cluster or entry buffer
func ApplyLayout(buf *token.Buffer, layout *style.Layout, loc *locale.Locale) {
	if layout == nil || buf.IsEmpty() {
		return
	}
	a := layout.Attrs
	if a.TextCase != "" {
		applyTextCase(buf, a.TextCase)
	}
	if !a.Format.IsZero() {
		applyFormatting(buf, a.Format)
	}
	if a.Prefix != "" {
		buf.Prepend(a.Prefix, token.Prefix)
	}
	if a.Suffix != "" {
		appendSuffix(buf, a.Suffix, loc)
	}
}

// appendSuffix appends suffix text, moving a leading period or comma inside
// a directly preceding closing quote when the locale asks for it
func appendSuffix(buf *token.Buffer, suffix string, loc *locale.Locale) {
	toks := buf.Tokens()
	if loc != nil && loc.PunctuationInQuote() && len(toks) > 0 && suffix != "" &&
		(suffix[0] == '.' || suffix[0] == ',') &&
		toks[len(toks)-1].Type == token.CloseQuote {

		punct := suffix[:1]
		rest := suffix[1:]
		closing := toks[len(toks)-1]

		rebuilt := token.NewBuffer()
		for _, t := range toks[:len(toks)-1] {
			rebuilt.AppendToken(t)
		}
		// drop the mark entirely when the quoted text already ends with it
		if n := len(rebuilt.Tokens()); n == 0 || !strings.HasSuffix(rebuilt.Tokens()[n-1].Text, punct) {
			rebuilt.Append(punct, token.Suffix)
		}
		rebuilt.AppendToken(closing)
		if rest != "" {
			rebuilt.Append(rest, token.Suffix)
		}
		*buf = *rebuilt
		return
	}
	buf.Append(suffix, token.Suffix)
}

// applyQuotes wraps the buffer in locale quote glyphs, outer or inner by
// nesting depth
func applyQuotes(buf *token.Buffer, loc *locale.Locale, depth int) {
	if buf.IsEmpty() {
		return
	}
	open := loc.OpenQuote(depth)
	closing := loc.CloseQuote(depth)
	if open != "" {
		buf.Prepend(open, token.OpenQuote)
	}
	if closing != "" {
		buf.Append(closing, token.CloseQuote)
	}
}

// applyStripPeriods removes trailing periods from plain text tokens
func applyStripPeriods(buf *token.Buffer) {
	rebuilt := token.NewBuffer()
	for _, t := range buf.Tokens() {
		if t.Type == token.Text {
			t.Text = strings.TrimRight(t.Text, ".")
		}
		rebuilt.AppendToken(t)
	}
	*buf = *rebuilt
}

// applyFormatting merges font markers onto every token in the buffer.
// Formats set by inner nodes win.
func applyFormatting(buf *token.Buffer, f token.Formatting) {
	rebuilt := token.NewBuffer()
	for _, t := range buf.Tokens() {
		t.Format = f.Merge(t.Format)
		rebuilt.AppendToken(t)
	}
	*buf = *rebuilt
}
