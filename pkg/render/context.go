// Package render walks a parsed style tree over one reference item and
// produces a token stream. Contexts are short-lived execution frames: one
// per render call, with child contexts for every sub-expression whose
// output must be measured before it is kept.
package render

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

// maxMacroDepth bounds macro expansion. Styles nest macros a handful of
// levels deep; hitting the bound means the macro table is cyclic.
const maxMacroDepth = 64

// Position describes how an item relates to its earlier cites
type Position int

// Positions, in escalating specificity. Ibid implies subsequent.
const (
	PositionFirst Position = iota
	PositionSubsequent
	PositionIbid
	PositionIbidWithLocator
)

// Disambiguation is the view of an item's disambiguation state a render
// call receives
type Disambiguation struct {
	// ExpandGivenNames renders full given names instead of initials
	ExpandGivenNames bool
	// AllNames disables et-al truncation
	AllNames bool
	// YearSuffix is the assigned suffix letter, or ""
	YearSuffix string
	// Pass is the value the choose disambiguate condition tests
	Pass bool
}

// Abbreviations resolves short-form lookups for variables
type Abbreviations interface {
	Abbreviation(variable, value string) (string, bool)
}

// Params configure a new render context
type Params struct {
	Style          *style.Style
	Item           *csl.Item
	Locale         *locale.Locale
	Abbreviations  Abbreviations
	Options        style.NameOptions
	Variables      map[string]string
	Position       Position
	NearNote       bool
	Disambiguation Disambiguation
	SortMode       bool
	Bibliography   bool
	// NameSubstitute, when set, replaces the output of the entry's first
	// non-empty names element. Drives the bibliography
	// subsequent-author-substitute option.
	NameSubstitute string
}

// renderState is shared between a context and all its children for the
// duration of one entry render
type renderState struct {
	suppressed        map[string]bool
	yearSuffixEmitted bool
	leadNames         string
	leadNamesSet      bool
	nameSubstitute    string
}

// Context is one execution frame of the evaluator
type Context struct {
	style      *style.Style
	item       *csl.Item
	loc        *locale.Locale
	abbrevs    Abbreviations
	buf        *token.Buffer
	opts       style.NameOptions
	vars       map[string]string
	position   Position
	nearNote   bool
	disamb     Disambiguation
	sortMode   bool
	bib        bool
	quoteDepth int
	macroDepth int
	state      *renderState

	// group-suppression accounting: how many variables the subtree
	// consulted and how many of them had values
	varsCalled   int
	varsNonEmpty int
}

// NewContext builds the root context for one entry render
func NewContext(p Params) *Context {
	loc := p.Locale
	if loc == nil {
		loc = locale.Default()
	}
	return &Context{
		style:    p.Style,
		item:     p.Item,
		loc:      loc,
		abbrevs:  p.Abbreviations,
		buf:      token.NewBuffer(),
		opts:     p.Options,
		vars:     p.Variables,
		position: p.Position,
		nearNote: p.NearNote,
		disamb:   p.Disambiguation,
		sortMode: p.SortMode,
		bib:      p.Bibliography,
		state: &renderState{
			suppressed:     make(map[string]bool),
			nameSubstitute: p.NameSubstitute,
		},
	}
}

// Child spawns a context with a fresh buffer and zeroed suppression
// counters. Item, locale and entry state are shared.
func (c *Context) Child() *Context {
	child := *c
	child.buf = token.NewBuffer()
	child.varsCalled = 0
	child.varsNonEmpty = 0
	return &child
}

// Item returns the item under render, which may be nil in ad-hoc term
// renders
func (c *Context) Item() *csl.Item {
	return c.item
}

// Locale returns the active locale
func (c *Context) Locale() *locale.Locale {
	return c.loc
}

// Buffer returns the output buffer of this frame
func (c *Context) Buffer() *token.Buffer {
	return c.buf
}

// Position returns the item's citation position
func (c *Context) Position() Position {
	return c.position
}

// Variable resolves a text or number variable: overlay values set by the
// caller win over item fields, suppressed variables read as absent
func (c *Context) Variable(name string) (string, bool) {
	if v, ok := c.vars[name]; ok {
		return v, v != ""
	}
	if name == "year-suffix" {
		if c.disamb.YearSuffix != "" {
			return c.disamb.YearSuffix, true
		}
		return "", false
	}
	if c.state.suppressed[name] || c.item == nil {
		return "", false
	}
	return c.item.Variable(name)
}

// NameVariable resolves a name variable
func (c *Context) NameVariable(name string) ([]csl.Name, bool) {
	if c.state.suppressed[name] || c.item == nil {
		return nil, false
	}
	return c.item.NameVariable(name)
}

// DateVariable resolves a date variable
func (c *Context) DateVariable(name string) (csl.Date, bool) {
	if c.state.suppressed[name] || c.item == nil {
		return csl.Date{}, false
	}
	return c.item.DateVariable(name)
}

// HasVariable reports whether any variable class has a value for name
func (c *Context) HasVariable(name string) bool {
	if v, ok := c.vars[name]; ok {
		return v != ""
	}
	if c.state.suppressed[name] || c.item == nil {
		return false
	}
	return c.item.HasVariable(name)
}

// SuppressVariable hides a variable for the remainder of the entry. Used
// after substitution so the substituted value does not render twice.
func (c *Context) SuppressVariable(name string) {
	c.state.suppressed[name] = true
}

// Term resolves a locale term, empty when undefined
func (c *Context) Term(name string, form locale.Form, plural bool) string {
	t, _ := c.loc.Term(name, form, plural)
	return t
}

// TakeYearSuffix returns the assigned year suffix the first time it is
// called during an entry render, and "" afterwards. The suffix attaches to
// exactly one rendered year.
func (c *Context) TakeYearSuffix() string {
	if c.disamb.YearSuffix == "" || c.state.yearSuffixEmitted || c.sortMode {
		return ""
	}
	c.state.yearSuffixEmitted = true
	return c.disamb.YearSuffix
}

// Emit appends plain text to the buffer
func (c *Context) Emit(text string) {
	c.buf.Append(text, token.Text)
}

// EmitTyped appends text with an explicit token type
func (c *Context) EmitTyped(text string, typ token.Type) {
	c.buf.Append(text, typ)
}

// LeadNames returns the rendered text of the entry's first non-empty
// names element. Bibliography rendering compares it across entries to
// detect repeated contributor lists.
func (c *Context) LeadNames() string {
	return c.state.leadNames
}

// MatchesPosition evaluates a position condition. Position conditions are
// always false in bibliography renders.
func (c *Context) MatchesPosition(p string) bool {
	if c.bib {
		return false
	}
	switch p {
	case "first":
		return c.position == PositionFirst
	case "subsequent":
		return c.position >= PositionSubsequent
	case "ibid":
		return c.position >= PositionIbid
	case "ibid-with-locator":
		return c.position == PositionIbidWithLocator
	case "near-note":
		return c.nearNote
	}
	return false
}

// enterMacro increments the expansion depth, failing once the bound is
// exceeded
func (c *Context) enterMacro(name string) error {
	c.macroDepth++
	if c.macroDepth > maxMacroDepth {
		return errors.Newf(errors.ErrMacroCycle,
			"macro expansion exceeded depth %d at %q", maxMacroDepth, name).
			WithDetail("macro", name)
	}
	return nil
}

// mergeWithAttrs applies a node's rendering attributes to a finished child
// buffer and appends the result to the parent. Suppression counters
// propagate regardless of whether the buffer was empty.
func mergeWithAttrs(ctx *Context, a style.Attrs, child *Context) {
	ctx.varsCalled += child.varsCalled
	ctx.varsNonEmpty += child.varsNonEmpty

	buf := child.Buffer()
	if buf.IsEmpty() {
		return
	}
	if a.StripPeriods {
		applyStripPeriods(buf)
	}
	if a.TextCase != "" {
		applyTextCase(buf, a.TextCase)
	}
	if !a.Format.IsZero() {
		applyFormatting(buf, a.Format)
	}
	if a.Quotes {
		applyQuotes(buf, ctx.loc, ctx.quoteDepth)
	}
	if a.Prefix != "" {
		buf.Prepend(a.Prefix, token.Prefix)
	}
	if a.Suffix != "" {
		appendSuffix(buf, a.Suffix, ctx.loc)
	}
	ctx.buf.AppendAll(buf)
}

// IsNumericValue reports whether a variable value reads as numeric in the
// style-condition sense: every chunk is digits, optionally wrapped in
// letters ("12", "2nd", "A5"), chunks joined by comma, ampersand or dash
func IsNumericValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	chunks := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == '&' || r == '-' || r == '–'
	})
	if len(chunks) == 0 {
		return false
	}
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		hasDigit := false
		for _, r := range chunk {
			if unicode.IsDigit(r) {
				hasDigit = true
			} else if !unicode.IsLetter(r) {
				return false
			}
		}
		if !hasDigit {
			return false
		}
	}
	return true
}
