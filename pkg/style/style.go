package style

import (
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/locale"
)

// Info identifies a style
type Info struct {
	Title      string
	TitleShort string
	ID         string
}

// Layout is the rendering root of a citation or bibliography element
type Layout struct {
	Attrs
	Delimiter string
	Children  []Element
}

// SortKey is one declared sort criterion, either a variable or a macro
type SortKey struct {
	Variable      string
	Macro         string
	Descending    bool
	NamesMin      int
	NamesUseFirst int
}

// Sort holds the declared sort keys in priority order
type Sort struct {
	Keys []SortKey
}

// Citation is the style's citation element
type Citation struct {
	Layout         *Layout
	Sort           *Sort
	Options        NameOptions
	Disambiguation DisambiguationOptions
	// collapse and note-distance options
	Collapse                    string
	NearNoteDistance            int
	GivennameDisambiguationRule string
}

// Bibliography is the style's bibliography element
type Bibliography struct {
	Layout                     *Layout
	Sort                       *Sort
	Options                    NameOptions
	HangingIndent              bool
	SecondFieldAlign           string // "", "flush" or "margin"
	LineSpacing                int
	EntrySpacing               int
	SubsequentAuthorSubstitute string
}

// Style is a parsed, immutable style definition
type Style struct {
	Class         string // "in-text" or "note"
	Version       string
	DefaultLocale string
	Info          Info
	Options       NameOptions
	Macros        map[string]*Macro
	Citation      *Citation
	Bibliography  *Bibliography
	locales       []*locale.Locale
}

// Macro returns the named macro subtree
func (s *Style) Macro(name string) (*Macro, error) {
	m, ok := s.Macros[name]
	if !ok {
		return nil, errors.Newf(errors.ErrMacroUndefined, "macro %q is not defined", name).
			WithDetail("macro", name)
	}
	return m, nil
}

// HasBibliography reports whether the style declares a bibliography
func (s *Style) HasBibliography() bool {
	return s.Bibliography != nil && s.Bibliography.Layout != nil
}

// MergeLocale overlays the style's embedded locale definitions onto a base
// locale in document order
func (s *Style) MergeLocale(base *locale.Locale) *locale.Locale {
	out := base
	for _, overlay := range s.locales {
		out = out.Merge(overlay)
	}
	return out
}

// CitationNameOptions returns the effective inheritable options for
// citation rendering
func (s *Style) CitationNameOptions() NameOptions {
	if s.Citation == nil {
		return s.Options
	}
	return s.Options.Merge(s.Citation.Options)
}

// BibliographyNameOptions returns the effective inheritable options for
// bibliography rendering
func (s *Style) BibliographyNameOptions() NameOptions {
	if s.Bibliography == nil {
		return s.Options
	}
	return s.Options.Merge(s.Bibliography.Options)
}
