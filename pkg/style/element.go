// Package style holds the parsed style definition: an immutable element
// tree compiled once per processor, plus the macro table, sort keys and
// inheritable name options a style declares. The tree is a closed set of
// node kinds; the evaluator dispatches over them with a type switch.
package style

import "github.com/arthur-debert/citekit/pkg/token"

// Element is one node of the style tree. The set of implementations is
// fixed: Text, Names, Label, Date, Number, Group and Choose.
type Element interface {
	element()
}

// Attrs are the rendering attributes any element may carry. Affixes wrap
// non-empty output only; unknown text-case values render untransformed.
type Attrs struct {
	Prefix       string
	Suffix       string
	TextCase     string
	Quotes       bool
	StripPeriods bool
	Format       token.Formatting
	Display      string
}

// Text renders exactly one of: an item variable, a macro, a locale term or
// a literal value
type Text struct {
	Attrs
	Variable string
	Macro    string
	Term     string
	Value    string
	Form     string
	Plural   bool
}

// Label renders the localized term for a variable, picking singular or
// plural by the variable's value
type Label struct {
	Attrs
	Variable string
	Form     string
	Plural   string // "contextual", "always" or "never"
}

// Names renders one or more name variables
type Names struct {
	Attrs
	Variables  []string
	Delimiter  string
	Name       *Name
	EtAl       *EtAl
	Label      *Label
	LabelFirst bool // label precedes the names in document order
	Substitute []Element
}

// Name carries the formatting options for individual names. Zero values
// mean "inherit from the enclosing scope".
type Name struct {
	Attrs
	Options NameOptions
	Parts   []NamePart
}

// NamePart formats the family or given part of every rendered name
type NamePart struct {
	Attrs
	Name string // "family" or "given"
}

// EtAl overrides the term and formatting of the et-al truncation marker
type EtAl struct {
	Attrs
	Term string
}

// Date renders a date variable, either through a localized format (Form
// set) or through explicit child parts
type Date struct {
	Attrs
	Variable  string
	Form      string // "", "text" or "numeric"
	DateParts string // part filter for localized forms, e.g. "year-month"
	Delimiter string
	Parts     []DatePart
}

// DatePart renders one part of a date
type DatePart struct {
	Attrs
	Name           string // "year", "month" or "day"
	Form           string
	RangeDelimiter string
}

// Number renders a numeric variable in one of several numbering forms
type Number struct {
	Attrs
	Variable string
	Form     string // "numeric", "ordinal", "long-ordinal" or "roman"
}

// Group renders its children joined by a delimiter. A group whose children
// all render empty is suppressed entirely, affixes included; a group whose
// variable-referencing children all came up empty is suppressed even when
// term-only children produced text.
type Group struct {
	Attrs
	Delimiter string
	Children  []Element
}

// Choose renders the first branch whose conditions match
type Choose struct {
	Branches []Branch
}

// Branch is one if/else-if/else arm. An else arm has zero conditions and
// always matches.
type Branch struct {
	Conditions Conditions
	Children   []Element
}

// Conditions are the tests of a choose branch, combined per Match
type Conditions struct {
	Match           string // "all", "any" or "none"
	Types           []string
	Variables       []string
	IsNumeric       []string
	IsUncertainDate []string
	Positions       []string
	Locators        []string
	Disambiguate    bool
	HasDisambiguate bool
}

// IsElse reports whether the branch matches unconditionally
func (b Branch) IsElse() bool {
	c := b.Conditions
	return len(c.Types) == 0 && len(c.Variables) == 0 && len(c.IsNumeric) == 0 &&
		len(c.IsUncertainDate) == 0 && len(c.Positions) == 0 &&
		len(c.Locators) == 0 && !c.HasDisambiguate
}

// Macro is a named subtree invoked by Text.Macro or a sort key
type Macro struct {
	Name     string
	Children []Element
}

func (*Text) element()   {}
func (*Label) element()  {}
func (*Names) element()  {}
func (*Date) element()   {}
func (*Number) element() {}
func (*Group) element()  {}
func (*Choose) element() {}
