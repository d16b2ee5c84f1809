// Package token defines the intermediate output representation of the
// rendering pipeline. Rendered text is kept as an ordered sequence of typed
// tokens rather than a single string, so that later stages (period
// stripping, punctuation placement, output encoding) can operate on
// structure instead of scanning text.
package token

// Type classifies a token within a rendered stream
type Type int

const (
	// Text is plain rendered content
	Text Type = iota
	// Prefix is affix text emitted before an element's content
	Prefix
	// Suffix is affix text emitted after an element's content
	Suffix
	// Delimiter joins sibling renditions
	Delimiter
	// OpenQuote and CloseQuote carry locale quote glyphs
	OpenQuote
	CloseQuote
	// URL and DOI mark link targets for output backends that convert links
	URL
	DOI
)

// String returns the lowercase name of the token type
func (t Type) String() string {
	switch t {
	case Text:
		return "text"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Delimiter:
		return "delimiter"
	case OpenQuote:
		return "open-quote"
	case CloseQuote:
		return "close-quote"
	case URL:
		return "url"
	case DOI:
		return "doi"
	}
	return "unknown"
}

// FontStyle is the font-style formatting attribute
type FontStyle int

// Font styles
const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

// FontVariant is the font-variant formatting attribute
type FontVariant int

// Font variants
const (
	FontVariantNormal FontVariant = iota
	FontVariantSmallCaps
)

// FontWeight is the font-weight formatting attribute
type FontWeight int

// Font weights
const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
	FontWeightLight
)

// TextDecoration is the text-decoration formatting attribute
type TextDecoration int

// Text decorations
const (
	TextDecorationNone TextDecoration = iota
	TextDecorationUnderline
)

// VerticalAlign is the vertical-align formatting attribute
type VerticalAlign int

// Vertical alignments
const (
	VerticalAlignBaseline VerticalAlign = iota
	VerticalAlignSup
	VerticalAlignSub
)

// Formatting carries the font markers a style node attached to its output.
// The zero value means "no formatting". Output backends translate these to
// concrete markup; the core never emits markup itself.
type Formatting struct {
	FontStyle      FontStyle
	FontVariant    FontVariant
	FontWeight     FontWeight
	TextDecoration TextDecoration
	VerticalAlign  VerticalAlign
}

// IsZero reports whether no formatting attribute is set
func (f Formatting) IsZero() bool {
	return f == Formatting{}
}

// Merge overlays the non-default attributes of other onto f and returns the
// result. Inner nodes win over inherited formatting.
func (f Formatting) Merge(other Formatting) Formatting {
	out := f
	if other.FontStyle != FontStyleNormal {
		out.FontStyle = other.FontStyle
	}
	if other.FontVariant != FontVariantNormal {
		out.FontVariant = other.FontVariant
	}
	if other.FontWeight != FontWeightNormal {
		out.FontWeight = other.FontWeight
	}
	if other.TextDecoration != TextDecorationNone {
		out.TextDecoration = other.TextDecoration
	}
	if other.VerticalAlign != VerticalAlignBaseline {
		out.VerticalAlign = other.VerticalAlign
	}
	return out
}

// Token is one (text, type) pair in a rendered stream, together with the
// formatting its source node declared
type Token struct {
	Text   string
	Type   Type
	Format Formatting
}
