package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/style"
)

// FormatNames renders a name list as one string per the effective options.
// This is the densest logic in the pipeline: the joiner between the last
// two names depends on the delimiter-precedes-last policy, and the joiner
// word must not double up whitespace with an already-appended delimiter.
func FormatNames(ctx *Context, names []csl.Name, opts style.NameOptions, etAlOverride *style.EtAl) string {
	if len(names) == 0 {
		return ""
	}

	min, useFirst := opts.EtAlMin, opts.EtAlUseFirst
	if ctx.position >= PositionSubsequent {
		if opts.EtAlSubsequentMin > 0 {
			min = opts.EtAlSubsequentMin
		}
		if opts.EtAlSubsequentUseFirst > 0 {
			useFirst = opts.EtAlSubsequentUseFirst
		}
	}
	truncate := min > 0 && useFirst > 0 && len(names) >= min && useFirst < len(names)
	if ctx.disamb.AllNames {
		truncate = false
	}
	// Given-name expansion has no effect on family-only names, so it also
	// lifts short-form names to the long form.
	if ctx.disamb.ExpandGivenNames && opts.Form == "short" {
		opts.Form = "long"
	}

	rendered := names
	if truncate {
		rendered = names[:useFirst]
	}

	if opts.Form == "count" {
		return strconv.Itoa(len(rendered))
	}

	delimiter := opts.Delimiter()
	var and string
	switch opts.And {
	case "text":
		and = " " + ctx.Term("and", locale.FormLong, false) + " "
	case "symbol":
		and = " & "
	default:
		and = delimiter
	}

	var sb strings.Builder

	if truncate {
		for i, n := range rendered {
			if i > 0 {
				sb.WriteString(delimiter)
			}
			sb.WriteString(formatName(ctx, n, opts, i))
		}
		if etAlText := etAlTerm(ctx, etAlOverride); etAlText != "" {
			lastIdx := len(rendered) - 1
			lastInverted := opts.NameAsSortOrder == "all" ||
				(lastIdx == 0 && opts.NameAsSortOrder == "first")
			sb.WriteString(etAlJoin(opts, delimiter, len(rendered), lastInverted))
			sb.WriteString(etAlText)
		}
		return sb.String()
	}

	for i := range rendered {
		sb.WriteString(formatName(ctx, rendered[i], opts, i))
		if i >= len(rendered)-1 {
			continue
		}
		if i < len(rendered)-2 {
			sb.WriteString(delimiter)
			continue
		}
		// the last pair: delimiter per policy, then the joiner
		delimiterAppended := false
		switch opts.DelimiterPrecedesLast {
		case "always":
			sb.WriteString(delimiter)
			delimiterAppended = true
		case "after-inverted-name":
			// the standard reads as "after a sort-ordered name", but
			// citeproc.js keys this off the first name, so styles do too
			if i == 0 {
				sb.WriteString(delimiter)
				delimiterAppended = true
			}
		case "never":
		default: // contextual
			if len(rendered) > 2 {
				sb.WriteString(delimiter)
				delimiterAppended = true
			}
		}
		if !delimiterAppended || and != delimiter {
			appendAnd(&sb, and)
		}
	}
	return sb.String()
}

// appendAnd appends the joiner word, collapsing adjacent whitespace with
// what is already in the builder
func appendAnd(sb *strings.Builder, and string) {
	if and == "" {
		return
	}
	s := sb.String()
	if s != "" {
		last, _ := utf8.DecodeLastRuneInString(s)
		first, size := utf8.DecodeRuneInString(and)
		if unicode.IsSpace(last) && unicode.IsSpace(first) {
			sb.WriteString(and[size:])
			return
		}
	}
	sb.WriteString(and)
}

// formatName renders a single name. index selects whether name-as-sort-
// order="first" applies.
func formatName(ctx *Context, n csl.Name, opts style.NameOptions, index int) string {
	if n.IsLiteral() {
		return n.Literal
	}

	if opts.Form == "short" {
		return joinNonEmpty(" ", n.NonDroppingParticle, n.Family)
	}

	given := n.Given
	if mark := effectiveInitializeWith(ctx, opts); mark != nil {
		given = initializeGiven(given, *mark)
	}
	given = strings.TrimRightFunc(given, unicode.IsSpace)

	inverted := opts.NameAsSortOrder == "all" ||
		(index == 0 && opts.NameAsSortOrder == "first")
	if inverted {
		sep := opts.EffectiveSortSeparator()
		out := joinNonEmpty(" ", n.NonDroppingParticle, n.Family)
		if givenPart := joinNonEmpty(" ", given, n.DroppingParticle); givenPart != "" {
			out += sep + givenPart
		}
		if n.Suffix != "" {
			out += sep + n.Suffix
		}
		return out
	}

	out := joinNonEmpty(" ", given, n.DroppingParticle, n.NonDroppingParticle, n.Family)
	if n.Suffix != "" {
		if n.CommaSuffix {
			out += ", " + n.Suffix
		} else {
			out += " " + n.Suffix
		}
	}
	return out
}

// effectiveInitializeWith returns the initialization mark, or nil when
// given names render in full (initialize="false" or a disambiguation pass
// that expanded them)
func effectiveInitializeWith(ctx *Context, opts style.NameOptions) *string {
	if ctx.disamb.ExpandGivenNames {
		return nil
	}
	if opts.Initialize != nil && !*opts.Initialize {
		return nil
	}
	return opts.InitializeWith
}

// initializeGiven reduces every given-name token to its first letter plus
// the initialization mark. Runs of whitespace and periods collapse into a
// single boundary.
func initializeGiven(given, mark string) string {
	var sb strings.Builder
	found := true
	for _, r := range given {
		if unicode.IsSpace(r) || r == '.' {
			found = true
		} else if found {
			sb.WriteRune(r)
			sb.WriteString(mark)
			found = false
		}
	}
	return sb.String()
}

// etAlJoin returns what separates the truncated name list from the et-al
// mark
func etAlJoin(opts style.NameOptions, delimiter string, renderedCount int, lastInverted bool) string {
	switch opts.DelimiterPrecedesEtAl {
	case "always":
		return delimiter
	case "never":
		return " "
	case "after-inverted-name":
		if lastInverted {
			return delimiter
		}
		return " "
	default: // contextual
		if renderedCount >= 2 {
			return delimiter
		}
		return " "
	}
}

func etAlTerm(ctx *Context, override *style.EtAl) string {
	term := "et-al"
	if override != nil && override.Term != "" {
		term = override.Term
	}
	return ctx.Term(term, locale.FormLong, false)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
