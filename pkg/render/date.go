package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

func renderDate(ctx *Context, node *style.Date) error {
	child := ctx.Child()
	if node.Quotes {
		child.quoteDepth++
	}
	child.varsCalled++
	if d, ok := child.DateVariable(node.Variable); ok {
		child.varsNonEmpty++
		emitDate(child, node, d)
	}
	mergeWithAttrs(ctx, node.Attrs, child)
	return nil
}

func emitDate(ctx *Context, node *style.Date, d csl.Date) {
	if ctx.sortMode {
		ctx.Emit(SortableDate(d))
		return
	}
	if len(d.DateParts) == 0 {
		switch {
		case d.Literal != "":
			ctx.Emit(d.Literal)
		case d.Raw != "":
			ctx.Emit(d.Raw)
		case d.Season != "":
			ctx.Emit(seasonText(ctx, d))
		}
		return
	}

	parts := effectiveParts(ctx, node)
	if d.IsRange() {
		emitDateRange(ctx, node, parts, d)
		return
	}
	rendered := false
	for _, p := range parts {
		text := datePartValue(ctx, node, p, d, 0)
		if text == "" {
			continue
		}
		if rendered && node.Delimiter != "" {
			ctx.buf.Append(node.Delimiter, token.Delimiter)
		}
		emitDatePart(ctx, text, p)
		rendered = true
	}
}

// effectiveParts resolves the part list: explicit parts as declared, or the
// locale's format for the requested form with the node's part attributes
// overlaid and the date-parts filter applied
func effectiveParts(ctx *Context, node *style.Date) []style.DatePart {
	if node.Form == "" {
		return node.Parts
	}
	df := ctx.loc.DateFormat(node.Form)
	if df == nil {
		return node.Parts
	}
	allowed := map[string]bool{"year": true, "month": true, "day": true}
	if node.DateParts != "" {
		allowed = make(map[string]bool)
		for _, p := range strings.Split(node.DateParts, "-") {
			allowed[p] = true
		}
	}
	var out []style.DatePart
	for _, lp := range df.Parts {
		if !allowed[lp.Name] {
			continue
		}
		part := style.DatePart{
			Name:           lp.Name,
			Form:           lp.Form,
			RangeDelimiter: lp.RangeDelimiter,
		}
		part.Prefix = lp.Prefix
		part.Suffix = lp.Suffix
		for _, np := range node.Parts {
			if np.Name != lp.Name {
				continue
			}
			if np.Form != "" {
				part.Form = np.Form
			}
			if np.Prefix != "" {
				part.Prefix = np.Prefix
			}
			if np.Suffix != "" {
				part.Suffix = np.Suffix
			}
			if np.RangeDelimiter != "" {
				part.RangeDelimiter = np.RangeDelimiter
			}
			part.TextCase = np.TextCase
			part.Format = np.Format
			part.StripPeriods = np.StripPeriods
			break
		}
		out = append(out, part)
	}
	return out
}

// emitDateRange renders a two-part date. The from side runs through the
// last differing part with its suffix dropped, the to side starts at the
// first differing part with its prefix dropped; shared trailing parts
// render once.
func emitDateRange(ctx *Context, node *style.Date, parts []style.DatePart, d csl.Date) {
	diff := make(map[string]bool)
	for i, name := range []string{"year", "month", "day"} {
		if d.Part(0, i) != d.Part(1, i) {
			diff[name] = true
		}
	}
	firstDiff, lastDiff := -1, -1
	for i, p := range parts {
		if diff[p.Name] {
			if firstDiff < 0 {
				firstDiff = i
			}
			lastDiff = i
		}
	}
	if firstDiff < 0 {
		// both ends identical as far as this format renders
		for _, p := range parts {
			emitDatePart(ctx, datePartValue(ctx, node, p, d, 0), p)
		}
		return
	}

	delim := "–"
	for _, name := range []string{"year", "month", "day"} {
		if !diff[name] {
			continue
		}
		for _, p := range parts {
			if p.Name == name && p.RangeDelimiter != "" {
				delim = p.RangeDelimiter
			}
		}
		break
	}

	for i := 0; i <= lastDiff; i++ {
		p := parts[i]
		if i == lastDiff {
			p.Suffix = ""
		}
		emitDatePart(ctx, datePartValue(ctx, node, p, d, 0), p)
	}
	ctx.buf.Append(delim, token.Delimiter)
	for i := firstDiff; i < len(parts); i++ {
		p := parts[i]
		if i == firstDiff {
			p.Prefix = ""
		}
		emitDatePart(ctx, datePartValue(ctx, node, p, d, 1), p)
	}
}

func emitDatePart(ctx *Context, text string, part style.DatePart) {
	if text == "" {
		return
	}
	buf := token.NewBuffer()
	buf.Append(text, token.Text)
	if part.StripPeriods {
		applyStripPeriods(buf)
	}
	if part.TextCase != "" {
		applyTextCase(buf, part.TextCase)
	}
	if !part.Format.IsZero() {
		applyFormatting(buf, part.Format)
	}
	ApplyAffixes(buf, part.Prefix, part.Suffix)
	ctx.buf.AppendAll(buf)
}

func datePartValue(ctx *Context, node *style.Date, part style.DatePart, d csl.Date, entry int) string {
	switch part.Name {
	case "year":
		y := d.Part(entry, 0)
		if y == 0 {
			return ""
		}
		var text string
		if part.Form == "short" {
			text = fmt.Sprintf("%02d", y%100)
		} else {
			text = strconv.Itoa(y)
		}
		if node.Variable == "issued" {
			text += ctx.TakeYearSuffix()
		}
		return text
	case "month":
		m := d.Part(entry, 1)
		if m == 0 {
			if entry == 0 && d.Season != "" {
				return seasonText(ctx, d)
			}
			return ""
		}
		switch part.Form {
		case "numeric":
			return strconv.Itoa(m)
		case "numeric-leading-zeros":
			return fmt.Sprintf("%02d", m)
		case "short":
			return ctx.loc.Month(m, true)
		default:
			return ctx.loc.Month(m, false)
		}
	case "day":
		day := d.Part(entry, 2)
		if day == 0 {
			return ""
		}
		switch part.Form {
		case "numeric-leading-zeros":
			return fmt.Sprintf("%02d", day)
		case "ordinal":
			if day == 1 || !ctx.loc.LimitDayOrdinalsToDay1() {
				return ctx.loc.Ordinal(day)
			}
			return strconv.Itoa(day)
		default:
			return strconv.Itoa(day)
		}
	}
	return ""
}

func seasonText(ctx *Context, d csl.Date) string {
	if n, err := strconv.Atoi(strings.TrimSpace(d.Season)); err == nil {
		if s := ctx.loc.Season(n); s != "" {
			return s
		}
	}
	return d.Season
}

// SortableDate renders a date as a fixed-width key so lexicographic
// comparison matches chronological order. Missing parts pad with zeros.
func SortableDate(d csl.Date) string {
	if len(d.DateParts) == 0 {
		if d.Literal != "" {
			return d.Literal
		}
		return d.Raw
	}
	out := fmt.Sprintf("%04d%02d%02d", d.Part(0, 0), d.Part(0, 1), d.Part(0, 2))
	if d.IsRange() {
		out += fmt.Sprintf("-%04d%02d%02d", d.Part(1, 0), d.Part(1, 1), d.Part(1, 2))
	}
	return out
}
