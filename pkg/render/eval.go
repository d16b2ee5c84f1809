package render

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

// Render evaluates elements depth-first into the context's buffer
func Render(ctx *Context, elements []style.Element) error {
	for _, el := range elements {
		if err := renderElement(ctx, el); err != nil {
			return err
		}
	}
	return nil
}

func renderElement(ctx *Context, el style.Element) error {
	switch node := el.(type) {
	case *style.Text:
		return renderText(ctx, node)
	case *style.Label:
		return renderLabel(ctx, node)
	case *style.Names:
		return renderNames(ctx, node)
	case *style.Date:
		return renderDate(ctx, node)
	case *style.Number:
		return renderNumber(ctx, node)
	case *style.Group:
		return renderGroup(ctx, node)
	case *style.Choose:
		return renderChoose(ctx, node)
	}
	return errors.Newf(errors.ErrStyleInvalid, "cannot render element of type %T", el)
}

func renderText(ctx *Context, node *style.Text) error {
	child := ctx.Child()
	if node.Quotes {
		child.quoteDepth++
	}
	switch {
	case node.Variable != "":
		child.varsCalled++
		if v, ok := lookupTextVariable(child, node.Variable, node.Form); ok {
			child.varsNonEmpty++
			emitVariable(child, node.Variable, v)
		}
	case node.Macro != "":
		if ctx.style == nil {
			return errors.Newf(errors.ErrMacroUndefined, "macro %q is not defined", node.Macro).
				WithDetail("macro", node.Macro)
		}
		if err := child.enterMacro(node.Macro); err != nil {
			return err
		}
		m, err := ctx.style.Macro(node.Macro)
		if err != nil {
			return err
		}
		if err := Render(child, m.Children); err != nil {
			return err
		}
	case node.Term != "":
		child.Emit(child.Term(node.Term, locale.Form(node.Form), node.Plural))
	case node.Value != "":
		child.Emit(node.Value)
	}
	mergeWithAttrs(ctx, node.Attrs, child)
	return nil
}

// lookupTextVariable resolves a variable for a text node. form="short"
// consults the -short companion variable and the abbreviation provider
// before falling back to the full value.
func lookupTextVariable(ctx *Context, name, form string) (string, bool) {
	if name == "year-suffix" {
		v := ctx.TakeYearSuffix()
		return v, v != ""
	}
	if form == "short" {
		if v, ok := ctx.Variable(name + "-short"); ok {
			return v, true
		}
		if v, ok := ctx.Variable(name); ok {
			if ctx.abbrevs != nil {
				if abbr, found := ctx.abbrevs.Abbreviation(name, v); found {
					return abbr, true
				}
			}
			return v, true
		}
		return "", false
	}
	return ctx.Variable(name)
}

func emitVariable(ctx *Context, name, value string) {
	switch name {
	case "URL":
		ctx.EmitTyped(value, token.URL)
	case "DOI":
		ctx.EmitTyped(value, token.DOI)
	default:
		ctx.Emit(value)
	}
}

func renderLabel(ctx *Context, node *style.Label) error {
	child := ctx.Child()
	if node.Quotes {
		child.quoteDepth++
	}

	term := node.Variable
	if node.Variable == "locator" {
		if lbl, ok := child.Variable("label"); ok {
			term = lbl
		} else {
			term = "page"
		}
	}
	if value, ok := child.Variable(node.Variable); ok {
		plural := false
		switch node.Plural {
		case "always":
			plural = true
		case "never":
			plural = false
		default:
			plural = valueIsPlural(node.Variable, value)
		}
		child.Emit(child.Term(term, locale.Form(node.Form), plural))
	}
	mergeWithAttrs(ctx, node.Attrs, child)
	return nil
}

// valueIsPlural decides contextual label plurality: ranges and lists are
// plural, count variables are plural when greater than one
func valueIsPlural(variable, v string) bool {
	switch variable {
	case "number-of-pages", "number-of-volumes":
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n != 1
		}
	}
	return strings.ContainsAny(v, ",&-") || strings.Contains(v, "–")
}

func renderNames(ctx *Context, node *style.Names) error {
	child := ctx.Child()
	if node.Quotes {
		child.quoteDepth++
	}

	opts := child.opts
	if node.Name != nil {
		opts = opts.Merge(node.Name.Options)
	}
	delimiter := node.Delimiter
	if delimiter == "" {
		delimiter = opts.NamesDelimiter
	}

	child.varsCalled++

	rendered := false
	for _, variable := range node.Variables {
		names, ok := child.NameVariable(variable)
		if !ok {
			continue
		}
		formatted := FormatNames(child, names, opts, node.EtAl)
		if formatted == "" {
			continue
		}
		if rendered && delimiter != "" {
			child.buf.Append(delimiter, token.Delimiter)
		}
		emitNameList(child, node, variable, len(names), formatted, opts)
		rendered = true
	}

	if rendered {
		child.varsNonEmpty++
	} else if len(node.Substitute) > 0 {
		ok, err := renderSubstitute(child, node)
		if err != nil {
			return err
		}
		if ok {
			child.varsNonEmpty++
			rendered = true
		}
	}

	if rendered {
		captureLeadNames(child)
	}

	mergeWithAttrs(ctx, node.Attrs, child)
	return nil
}

// captureLeadNames records the first non-empty names output of the entry
// and swaps in the substitute text when one is pending
func captureLeadNames(c *Context) {
	if !c.state.leadNamesSet {
		c.state.leadNamesSet = true
		c.state.leadNames = c.buf.String()
	}
	if c.state.nameSubstitute != "" {
		c.buf.Clear()
		c.buf.Append(c.state.nameSubstitute, token.Text)
		c.state.nameSubstitute = ""
	}
}

// emitNameList appends one variable's formatted names plus its role label
// in document order
func emitNameList(ctx *Context, node *style.Names, variable string, count int, formatted string, opts style.NameOptions) {
	nameBuf := token.NewBuffer()
	nameBuf.Append(formatted, token.Text)
	if node.Name != nil {
		a := node.Name.Attrs
		if a.StripPeriods {
			applyStripPeriods(nameBuf)
		}
		if a.TextCase != "" {
			applyTextCase(nameBuf, a.TextCase)
		}
		if !a.Format.IsZero() {
			applyFormatting(nameBuf, a.Format)
		}
		ApplyAffixes(nameBuf, a.Prefix, a.Suffix)
	}

	var labelBuf *token.Buffer
	if node.Label != nil && opts.Form != "count" {
		labelBuf = renderRoleLabel(ctx, node.Label, variable, count > 1)
	}

	if labelBuf != nil && node.LabelFirst {
		ctx.buf.AppendAll(labelBuf)
	}
	ctx.buf.AppendAll(nameBuf)
	if labelBuf != nil && !node.LabelFirst {
		ctx.buf.AppendAll(labelBuf)
	}
}

// renderRoleLabel renders the role term ("editor" so "ed.") for a name
// variable, or nil when the locale has no term for it
func renderRoleLabel(ctx *Context, lbl *style.Label, variable string, plural bool) *token.Buffer {
	p := plural
	switch lbl.Plural {
	case "always":
		p = true
	case "never":
		p = false
	}
	term := ctx.Term(variable, locale.Form(lbl.Form), p)
	if term == "" {
		return nil
	}
	buf := token.NewBuffer()
	buf.Append(term, token.Text)
	if lbl.StripPeriods {
		applyStripPeriods(buf)
	}
	if lbl.TextCase != "" {
		applyTextCase(buf, lbl.TextCase)
	}
	if !lbl.Format.IsZero() {
		applyFormatting(buf, lbl.Format)
	}
	ApplyAffixes(buf, lbl.Prefix, lbl.Suffix)
	return buf
}

// renderSubstitute renders the first non-empty substitute child and
// suppresses its source variables for the rest of the entry
func renderSubstitute(ctx *Context, node *style.Names) (bool, error) {
	for _, el := range node.Substitute {
		if nested, ok := el.(*style.Names); ok {
			el = inheritNames(nested, node)
		}
		sub := ctx.Child()
		if err := renderElement(sub, el); err != nil {
			return false, err
		}
		if sub.Buffer().IsEmpty() {
			continue
		}
		ctx.buf.AppendAll(sub.Buffer())
		suppressSubstituted(ctx, el)
		return true, nil
	}
	return false, nil
}

// inheritNames fills a bare substitute names element with the parent's
// name, et-al and label configuration
func inheritNames(nested, parent *style.Names) *style.Names {
	out := *nested
	if out.Name == nil {
		out.Name = parent.Name
	}
	if out.EtAl == nil {
		out.EtAl = parent.EtAl
	}
	if out.Label == nil && parent.Label != nil {
		out.Label = parent.Label
		out.LabelFirst = parent.LabelFirst
	}
	return &out
}

func suppressSubstituted(ctx *Context, el style.Element) {
	switch node := el.(type) {
	case *style.Names:
		for _, v := range node.Variables {
			ctx.SuppressVariable(v)
		}
	case *style.Text:
		if node.Variable != "" {
			ctx.SuppressVariable(node.Variable)
		}
	case *style.Date:
		if node.Variable != "" {
			ctx.SuppressVariable(node.Variable)
		}
	case *style.Number:
		if node.Variable != "" {
			ctx.SuppressVariable(node.Variable)
		}
	}
}

func renderNumber(ctx *Context, node *style.Number) error {
	child := ctx.Child()
	if node.Quotes {
		child.quoteDepth++
	}
	child.varsCalled++
	if v, ok := child.Variable(node.Variable); ok {
		child.varsNonEmpty++
		child.Emit(formatNumber(child, v, node.Form))
	}
	mergeWithAttrs(ctx, node.Attrs, child)
	return nil
}

func renderGroup(ctx *Context, node *style.Group) error {
	group := ctx.Child()
	if node.Quotes {
		group.quoteDepth++
	}

	rendered := false
	for _, el := range node.Children {
		sub := group.Child()
		if err := renderElement(sub, el); err != nil {
			return err
		}
		group.varsCalled += sub.varsCalled
		group.varsNonEmpty += sub.varsNonEmpty
		if sub.Buffer().IsEmpty() {
			continue
		}
		if rendered && node.Delimiter != "" {
			group.buf.Append(node.Delimiter, token.Delimiter)
		}
		group.buf.AppendAll(sub.Buffer())
		rendered = true
	}

	// a group that consulted variables and found none suppresses itself,
	// term-only children notwithstanding
	if group.varsCalled > 0 && group.varsNonEmpty == 0 {
		ctx.varsCalled += group.varsCalled
		return nil
	}
	mergeWithAttrs(ctx, node.Attrs, group)
	return nil
}

func renderChoose(ctx *Context, node *style.Choose) error {
	for _, branch := range node.Branches {
		if matchesConditions(ctx, branch.Conditions) {
			return Render(ctx, branch.Children)
		}
	}
	return nil
}

func matchesConditions(ctx *Context, c style.Conditions) bool {
	var results []bool
	for _, t := range c.Types {
		results = append(results, ctx.item != nil && string(ctx.item.Type()) == t)
	}
	for _, v := range c.Variables {
		results = append(results, ctx.HasVariable(v))
	}
	for _, v := range c.IsNumeric {
		val, ok := ctx.Variable(v)
		results = append(results, ok && IsNumericValue(val))
	}
	for _, v := range c.IsUncertainDate {
		d, ok := ctx.DateVariable(v)
		results = append(results, ok && d.Circa)
	}
	for _, p := range c.Positions {
		results = append(results, ctx.MatchesPosition(p))
	}
	for _, l := range c.Locators {
		lbl, _ := ctx.Variable("label")
		if lbl == "" {
			lbl = "page"
		}
		results = append(results, ctx.HasVariable("locator") && lbl == l)
	}
	if c.HasDisambiguate {
		results = append(results, ctx.disamb.Pass == c.Disambiguate)
	}
	if len(results) == 0 {
		return true
	}
	switch c.Match {
	case "any":
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	case "none":
		for _, r := range results {
			if r {
				return false
			}
		}
		return true
	default: // all
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	}
}
