package style

import (
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/logging"
	"github.com/arthur-debert/citekit/pkg/token"
)

// Parse reads a CSL style document. Attribute problems are normalized away;
// structural problems (wrong root, missing citation layout) fail with a
// style parse error.
func Parse(r io.Reader) (*Style, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrStyleParse, "failed to read style XML")
	}
	return parseDocument(doc)
}

// ParseBytes reads a CSL style document from a byte slice
func ParseBytes(data []byte) (*Style, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrStyleParse, "failed to read style XML")
	}
	return parseDocument(doc)
}

func parseDocument(doc *etree.Document) (*Style, error) {
	root := doc.Root()
	if root == nil || root.Tag != "style" {
		return nil, errors.New(errors.ErrStyleParse, "document root is not a style element")
	}

	s := &Style{
		Class:         root.SelectAttrValue("class", "in-text"),
		Version:       root.SelectAttrValue("version", ""),
		DefaultLocale: root.SelectAttrValue("default-locale", ""),
		Options:       parseNameOptions(root),
		Macros:        make(map[string]*Macro),
	}

	logger := logging.GetLogger("style")
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "info":
			s.Info = parseInfo(el)
		case "locale":
			s.locales = append(s.locales, locale.ParseElement(el))
		case "macro":
			name := el.SelectAttrValue("name", "")
			if name == "" {
				return nil, errors.New(errors.ErrStyleInvalid, "macro without a name")
			}
			s.Macros[name] = &Macro{Name: name, Children: parseChildren(el)}
		case "citation":
			s.Citation = parseCitation(el)
		case "bibliography":
			s.Bibliography = parseBibliography(el)
		default:
			logger.Debug().Str("element", el.Tag).Msg("skipping unknown style element")
		}
	}

	if s.Citation == nil || s.Citation.Layout == nil {
		return nil, errors.New(errors.ErrStyleInvalid, "style has no citation layout")
	}
	if s.Bibliography != nil && s.Bibliography.Layout == nil {
		return nil, errors.New(errors.ErrStyleInvalid, "bibliography has no layout")
	}
	return s, nil
}

func parseInfo(el *etree.Element) Info {
	info := Info{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "title":
			info.Title = strings.TrimSpace(child.Text())
		case "title-short":
			info.TitleShort = strings.TrimSpace(child.Text())
		case "id":
			info.ID = strings.TrimSpace(child.Text())
		}
	}
	return info
}

func parseCitation(el *etree.Element) *Citation {
	c := &Citation{
		Options: parseNameOptions(el),
		Disambiguation: DisambiguationOptions{
			AddGivenname:  boolAttr(el, "disambiguate-add-givenname", true),
			AddNames:      boolAttr(el, "disambiguate-add-names", true),
			AddYearSuffix: boolAttr(el, "disambiguate-add-year-suffix", true),
		},
		Collapse:                    el.SelectAttrValue("collapse", ""),
		NearNoteDistance:            intAttr(el, "near-note-distance", 5),
		GivennameDisambiguationRule: el.SelectAttrValue("givenname-disambiguation-rule", "by-cite"),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "sort":
			c.Sort = parseSort(child)
		case "layout":
			c.Layout = parseLayout(child)
		}
	}
	return c
}

func parseBibliography(el *etree.Element) *Bibliography {
	b := &Bibliography{
		Options:                    parseNameOptions(el),
		HangingIndent:              boolAttr(el, "hanging-indent", false),
		SecondFieldAlign:           el.SelectAttrValue("second-field-align", ""),
		LineSpacing:                intAttr(el, "line-spacing", 1),
		EntrySpacing:               intAttr(el, "entry-spacing", 1),
		SubsequentAuthorSubstitute: el.SelectAttrValue("subsequent-author-substitute", ""),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "sort":
			b.Sort = parseSort(child)
		case "layout":
			b.Layout = parseLayout(child)
		}
	}
	return b
}

func parseLayout(el *etree.Element) *Layout {
	return &Layout{
		Attrs:     parseAttrs(el),
		Delimiter: el.SelectAttrValue("delimiter", ""),
		Children:  parseChildren(el),
	}
}

func parseSort(el *etree.Element) *Sort {
	s := &Sort{}
	for _, key := range el.SelectElements("key") {
		s.Keys = append(s.Keys, SortKey{
			Variable:      key.SelectAttrValue("variable", ""),
			Macro:         key.SelectAttrValue("macro", ""),
			Descending:    key.SelectAttrValue("sort", "ascending") == "descending",
			NamesMin:      intAttr(key, "names-min", 0),
			NamesUseFirst: intAttr(key, "names-use-first", 0),
		})
	}
	return s
}

func parseChildren(el *etree.Element) []Element {
	var out []Element
	for _, child := range el.ChildElements() {
		if node := parseElement(child); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func parseElement(el *etree.Element) Element {
	switch el.Tag {
	case "text":
		return &Text{
			Attrs:    parseAttrs(el),
			Variable: el.SelectAttrValue("variable", ""),
			Macro:    el.SelectAttrValue("macro", ""),
			Term:     el.SelectAttrValue("term", ""),
			Value:    el.SelectAttrValue("value", ""),
			Form:     el.SelectAttrValue("form", ""),
			Plural:   boolAttr(el, "plural", false),
		}
	case "label":
		return parseLabel(el)
	case "names":
		return parseNames(el)
	case "date":
		return parseDate(el)
	case "number":
		return &Number{
			Attrs:    parseAttrs(el),
			Variable: el.SelectAttrValue("variable", ""),
			Form:     el.SelectAttrValue("form", "numeric"),
		}
	case "group":
		return &Group{
			Attrs:     parseAttrs(el),
			Delimiter: el.SelectAttrValue("delimiter", ""),
			Children:  parseChildren(el),
		}
	case "choose":
		return parseChoose(el)
	}
	return nil
}

func parseLabel(el *etree.Element) *Label {
	return &Label{
		Attrs:    parseAttrs(el),
		Variable: el.SelectAttrValue("variable", ""),
		Form:     el.SelectAttrValue("form", ""),
		Plural:   el.SelectAttrValue("plural", "contextual"),
	}
}

func parseNames(el *etree.Element) *Names {
	ns := &Names{
		Attrs:     parseAttrs(el),
		Variables: strings.Fields(el.SelectAttrValue("variable", "")),
		Delimiter: el.SelectAttrValue("delimiter", ""),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "name":
			ns.Name = parseName(child)
		case "et-al":
			ns.EtAl = &EtAl{
				Attrs: parseAttrs(child),
				Term:  child.SelectAttrValue("term", "et-al"),
			}
		case "label":
			ns.Label = parseLabel(child)
			ns.LabelFirst = ns.Name == nil
		case "substitute":
			ns.Substitute = parseChildren(child)
		}
	}
	return ns
}

func parseName(el *etree.Element) *Name {
	o := NameOptions{
		And:                    el.SelectAttrValue("and", ""),
		NameDelimiter:          el.SelectAttrValue("delimiter", ""),
		DelimiterPrecedesEtAl:  el.SelectAttrValue("delimiter-precedes-et-al", ""),
		DelimiterPrecedesLast:  el.SelectAttrValue("delimiter-precedes-last", ""),
		EtAlMin:                intAttr(el, "et-al-min", 0),
		EtAlUseFirst:           intAttr(el, "et-al-use-first", 0),
		EtAlSubsequentMin:      intAttr(el, "et-al-subsequent-min", 0),
		EtAlSubsequentUseFirst: intAttr(el, "et-al-subsequent-use-first", 0),
		NameAsSortOrder:        el.SelectAttrValue("name-as-sort-order", ""),
		Form:                   el.SelectAttrValue("form", ""),
	}
	if a := el.SelectAttr("initialize"); a != nil {
		b := a.Value == "true"
		o.Initialize = &b
	}
	if a := el.SelectAttr("initialize-with"); a != nil {
		v := a.Value
		o.InitializeWith = &v
	}
	if a := el.SelectAttr("sort-separator"); a != nil {
		v := a.Value
		o.SortSeparator = &v
	}

	n := &Name{Attrs: parseAttrs(el), Options: o}
	for _, part := range el.SelectElements("name-part") {
		n.Parts = append(n.Parts, NamePart{
			Attrs: parseAttrs(part),
			Name:  part.SelectAttrValue("name", ""),
		})
	}
	return n
}

func parseDate(el *etree.Element) *Date {
	d := &Date{
		Attrs:     parseAttrs(el),
		Variable:  el.SelectAttrValue("variable", ""),
		Form:      el.SelectAttrValue("form", ""),
		DateParts: el.SelectAttrValue("date-parts", ""),
		Delimiter: el.SelectAttrValue("delimiter", ""),
	}
	for _, part := range el.SelectElements("date-part") {
		d.Parts = append(d.Parts, DatePart{
			Attrs:          parseAttrs(part),
			Name:           part.SelectAttrValue("name", ""),
			Form:           part.SelectAttrValue("form", ""),
			RangeDelimiter: part.SelectAttrValue("range-delimiter", ""),
		})
	}
	return d
}

func parseChoose(el *etree.Element) *Choose {
	c := &Choose{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "if", "else-if":
			c.Branches = append(c.Branches, Branch{
				Conditions: parseConditions(child),
				Children:   parseChildren(child),
			})
		case "else":
			c.Branches = append(c.Branches, Branch{Children: parseChildren(child)})
		}
	}
	return c
}

func parseConditions(el *etree.Element) Conditions {
	c := Conditions{
		Match:           el.SelectAttrValue("match", "all"),
		Types:           strings.Fields(el.SelectAttrValue("type", "")),
		Variables:       strings.Fields(el.SelectAttrValue("variable", "")),
		IsNumeric:       strings.Fields(el.SelectAttrValue("is-numeric", "")),
		IsUncertainDate: strings.Fields(el.SelectAttrValue("is-uncertain-date", "")),
		Positions:       strings.Fields(el.SelectAttrValue("position", "")),
		Locators:        strings.Fields(el.SelectAttrValue("locator", "")),
	}
	if a := el.SelectAttr("disambiguate"); a != nil {
		c.HasDisambiguate = true
		c.Disambiguate = a.Value == "true"
	}
	return c
}

// parseNameOptions reads the inheritable name options off a style,
// citation or bibliography element
func parseNameOptions(el *etree.Element) NameOptions {
	o := NameOptions{
		And:                    el.SelectAttrValue("and", ""),
		NameDelimiter:          el.SelectAttrValue("name-delimiter", ""),
		NamesDelimiter:         el.SelectAttrValue("names-delimiter", ""),
		DelimiterPrecedesEtAl:  el.SelectAttrValue("delimiter-precedes-et-al", ""),
		DelimiterPrecedesLast:  el.SelectAttrValue("delimiter-precedes-last", ""),
		EtAlMin:                intAttr(el, "et-al-min", 0),
		EtAlUseFirst:           intAttr(el, "et-al-use-first", 0),
		EtAlSubsequentMin:      intAttr(el, "et-al-subsequent-min", 0),
		EtAlSubsequentUseFirst: intAttr(el, "et-al-subsequent-use-first", 0),
		NameAsSortOrder:        el.SelectAttrValue("name-as-sort-order", ""),
		Form:                   el.SelectAttrValue("name-form", ""),
	}
	if a := el.SelectAttr("initialize"); a != nil {
		b := a.Value == "true"
		o.Initialize = &b
	}
	if a := el.SelectAttr("initialize-with"); a != nil {
		v := a.Value
		o.InitializeWith = &v
	}
	if a := el.SelectAttr("sort-separator"); a != nil {
		v := a.Value
		o.SortSeparator = &v
	}
	return o
}

func parseAttrs(el *etree.Element) Attrs {
	return Attrs{
		Prefix:       el.SelectAttrValue("prefix", ""),
		Suffix:       el.SelectAttrValue("suffix", ""),
		TextCase:     el.SelectAttrValue("text-case", ""),
		Quotes:       boolAttr(el, "quotes", false),
		StripPeriods: boolAttr(el, "strip-periods", false),
		Display:      el.SelectAttrValue("display", ""),
		Format:       parseFormatting(el),
	}
}

func parseFormatting(el *etree.Element) token.Formatting {
	var f token.Formatting
	switch el.SelectAttrValue("font-style", "") {
	case "italic":
		f.FontStyle = token.FontStyleItalic
	case "oblique":
		f.FontStyle = token.FontStyleOblique
	}
	if el.SelectAttrValue("font-variant", "") == "small-caps" {
		f.FontVariant = token.FontVariantSmallCaps
	}
	switch el.SelectAttrValue("font-weight", "") {
	case "bold":
		f.FontWeight = token.FontWeightBold
	case "light":
		f.FontWeight = token.FontWeightLight
	}
	if el.SelectAttrValue("text-decoration", "") == "underline" {
		f.TextDecoration = token.TextDecorationUnderline
	}
	switch el.SelectAttrValue("vertical-align", "") {
	case "sup":
		f.VerticalAlign = token.VerticalAlignSup
	case "sub":
		f.VerticalAlign = token.VerticalAlignSub
	}
	return f
}

func boolAttr(el *etree.Element, name string, def bool) bool {
	a := el.SelectAttr(name)
	if a == nil {
		return def
	}
	return a.Value == "true"
}

func intAttr(el *etree.Element, name string, def int) int {
	a := el.SelectAttr(name)
	if a == nil {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return def
	}
	return v
}
