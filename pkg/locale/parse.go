package locale

import (
	"io"

	"github.com/beevik/etree"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/logging"
)

// Parse reads a CSL locale XML document
func Parse(r io.Reader) (*Locale, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrLocaleParse, "failed to read locale XML")
	}
	root := doc.Root()
	if root == nil || root.Tag != "locale" {
		return nil, errors.New(errors.ErrLocaleParse, "document root is not a locale element")
	}
	return parseLocaleElement(root), nil
}

// ParseBytes reads a CSL locale XML document from a byte slice
func ParseBytes(data []byte) (*Locale, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrLocaleParse, "failed to read locale XML")
	}
	root := doc.Root()
	if root == nil || root.Tag != "locale" {
		return nil, errors.New(errors.ErrLocaleParse, "document root is not a locale element")
	}
	return parseLocaleElement(root), nil
}

// ParseElement builds a locale from an already-parsed locale element. Style
// documents embed partial locales this way.
func ParseElement(el *etree.Element) *Locale {
	return parseLocaleElement(el)
}

func parseLocaleElement(root *etree.Element) *Locale {
	loc := New(root.SelectAttrValue("xml:lang", ""))
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "style-options":
			loc.SetStyleOptions(
				el.SelectAttrValue("punctuation-in-quote", "false") == "true",
				el.SelectAttrValue("limit-day-ordinals-to-day-1", "false") == "true",
			)
		case "terms":
			parseTerms(loc, el)
		case "date":
			loc.SetDateFormat(parseDateFormat(el))
		}
	}
	return loc
}

func parseTerms(loc *Locale, terms *etree.Element) {
	logger := logging.GetLogger("locale")
	for _, term := range terms.SelectElements("term") {
		name := term.SelectAttrValue("name", "")
		if name == "" {
			logger.Debug().Msg("skipping term without a name")
			continue
		}
		form := Form(term.SelectAttrValue("form", string(FormLong)))
		single := term.Text()
		multiple := ""
		if s := term.SelectElement("single"); s != nil {
			single = s.Text()
			if m := term.SelectElement("multiple"); m != nil {
				multiple = m.Text()
			}
		}
		loc.SetTerm(name, form, single, multiple)
	}
}

func parseDateFormat(el *etree.Element) *DateFormat {
	df := &DateFormat{Form: el.SelectAttrValue("form", "text")}
	for _, part := range el.SelectElements("date-part") {
		df.Parts = append(df.Parts, DatePart{
			Name:           part.SelectAttrValue("name", ""),
			Form:           part.SelectAttrValue("form", ""),
			Prefix:         part.SelectAttrValue("prefix", ""),
			Suffix:         part.SelectAttrValue("suffix", ""),
			RangeDelimiter: part.SelectAttrValue("range-delimiter", ""),
		})
	}
	return df
}
