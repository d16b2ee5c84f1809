package output

import (
	"strings"

	"github.com/arthur-debert/citekit/pkg/token"
)

var foEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeFO(s string) string {
	return foEscaper.Replace(s)
}

// foFormat renders XSL-FO blocks; aligned entries become two-column tables
type foFormat struct{}

func (f *foFormat) Name() string { return "fo" }

func (f *foFormat) wrapFormat(s string, fm token.Formatting) string {
	var attrs []string
	if fm.FontStyle == token.FontStyleItalic {
		attrs = append(attrs, "font-style=\"italic\"")
	} else if fm.FontStyle == token.FontStyleOblique {
		attrs = append(attrs, "font-style=\"oblique\"")
	}
	if fm.FontWeight == token.FontWeightBold {
		attrs = append(attrs, "font-weight=\"bold\"")
	} else if fm.FontWeight == token.FontWeightLight {
		attrs = append(attrs, "font-weight=\"lighter\"")
	}
	if fm.FontVariant == token.FontVariantSmallCaps {
		attrs = append(attrs, "font-variant=\"small-caps\"")
	}
	if fm.TextDecoration == token.TextDecorationUnderline {
		attrs = append(attrs, "text-decoration=\"underline\"")
	}
	switch fm.VerticalAlign {
	case token.VerticalAlignSup:
		attrs = append(attrs, "vertical-align=\"super\"")
	case token.VerticalAlignSub:
		attrs = append(attrs, "vertical-align=\"sub\"")
	}
	if len(attrs) == 0 {
		return s
	}
	return "<fo:inline " + strings.Join(attrs, " ") + ">" + s + "</fo:inline>"
}

func (f *foFormat) link(href, label string) string {
	return "<fo:basic-link external-destination=\"url('" + escapeFO(href) + "')\">" +
		label + "</fo:basic-link>"
}

func (f *foFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, escapeFO, f)
}

func (f *foFormat) Entry(e Entry, opts Options) string {
	body := inline(e.Body, opts, escapeFO, f)
	if e.First == nil {
		return "<fo:block id=\"" + escapeFO(e.ID) + "\">" + body + "</fo:block>\n"
	}
	first := inline(e.First, opts, escapeFO, f)
	return "<fo:block id=\"" + escapeFO(e.ID) + "\">\n" +
		"  <fo:table table-layout=\"fixed\" width=\"100%\">\n" +
		"    <fo:table-column column-number=\"1\" column-width=\"2.5em\"/>\n" +
		"    <fo:table-column column-number=\"2\" column-width=\"proportional-column-width(1)\"/>\n" +
		"    <fo:table-body>\n" +
		"      <fo:table-row>\n" +
		"        <fo:table-cell>\n" +
		"          <fo:block>" + first + "</fo:block>\n" +
		"        </fo:table-cell>\n" +
		"        <fo:table-cell>\n" +
		"          <fo:block>" + body + "</fo:block>\n" +
		"        </fo:table-cell>\n" +
		"      </fo:table-row>\n" +
		"    </fo:table-body>\n" +
		"  </fo:table>\n" +
		"</fo:block>\n"
}

func (f *foFormat) BibliographyStart(Meta) string { return "" }

func (f *foFormat) BibliographyEnd(Meta) string { return "" }
