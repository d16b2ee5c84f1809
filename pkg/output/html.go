package output

import (
	"strings"

	"github.com/arthur-debert/citekit/pkg/token"
)

// htmlEntities maps the characters citation data commonly carries to their
// named entities: markup specials, typographic punctuation and the Latin-1
// letters that appear in author names.
var htmlEntities = map[rune]string{
	'&': "&amp;", '<': "&lt;", '>': "&gt;",
	'“': "&ldquo;", '”': "&rdquo;",
	'‘': "&lsquo;", '’': "&rsquo;",
	'–': "&ndash;", '—': "&mdash;",
	' ': "&nbsp;",
	'À': "&Agrave;", 'Á': "&Aacute;", 'Â': "&Acirc;", 'Ã': "&Atilde;",
	'Ä': "&Auml;", 'Å': "&Aring;", 'Æ': "&AElig;", 'Ç': "&Ccedil;",
	'È': "&Egrave;", 'É': "&Eacute;", 'Ê': "&Ecirc;", 'Ë': "&Euml;",
	'Ì': "&Igrave;", 'Í': "&Iacute;", 'Î': "&Icirc;", 'Ï': "&Iuml;",
	'Ñ': "&Ntilde;", 'Ò': "&Ograve;", 'Ó': "&Oacute;", 'Ô': "&Ocirc;",
	'Õ': "&Otilde;", 'Ö': "&Ouml;", 'Ø': "&Oslash;", 'Ù': "&Ugrave;",
	'Ú': "&Uacute;", 'Û': "&Ucirc;", 'Ü': "&Uuml;", 'Ý': "&Yacute;",
	'à': "&agrave;", 'á': "&aacute;", 'â': "&acirc;", 'ã': "&atilde;",
	'ä': "&auml;", 'å': "&aring;", 'æ': "&aelig;", 'ç': "&ccedil;",
	'è': "&egrave;", 'é': "&eacute;", 'ê': "&ecirc;", 'ë': "&euml;",
	'ì': "&igrave;", 'í': "&iacute;", 'î': "&icirc;", 'ï': "&iuml;",
	'ñ': "&ntilde;", 'ò': "&ograve;", 'ó': "&oacute;", 'ô': "&ocirc;",
	'õ': "&otilde;", 'ö': "&ouml;", 'ø': "&oslash;", 'ù': "&ugrave;",
	'ú': "&uacute;", 'û': "&ucirc;", 'ü': "&uuml;", 'ý': "&yacute;",
	'ÿ': "&yuml;", 'ß': "&szlig;",
}

func escapeHTML(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if ent, ok := htmlEntities[r]; ok {
			sb.WriteString(ent)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

type htmlFormat struct{}

func (f *htmlFormat) Name() string { return "html" }

func (f *htmlFormat) wrapFormat(s string, fm token.Formatting) string {
	switch fm.VerticalAlign {
	case token.VerticalAlignSup:
		s = "<sup>" + s + "</sup>"
	case token.VerticalAlignSub:
		s = "<sub>" + s + "</sub>"
	}
	if fm.TextDecoration == token.TextDecorationUnderline {
		s = "<span style=\"text-decoration: underline\">" + s + "</span>"
	}
	if fm.FontVariant == token.FontVariantSmallCaps {
		s = "<span style=\"font-variant: small-caps\">" + s + "</span>"
	}
	if fm.FontWeight == token.FontWeightBold {
		s = "<b>" + s + "</b>"
	}
	if fm.FontStyle == token.FontStyleItalic || fm.FontStyle == token.FontStyleOblique {
		s = "<i>" + s + "</i>"
	}
	return s
}

func (f *htmlFormat) link(href, label string) string {
	return "<a href=\"" + escapeHTML(href) + "\">" + label + "</a>"
}

func (f *htmlFormat) Citation(buf *token.Buffer, opts Options) string {
	return inline(buf, opts, escapeHTML, f)
}

func (f *htmlFormat) Entry(e Entry, opts Options) string {
	body := inline(e.Body, opts, escapeHTML, f)
	if e.First == nil {
		return "  <div class=\"csl-entry\">" + body + "</div>\n"
	}
	first := inline(e.First, opts, escapeHTML, f)
	return "  <div class=\"csl-entry\">\n" +
		"    <div class=\"csl-left-margin\">" + first + "</div>" +
		"<div class=\"csl-right-inline\">" + body + "</div>\n" +
		"  </div>\n"
}

func (f *htmlFormat) BibliographyStart(Meta) string {
	return "<div class=\"csl-bib-body\">\n"
}

func (f *htmlFormat) BibliographyEnd(Meta) string {
	return "</div>\n"
}
