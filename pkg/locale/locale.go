// Package locale provides locale-specific terms, date formats and ordinal
// rules for rendering. Lookups degrade gracefully: an undefined term is an
// empty string, never an error.
package locale

import (
	"fmt"
	"strings"
)

// Form selects a term variant
type Form string

// Term forms
const (
	FormLong      Form = "long"
	FormShort     Form = "short"
	FormVerb      Form = "verb"
	FormVerbShort Form = "verb-short"
	FormSymbol    Form = "symbol"
)

// fallback returns the next form to try when a term is undefined in the
// requested form
func (f Form) fallback() (Form, bool) {
	switch f {
	case FormVerbShort:
		return FormVerb, true
	case FormSymbol:
		return FormShort, true
	case FormVerb, FormShort:
		return FormLong, true
	}
	return "", false
}

// DatePart describes one part of a localized date format
type DatePart struct {
	Name           string // "year", "month" or "day"
	Form           string // "", "numeric", "numeric-leading-zeros", "ordinal", "short", "long"
	Prefix         string
	Suffix         string
	RangeDelimiter string
}

// DateFormat is a localized date format, selected by form ("text" or
// "numeric")
type DateFormat struct {
	Form  string
	Parts []DatePart
}

type termKey struct {
	name string
	form Form
}

type termValue struct {
	single   string
	multiple string
}

// Locale holds the terms and date formats of one language
type Locale struct {
	lang               string
	terms              map[termKey]termValue
	dates              map[string]*DateFormat
	punctuationInQuote bool
	limitDayOrdinals   bool
	hasStyleOptions    bool
}

// New returns an empty locale for the given language tag
func New(lang string) *Locale {
	return &Locale{
		lang:  lang,
		terms: make(map[termKey]termValue),
		dates: make(map[string]*DateFormat),
	}
}

// Lang returns the language tag, e.g. "en-US"
func (l *Locale) Lang() string {
	return l.lang
}

// PunctuationInQuote reports whether trailing punctuation moves inside
// closing quotes in this locale
func (l *Locale) PunctuationInQuote() bool {
	return l.punctuationInQuote
}

// SetStyleOptions records the locale's style options. Once set they survive
// merges unless the overlay defines its own.
func (l *Locale) SetStyleOptions(punctuationInQuote, limitDayOrdinals bool) {
	l.punctuationInQuote = punctuationInQuote
	l.limitDayOrdinals = limitDayOrdinals
	l.hasStyleOptions = true
}

// LimitDayOrdinalsToDay1 reports whether ordinal day forms apply to the
// first day of the month only
func (l *Locale) LimitDayOrdinalsToDay1() bool {
	return l.limitDayOrdinals
}

// SetTerm stores a term variant
func (l *Locale) SetTerm(name string, form Form, single, multiple string) {
	if form == "" {
		form = FormLong
	}
	l.terms[termKey{name, form}] = termValue{single, multiple}
}

// Term looks up a term, walking the form fallback chain (verb-short before
// verb, symbol before short, everything before long). Returns "" and false
// when no variant is defined.
func (l *Locale) Term(name string, form Form, plural bool) (string, bool) {
	if form == "" {
		form = FormLong
	}
	for {
		if v, ok := l.terms[termKey{name, form}]; ok {
			if plural && v.multiple != "" {
				return v.multiple, true
			}
			return v.single, true
		}
		next, ok := form.fallback()
		if !ok {
			return "", false
		}
		form = next
	}
}

// SetDateFormat stores a localized date format under its form
func (l *Locale) SetDateFormat(f *DateFormat) {
	l.dates[f.Form] = f
}

// DateFormat returns the localized date format for "text" or "numeric",
// or nil if undefined
func (l *Locale) DateFormat(form string) *DateFormat {
	return l.dates[form]
}

// Month returns the localized month name (1-based), long or short form
func (l *Locale) Month(m int, short bool) string {
	if m < 1 || m > 12 {
		return ""
	}
	form := FormLong
	if short {
		form = FormShort
	}
	t, _ := l.Term(fmt.Sprintf("month-%02d", m), form, false)
	return t
}

// Season returns the localized season name (1-based, 1 = spring)
func (l *Locale) Season(s int) string {
	if s < 1 || s > 4 {
		return ""
	}
	t, _ := l.Term(fmt.Sprintf("season-%02d", s), FormLong, false)
	return t
}

// Ordinal renders n with its locale ordinal suffix ("1st", "2nd", "11th").
// The suffix for the last two digits wins over the last digit.
func (l *Locale) Ordinal(n int) string {
	if n < 0 {
		n = -n
	}
	suffix, ok := l.Term(fmt.Sprintf("ordinal-%02d", n%100), FormLong, false)
	if !ok {
		suffix, ok = l.Term(fmt.Sprintf("ordinal-%02d", n%10), FormLong, false)
	}
	if !ok {
		suffix, _ = l.Term("ordinal", FormLong, false)
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// LongOrdinal renders n as a spelled-out ordinal ("first"). Numbers without
// a long-ordinal term fall back to the numeric ordinal.
func (l *Locale) LongOrdinal(n int) string {
	if n >= 1 && n <= 10 {
		if t, ok := l.Term(fmt.Sprintf("long-ordinal-%02d", n), FormLong, false); ok {
			return t
		}
	}
	return l.Ordinal(n)
}

// OpenQuote returns the opening quote glyph for the nesting depth
// (outer for even depths, inner for odd)
func (l *Locale) OpenQuote(depth int) string {
	name := "open-quote"
	if depth%2 == 1 {
		name = "open-inner-quote"
	}
	t, _ := l.Term(name, FormLong, false)
	return t
}

// CloseQuote returns the closing quote glyph for the nesting depth
func (l *Locale) CloseQuote(depth int) string {
	name := "close-quote"
	if depth%2 == 1 {
		name = "close-inner-quote"
	}
	t, _ := l.Term(name, FormLong, false)
	return t
}

// Merge overlays another locale onto this one and returns the result as a
// new locale. Styles embed partial locales that override individual terms.
func (l *Locale) Merge(other *Locale) *Locale {
	out := New(l.lang)
	out.punctuationInQuote = l.punctuationInQuote
	out.limitDayOrdinals = l.limitDayOrdinals
	out.hasStyleOptions = l.hasStyleOptions
	for k, v := range l.terms {
		out.terms[k] = v
	}
	for k, v := range l.dates {
		out.dates[k] = v
	}
	if other == nil {
		return out
	}
	if other.lang != "" {
		out.lang = other.lang
	}
	for k, v := range other.terms {
		out.terms[k] = v
	}
	for k, v := range other.dates {
		out.dates[k] = v
	}
	if other.hasStyleOptions {
		out.punctuationInQuote = other.punctuationInQuote
		out.limitDayOrdinals = other.limitDayOrdinals
	}
	return out
}

// normalizeLang maps a language tag to its canonical xx-YY form as used in
// locale file names ("en" becomes "en-US")
func normalizeLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "en-US"
	}
	if strings.Contains(lang, "-") {
		return lang
	}
	if region, ok := defaultRegions[strings.ToLower(lang)]; ok {
		return region
	}
	return lang
}

// defaultRegions maps bare language codes to their primary dialect
var defaultRegions = map[string]string{
	"en": "en-US",
	"de": "de-DE",
	"fr": "fr-FR",
	"es": "es-ES",
	"it": "it-IT",
	"pt": "pt-PT",
	"nl": "nl-NL",
	"ja": "ja-JP",
	"zh": "zh-CN",
}
