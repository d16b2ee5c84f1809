package provider

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The replacement chain below follows smartquotes.js: each rule rewrites
// the output of the previous one, left to right, and a final manual pass
// turns leftover opening singles that cannot open anything into
// apostrophes.
var (
	// beginning " followed by anything visible
	reOpenDouble = regexp.MustCompile(`(\W|^)"(\S)`)
	// " that closes an opened U+201C
	reCloseDouble = regexp.MustCompile(`(\x{201c}[^"]*)"([^"]*$|[^\x{201c}"]*\x{201c})`)
	// remaining " at the end of a word
	reWordDouble = regexp.MustCompile(`([^0-9])"`)
	// beginning '
	reOpenSingle = regexp.MustCompile(`(\W|^)'(\S)`)
	// possession and contraction
	rePossession = regexp.MustCompile(`(?i)([a-z])'([a-z])`)
	// abbreviated years like '93
	reYear = regexp.MustCompile(
		`(?i)(\x{2018})([0-9]{2}[^\x{2019}]*)(\x{2018}([^0-9]|$)|$|\x{2019}[a-z])`)
	// ' that closes an opened U+2018, or follows a word
	reCloseSingle = regexp.MustCompile(`(?i)((\x{2018}[^']*)|[a-z])'([^0-9]|$)`)
	// tail shapes after a U+2018 that mark it as an apostrophe rather than
	// an opening quote: any number of closed pairs, then either a dangling
	// quote glyph or a plain run to the end
	reApostropheTail = regexp.MustCompile(
		`^(?:[^\x{2018}\x{2019}]*\x{2019}\b)*` +
			`(?:[^\x{2018}\x{2019}]*\B\W[\x{2018}\x{2019}]\b|[^\x{2018}\x{2019}]*$)`)
)

// SmartQuotes replaces straight ASCII quotes with typographic ones:
// double and single quotation marks, apostrophes, and primes for
// measurements like 6'5".
func SmartQuotes(s string) string {
	if !strings.ContainsAny(s, `"'`) {
		return s
	}
	s = strings.ReplaceAll(s, "'''", "‴")
	s = reOpenDouble.ReplaceAllString(s, "${1}“${2}")
	s = reCloseDouble.ReplaceAllString(s, "${1}”${2}")
	s = reWordDouble.ReplaceAllString(s, "${1}”")
	s = strings.ReplaceAll(s, "''", "″")
	s = reOpenSingle.ReplaceAllString(s, "${1}‘${2}")
	s = rePossession.ReplaceAllString(s, "${1}’${2}")
	s = reYear.ReplaceAllString(s, "’${2}${3}")
	s = reCloseSingle.ReplaceAllString(s, "${1}’${3}")
	s = fixApostrophes(s)
	s = strings.ReplaceAll(s, `"`, "″")
	s = strings.ReplaceAll(s, "'", "′")
	return s
}

// fixApostrophes rewrites U+2018 glyphs that turned out to be apostrophes
// ('em, 'Ammercloth's) into U+2019. Each candidate is judged against the
// input string, so earlier rewrites do not change later decisions.
func fixApostrophes(s string) string {
	if !strings.ContainsRune(s, '‘') {
		return s
	}
	var sb strings.Builder
	last := 0
	for i, r := range s {
		if r != '‘' {
			continue
		}
		if i > 0 {
			// (\B|^): a word character before the quote means a word
			// boundary, which an apostrophe never sits on
			prev, _ := utf8.DecodeLastRuneInString(s[:i])
			if isWordRune(prev) {
				continue
			}
		}
		next := i + utf8.RuneLen(r)
		if !reApostropheTail.MatchString(s[next:]) {
			continue
		}
		sb.WriteString(s[last:i])
		sb.WriteString("’")
		last = next
	}
	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// isWordRune mirrors the regexp \w class
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
