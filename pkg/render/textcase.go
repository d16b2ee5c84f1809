package render

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/citekit/pkg/token"
)

// titleStopWords stay lowercase in title case unless they open or close
// the string or follow a colon
var titleStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"but": true, "by": true, "down": true, "for": true, "from": true,
	"in": true, "into": true, "nor": true, "of": true, "on": true,
	"onto": true, "or": true, "over": true, "so": true, "the": true,
	"till": true, "to": true, "up": true, "via": true, "with": true,
	"yet": true,
}

// applyTextCase transforms the plain text tokens of a buffer. Quote glyphs,
// urls and dois are never touched; unknown transform names leave the buffer
// as it is.
func applyTextCase(buf *token.Buffer, name string) {
	switch name {
	case "lowercase":
		mapTextTokens(buf, strings.ToLower)
	case "uppercase":
		mapTextTokens(buf, strings.ToUpper)
	case "capitalize-first":
		capitalizeFirstToken(buf)
	case "capitalize-all":
		mapTextTokens(buf, capitalizeAll)
	case "sentence":
		sentenceCase(buf)
	case "title":
		titleCase(buf)
	}
}

func caseableToken(t token.Token) bool {
	switch t.Type {
	case token.OpenQuote, token.CloseQuote, token.URL, token.DOI:
		return false
	}
	return true
}

func mapTextTokens(buf *token.Buffer, fn func(string) string) {
	rebuilt := token.NewBuffer()
	for _, t := range buf.Tokens() {
		if caseableToken(t) {
			t.Text = fn(t.Text)
		}
		rebuilt.AppendToken(t)
	}
	*buf = *rebuilt
}

// capitalizeFirstToken uppercases the first letter of the buffer if the
// word it opens is lowercase
func capitalizeFirstToken(buf *token.Buffer) {
	rebuilt := token.NewBuffer()
	done := false
	for _, t := range buf.Tokens() {
		if !done && caseableToken(t) && strings.TrimSpace(t.Text) != "" {
			t.Text = capitalizeFirstWord(t.Text)
			done = true
		}
		rebuilt.AppendToken(t)
	}
	*buf = *rebuilt
}

// capitalizeFirstWord uppercases the first letter when the first word is
// fully lowercase; mixed-case words are assumed intentional
func capitalizeFirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 || !isLowerWord(fields[0]) {
		return s
	}
	return upperFirst(s)
}

func capitalizeAll(s string) string {
	return mapWords(s, func(word string, _, _ bool) string {
		if isLowerWord(word) {
			return upperFirst(word)
		}
		return word
	})
}

// sentenceCase: fully uppercase input keeps its leading capital and
// lowercases the rest; otherwise only a lowercase first word is capitalized
func sentenceCase(buf *token.Buffer) {
	if isAllUpper(textOf(buf)) {
		mapTextTokens(buf, strings.ToLower)
	}
	capitalizeFirstToken(buf)
}

// titleCase capitalizes lowercase words, keeps mixed-case words (acronyms,
// proper nouns) untouched and lowercases stop words away from the string
// boundaries. A fully uppercase input is lowercased first.
func titleCase(buf *token.Buffer) {
	allUpper := isAllUpper(textOf(buf))
	if allUpper {
		mapTextTokens(buf, strings.ToLower)
	}

	// find the globally last word so the per-token pass can recognize it
	total := 0
	for _, t := range buf.Tokens() {
		if caseableToken(t) {
			total += len(strings.Fields(t.Text))
		}
	}

	rebuilt := token.NewBuffer()
	seen := 0
	afterColon := false
	for _, t := range buf.Tokens() {
		if caseableToken(t) {
			t.Text = mapWords(t.Text, func(word string, _, _ bool) string {
				seen++
				first := seen == 1 || afterColon
				last := seen == total
				afterColon = strings.HasSuffix(word, ":")
				lower := strings.ToLower(strings.Trim(word, ".,:;!?"))
				if titleStopWords[lower] && !first && !last {
					return strings.ToLower(word)
				}
				if isLowerWord(word) {
					return upperFirst(word)
				}
				return word
			})
		}
		rebuilt.AppendToken(t)
	}
	*buf = *rebuilt
}

// mapWords applies fn to every whitespace-separated word, preserving the
// exact whitespace between them
func mapWords(s string, fn func(word string, first, last bool) string) string {
	var sb strings.Builder
	start := -1
	var words []struct{ from, to int }
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, struct{ from, to int }{start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, struct{ from, to int }{start, len(s)})
	}
	prev := 0
	for i, w := range words {
		sb.WriteString(s[prev:w.from])
		sb.WriteString(fn(s[w.from:w.to], i == 0, i == len(words)-1))
		prev = w.to
	}
	sb.WriteString(s[prev:])
	return sb.String()
}

func textOf(buf *token.Buffer) string {
	var sb strings.Builder
	for _, t := range buf.Tokens() {
		if caseableToken(t) {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

func isLowerWord(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func upperFirst(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
	}
	return s
}
