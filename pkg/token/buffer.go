package token

import "strings"

// Buffer accumulates tokens during rendering. Append and Prepend keep
// insertion order, so a prefix prepended after content was rendered still
// ends up in leading position. The zero value is ready to use.
type Buffer struct {
	tokens []Token
}

// NewBuffer returns an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a token of the given type to the end of the buffer
func (b *Buffer) Append(text string, typ Type) *Buffer {
	return b.AppendToken(Token{Text: text, Type: typ})
}

// AppendFormatted adds a token carrying formatting attributes
func (b *Buffer) AppendFormatted(text string, typ Type, f Formatting) *Buffer {
	return b.AppendToken(Token{Text: text, Type: typ, Format: f})
}

// AppendToken adds a single token to the end of the buffer
func (b *Buffer) AppendToken(t Token) *Buffer {
	b.tokens = append(b.tokens, t)
	return b
}

// AppendAll adds all tokens from another buffer to the end of this one
func (b *Buffer) AppendAll(other *Buffer) *Buffer {
	b.tokens = append(b.tokens, other.tokens...)
	return b
}

// Prepend inserts a token of the given type at the front of the buffer
func (b *Buffer) Prepend(text string, typ Type) *Buffer {
	return b.PrependToken(Token{Text: text, Type: typ})
}

// PrependToken inserts a single token at the front of the buffer
func (b *Buffer) PrependToken(t Token) *Buffer {
	b.tokens = append([]Token{t}, b.tokens...)
	return b
}

// PrependAll inserts all tokens from another buffer at the front of this one
func (b *Buffer) PrependAll(other *Buffer) *Buffer {
	b.tokens = append(append([]Token{}, other.tokens...), b.tokens...)
	return b
}

// IsEmpty reports whether every token in the buffer has empty text. A buffer
// holding only empty tokens renders to nothing and counts as empty.
func (b *Buffer) IsEmpty() bool {
	for _, t := range b.tokens {
		if t.Text != "" {
			return false
		}
	}
	return true
}

// Tokens returns the underlying token slice. Callers must not modify it.
func (b *Buffer) Tokens() []Token {
	return b.tokens
}

// String concatenates the text of all tokens without any markup
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, t := range b.tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Copy returns a deep copy of the buffer
func (b *Buffer) Copy() *Buffer {
	return &Buffer{tokens: append([]Token{}, b.tokens...)}
}

// Clear removes all tokens
func (b *Buffer) Clear() *Buffer {
	b.tokens = b.tokens[:0]
	return b
}
