package render

import (
	"strconv"
	"strings"
)

// formatNumber renders a number variable in the requested form. Values may
// carry ranges and affixes ("2-3", "D14"); every digit run is formatted in
// place and the surrounding text kept as written.
func formatNumber(ctx *Context, value, form string) string {
	value = strings.TrimSpace(value)
	if form == "" || form == "numeric" {
		return value
	}
	var b strings.Builder
	i := 0
	for i < len(value) {
		j := i
		for j < len(value) && value[j] >= '0' && value[j] <= '9' {
			j++
		}
		if j == i {
			b.WriteByte(value[i])
			i++
			continue
		}
		n, err := strconv.Atoi(value[i:j])
		if err != nil {
			b.WriteString(value[i:j])
		} else {
			b.WriteString(formatInt(ctx, n, form))
		}
		i = j
	}
	return b.String()
}

func formatInt(ctx *Context, n int, form string) string {
	switch form {
	case "ordinal":
		return ctx.loc.Ordinal(n)
	case "long-ordinal":
		return ctx.loc.LongOrdinal(n)
	case "roman":
		return toRoman(n)
	}
	return strconv.Itoa(n)
}

var romanValues = []struct {
	value int
	glyph string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// toRoman converts n to lowercase roman numerals. Values outside the
// representable range render as arabic digits.
func toRoman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanValues {
		for n >= r.value {
			b.WriteString(r.glyph)
			n -= r.value
		}
	}
	return b.String()
}
