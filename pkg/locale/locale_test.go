package locale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/errors"
)

func TestDefaultLocale(t *testing.T) {
	loc := Default()
	assert.Equal(t, "en-US", loc.Lang())
	assert.True(t, loc.PunctuationInQuote())
}

func TestTermLookup(t *testing.T) {
	loc := Default()

	t.Run("plain", func(t *testing.T) {
		and, ok := loc.Term("and", FormLong, false)
		require.True(t, ok)
		assert.Equal(t, "and", and)
	})

	t.Run("plural", func(t *testing.T) {
		single, _ := loc.Term("page", FormShort, false)
		plural, _ := loc.Term("page", FormShort, true)
		assert.Equal(t, "p.", single)
		assert.Equal(t, "pp.", plural)
	})

	t.Run("form fallback to long", func(t *testing.T) {
		// "accessed" has no short form; short falls back to long
		v, ok := loc.Term("accessed", FormShort, false)
		require.True(t, ok)
		assert.Equal(t, "accessed", v)
	})

	t.Run("verb-short chain", func(t *testing.T) {
		v, ok := loc.Term("editor", FormVerbShort, false)
		require.True(t, ok)
		assert.Equal(t, "ed.", v)

		// interviewer has no verb-short; falls back to verb
		v, ok = loc.Term("interviewer", FormVerbShort, false)
		require.True(t, ok)
		assert.Equal(t, "interview by", v)
	})

	t.Run("undefined term", func(t *testing.T) {
		v, ok := loc.Term("no-such-term", FormLong, false)
		assert.False(t, ok)
		assert.Equal(t, "", v)
	})
}

func TestOrdinals(t *testing.T) {
	loc := Default()

	tests := []struct {
		n    int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{101, "101st"},
		{111, "111th"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, loc.Ordinal(tt.n))
	}
}

func TestLongOrdinals(t *testing.T) {
	loc := Default()
	assert.Equal(t, "first", loc.LongOrdinal(1))
	assert.Equal(t, "tenth", loc.LongOrdinal(10))
	// beyond the spelled-out range, numeric ordinals take over
	assert.Equal(t, "11th", loc.LongOrdinal(11))
}

func TestMonthsAndSeasons(t *testing.T) {
	loc := Default()
	assert.Equal(t, "September", loc.Month(9, false))
	assert.Equal(t, "Sep.", loc.Month(9, true))
	assert.Equal(t, "", loc.Month(13, false))
	assert.Equal(t, "Winter", loc.Season(4))
}

func TestQuotes(t *testing.T) {
	loc := Default()
	assert.Equal(t, "“", loc.OpenQuote(0))
	assert.Equal(t, "”", loc.CloseQuote(0))
	assert.Equal(t, "‘", loc.OpenQuote(1))
	assert.Equal(t, "’", loc.CloseQuote(1))
}

func TestDateFormats(t *testing.T) {
	loc := Default()

	text := loc.DateFormat("text")
	require.NotNil(t, text)
	require.Len(t, text.Parts, 3)
	assert.Equal(t, "month", text.Parts[0].Name)
	assert.Equal(t, ", ", text.Parts[1].Suffix)

	numeric := loc.DateFormat("numeric")
	require.NotNil(t, numeric)
	assert.Equal(t, "numeric-leading-zeros", numeric.Parts[0].Form)
}

func TestParseRejectsNonLocale(t *testing.T) {
	_, err := Parse(strings.NewReader("<style/>"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLocaleParse))
}

func TestMerge(t *testing.T) {
	base := Default()

	overlay := New("")
	overlay.SetTerm("et-al", FormLong, "u.a.", "")

	merged := base.Merge(overlay)

	etal, _ := merged.Term("et-al", FormLong, false)
	assert.Equal(t, "u.a.", etal)

	// untouched terms survive
	and, _ := merged.Term("and", FormLong, false)
	assert.Equal(t, "and", and)

	// style options survive an overlay that does not define its own
	assert.True(t, merged.PunctuationInQuote())

	// the base is unchanged
	orig, _ := base.Term("et-al", FormLong, false)
	assert.Equal(t, "et al.", orig)
}

func TestLoadNormalizesLang(t *testing.T) {
	loc, err := Load("en")
	require.NoError(t, err)
	assert.Equal(t, "en-US", loc.Lang())

	_, err = Load("xx-XX")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLocaleNotFound))
}

func TestAvailable(t *testing.T) {
	langs := Available()
	assert.Contains(t, langs, "en-US")
}
