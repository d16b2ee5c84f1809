package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrItemNotFound, "no item with id 'doe2020'")
	assert.Equal(t, ErrItemNotFound, err.Code)
	assert.Equal(t, "[ITEM_NOT_FOUND] no item with id 'doe2020'", err.Error())
	assert.NotNil(t, err.Details)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrMacroUndefined, "macro %q is not defined", "author-short")
	assert.Equal(t, `[MACRO_UNDEFINED] macro "author-short" is not defined`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps an error", func(t *testing.T) {
		inner := errors.New("unexpected end of file")
		err := Wrap(inner, ErrStyleParse, "could not parse style")
		require.NotNil(t, err)
		assert.Equal(t, "[STYLE_PARSE] could not parse style: unexpected end of file", err.Error())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrStyleParse, "ignored"))
		assert.Nil(t, Wrapf(nil, ErrStyleParse, "ignored %d", 1))
	})
}

func TestIs(t *testing.T) {
	err := Newf(ErrItemNotFound, "no item %q", "x")
	assert.True(t, errors.Is(err, New(ErrItemNotFound, "")))
	assert.False(t, errors.Is(err, New(ErrMacroCycle, "")))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrMacroCycle, "macro expansion exceeded depth limit")
	assert.True(t, IsErrorCode(err, ErrMacroCycle))
	assert.False(t, IsErrorCode(err, ErrMacroUndefined))
	assert.False(t, IsErrorCode(nil, ErrMacroCycle))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrMacroCycle))
}

func TestIsErrorCodeWrapped(t *testing.T) {
	inner := New(ErrItemNotFound, "no item")
	outer := fmt.Errorf("while registering: %w", inner)
	assert.True(t, IsErrorCode(outer, ErrItemNotFound))
	assert.Equal(t, ErrItemNotFound, GetErrorCode(outer))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrStyleInvalid, GetErrorCode(New(ErrStyleInvalid, "")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrMacroUndefined, "macro not defined").
		WithDetail("macro", "issued-year").
		WithDetail("node", "text")
	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "issued-year", details["macro"])
	assert.Equal(t, "text", details["node"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
