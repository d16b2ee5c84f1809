package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/style"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func smith() csl.Name  { return csl.Name{Family: "Smith", Given: "John"} }
func doe() csl.Name    { return csl.Name{Family: "Doe", Given: "Jane"} }
func jones() csl.Name  { return csl.Name{Family: "Jones", Given: "Robert"} }
func two() []csl.Name  { return []csl.Name{smith(), doe()} }
func three() []csl.Name {
	return []csl.Name{smith(), doe(), jones()}
}

func TestFormatNamesJoinPolicies(t *testing.T) {
	tests := []struct {
		name  string
		names []csl.Name
		opts  style.NameOptions
		want  string
	}{
		{
			name:  "two names default and is the delimiter",
			names: two(),
			want:  "John Smith, Jane Doe",
		},
		{
			name:  "three names default and is the delimiter",
			names: three(),
			want:  "John Smith, Jane Doe, Robert Jones",
		},
		{
			name:  "two names and-text contextual omits the comma",
			names: two(),
			opts:  style.NameOptions{And: "text"},
			want:  "John Smith and Jane Doe",
		},
		{
			name:  "three names and-text contextual keeps the serial comma",
			names: three(),
			opts:  style.NameOptions{And: "text"},
			want:  "John Smith, Jane Doe, and Robert Jones",
		},
		{
			name:  "two names and-symbol",
			names: two(),
			opts:  style.NameOptions{And: "symbol"},
			want:  "John Smith & Jane Doe",
		},
		{
			name:  "three names and-symbol contextual",
			names: three(),
			opts:  style.NameOptions{And: "symbol"},
			want:  "John Smith, Jane Doe, & Robert Jones",
		},
		{
			name:  "two names always forces the comma",
			names: two(),
			opts:  style.NameOptions{And: "text", DelimiterPrecedesLast: "always"},
			want:  "John Smith, and Jane Doe",
		},
		{
			name:  "three names always",
			names: three(),
			opts:  style.NameOptions{And: "text", DelimiterPrecedesLast: "always"},
			want:  "John Smith, Jane Doe, and Robert Jones",
		},
		{
			name:  "two names never",
			names: two(),
			opts:  style.NameOptions{And: "text", DelimiterPrecedesLast: "never"},
			want:  "John Smith and Jane Doe",
		},
		{
			name:  "three names never drops the serial comma",
			names: three(),
			opts:  style.NameOptions{And: "text", DelimiterPrecedesLast: "never"},
			want:  "John Smith, Jane Doe and Robert Jones",
		},
		{
			name:  "after-inverted-name with inverted first of two",
			names: two(),
			opts: style.NameOptions{
				And:                   "text",
				DelimiterPrecedesLast: "after-inverted-name",
				NameAsSortOrder:       "first",
			},
			want: "Smith, John, and Jane Doe",
		},
		{
			name:  "after-inverted-name inspects the first name only",
			names: three(),
			opts: style.NameOptions{
				And:                   "text",
				DelimiterPrecedesLast: "after-inverted-name",
				NameAsSortOrder:       "first",
			},
			want: "Smith, John, Jane Doe and Robert Jones",
		},
		{
			name:  "after-inverted-name without sort order",
			names: two(),
			opts: style.NameOptions{
				And:                   "text",
				DelimiterPrecedesLast: "after-inverted-name",
			},
			want: "John Smith and Jane Doe",
		},
		{
			name:  "custom delimiter",
			names: three(),
			opts:  style.NameOptions{NameDelimiter: "; ", And: "text"},
			want:  "John Smith; Jane Doe; and Robert Jones",
		},
		{
			name:  "single name",
			names: []csl.Name{smith()},
			opts:  style.NameOptions{And: "text"},
			want:  "John Smith",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(Params{})
			assert.Equal(t, tc.want, FormatNames(ctx, tc.names, tc.opts, nil))
		})
	}
}

func TestFormatNamesEtAl(t *testing.T) {
	tests := []struct {
		name     string
		names    []csl.Name
		opts     style.NameOptions
		position Position
		want     string
	}{
		{
			name:  "truncate to one name",
			names: three(),
			opts:  style.NameOptions{EtAlMin: 3, EtAlUseFirst: 1, And: "text"},
			want:  "John Smith et al.",
		},
		{
			name:  "truncate to two keeps the delimiter before et-al",
			names: three(),
			opts:  style.NameOptions{EtAlMin: 3, EtAlUseFirst: 2, And: "text"},
			want:  "John Smith, Jane Doe, et al.",
		},
		{
			name:  "below the threshold renders everyone",
			names: two(),
			opts:  style.NameOptions{EtAlMin: 3, EtAlUseFirst: 1, And: "text"},
			want:  "John Smith and Jane Doe",
		},
		{
			name:  "use-first covering the whole list renders everyone",
			names: three(),
			opts:  style.NameOptions{EtAlMin: 3, EtAlUseFirst: 3, And: "text"},
			want:  "John Smith, Jane Doe, and Robert Jones",
		},
		{
			name:  "delimiter-precedes-et-al never",
			names: three(),
			opts: style.NameOptions{
				EtAlMin: 3, EtAlUseFirst: 2,
				DelimiterPrecedesEtAl: "never",
			},
			want: "John Smith, Jane Doe et al.",
		},
		{
			name:  "delimiter-precedes-et-al always",
			names: three(),
			opts: style.NameOptions{
				EtAlMin: 3, EtAlUseFirst: 1,
				DelimiterPrecedesEtAl: "always",
			},
			want: "John Smith, et al.",
		},
		{
			name:  "delimiter-precedes-et-al after an inverted name",
			names: three(),
			opts: style.NameOptions{
				EtAlMin: 3, EtAlUseFirst: 1,
				DelimiterPrecedesEtAl: "after-inverted-name",
				NameAsSortOrder:       "first",
			},
			want: "Smith, John, et al.",
		},
		{
			name:     "subsequent thresholds apply on later cites",
			names:    two(),
			opts:     style.NameOptions{EtAlMin: 5, EtAlUseFirst: 3, EtAlSubsequentMin: 2, EtAlSubsequentUseFirst: 1},
			position: PositionSubsequent,
			want:     "John Smith et al.",
		},
		{
			name:  "subsequent thresholds ignored on first cites",
			names: two(),
			opts:  style.NameOptions{EtAlMin: 5, EtAlUseFirst: 3, EtAlSubsequentMin: 2, EtAlSubsequentUseFirst: 1, And: "text"},
			want:  "John Smith and Jane Doe",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(Params{Position: tc.position})
			assert.Equal(t, tc.want, FormatNames(ctx, tc.names, tc.opts, nil))
		})
	}
}

func TestFormatNamesEtAlOverrideTerm(t *testing.T) {
	ctx := NewContext(Params{})
	opts := style.NameOptions{EtAlMin: 3, EtAlUseFirst: 1}
	got := FormatNames(ctx, three(), opts, &style.EtAl{Term: "and others"})
	assert.Equal(t, "John Smith and others", got)
}

func TestFormatNamesInitials(t *testing.T) {
	tests := []struct {
		name string
		n    csl.Name
		opts style.NameOptions
		want string
	}{
		{
			name: "single given name",
			n:    smith(),
			opts: style.NameOptions{InitializeWith: strptr(". ")},
			want: "J. Smith",
		},
		{
			name: "multiple given names",
			n:    csl.Name{Family: "Tolkien", Given: "John Ronald Reuel"},
			opts: style.NameOptions{InitializeWith: strptr(". ")},
			want: "J. R. R. Tolkien",
		},
		{
			name: "already-initialized given collapses the periods",
			n:    csl.Name{Family: "Tolkien", Given: "J.R.R."},
			opts: style.NameOptions{InitializeWith: strptr(". ")},
			want: "J. R. R. Tolkien",
		},
		{
			name: "hyphenated given keeps only the leading letter",
			n:    csl.Name{Family: "Picard", Given: "Jean-Luc"},
			opts: style.NameOptions{InitializeWith: strptr(". ")},
			want: "J. Picard",
		},
		{
			name: "bare mark without space",
			n:    csl.Name{Family: "Tolkien", Given: "John Ronald"},
			opts: style.NameOptions{InitializeWith: strptr(".")},
			want: "J.R. Tolkien",
		},
		{
			name: "initialize false keeps the full given name",
			n:    smith(),
			opts: style.NameOptions{InitializeWith: strptr(". "), Initialize: boolptr(false)},
			want: "John Smith",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(Params{})
			assert.Equal(t, tc.want, FormatNames(ctx, []csl.Name{tc.n}, tc.opts, nil))
		})
	}
}

func TestFormatNamesInverted(t *testing.T) {
	tests := []struct {
		name  string
		names []csl.Name
		opts  style.NameOptions
		want  string
	}{
		{
			name:  "sort order first inverts only the first name",
			names: two(),
			opts:  style.NameOptions{NameAsSortOrder: "first", And: "text"},
			want:  "Smith, John and Jane Doe",
		},
		{
			name:  "sort order all inverts every name",
			names: two(),
			opts:  style.NameOptions{NameAsSortOrder: "all", And: "text"},
			want:  "Smith, John and Doe, Jane",
		},
		{
			name:  "custom sort separator",
			names: []csl.Name{smith()},
			opts:  style.NameOptions{NameAsSortOrder: "all", SortSeparator: strptr("; ")},
			want:  "Smith; John",
		},
		{
			name:  "inverted name without given has no dangling separator",
			names: []csl.Name{{Family: "Smith"}},
			opts:  style.NameOptions{NameAsSortOrder: "all"},
			want:  "Smith",
		},
		{
			name:  "inverted with initials",
			names: []csl.Name{smith()},
			opts:  style.NameOptions{NameAsSortOrder: "all", InitializeWith: strptr(".")},
			want:  "Smith, J.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(Params{})
			assert.Equal(t, tc.want, FormatNames(ctx, tc.names, tc.opts, nil))
		})
	}
}

func TestFormatNamesParticlesAndSuffix(t *testing.T) {
	beethoven := csl.Name{Family: "Beethoven", Given: "Ludwig", NonDroppingParticle: "van"}
	tocqueville := csl.Name{Family: "Tocqueville", Given: "Alexis", DroppingParticle: "de"}
	king := csl.Name{Family: "King", Given: "Martin Luther", Suffix: "Jr.", CommaSuffix: true}

	tests := []struct {
		name string
		n    csl.Name
		opts style.NameOptions
		want string
	}{
		{
			name: "non-dropping particle in display order",
			n:    beethoven,
			want: "Ludwig van Beethoven",
		},
		{
			name: "non-dropping particle stays with the family name when inverted",
			n:    beethoven,
			opts: style.NameOptions{NameAsSortOrder: "all"},
			want: "van Beethoven, Ludwig",
		},
		{
			name: "dropping particle in display order",
			n:    tocqueville,
			want: "Alexis de Tocqueville",
		},
		{
			name: "dropping particle follows the given name when inverted",
			n:    tocqueville,
			opts: style.NameOptions{NameAsSortOrder: "all"},
			want: "Tocqueville, Alexis de",
		},
		{
			name: "comma suffix in display order",
			n:    king,
			want: "Martin Luther King, Jr.",
		},
		{
			name: "suffix without comma",
			n:    csl.Name{Family: "King", Given: "Martin Luther", Suffix: "Jr."},
			want: "Martin Luther King Jr.",
		},
		{
			name: "suffix after the given part when inverted",
			n:    king,
			opts: style.NameOptions{NameAsSortOrder: "all"},
			want: "King, Martin Luther, Jr.",
		},
		{
			name: "short form drops given and dropping particle",
			n:    tocqueville,
			opts: style.NameOptions{Form: "short"},
			want: "Tocqueville",
		},
		{
			name: "short form keeps the non-dropping particle",
			n:    beethoven,
			opts: style.NameOptions{Form: "short"},
			want: "van Beethoven",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(Params{})
			assert.Equal(t, tc.want, FormatNames(ctx, []csl.Name{tc.n}, tc.opts, nil))
		})
	}
}

func TestFormatNamesLiteralAndCount(t *testing.T) {
	ctx := NewContext(Params{})

	t.Run("literal names render verbatim", func(t *testing.T) {
		names := []csl.Name{{Literal: "National Aeronautics and Space Administration"}, smith()}
		got := FormatNames(ctx, names, style.NameOptions{And: "text"}, nil)
		assert.Equal(t, "National Aeronautics and Space Administration and John Smith", got)
	})

	t.Run("count form reports the rendered count", func(t *testing.T) {
		opts := style.NameOptions{Form: "count"}
		assert.Equal(t, "3", FormatNames(ctx, three(), opts, nil))

		opts.EtAlMin = 3
		opts.EtAlUseFirst = 2
		assert.Equal(t, "2", FormatNames(ctx, three(), opts, nil))
	})

	t.Run("empty list renders nothing", func(t *testing.T) {
		assert.Equal(t, "", FormatNames(ctx, nil, style.NameOptions{}, nil))
	})
}

func TestFormatNamesDisambiguation(t *testing.T) {
	t.Run("expanded given names override initialize-with", func(t *testing.T) {
		ctx := NewContext(Params{Disambiguation: Disambiguation{ExpandGivenNames: true}})
		opts := style.NameOptions{InitializeWith: strptr(". ")}
		assert.Equal(t, "John Smith", FormatNames(ctx, []csl.Name{smith()}, opts, nil))
	})

	t.Run("all-names pass disables truncation", func(t *testing.T) {
		ctx := NewContext(Params{Disambiguation: Disambiguation{AllNames: true}})
		opts := style.NameOptions{EtAlMin: 2, EtAlUseFirst: 1, And: "text"}
		got := FormatNames(ctx, three(), opts, nil)
		assert.Equal(t, "John Smith, Jane Doe, and Robert Jones", got)
	})
}
