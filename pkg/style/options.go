package style

// NameOptions are the inheritable name-formatting options. They cascade
// from the style root through citation/bibliography elements down to
// individual name elements; a set field overrides the inherited value.
type NameOptions struct {
	And                    string // "text", "symbol" or "none"
	NameDelimiter          string
	NamesDelimiter         string
	DelimiterPrecedesEtAl  string
	DelimiterPrecedesLast  string
	EtAlMin                int
	EtAlUseFirst           int
	EtAlSubsequentMin      int
	EtAlSubsequentUseFirst int
	Initialize             *bool
	InitializeWith         *string
	NameAsSortOrder        string // "", "first" or "all"
	SortSeparator          *string
	Form                   string // "long", "short" or "count"
}

// Merge overlays the set fields of child onto o and returns the result
func (o NameOptions) Merge(child NameOptions) NameOptions {
	out := o
	if child.And != "" {
		out.And = child.And
	}
	if child.NameDelimiter != "" {
		out.NameDelimiter = child.NameDelimiter
	}
	if child.NamesDelimiter != "" {
		out.NamesDelimiter = child.NamesDelimiter
	}
	if child.DelimiterPrecedesEtAl != "" {
		out.DelimiterPrecedesEtAl = child.DelimiterPrecedesEtAl
	}
	if child.DelimiterPrecedesLast != "" {
		out.DelimiterPrecedesLast = child.DelimiterPrecedesLast
	}
	if child.EtAlMin != 0 {
		out.EtAlMin = child.EtAlMin
	}
	if child.EtAlUseFirst != 0 {
		out.EtAlUseFirst = child.EtAlUseFirst
	}
	if child.EtAlSubsequentMin != 0 {
		out.EtAlSubsequentMin = child.EtAlSubsequentMin
	}
	if child.EtAlSubsequentUseFirst != 0 {
		out.EtAlSubsequentUseFirst = child.EtAlSubsequentUseFirst
	}
	if child.Initialize != nil {
		out.Initialize = child.Initialize
	}
	if child.InitializeWith != nil {
		out.InitializeWith = child.InitializeWith
	}
	if child.NameAsSortOrder != "" {
		out.NameAsSortOrder = child.NameAsSortOrder
	}
	if child.SortSeparator != nil {
		out.SortSeparator = child.SortSeparator
	}
	if child.Form != "" {
		out.Form = child.Form
	}
	return out
}

// Delimiter returns the effective delimiter between names
func (o NameOptions) Delimiter() string {
	if o.NameDelimiter != "" {
		return o.NameDelimiter
	}
	return ", "
}

// EffectiveSortSeparator returns the separator between family and given
// parts of an inverted name
func (o NameOptions) EffectiveSortSeparator() string {
	if o.SortSeparator != nil {
		return *o.SortSeparator
	}
	return ", "
}

// DisambiguationOptions are the citation-level switches gating the
// disambiguation escalation steps
type DisambiguationOptions struct {
	AddGivenname  bool
	AddNames      bool
	AddYearSuffix bool
}
