package provider

// AbbreviationProvider resolves short forms for variable values. It backs
// form="short" lookups on text variables: when a style asks for the short
// form of container-title, the provider answers with the journal's
// abbreviated name.
type AbbreviationProvider interface {
	Abbreviation(variable, value string) (string, bool)
}

// DefaultAbbreviations is a map-backed AbbreviationProvider
type DefaultAbbreviations struct {
	byVariable map[string]map[string]string
}

// NewAbbreviations returns an empty abbreviation table
func NewAbbreviations() *DefaultAbbreviations {
	return &DefaultAbbreviations{byVariable: make(map[string]map[string]string)}
}

// Add stores the short form for a variable value and returns the table
// for chaining
func (a *DefaultAbbreviations) Add(variable, value, short string) *DefaultAbbreviations {
	m, ok := a.byVariable[variable]
	if !ok {
		m = make(map[string]string)
		a.byVariable[variable] = m
	}
	m[value] = short
	return a
}

// Abbreviation returns the short form stored for a variable value
func (a *DefaultAbbreviations) Abbreviation(variable, value string) (string, bool) {
	short, ok := a.byVariable[variable][value]
	if !ok || short == "" {
		return "", false
	}
	return short, true
}
