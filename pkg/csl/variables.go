package csl

// Variable classes. A reference item is a bag of variables and the class of
// a variable decides how its JSON value is decoded and which lookup it is
// served from during rendering.

var nameVariables = map[string]bool{
	"author":             true,
	"collection-editor":  true,
	"composer":           true,
	"container-author":   true,
	"director":           true,
	"editor":             true,
	"editorial-director": true,
	"illustrator":        true,
	"interviewer":        true,
	"original-author":    true,
	"recipient":          true,
	"reviewed-author":    true,
	"translator":         true,
}

var dateVariables = map[string]bool{
	"accessed":      true,
	"container":     true,
	"event-date":    true,
	"issued":        true,
	"original-date": true,
	"submitted":     true,
}

var numberVariables = map[string]bool{
	"chapter-number":              true,
	"citation-number":             true,
	"collection-number":           true,
	"edition":                     true,
	"first-reference-note-number": true,
	"issue":                       true,
	"locator":                     true,
	"number":                      true,
	"number-of-pages":             true,
	"number-of-volumes":           true,
	"page":                        true,
	"page-first":                  true,
	"section":                     true,
	"volume":                      true,
}

// IsNameVariable reports whether the variable holds a list of names
func IsNameVariable(name string) bool {
	return nameVariables[name]
}

// IsDateVariable reports whether the variable holds a date
func IsDateVariable(name string) bool {
	return dateVariables[name]
}

// IsNumberVariable reports whether the variable is defined as numeric
func IsNumberVariable(name string) bool {
	return numberVariables[name]
}
