package locale

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/citekit/pkg/errors"
)

//go:embed locales/*.xml
var embeddedLocales embed.FS

var (
	loadMu sync.Mutex
	loaded = make(map[string]*Locale)
)

// Load returns the embedded locale for a language tag. Bare language codes
// resolve to their primary dialect ("en" loads en-US). Parsed locales are
// cached per process.
func Load(lang string) (*Locale, error) {
	lang = normalizeLang(lang)

	loadMu.Lock()
	defer loadMu.Unlock()
	if loc, ok := loaded[lang]; ok {
		return loc, nil
	}

	data, err := embeddedLocales.ReadFile(fmt.Sprintf("locales/locale-%s.xml", lang))
	if err != nil {
		return nil, errors.Newf(errors.ErrLocaleNotFound, "no locale for %q", lang).
			WithDetail("lang", lang)
	}
	loc, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	loaded[lang] = loc
	return loc, nil
}

// Default returns the embedded en-US locale. It panics when the embedded
// data cannot be parsed, which would be a build defect.
func Default() *Locale {
	loc, err := Load("en-US")
	if err != nil {
		panic(err)
	}
	return loc
}

// Available lists the language tags of all embedded locales
func Available() []string {
	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		name = strings.TrimPrefix(name, "locale-")
		name = strings.TrimSuffix(name, ".xml")
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
