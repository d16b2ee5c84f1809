// Package config resolves the command line tool's defaults from a TOML
// file under the XDG config home. The file names a default style,
// locale and output format, plus extra directories to search for style
// and locale files beyond the XDG data home.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/logging"
)

var log = logging.GetLogger("config")

// AppDir is the directory name citekit owns under the XDG homes.
const AppDir = "citekit"

// Config holds the command line defaults. Zero values defer the
// decision to the caller, so an empty Format still picks "term" on a
// terminal and "text" elsewhere.
type Config struct {
	// Style is the default style: a file path, or a name resolved
	// against the style search path.
	Style string `toml:"style"`

	// Locale is the default locale code, for example "en-US".
	Locale string `toml:"locale"`

	// Format is the default output format name.
	Format string `toml:"format"`

	// StyleDirs lists extra directories searched for .csl files.
	StyleDirs []string `toml:"style_dirs"`

	// LocaleDirs lists extra directories searched for locale XML files.
	LocaleDirs []string `toml:"locale_dirs"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() Config {
	return Config{Locale: "en-US"}
}

// Path returns the config file location, $XDG_CONFIG_HOME/citekit/config.toml.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppDir, "config.toml")
}

// Load reads the config file at Path over the defaults. A missing file
// is not an error and yields the defaults unchanged.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a single TOML file over the defaults. Keys absent from
// the file keep their default values; a missing file yields the
// defaults unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Trace().Str("path", path).Msg("No config file, using defaults")
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}

	log.Debug().
		Str("path", path).
		Str("style", cfg.Style).
		Str("locale", cfg.Locale).
		Str("format", cfg.Format).
		Msg("Config file loaded")

	return cfg, nil
}

// StyleSearchPath returns the directories style names are resolved in,
// the XDG data home first and the configured extras after it.
func (c Config) StyleSearchPath() []string {
	dirs := []string{filepath.Join(xdg.DataHome, AppDir, "styles")}
	return append(dirs, c.StyleDirs...)
}

// LocaleSearchPath returns the directories locale files are resolved
// in, the XDG data home first and the configured extras after it.
func (c Config) LocaleSearchPath() []string {
	dirs := []string{filepath.Join(xdg.DataHome, AppDir, "locales")}
	return append(dirs, c.LocaleDirs...)
}

// FindStyle resolves a style reference to a file path. A reference
// naming an existing file wins; otherwise each search path directory is
// checked for the name with a .csl extension appended when missing.
func (c Config) FindStyle(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if fileExists(name) {
		return name, true
	}

	base := name
	if !strings.HasSuffix(base, ".csl") {
		base += ".csl"
	}
	for _, dir := range c.StyleSearchPath() {
		path := filepath.Join(dir, base)
		if fileExists(path) {
			log.Trace().Str("name", name).Str("path", path).Msg("Style resolved")
			return path, true
		}
	}
	return "", false
}

// FindLocale resolves a locale code to a locale XML file in the search
// path, letting user files override the embedded set. Both the
// "locales-<code>.xml" spelling of the upstream locale repository and
// the singular "locale-<code>.xml" are accepted.
func (c Config) FindLocale(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	for _, name := range []string{"locales-" + code + ".xml", "locale-" + code + ".xml"} {
		for _, dir := range c.LocaleSearchPath() {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				log.Trace().Str("code", code).Str("path", path).Msg("Locale resolved")
				return path, true
			}
		}
	}
	return "", false
}

// ListStyles returns the style names found in the search path, the file
// base names without the .csl extension, sorted and deduplicated.
func (c Config) ListStyles() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range c.StyleSearchPath() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csl") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".csl")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// ListLocales returns the locale codes found in the search path, sorted
// and deduplicated. Embedded locales are not included; callers merge
// them in themselves.
func (c Config) ListLocales() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, dir := range c.LocaleSearchPath() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			code, ok := localeCode(entry.Name())
			if !ok || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// localeCode extracts the locale code from a locale file name.
func localeCode(name string) (string, bool) {
	if !strings.HasSuffix(name, ".xml") {
		return "", false
	}
	base := strings.TrimSuffix(name, ".xml")
	for _, prefix := range []string{"locales-", "locale-"} {
		if strings.HasPrefix(base, prefix) && len(base) > len(prefix) {
			return strings.TrimPrefix(base, prefix), true
		}
	}
	return "", false
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
