package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/testutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "en-US", cfg.Locale)
	assert.Empty(t, cfg.Style)
	assert.Empty(t, cfg.Format)
	assert.Empty(t, cfg.StyleDirs)
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
style = "ieee"
format = "html"
style_dirs = ["/opt/styles"]
`)

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "ieee", cfg.Style)
	assert.Equal(t, "html", cfg.Format)
	assert.Equal(t, []string{"/opt/styles"}, cfg.StyleDirs)
	// keys absent from the file keep their defaults
	assert.Equal(t, "en-US", cfg.Locale)
}

func TestLoadFileOverridesLocale(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `locale = "de-DE"`)

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.Locale)
}

func TestLoadFileInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `style = [unclosed`)

	_, err := LoadFile(path)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestFindStyle(t *testing.T) {
	testutil.IsolateXDG(t)
	dir := t.TempDir()
	apa := writeFile(t, dir, "apa.csl", "<style/>")

	cfg := Config{StyleDirs: []string{dir}}

	t.Run("existing path wins", func(t *testing.T) {
		path, ok := cfg.FindStyle(apa)
		require.True(t, ok)
		assert.Equal(t, apa, path)
	})

	t.Run("bare name gets the extension", func(t *testing.T) {
		path, ok := cfg.FindStyle("apa")
		require.True(t, ok)
		assert.Equal(t, apa, path)
	})

	t.Run("name with extension", func(t *testing.T) {
		path, ok := cfg.FindStyle("apa.csl")
		require.True(t, ok)
		assert.Equal(t, apa, path)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, ok := cfg.FindStyle("citekit-no-such-style")
		assert.False(t, ok)
	})

	t.Run("empty name", func(t *testing.T) {
		_, ok := cfg.FindStyle("")
		assert.False(t, ok)
	})
}

func TestFindStyleSearchOrder(t *testing.T) {
	testutil.IsolateXDG(t)
	first := t.TempDir()
	second := t.TempDir()
	want := writeFile(t, first, "ieee.csl", "<style/>")
	writeFile(t, second, "ieee.csl", "<style/>")

	cfg := Config{StyleDirs: []string{first, second}}

	path, ok := cfg.FindStyle("ieee")
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestFindLocale(t *testing.T) {
	testutil.IsolateXDG(t)
	dir := t.TempDir()
	plural := writeFile(t, dir, "locales-de-DE.xml", "<locale/>")
	singular := writeFile(t, dir, "locale-fr-FR.xml", "<locale/>")

	cfg := Config{LocaleDirs: []string{dir}}

	t.Run("upstream spelling", func(t *testing.T) {
		path, ok := cfg.FindLocale("de-DE")
		require.True(t, ok)
		assert.Equal(t, plural, path)
	})

	t.Run("singular spelling", func(t *testing.T) {
		path, ok := cfg.FindLocale("fr-FR")
		require.True(t, ok)
		assert.Equal(t, singular, path)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := cfg.FindLocale("xx-XX")
		assert.False(t, ok)
	})
}

func TestListStyles(t *testing.T) {
	testutil.IsolateXDG(t)
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "apa.csl", "<style/>")
	writeFile(t, first, "notes.txt", "not a style")
	writeFile(t, second, "ieee.csl", "<style/>")
	writeFile(t, second, "apa.csl", "<style/>")

	cfg := Config{StyleDirs: []string{first, second}}

	assert.Equal(t, []string{"apa", "ieee"}, cfg.ListStyles())
}

func TestListLocales(t *testing.T) {
	testutil.IsolateXDG(t)
	dir := t.TempDir()
	writeFile(t, dir, "locales-de-DE.xml", "<locale/>")
	writeFile(t, dir, "locale-fr-FR.xml", "<locale/>")
	writeFile(t, dir, "readme.md", "not a locale")

	cfg := Config{LocaleDirs: []string{dir}}

	assert.Equal(t, []string{"de-DE", "fr-FR"}, cfg.ListLocales())
}

func TestLoadReadsConfigHome(t *testing.T) {
	testutil.IsolateXDG(t)
	dir := filepath.Join(xdg.ConfigHome, AppDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFile(t, dir, "config.toml", `format = "asciidoc"`)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "asciidoc", cfg.Format)
	assert.Equal(t, filepath.Join(dir, "config.toml"), Path())
}

func TestSearchPathOrder(t *testing.T) {
	cfg := Config{StyleDirs: []string{"/a", "/b"}}

	dirs := cfg.StyleSearchPath()
	require.Len(t, dirs, 3)
	// the data home dir comes first, configured extras keep their order
	assert.Equal(t, "/a", dirs[1])
	assert.Equal(t, "/b", dirs[2])
}
