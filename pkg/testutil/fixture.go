package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/citekit/pkg/provider"
)

// Fixture is one YAML test case: a style, item data and the expected
// rendered output per format. The file layout follows the processor
// test suite convention, so a bare string result means plain text.
type Fixture struct {
	// Name is the fixture file's base name without the extension
	Name string `yaml:"-"`

	// Mode selects what to render, "citation" or "bibliography"
	Mode string `yaml:"mode"`

	// Style is the citation style XML
	Style string `yaml:"style"`

	// Locale optionally overrides the default locale code
	Locale string `yaml:"locale"`

	// Items holds the item data in CSL-JSON shape
	Items []map[string]interface{} `yaml:"items"`

	// ItemIDs optionally restricts and batches the registered ids.
	// When empty, every item in Items is registered in one batch.
	ItemIDs IDBatches `yaml:"itemIds"`

	// Citations optionally drives citation mode cluster by cluster
	Citations []FixtureCitation `yaml:"citations"`

	// Result holds the expected output keyed by format name
	Result Results `yaml:"result"`
}

// FixtureCitation is one citation cluster in a fixture
type FixtureCitation struct {
	Items      []FixtureCite `yaml:"citationItems"`
	Properties struct {
		NoteIndex int `yaml:"noteIndex"`
	} `yaml:"properties"`
}

// FixtureCite is one cited item within a fixture citation cluster
type FixtureCite struct {
	ID      string `yaml:"id"`
	Prefix  string `yaml:"prefix"`
	Suffix  string `yaml:"suffix"`
	Locator string `yaml:"locator"`
	Label   string `yaml:"label"`
}

// IDBatches holds the itemIds field, which is either a flat id list
// registered as one batch or a list of batches.
type IDBatches [][]string

// UnmarshalYAML accepts both the flat and the nested spelling.
func (b *IDBatches) UnmarshalYAML(value *yaml.Node) error {
	var flat []string
	if err := value.Decode(&flat); err == nil {
		*b = IDBatches{flat}
		return nil
	}
	var nested [][]string
	if err := value.Decode(&nested); err != nil {
		return err
	}
	*b = nested
	return nil
}

// Results maps output format names to expected rendered strings.
type Results map[string]string

// UnmarshalYAML promotes a bare string to the text result.
func (r *Results) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		*r = Results{"text": s}
		return nil
	}
	m := map[string]string{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	*r = m
	return nil
}

// Provider builds an item data provider from the fixture's items by
// round-tripping them through the CSL-JSON decoder.
func (f *Fixture) Provider(t *testing.T) *provider.ListProvider {
	t.Helper()

	data, err := json.Marshal(f.Items)
	if err != nil {
		t.Fatalf("Failed to encode fixture items for %s: %v", f.Name, err)
	}
	p, err := provider.ParseJSONBytes(data)
	if err != nil {
		t.Fatalf("Failed to decode fixture items for %s: %v", f.Name, err)
	}
	return p
}

// LoadFixtures reads every .yaml file in dir, typically a package's
// testdata directory, sorted by file name.
func LoadFixtures(t *testing.T, dir string) []Fixture {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read fixture directory %s: %v", dir, err)
	}

	var fixtures []Fixture
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read fixture %s: %v", path, err)
		}
		var f Fixture
		if err := yaml.Unmarshal(data, &f); err != nil {
			t.Fatalf("Failed to parse fixture %s: %v", path, err)
		}
		f.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		fixtures = append(fixtures, f)
	}
	return fixtures
}
