package provider

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/logging"
)

// JSONOption adjusts CSL-JSON loading
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	smartQuotes bool
}

// WithSmartQuotes normalizes straight quotes in text fields while loading
func WithSmartQuotes() JSONOption {
	return func(c *jsonConfig) {
		c.smartQuotes = true
	}
}

// ParseJSON reads CSL-JSON item data into a ListProvider. Both a top-level
// array and a single item object are accepted.
func ParseJSON(r io.Reader, opts ...JSONOption) (*ListProvider, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrItemData, "reading item data")
	}
	return ParseJSONBytes(data, opts...)
}

// ParseJSONBytes decodes CSL-JSON item data into a ListProvider
func ParseJSONBytes(data []byte, opts ...JSONOption) (*ListProvider, error) {
	var cfg jsonConfig
	for _, o := range opts {
		o(&cfg)
	}

	items, err := decodeItems(data)
	if err != nil {
		return nil, err
	}
	if cfg.smartQuotes {
		for _, it := range items {
			normalizeQuotes(it)
		}
	}

	logging.GetLogger("provider").Debug().
		Int("items", len(items)).
		Bool("smart_quotes", cfg.smartQuotes).
		Msg("loaded item data")

	return NewListProvider(items...), nil
}

// LoadJSONFile loads CSL-JSON item data from a file
func LoadJSONFile(path string, opts ...JSONOption) (*ListProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrItemData,
			"reading item file %s", path)
	}
	p, err := ParseJSONBytes(data, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrItemData, "loading %s", path)
	}
	return p, nil
}

func decodeItems(data []byte) ([]*csl.Item, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		it := &csl.Item{}
		if err := json.Unmarshal(trimmed, it); err != nil {
			return nil, errors.Wrap(err, errors.ErrItemData, "invalid item object")
		}
		return []*csl.Item{it}, nil
	}
	var items []*csl.Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, errors.Wrap(err, errors.ErrItemData,
			"item data is not a CSL-JSON array")
	}
	return items, nil
}

// normalizeQuotes applies SmartQuotes to every text field. URL and DOI hold
// raw identifiers and stay untouched.
func normalizeQuotes(it *csl.Item) {
	for _, name := range it.Variables() {
		if name == "URL" || name == "DOI" {
			continue
		}
		v, ok := it.Variable(name)
		if !ok {
			continue
		}
		if nv := SmartQuotes(v); nv != v {
			it.Set(name, nv)
		}
	}
}
