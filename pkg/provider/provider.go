// Package provider supplies reference items to the processor. Providers are
// the seam between item storage and rendering: the processor only ever sees
// the ItemDataProvider interface, so callers can back it with an in-memory
// list, a parsed CSL-JSON file or any combination of sources.
package provider

import "github.com/arthur-debert/citekit/pkg/csl"

// ItemDataProvider resolves reference items by id
type ItemDataProvider interface {
	// Item returns the item with the given id
	Item(id string) (*csl.Item, bool)

	// IDs returns all available item ids in provider order
	IDs() []string
}

// ListProvider is an ordered in-memory provider. Items keep their insertion
// order in IDs, which callers rely on when registering everything at once.
type ListProvider struct {
	ids   []string
	items map[string]*csl.Item
}

// NewListProvider builds a provider over the given items
func NewListProvider(items ...*csl.Item) *ListProvider {
	p := &ListProvider{items: make(map[string]*csl.Item)}
	p.Add(items...)
	return p
}

// Add appends items. An item whose id is already present replaces the
// stored one but keeps its original position.
func (p *ListProvider) Add(items ...*csl.Item) *ListProvider {
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, seen := p.items[it.ID()]; !seen {
			p.ids = append(p.ids, it.ID())
		}
		p.items[it.ID()] = it
	}
	return p
}

// Item returns the item with the given id
func (p *ListProvider) Item(id string) (*csl.Item, bool) {
	it, ok := p.items[id]
	return it, ok
}

// IDs returns the item ids in insertion order
func (p *ListProvider) IDs() []string {
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Len returns the number of stored items
func (p *ListProvider) Len() int {
	return len(p.items)
}

// CompoundProvider chains providers. Lookups ask each provider in order and
// the first hit wins; IDs concatenates in the same order, dropping ids an
// earlier provider already claimed.
type CompoundProvider struct {
	providers []ItemDataProvider
}

// NewCompoundProvider builds a provider over the given sources
func NewCompoundProvider(providers ...ItemDataProvider) *CompoundProvider {
	return &CompoundProvider{providers: providers}
}

// Item returns the first item any source resolves
func (p *CompoundProvider) Item(id string) (*csl.Item, bool) {
	for _, sub := range p.providers {
		if it, ok := sub.Item(id); ok {
			return it, true
		}
	}
	return nil, false
}

// IDs returns the ids of all sources in order, first occurrence wins
func (p *CompoundProvider) IDs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, sub := range p.providers {
		for _, id := range sub.IDs() {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
