package citeproc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/render"
	"github.com/arthur-debert/citekit/pkg/style"
)

// bibliographyOrder returns the registered ids in rendering order: the
// style's bibliography sort when one is declared and the registry is in
// sorted mode, first-registration order otherwise. The sort is stable,
// so tied entries keep registration order.
func (p *Processor) bibliographyOrder() ([]string, error) {
	ids := append([]string(nil), p.refs...)
	if p.unsorted || !p.style.HasBibliography() {
		return ids, nil
	}
	s := p.style.Bibliography.Sort
	if s == nil || len(s.Keys) == 0 {
		return ids, nil
	}
	table := make([][]string, len(ids))
	for i, id := range ids {
		keys, err := p.sortKeys(id, s.Keys, true)
		if err != nil {
			return nil, err
		}
		table[i] = keys
	}
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.lessKeys(table[order[a]], table[order[b]], s.Keys)
	})
	out := make([]string, len(ids))
	for i, j := range order {
		out[i] = ids[j]
	}
	return out, nil
}

// sortCites returns a cluster's items in citation-sort order
func (p *Processor) sortCites(items []ClusterItem, s *style.Sort) ([]ClusterItem, error) {
	table := make([][]string, len(items))
	for i, ci := range items {
		keys, err := p.sortKeys(ci.ID, s.Keys, false)
		if err != nil {
			return nil, err
		}
		table[i] = keys
	}
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.lessKeys(table[order[a]], table[order[b]], s.Keys)
	})
	out := make([]ClusterItem, len(items))
	for i, j := range order {
		out[i] = items[j]
	}
	return out, nil
}

// lessKeys compares two key tuples under the declared directions. Empty
// values sort last regardless of direction; ties fall through to the
// next key.
func (p *Processor) lessKeys(a, b []string, keys []style.SortKey) bool {
	for i := range keys {
		av, bv := a[i], b[i]
		if av == "" || bv == "" {
			if av == bv {
				continue
			}
			return bv == ""
		}
		c := p.coll.CompareString(av, bv)
		if c == 0 {
			continue
		}
		if keys[i].Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

// sortKeys renders the declared key values for one item
func (p *Processor) sortKeys(id string, keys []style.SortKey, bib bool) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		v, err := p.sortKeyValue(id, k, bib)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// sortKeyValue renders one key for one item. Macro keys run through the
// evaluator in sort mode; variable keys flatten to a comparable string
// by their class.
func (p *Processor) sortKeyValue(id string, key style.SortKey, bib bool) (string, error) {
	item, ok := p.provider.Item(id)
	if !ok {
		return "", errors.Newf(errors.ErrItemNotFound, "item %q is not in the item data provider", id).
			WithDetail("id", id)
	}

	if key.Macro != "" {
		opts := p.style.CitationNameOptions()
		if bib {
			opts = p.style.BibliographyNameOptions()
		}
		// sort keys render every name family-first, with the key's own
		// et-al bounds when it sets them
		opts.NameAsSortOrder = "all"
		if key.NamesMin > 0 {
			opts.EtAlMin = key.NamesMin
		}
		if key.NamesUseFirst > 0 {
			opts.EtAlUseFirst = key.NamesUseFirst
		}
		m, err := p.style.Macro(key.Macro)
		if err != nil {
			return "", err
		}
		ctx := render.NewContext(render.Params{
			Style:         p.style,
			Item:          item,
			Locale:        p.locale,
			Abbreviations: p.abbrevs,
			Options:       opts,
			Variables:     map[string]string{"citation-number": strconv.Itoa(p.numbers[id])},
			SortMode:      true,
			Bibliography:  bib,
		})
		if err := render.Render(ctx, m.Children); err != nil {
			return "", err
		}
		return ctx.Buffer().String(), nil
	}

	switch key.Variable {
	case "":
		return "", nil
	case "citation-number":
		return fmt.Sprintf("%08d", p.numbers[id]), nil
	}
	if names, ok := item.NameVariable(key.Variable); ok {
		return sortableNames(names), nil
	}
	if d, ok := item.DateVariable(key.Variable); ok {
		return render.SortableDate(d), nil
	}
	if v, ok := item.Variable(key.Variable); ok {
		return padNumeric(v), nil
	}
	return "", nil
}

// sortableNames flattens a contributor list family-first for key
// comparison
func sortableNames(names []csl.Name) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n.IsLiteral() {
			parts = append(parts, n.Literal)
			continue
		}
		fields := []string{n.Family, n.Given, n.DroppingParticle, n.NonDroppingParticle, n.Suffix}
		kept := fields[:0]
		for _, f := range fields {
			if f != "" {
				kept = append(kept, f)
			}
		}
		parts = append(parts, strings.Join(kept, " "))
	}
	return strings.Join(parts, " ")
}

// padNumeric left-pads a leading integer so "2" sorts before "12"
func padNumeric(v string) string {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == 0 {
		return v
	}
	n, err := strconv.Atoi(v[:i])
	if err != nil {
		return v
	}
	return fmt.Sprintf("%08d%s", n, v[i:])
}
