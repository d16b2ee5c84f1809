package citeproc

import (
	"strconv"

	"github.com/arthur-debert/citekit/pkg/render"
	"github.com/arthur-debert/citekit/pkg/style"
)

// Escalation steps, applied lowest-first to a whole collision group.
// Given names expand before et-al truncation lifts, the choose
// disambiguate condition fires before year suffixes letter the group.
const (
	stepGivenname = iota
	stepAllNames
	stepCondition
	stepYearSuffix
	stepDone
)

// disambiguate escalates items whose citations render identically until
// the collisions resolve or every step is exhausted. A step that does
// not change the group's renders is rolled back and not retried, so
// settled state only ever grows while items stay registered and
// already-reported texts never regress to a more ambiguous form.
// Running out of steps is not an error; texts stay maximally expanded.
func (p *Processor) disambiguate() error {
	if len(p.refs) < 2 {
		return nil
	}
	gates := p.style.Citation.Disambiguation
	for {
		groups, err := p.collisionGroups()
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return nil
		}
		progressed := false
		for _, group := range groups {
			ok, err := p.escalate(group, gates)
			if err != nil {
				return err
			}
			if ok {
				progressed = true
			}
		}
		if !progressed {
			return nil
		}
	}
}

// collisionGroups renders every registered item's bare citation and
// groups the ids whose texts coincide, in registration order. Year
// suffixes are stripped for the comparison so that works sharing an
// author-year key stay grouped once lettered.
func (p *Processor) collisionGroups() ([][]string, error) {
	byText := make(map[string][]string)
	var texts []string
	for _, id := range p.refs {
		text, err := p.citationKey(id)
		if err != nil {
			return nil, err
		}
		if _, ok := byText[text]; !ok {
			texts = append(texts, text)
		}
		byText[text] = append(byText[text], id)
	}
	var groups [][]string
	for _, t := range texts {
		if len(byText[t]) > 1 {
			groups = append(groups, byText[t])
		}
	}
	return groups, nil
}

// citationKey renders an item's bare cite under its current escalation
// state, year suffix excluded
func (p *Processor) citationKey(id string) (string, error) {
	item, ok := p.provider.Item(id)
	if !ok {
		return "", nil
	}
	d := p.disamb[id]
	d.YearSuffix = ""
	ctx := render.NewContext(render.Params{
		Style:          p.style,
		Item:           item,
		Locale:         p.locale,
		Abbreviations:  p.abbrevs,
		Options:        p.style.CitationNameOptions(),
		Variables:      map[string]string{"citation-number": strconv.Itoa(p.numbers[id])},
		Position:       render.PositionFirst,
		Disambiguation: d,
	})
	if err := render.Render(ctx, p.style.Citation.Layout.Children); err != nil {
		return "", err
	}
	return ctx.Buffer().String(), nil
}

// escalate applies the lowest step the group has not tried yet. Steps
// short of the year suffix are kept only when they actually split the
// group's renders; either way the step is spent. Returns false when
// nothing was left to try.
func (p *Processor) escalate(ids []string, gates style.DisambiguationOptions) (bool, error) {
	step := p.nextStep(ids, gates)
	if step == stepDone {
		return false, nil
	}

	before := make(map[string]render.Disambiguation, len(ids))
	for _, id := range ids {
		before[id] = p.disamb[id]
		p.tried[id] |= 1 << step
	}

	switch step {
	case stepGivenname:
		for _, id := range ids {
			d := p.disamb[id]
			d.ExpandGivenNames = true
			p.disamb[id] = d
		}
	case stepAllNames:
		for _, id := range ids {
			d := p.disamb[id]
			d.AllNames = true
			p.disamb[id] = d
		}
	case stepCondition:
		for _, id := range ids {
			d := p.disamb[id]
			d.Pass = true
			p.disamb[id] = d
		}
	case stepYearSuffix:
		// suffix letters always tell the group apart
		p.assignYearSuffixes(ids)
		return true, nil
	}

	split, err := p.rendersDiverged(ids)
	if err != nil {
		return false, err
	}
	if !split {
		for id, d := range before {
			p.disamb[id] = d
		}
	}
	return true, nil
}

// rendersDiverged reports whether the group's citation keys are no
// longer all identical
func (p *Processor) rendersDiverged(ids []string) (bool, error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		k, err := p.citationKey(id)
		if err != nil {
			return false, err
		}
		seen[k] = true
		if len(seen) > 1 {
			return true, nil
		}
	}
	return false, nil
}

// nextStep finds the lowest enabled step some group member has not tried
func (p *Processor) nextStep(ids []string, gates style.DisambiguationOptions) int {
	for s := stepGivenname; s < stepDone; s++ {
		if !p.stepEnabled(s, gates) {
			continue
		}
		for _, id := range ids {
			if p.tried[id]&(1<<s) == 0 {
				return s
			}
		}
	}
	return stepDone
}

// stepEnabled checks the style's gate for a step. The condition step
// only helps when the citation layout actually tests disambiguate.
func (p *Processor) stepEnabled(s int, gates style.DisambiguationOptions) bool {
	switch s {
	case stepGivenname:
		return gates.AddGivenname
	case stepAllNames:
		return gates.AddNames
	case stepCondition:
		return p.hasDisambCondition
	case stepYearSuffix:
		return gates.AddYearSuffix
	}
	return false
}

// assignYearSuffixes letters a colliding group in registration order.
// Members lettered in an earlier pass keep their suffix; newcomers take
// the lowest letter the group has not used yet.
func (p *Processor) assignYearSuffixes(ids []string) {
	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	used := make(map[string]bool)
	for _, id := range ids {
		if s := p.disamb[id].YearSuffix; s != "" {
			used[s] = true
		}
	}
	next := 0
	for _, id := range p.refs {
		if !member[id] || p.disamb[id].YearSuffix != "" {
			continue
		}
		for used[yearSuffixLetter(next)] {
			next++
		}
		d := p.disamb[id]
		d.YearSuffix = yearSuffixLetter(next)
		used[d.YearSuffix] = true
		p.disamb[id] = d
	}
}

// yearSuffixLetter spells suffix n in bijective base 26: a through z,
// then aa, ab and so on
func yearSuffixLetter(n int) string {
	s := ""
	n++
	for n > 0 {
		n--
		s = string(rune('a'+n%26)) + s
		n /= 26
	}
	return s
}

// usesDisambiguateCondition walks the citation tree, expanded macros
// included, looking for a choose branch that tests the disambiguate
// condition
func usesDisambiguateCondition(st *style.Style) bool {
	if st.Citation == nil || st.Citation.Layout == nil {
		return false
	}
	seen := make(map[string]bool)
	var walk func(els []style.Element) bool
	walk = func(els []style.Element) bool {
		for _, el := range els {
			switch n := el.(type) {
			case *style.Choose:
				for _, br := range n.Branches {
					if br.Conditions.HasDisambiguate {
						return true
					}
					if walk(br.Children) {
						return true
					}
				}
			case *style.Group:
				if walk(n.Children) {
					return true
				}
			case *style.Names:
				if walk(n.Substitute) {
					return true
				}
			case *style.Text:
				if n.Macro != "" && !seen[n.Macro] {
					seen[n.Macro] = true
					if m, err := st.Macro(n.Macro); err == nil && walk(m.Children) {
						return true
					}
				}
			}
		}
		return false
	}
	return walk(st.Citation.Layout.Children)
}
