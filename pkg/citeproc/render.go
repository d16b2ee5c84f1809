package citeproc

import (
	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/render"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

// renderClusterText renders the cluster at log index idx and encodes it
// in the processor's output format
func (p *Processor) renderClusterText(idx int) (string, error) {
	buf, err := p.clusterBuffer(idx)
	if err != nil {
		return "", err
	}
	return p.format.Citation(buf, p.fopts), nil
}

// clusterBuffer assembles one cluster: cites in citation-sort order,
// joined by the layout delimiter, wrapped in the layout affixes
func (p *Processor) clusterBuffer(idx int) (*token.Buffer, error) {
	layout := p.style.Citation.Layout
	items := p.clusters[idx].cluster.Items
	if s := p.style.Citation.Sort; s != nil && len(s.Keys) > 0 {
		sorted, err := p.sortCites(items, s)
		if err != nil {
			return nil, err
		}
		items = sorted
	}

	cites := make([]*token.Buffer, len(items))
	for i, ci := range items {
		buf, err := p.renderCite(idx, i, items)
		if err != nil {
			return nil, err
		}
		render.ApplyAffixes(buf, ci.Prefix, ci.Suffix)
		cites[i] = buf
	}

	joined := p.joinCites(cites, items, layout)
	render.ApplyLayout(joined, layout, p.locale)
	return joined, nil
}

// renderCite renders the cite at position citeIdx of the cluster's item
// list through the citation layout
func (p *Processor) renderCite(idx, citeIdx int, items []ClusterItem) (*token.Buffer, error) {
	ci := items[citeIdx]
	item, ok := p.provider.Item(ci.ID)
	if !ok {
		return nil, errors.Newf(errors.ErrItemNotFound, "item %q is not in the item data provider", ci.ID).
			WithDetail("id", ci.ID)
	}
	pos, nearNote := p.position(idx, citeIdx, items)
	ctx := render.NewContext(render.Params{
		Style:          p.style,
		Item:           item,
		Locale:         p.locale,
		Abbreviations:  p.abbrevs,
		Options:        p.style.CitationNameOptions(),
		Variables:      p.variablesFor(ci.ID, ci),
		Position:       pos,
		NearNote:       nearNote,
		Disambiguation: p.disamb[ci.ID],
	})
	if err := render.Render(ctx, p.style.Citation.Layout.Children); err != nil {
		return nil, err
	}
	return ctx.Buffer(), nil
}

// position derives a cite's position from the cluster log: first use,
// repeat, or an ibid pair with the cite directly before it
func (p *Processor) position(idx, citeIdx int, items []ClusterItem) (render.Position, bool) {
	ci := items[citeIdx]
	if citeIdx > 0 && items[citeIdx-1].ID == ci.ID {
		return ibidKind(items[citeIdx-1].Locator, ci.Locator), p.nearNote(idx, ci.ID)
	}
	if !p.citedBefore(idx, ci.ID) {
		return render.PositionFirst, false
	}
	if citeIdx == 0 && idx > 0 {
		prev := p.clusters[idx-1].cluster
		if len(prev.Items) == 1 && prev.Items[0].ID == ci.ID {
			return ibidKind(prev.Items[0].Locator, ci.Locator), p.nearNote(idx, ci.ID)
		}
	}
	return render.PositionSubsequent, p.nearNote(idx, ci.ID)
}

// ibidKind grades an immediate repeat by its locator pair. A repeat that
// drops a locator falls back to plain subsequent.
func ibidKind(prevLocator, locator string) render.Position {
	switch {
	case locator == "" && prevLocator == "":
		return render.PositionIbid
	case locator == "":
		return render.PositionSubsequent
	case prevLocator == "" || locator != prevLocator:
		return render.PositionIbidWithLocator
	default:
		return render.PositionIbid
	}
}

// citedBefore reports whether any cluster before idx cites the item
func (p *Processor) citedBefore(idx int, id string) bool {
	for i := 0; i < idx; i++ {
		for _, ci := range p.clusters[i].cluster.Items {
			if ci.ID == id {
				return true
			}
		}
	}
	return false
}

// nearNote reports whether the item was cited within the style's note
// distance before this cluster. In-text clusters carry no note index and
// are never near.
func (p *Processor) nearNote(idx int, id string) bool {
	note := p.clusters[idx].cluster.NoteIndex
	if note <= 0 {
		return false
	}
	dist := p.style.Citation.NearNoteDistance
	for i := idx - 1; i >= 0; i-- {
		prev := p.clusters[i].cluster
		if prev.NoteIndex <= 0 || note-prev.NoteIndex > dist {
			continue
		}
		for _, ci := range prev.Items {
			if ci.ID == id {
				return true
			}
		}
	}
	return false
}

// joinCites joins rendered cites with the layout delimiter, collapsing
// runs of consecutive citation numbers when the style asks for it
func (p *Processor) joinCites(cites []*token.Buffer, items []ClusterItem, layout *style.Layout) *token.Buffer {
	if p.style.Citation.Collapse == "citation-number" {
		return p.collapseNumbers(cites, items, layout)
	}
	out := token.NewBuffer()
	for i, c := range cites {
		if i > 0 && layout.Delimiter != "" {
			out.Append(layout.Delimiter, token.Delimiter)
		}
		out.AppendAll(c)
	}
	return out
}

// collapseNumbers shortens runs of three or more consecutive citation
// numbers to a first-last range: [1], [2], [3] becomes [1]-[3] with an
// en dash. Cites carrying their own affixes never join a run.
func (p *Processor) collapseNumbers(cites []*token.Buffer, items []ClusterItem, layout *style.Layout) *token.Buffer {
	nums := make([]int, len(items))
	for i, ci := range items {
		if ci.Prefix == "" && ci.Suffix == "" {
			nums[i] = p.numbers[ci.ID]
		}
	}
	// a range closes one bracketed cite and opens the next, so the dash
	// carries the layout affixes between them
	rangeJoin := layout.Suffix + "–" + layout.Prefix

	out := token.NewBuffer()
	first := true
	for i := 0; i < len(cites); {
		j := i
		for j+1 < len(cites) && nums[j] != 0 && nums[j+1] == nums[j]+1 {
			j++
		}
		if !first && layout.Delimiter != "" {
			out.Append(layout.Delimiter, token.Delimiter)
		}
		first = false
		if j-i >= 2 {
			out.AppendAll(cites[i])
			out.Append(rangeJoin, token.Delimiter)
			out.AppendAll(cites[j])
		} else {
			for k := i; k <= j; k++ {
				if k > i && layout.Delimiter != "" {
					out.Append(layout.Delimiter, token.Delimiter)
				}
				out.AppendAll(cites[k])
			}
		}
		i = j + 1
	}
	return out
}
