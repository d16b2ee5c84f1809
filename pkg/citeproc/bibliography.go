package citeproc

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/output"
	"github.com/arthur-debert/citekit/pkg/render"
	"github.com/arthur-debert/citekit/pkg/style"
	"github.com/arthur-debert/citekit/pkg/token"
)

// Bibliography is a rendered reference list
type Bibliography struct {
	// IDs are the item ids in rendered order
	IDs []string
	// Entries hold one encoded string per item, in the same order
	Entries []string
	// Start and End frame the entries in formats that wrap the list
	Start string
	End   string
}

// MakeString concatenates the framed bibliography into one string
func (b *Bibliography) MakeString() string {
	var sb strings.Builder
	sb.WriteString(b.Start)
	for _, e := range b.Entries {
		sb.WriteString(e)
	}
	sb.WriteString(b.End)
	return sb.String()
}

// MakeBibliography renders every registered item in the style's sort
// order. Entries come back encoded in the processor's output format,
// framed by the format's list wrapper. Rendering is idempotent: a stable
// registry renders the same bibliography every time.
func (p *Processor) MakeBibliography() (*Bibliography, error) {
	if !p.style.HasBibliography() {
		return nil, errors.New(errors.ErrStyleInvalid, "style has no bibliography layout")
	}
	if err := p.disambiguate(); err != nil {
		return nil, err
	}
	ids, err := p.bibliographyOrder()
	if err != nil {
		return nil, err
	}
	bib := p.style.Bibliography
	meta := output.Meta{
		SecondFieldAlign: bib.SecondFieldAlign,
		HangingIndent:    bib.HangingIndent,
		LineSpacing:      bib.LineSpacing,
		EntrySpacing:     bib.EntrySpacing,
	}
	out := &Bibliography{
		IDs:     ids,
		Entries: make([]string, 0, len(ids)),
		Start:   p.format.BibliographyStart(meta),
		End:     p.format.BibliographyEnd(meta),
	}
	prevLead := ""
	for _, id := range ids {
		entry, lead, err := p.renderEntry(id, prevLead)
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, p.format.Entry(entry, p.fopts))
		prevLead = lead
	}
	p.log.Debug().Int("entries", len(out.Entries)).Str("format", p.format.Name()).Msg("rendered bibliography")
	return out, nil
}

// renderEntry renders one bibliography entry. lead carries the entry's
// contributor text so the caller can hand it back as prevLead for the
// next entry; when it repeats and the style substitutes subsequent
// authors, the entry is re-rendered with the substitute text.
func (p *Processor) renderEntry(id, prevLead string) (output.Entry, string, error) {
	item, ok := p.provider.Item(id)
	if !ok {
		return output.Entry{}, "", errors.Newf(errors.ErrItemNotFound, "item %q is not in the item data provider", id).
			WithDetail("id", id)
	}
	bib := p.style.Bibliography
	params := render.Params{
		Style:          p.style,
		Item:           item,
		Locale:         p.locale,
		Abbreviations:  p.abbrevs,
		Options:        p.style.BibliographyNameOptions(),
		Variables:      map[string]string{"citation-number": strconv.Itoa(p.numbers[id])},
		Disambiguation: p.disamb[id],
		Bibliography:   true,
	}
	entry, lead, err := p.renderEntryOnce(id, params, bib)
	if err != nil {
		return output.Entry{}, "", err
	}
	if sub := bib.SubsequentAuthorSubstitute; sub != "" && lead != "" && lead == prevLead {
		params.NameSubstitute = sub
		entry, _, err = p.renderEntryOnce(id, params, bib)
		if err != nil {
			return output.Entry{}, "", err
		}
	}
	return entry, lead, nil
}

// renderEntryOnce runs the bibliography layout for one item, splitting
// the first field into its own buffer when the style aligns on it
func (p *Processor) renderEntryOnce(id string, params render.Params, bib *style.Bibliography) (output.Entry, string, error) {
	ctx := render.NewContext(params)
	layout := bib.Layout
	e := output.Entry{ID: id}

	if bib.SecondFieldAlign != "" && len(layout.Children) > 1 {
		if err := render.Render(ctx, layout.Children[:1]); err != nil {
			return e, "", err
		}
		first := ctx.Buffer().Copy()
		ctx.Buffer().Clear()
		if err := render.Render(ctx, layout.Children[1:]); err != nil {
			return e, "", err
		}
		body := ctx.Buffer()
		// the layout prefix belongs to the margin field, everything else
		// to the body
		rest := *layout
		rest.Prefix = ""
		render.ApplyLayout(body, &rest, p.locale)
		if layout.Prefix != "" && !first.IsEmpty() {
			first.Prepend(layout.Prefix, token.Prefix)
		}
		e.First = first
		e.Body = body
		return e, ctx.LeadNames(), nil
	}

	if err := render.Render(ctx, layout.Children); err != nil {
		return e, "", err
	}
	buf := ctx.Buffer()
	render.ApplyLayout(buf, layout, p.locale)
	e.Body = buf
	return e, ctx.LeadNames(), nil
}
