package citeproc

import (
	"github.com/arthur-debert/citekit/pkg/csl"
	"github.com/arthur-debert/citekit/pkg/provider"
	"github.com/arthur-debert/citekit/pkg/style"
)

// AdhocBibliography renders items through a style in one shot, without
// keeping a processor around
func AdhocBibliography(st *style.Style, format string, items ...*csl.Item) (*Bibliography, error) {
	p, err := adhoc(st, format, items)
	if err != nil {
		return nil, err
	}
	return p.MakeBibliography()
}

// AdhocCitation renders one citation cluster containing all the items
func AdhocCitation(st *style.Style, format string, items ...*csl.Item) (string, error) {
	p, err := adhoc(st, format, items)
	if err != nil {
		return "", err
	}
	cites, err := p.MakeCitation(Cite(p.RegisteredItems()...))
	if err != nil {
		return "", err
	}
	return cites[len(cites)-1].Text, nil
}

func adhoc(st *style.Style, format string, items []*csl.Item) (*Processor, error) {
	prov := provider.NewListProvider(items...)
	p, err := New(prov, st, WithFormat(format))
	if err != nil {
		return nil, err
	}
	if err := p.RegisterCitationItems(prov.IDs()...); err != nil {
		return nil, err
	}
	return p, nil
}
