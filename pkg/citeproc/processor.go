// Package citeproc drives citation processing for one document: it keeps
// the registry of cited items, renders citation clusters and
// bibliographies through a parsed style, and escalates disambiguation
// when distinct works render identically.
//
// A Processor is single-threaded by design. Registration and rendering
// mutate shared registry state, so concurrent callers must serialize;
// independent documents get independent processors.
package citeproc

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arthur-debert/citekit/pkg/errors"
	"github.com/arthur-debert/citekit/pkg/locale"
	"github.com/arthur-debert/citekit/pkg/logging"
	"github.com/arthur-debert/citekit/pkg/output"
	"github.com/arthur-debert/citekit/pkg/provider"
	"github.com/arthur-debert/citekit/pkg/render"
	"github.com/arthur-debert/citekit/pkg/style"
)

// Processor renders citations and bibliographies for one document. All
// configuration lives in explicit instance fields, set at construction.
type Processor struct {
	provider provider.ItemDataProvider
	style    *style.Style
	locale   *locale.Locale
	abbrevs  render.Abbreviations
	format   output.Format
	fopts    output.Options
	coll     *collate.Collator
	log      zerolog.Logger

	// hasDisambCondition caches whether the citation layout tests the
	// choose disambiguate condition anywhere
	hasDisambCondition bool

	refs     []string       // item ids in first-registration order
	numbers  map[string]int // id to citation number, stable until Reset
	nextNum  int
	unsorted bool
	clusters []*loggedCluster
	disamb   map[string]render.Disambiguation
	tried    map[string]int // id to bitmask of escalation steps spent
}

// loggedCluster is one cluster in the citation log together with the
// text last reported to the caller
type loggedCluster struct {
	cluster  Cluster
	text     string
	rendered bool
}

// Option configures a Processor at construction
type Option func(*Processor) error

// WithLocale selects the base rendering locale by language code. The
// default is the style's default-locale, then en-US. Locale terms the
// style overrides stay overridden.
func WithLocale(lang string) Option {
	return func(p *Processor) error {
		loc, err := locale.Load(lang)
		if err != nil {
			return err
		}
		p.locale = loc
		return nil
	}
}

// WithLocaleXML parses a CSL locale document and uses it as the base
// rendering locale, for locale files outside the embedded set
func WithLocaleXML(data []byte) Option {
	return func(p *Processor) error {
		loc, err := locale.ParseBytes(data)
		if err != nil {
			return err
		}
		p.locale = loc
		return nil
	}
}

// WithFormat selects the output format by registry name ("text", "html",
// "asciidoc", "fo", "markdown", "term")
func WithFormat(name string) Option {
	return func(p *Processor) error {
		f, err := output.Get(name)
		if err != nil {
			return err
		}
		p.format = f
		return nil
	}
}

// WithAbbreviations installs a provider for form="short" lookups
func WithAbbreviations(a provider.AbbreviationProvider) Option {
	return func(p *Processor) error {
		p.abbrevs = a
		return nil
	}
}

// WithConvertLinks renders URL and DOI values as links in formats that
// support them
func WithConvertLinks(convert bool) Option {
	return func(p *Processor) error {
		p.fopts.ConvertLinks = convert
		return nil
	}
}

// WithNoColor disables ANSI styling in the term format
func WithNoColor(noColor bool) Option {
	return func(p *Processor) error {
		p.fopts.NoColor = noColor
		return nil
	}
}

// WithLogger replaces the processor's logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Processor) error {
		p.log = log
		return nil
	}
}

// New builds a processor over one item source and one parsed style
func New(prov provider.ItemDataProvider, st *style.Style, opts ...Option) (*Processor, error) {
	if prov == nil {
		return nil, errors.New(errors.ErrInvalidInput, "item data provider is required")
	}
	if st == nil || st.Citation == nil || st.Citation.Layout == nil {
		return nil, errors.New(errors.ErrStyleInvalid, "style has no citation layout")
	}
	p := &Processor{
		provider: prov,
		style:    st,
		log:      logging.GetLogger("citeproc"),
		numbers:  make(map[string]int),
		nextNum:  1,
		disamb:   make(map[string]render.Disambiguation),
		tried:    make(map[string]int),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.format == nil {
		f, err := output.Get("text")
		if err != nil {
			return nil, err
		}
		p.format = f
	}
	if p.locale == nil {
		lang := st.DefaultLocale
		if lang == "" {
			p.locale = locale.Default()
		} else {
			loc, err := locale.Load(lang)
			if err != nil {
				return nil, err
			}
			p.locale = loc
		}
	}
	p.locale = st.MergeLocale(p.locale)
	p.coll = collate.New(language.Make(p.locale.Lang()), collate.Loose)
	p.hasDisambCondition = usesDisambiguateCondition(st)
	return p, nil
}

// RegisterCitationItems adds items to the reference list. Every id must
// resolve in the data provider; on a miss the registry is left unchanged
// and the error names the offending id. Already-registered items keep
// their citation numbers. The bibliography renders in the style's sort
// order.
func (p *Processor) RegisterCitationItems(ids ...string) error {
	if err := p.register(ids, false); err != nil {
		return err
	}
	return p.disambiguate()
}

// RegisterCitationItemsUnsorted is RegisterCitationItems with the
// style's bibliography sort suppressed: entries keep registration order
// until a sorted registration call flips the mode back.
func (p *Processor) RegisterCitationItemsUnsorted(ids ...string) error {
	if err := p.register(ids, true); err != nil {
		return err
	}
	return p.disambiguate()
}

// register validates all ids before touching the registry, then assigns
// citation numbers in first-registration order. Numbers are never handed
// out twice, even when their item is later removed.
func (p *Processor) register(ids []string, unsorted bool) error {
	for _, id := range ids {
		if _, ok := p.provider.Item(id); !ok {
			return errors.Newf(errors.ErrItemNotFound, "item %q is not in the item data provider", id).
				WithDetail("id", id)
		}
	}
	p.unsorted = unsorted
	added := 0
	for _, id := range ids {
		if _, ok := p.numbers[id]; ok {
			continue
		}
		p.numbers[id] = p.nextNum
		p.nextNum++
		p.refs = append(p.refs, id)
		added++
	}
	if added > 0 {
		p.log.Debug().Int("items", added).Bool("unsorted", unsorted).Msg("registered citation items")
	}
	return nil
}

// RemoveCitationItems drops items from the reference list. Their
// citation numbers are retired for the life of the registry; clusters
// citing a removed item lose that cite, and clusters left empty leave
// the log. Unregistered ids are ignored.
func (p *Processor) RemoveCitationItems(ids ...string) error {
	removed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := p.numbers[id]; !ok {
			continue
		}
		delete(p.numbers, id)
		removed[id] = true
	}
	if len(removed) == 0 {
		return nil
	}

	refs := p.refs[:0]
	for _, id := range p.refs {
		if !removed[id] {
			refs = append(refs, id)
		}
	}
	p.refs = refs

	clusters := p.clusters[:0]
	for _, l := range p.clusters {
		items := l.cluster.Items[:0]
		for _, ci := range l.cluster.Items {
			if !removed[ci.ID] {
				items = append(items, ci)
			}
		}
		l.cluster.Items = items
		if len(items) > 0 {
			clusters = append(clusters, l)
		}
	}
	p.clusters = clusters

	// removal can dissolve collision groups, so escalation state is
	// rebuilt from scratch for the remaining items
	p.disamb = make(map[string]render.Disambiguation)
	p.tried = make(map[string]int)

	p.log.Debug().Int("items", len(removed)).Msg("removed citation items")
	return p.disambiguate()
}

// MakeCitation renders a citation cluster, registering its items first.
// A cluster whose ID matches one already in the log replaces it in
// place; anything else appends. The returned set holds every logged
// cluster whose rendered text changed as a result, the requested one
// included, so callers know which placed citations to refresh.
func (p *Processor) MakeCitation(c Cluster) ([]Citation, error) {
	if len(c.Items) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "citation cluster has no items")
	}
	ids := make([]string, len(c.Items))
	for i, ci := range c.Items {
		ids[i] = ci.ID
	}
	if err := p.register(ids, p.unsorted); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	replaced := false
	for _, l := range p.clusters {
		if l.cluster.ID == c.ID {
			l.cluster = c
			replaced = true
			break
		}
	}
	if !replaced {
		p.clusters = append(p.clusters, &loggedCluster{cluster: c})
	}
	return p.refresh()
}

// refresh disambiguates, re-renders every logged cluster and reports the
// ones whose text differs from the last render
func (p *Processor) refresh() ([]Citation, error) {
	if err := p.disambiguate(); err != nil {
		return nil, err
	}
	var changed []Citation
	for i, l := range p.clusters {
		text, err := p.renderClusterText(i)
		if err != nil {
			return nil, err
		}
		if l.rendered && l.text == text {
			continue
		}
		l.text = text
		l.rendered = true
		changed = append(changed, Citation{Index: i, ClusterID: l.cluster.ID, Text: text})
	}
	return changed, nil
}

// RemoveCitationCluster deletes one cluster from the log. The clusters
// after it shift down one index.
func (p *Processor) RemoveCitationCluster(id string) error {
	for i, l := range p.clusters {
		if l.cluster.ID == id {
			p.clusters = append(p.clusters[:i], p.clusters[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrClusterUnknown, "citation cluster %q is not in the log", id).
		WithDetail("cluster", id)
}

// Reset empties the registry: reference list, citation numbers, cluster
// log and disambiguation state. Numbering restarts at 1.
func (p *Processor) Reset() {
	p.refs = nil
	p.numbers = make(map[string]int)
	p.nextNum = 1
	p.unsorted = false
	p.clusters = nil
	p.disamb = make(map[string]render.Disambiguation)
	p.tried = make(map[string]int)
}

// RegisteredItems returns the reference list in first-registration order
func (p *Processor) RegisteredItems() []string {
	return append([]string(nil), p.refs...)
}

// CitationNumber returns the number assigned to a registered item
func (p *Processor) CitationNumber(id string) (int, bool) {
	n, ok := p.numbers[id]
	return n, ok
}

// variablesFor builds the render variable overlay for one cite
func (p *Processor) variablesFor(id string, ci ClusterItem) map[string]string {
	vars := map[string]string{
		"citation-number": strconv.Itoa(p.numbers[id]),
	}
	if ci.Locator != "" {
		vars["locator"] = ci.Locator
	}
	if ci.Label != "" {
		vars["label"] = ci.Label
	}
	return vars
}
