// Package csl holds the reference item data model. Items are bags of typed
// variables (text, number, name list, date) keyed by the variable names
// styles address, and decode leniently from CSL-JSON.
package csl

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/arthur-debert/citekit/pkg/errors"
)

// Type identifies the kind of work an item describes
type Type string

// Item types
const (
	TypeArticle           Type = "article"
	TypeArticleJournal    Type = "article-journal"
	TypeArticleMagazine   Type = "article-magazine"
	TypeArticleNewspaper  Type = "article-newspaper"
	TypeBill              Type = "bill"
	TypeBook              Type = "book"
	TypeBroadcast         Type = "broadcast"
	TypeChapter           Type = "chapter"
	TypeDataset           Type = "dataset"
	TypeEntry             Type = "entry"
	TypeEntryDictionary   Type = "entry-dictionary"
	TypeEntryEncyclopedia Type = "entry-encyclopedia"
	TypeFigure            Type = "figure"
	TypeGraphic           Type = "graphic"
	TypeInterview         Type = "interview"
	TypeLegalCase         Type = "legal_case"
	TypeLegislation       Type = "legislation"
	TypeManuscript        Type = "manuscript"
	TypeMap               Type = "map"
	TypeMotionPicture     Type = "motion_picture"
	TypeMusicalScore      Type = "musical_score"
	TypePamphlet          Type = "pamphlet"
	TypePaperConference   Type = "paper-conference"
	TypePatent            Type = "patent"
	TypePersonalComm      Type = "personal_communication"
	TypePost              Type = "post"
	TypePostWeblog        Type = "post-weblog"
	TypeReport            Type = "report"
	TypeReview            Type = "review"
	TypeReviewBook        Type = "review-book"
	TypeSong              Type = "song"
	TypeSpeech            Type = "speech"
	TypeThesis            Type = "thesis"
	TypeTreaty            Type = "treaty"
	TypeWebpage           Type = "webpage"
)

// Item is one reference record. The rendering core treats it as read-only;
// mutation happens only while an item is being assembled.
type Item struct {
	id       string
	itemType Type
	fields   map[string]string
	names    map[string][]Name
	dates    map[string]Date
}

// NewItem returns an item with the given id and type
func NewItem(id string, typ Type) *Item {
	return &Item{
		id:       id,
		itemType: typ,
		fields:   make(map[string]string),
		names:    make(map[string][]Name),
		dates:    make(map[string]Date),
	}
}

// ID returns the unique item id
func (it *Item) ID() string {
	return it.id
}

// Type returns the item type
func (it *Item) Type() Type {
	return it.itemType
}

// Set stores a text or number variable and returns the item for chaining
func (it *Item) Set(name, value string) *Item {
	it.fields[name] = value
	return it
}

// AddName appends a name to a name variable
func (it *Item) AddName(variable string, names ...Name) *Item {
	it.names[variable] = append(it.names[variable], names...)
	return it
}

// AddAuthor is shorthand for a given/family name on the author variable
func (it *Item) AddAuthor(given, family string) *Item {
	return it.AddName("author", Name{Given: given, Family: family})
}

// SetDate stores a date variable
func (it *Item) SetDate(variable string, d Date) *Item {
	it.dates[variable] = d
	return it
}

// Variable returns a text or number variable. page-first is derived from
// the page variable when not stored explicitly.
func (it *Item) Variable(name string) (string, bool) {
	if v, ok := it.fields[name]; ok && v != "" {
		return v, true
	}
	if name == "page-first" {
		if page, ok := it.fields["page"]; ok && page != "" {
			return firstPage(page), true
		}
	}
	return "", false
}

// NameVariable returns the names stored under a name variable
func (it *Item) NameVariable(name string) ([]Name, bool) {
	ns, ok := it.names[name]
	if !ok || len(ns) == 0 {
		return nil, false
	}
	return ns, true
}

// DateVariable returns a date variable
func (it *Item) DateVariable(name string) (Date, bool) {
	d, ok := it.dates[name]
	if !ok || d.IsEmpty() {
		return Date{}, false
	}
	return d, true
}

// HasVariable reports whether any variable class holds a value for name
func (it *Item) HasVariable(name string) bool {
	if _, ok := it.Variable(name); ok {
		return true
	}
	if _, ok := it.NameVariable(name); ok {
		return true
	}
	if _, ok := it.DateVariable(name); ok {
		return true
	}
	return false
}

// Variables returns the sorted names of all set variables
func (it *Item) Variables() []string {
	var out []string
	for k := range it.fields {
		out = append(out, k)
	}
	for k := range it.names {
		out = append(out, k)
	}
	for k := range it.dates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// firstPage extracts the first page from a page or page-range value
func firstPage(page string) string {
	for i, r := range page {
		switch r {
		case '-', '–', '—', ',', '&':
			return strings.TrimSpace(page[:i])
		}
	}
	return strings.TrimSpace(page)
}

// UnmarshalJSON decodes one CSL-JSON item. Variable values are routed by
// class: name variables decode as name lists, date variables as date
// objects, everything else coerces to a string.
func (it *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Wrap(err, errors.ErrItemData, "item is not a JSON object")
	}
	it.fields = make(map[string]string)
	it.names = make(map[string][]Name)
	it.dates = make(map[string]Date)
	for key, raw := range fields {
		switch {
		case key == "id":
			it.id = flexString(raw)
		case key == "type":
			it.itemType = Type(flexString(raw))
		case IsNameVariable(key):
			var ns []Name
			if err := json.Unmarshal(raw, &ns); err != nil {
				return errors.Wrapf(err, errors.ErrItemData,
					"invalid name list for %q", key)
			}
			if len(ns) > 0 {
				it.names[key] = ns
			}
		case IsDateVariable(key):
			var d Date
			if err := json.Unmarshal(raw, &d); err != nil {
				return errors.Wrapf(err, errors.ErrItemData,
					"invalid date for %q", key)
			}
			if !d.IsEmpty() {
				it.dates[key] = d
			}
		default:
			if v := flexString(raw); v != "" {
				it.fields[key] = v
			}
		}
	}
	if it.id == "" {
		return errors.New(errors.ErrItemData, "item has no id")
	}
	return nil
}

// MarshalJSON encodes the item back to CSL-JSON
func (it *Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(it.fields)+len(it.names)+len(it.dates)+2)
	out["id"] = it.id
	if it.itemType != "" {
		out["type"] = string(it.itemType)
	}
	for k, v := range it.fields {
		out[k] = v
	}
	for k, v := range it.names {
		out[k] = v
	}
	for k, v := range it.dates {
		out[k] = v
	}
	return json.Marshal(out)
}
