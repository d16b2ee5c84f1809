package citeproc

// ClusterItem is one cited work within a cluster
type ClusterItem struct {
	// ID is the item's id in the data provider
	ID string
	// Prefix and Suffix wrap this cite's rendered text verbatim
	Prefix string
	Suffix string
	// Locator names the cited position within the work ("12-14") and
	// Label its kind ("page", "section"). They render wherever the style
	// consumes the locator variable.
	Locator string
	Label   string
}

// Cluster is a set of items cited together at one point in a document
type Cluster struct {
	// ID identifies the cluster across update calls. An empty ID gets a
	// generated one when the cluster is first logged.
	ID string
	// Items in document order
	Items []ClusterItem
	// NoteIndex is the footnote number for note styles, 0 for in-text
	// citations
	NoteIndex int
}

// Cite builds an in-text cluster from bare item ids
func Cite(ids ...string) Cluster {
	items := make([]ClusterItem, len(ids))
	for i, id := range ids {
		items[i] = ClusterItem{ID: id}
	}
	return Cluster{Items: items}
}

// Citation is one rendered citation cluster
type Citation struct {
	// Index is the cluster's current position in the processor's log
	Index int
	// ClusterID names the cluster the text belongs to
	ClusterID string
	// Text is the cluster encoded in the processor's output format
	Text string
}
