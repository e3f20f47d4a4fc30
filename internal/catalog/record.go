// Package catalog builds article records from raw document text and storage
// paths, resolving the date and path fallbacks the extraction rules leave
// open.
package catalog

import "time"

// ArticleRecord is the structured metadata of one catalog document.
type ArticleRecord struct {
	AddedAt  time.Time // order key, used only for sorting and ranking
	Title    string
	URL      string
	Author   string // optional
	PubDate  string // optional
	AddedBy  string // optional
	AddedOn  string // display date, always set; kept verbatim even when unparseable
	Path     string // repo-relative storage path, slash-separated
	Topic    string // first path segment under the catalog root, "" when too shallow
	Subtopic string // remaining directory segments joined, "" when depth <= 2
	Tags     []string
}
