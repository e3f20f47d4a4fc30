package catalog

import (
	"strings"
	"time"

	"artcat/internal/extract"
)

const dateLayout = "2006-01-02"

// Builder turns raw document text into article records.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a builder using the wall clock for the unparseable-date
// fallback.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock creates a builder with an injected clock.
func NewBuilderWithClock(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// Build extracts fields from text and assembles a record for the document at
// path. The second return value is false when the document is not an article
// (no heading with a bracketed link); that is a silent skip, never an error.
// modTime is the document's last-modified timestamp, used when the added-on
// line is absent.
func (b *Builder) Build(text, path string, modTime time.Time) (*ArticleRecord, bool) {
	fields := extract.Extract(text)

	title, hasTitle := fields[extract.FieldTitle]
	url, hasURL := fields[extract.FieldURL]

	if !hasTitle || !hasURL {
		return nil, false
	}

	rec := &ArticleRecord{
		Title:   title,
		URL:     url,
		Author:  fields[extract.FieldAuthor],
		PubDate: fields[extract.FieldPubDate],
		AddedBy: fields[extract.FieldAddedBy],
		Path:    path,
		Tags:    []string{},
	}

	if raw, ok := fields[extract.FieldTags]; ok {
		rec.Tags = extract.ParseTags(raw)
	}

	rec.AddedOn, rec.AddedAt = b.resolveAddedOn(fields, modTime)
	rec.Topic, rec.Subtopic = splitPath(path)

	return rec, true
}

// resolveAddedOn applies the date fallback policy: a parseable added-on line
// is used verbatim for both display and ordering; an unparseable one keeps
// the raw display string but sorts as "now"; a missing one derives both from
// the document's modification time.
func (b *Builder) resolveAddedOn(fields extract.Fields, modTime time.Time) (string, time.Time) {
	raw, ok := fields[extract.FieldAddedOn]
	if !ok {
		return modTime.Format(dateLayout), modTime
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return raw, b.now()
	}

	return raw, parsed
}

// splitPath decomposes a slash-separated storage path. With the catalog root
// as segment 0 and the filename last, segment 1 is the topic and any
// directory segments beyond it form the subtopic.
func splitPath(path string) (topic, subtopic string) {
	segs := strings.Split(strings.Trim(path, "/"), "/")

	if len(segs) >= 3 {
		topic = segs[1]
	}

	if len(segs) >= 4 {
		subtopic = strings.Join(segs[2:len(segs)-1], "/")
	}

	return topic, subtopic
}
