// Package stats computes aggregate catalog statistics from article records.
package stats

import (
	"sort"

	"artcat/internal/catalog"
)

// Default labels for records missing a category value.
const (
	UnknownContributor = "Unknown"
	UncategorizedTopic = "Uncategorized"
)

// NoEntriesDate is the latest-date sentinel for an empty catalog.
const NoEntriesDate = "N/A"

// Limits caps the ranked projections per category.
type Limits struct {
	Topics       int
	Contributors int
	Tags         int
}

// DefaultLimits returns the standard top-N sizes.
func DefaultLimits() Limits {
	return Limits{Topics: 5, Contributors: 5, Tags: 10}
}

// LabelCount is one ranked entry of a category projection.
type LabelCount struct {
	Label string
	Count int
}

// AggregateStats is the ephemeral output of one aggregation run. The ranked
// slices are ordered by descending count; equal counts keep the order the
// labels were first seen in while folding over the input.
type AggregateStats struct {
	LatestDate   string
	Topics       []LabelCount
	Contributors []LabelCount
	Tags         []LabelCount
	Total        int
}

// Collect folds the records into aggregate statistics. The slice order is
// the traversal order and is the tie-break authority for both the latest
// date and equal-count ranking, so callers must pass records in a stable
// order.
func Collect(records []*catalog.ArticleRecord, limits Limits) AggregateStats {
	topics := newCounter()
	contributors := newCounter()
	tags := newCounter()

	latest := NoEntriesDate

	var latestAt int64

	haveLatest := false

	for _, rec := range records {
		topic := rec.Topic
		if topic == "" {
			topic = UncategorizedTopic
		}

		topics.add(topic)

		contributor := rec.AddedBy
		if contributor == "" {
			contributor = UnknownContributor
		}

		contributors.add(contributor)

		for _, tag := range rec.Tags {
			tags.add(tag)
		}

		// Strictly-greater comparison keeps the first-encountered record on
		// ties.
		if at := rec.AddedAt.UnixNano(); !haveLatest || at > latestAt {
			haveLatest = true
			latestAt = at
			latest = rec.AddedOn
		}
	}

	return AggregateStats{
		Total:        len(records),
		LatestDate:   latest,
		Topics:       topics.top(limits.Topics),
		Contributors: contributors.top(limits.Contributors),
		Tags:         tags.top(limits.Tags),
	}
}

// counter accumulates occurrence counts while remembering first-seen order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}

	c.counts[label]++
}

// top returns the n highest counts, descending, with equal counts kept in
// first-seen order.
func (c *counter) top(n int) []LabelCount {
	ranked := make([]LabelCount, 0, len(c.order))
	for _, label := range c.order {
		ranked = append(ranked, LabelCount{Label: label, Count: c.counts[label]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
