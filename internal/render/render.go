// Package render produces the two index-document sections from records and
// aggregate statistics. Rendering is pure; writing the result back into the
// index document is internal/patch's job.
package render

import (
	"fmt"
	"sort"
	"strings"

	"artcat/internal/catalog"
	"artcat/internal/stats"
	"artcat/pkg/mdtable"
)

// Section marker labels. Each rendered block begins with its marker, which
// is what makes re-applying the patcher a no-op.
const (
	RecentMarker = "## Recently Added Articles"
	StatsMarker  = "## Statistics"
)

const emptyPlaceholder = "*No articles yet.*"

// RecentBlock renders the recent-entries section: up to limit records,
// newest first. Ties on the order key keep input order. The input slice is
// not modified.
func RecentBlock(records []*catalog.ArticleRecord, limit int) string {
	var sb strings.Builder

	sb.WriteString(RecentMarker)
	sb.WriteString("\n\n")

	if len(records) == 0 {
		sb.WriteString(emptyPlaceholder)
		sb.WriteString("\n")

		return sb.String()
	}

	recent := make([]*catalog.ArticleRecord, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AddedAt.After(recent[j].AddedAt)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}

	for i, rec := range recent {
		if i > 0 {
			sb.WriteString("\n")
		}

		writeEntry(&sb, rec)
	}

	return sb.String()
}

// writeEntry renders one record. Optional fields are omitted when absent;
// the added-on date and the category label are always present.
func writeEntry(sb *strings.Builder, rec *catalog.ArticleRecord) {
	fmt.Fprintf(sb, "### [%s](%s)\n\n", rec.Title, rec.URL)

	// Trailing double space is the markdown hard break; without it the
	// labeled lines collapse into one paragraph.
	if rec.Author != "" {
		fmt.Fprintf(sb, "**Author:** %s  \n", rec.Author)
	}

	if rec.PubDate != "" {
		fmt.Fprintf(sb, "**Date:** %s  \n", rec.PubDate)
	}

	if rec.AddedBy != "" {
		fmt.Fprintf(sb, "**Added by:** %s  \n", rec.AddedBy)
	}

	fmt.Fprintf(sb, "**Added on:** %s  \n", rec.AddedOn)
	fmt.Fprintf(sb, "**Category:** %s  \n", categoryLabel(rec))

	if len(rec.Tags) > 0 {
		fmt.Fprintf(sb, "**Tags:** #%s  \n", strings.Join(rec.Tags, " #"))
	}
}

func categoryLabel(rec *catalog.ArticleRecord) string {
	if rec.Topic == "" {
		return stats.UncategorizedTopic
	}

	if rec.Subtopic != "" {
		return rec.Topic + " / " + rec.Subtopic
	}

	return rec.Topic
}

// StatsBlock renders the statistics section from one aggregation run.
func StatsBlock(s stats.AggregateStats) string {
	var sb strings.Builder

	sb.WriteString(StatsMarker)
	sb.WriteString("\n\n")

	if s.Total == 0 {
		sb.WriteString(emptyPlaceholder)
		sb.WriteString("\n")

		return sb.String()
	}

	fmt.Fprintf(&sb, "**Total articles:** %d\n", s.Total)
	fmt.Fprintf(&sb, "**Latest addition:** %s\n", s.LatestDate)

	writeRanking(&sb, "Top Topics", "Topic", s.Topics)
	writeRanking(&sb, "Top Contributors", "Contributor", s.Contributors)
	writeRanking(&sb, "Top Tags", "Tag", s.Tags)

	return sb.String()
}

// writeRanking renders one ranked category as an aligned markdown table.
// Empty categories (e.g. no record carries tags) are skipped entirely.
func writeRanking(sb *strings.Builder, heading, column string, ranked []stats.LabelCount) {
	if len(ranked) == 0 {
		return
	}

	rows := make([][]string, 0, len(ranked))
	for _, lc := range ranked {
		rows = append(rows, []string{lc.Label, fmt.Sprintf("%d", lc.Count)})
	}

	fmt.Fprintf(sb, "\n### %s\n\n", heading)
	sb.WriteString(mdtable.Render([]string{column, "Articles"}, rows))
}
