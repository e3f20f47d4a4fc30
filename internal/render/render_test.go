package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"artcat/internal/catalog"
	"artcat/internal/stats"
)

func record(t *testing.T, title string, at time.Time) *catalog.ArticleRecord {
	t.Helper()

	return &catalog.ArticleRecord{
		Title:   title,
		URL:     "https://example.com/" + strings.ToLower(title),
		AddedOn: at.Format("2006-01-02"),
		AddedAt: at,
		Topic:   "golang",
		Tags:    []string{},
	}
}

func TestRecentBlock_Empty(t *testing.T) {
	block := RecentBlock(nil, 5)

	if !strings.HasPrefix(block, RecentMarker+"\n") {
		t.Errorf("block must start with its marker, got %q", block)
	}

	if !strings.Contains(block, "No articles yet") {
		t.Errorf("empty catalog must render a placeholder, got %q", block)
	}
}

func TestRecentBlock_SevenRecordsKeepsNewestFive(t *testing.T) {
	var records []*catalog.ArticleRecord
	for i := 1; i <= 7; i++ {
		at := time.Date(2024, 3, i, 0, 0, 0, 0, time.UTC)
		records = append(records, record(t, fmt.Sprintf("Article%d", i), at))
	}

	block := RecentBlock(records, 5)

	if got := strings.Count(block, "### ["); got != 5 {
		t.Fatalf("rendered %d entries, want 5", got)
	}

	// Newest first: 7, 6, 5, 4, 3. Article1 and Article2 drop out.
	order := []string{"Article7", "Article6", "Article5", "Article4", "Article3"}
	last := -1

	for _, title := range order {
		idx := strings.Index(block, "["+title+"]")
		if idx < 0 {
			t.Fatalf("missing entry %s in:\n%s", title, block)
		}

		if idx < last {
			t.Fatalf("entry %s out of order in:\n%s", title, block)
		}

		last = idx
	}

	if strings.Contains(block, "[Article1]") || strings.Contains(block, "[Article2]") {
		t.Errorf("oldest entries must be dropped:\n%s", block)
	}
}

func TestRecentBlock_OptionalFieldsOmitted(t *testing.T) {
	rec := record(t, "Bare", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	block := RecentBlock([]*catalog.ArticleRecord{rec}, 5)

	for _, label := range []string{"**Author:**", "**Date:**", "**Added by:**", "**Tags:**"} {
		if strings.Contains(block, label) {
			t.Errorf("absent field rendered: %s in\n%s", label, block)
		}
	}

	if !strings.Contains(block, "**Added on:** 2024-03-01") {
		t.Errorf("added-on must always render:\n%s", block)
	}

	if !strings.Contains(block, "**Category:** golang") {
		t.Errorf("category must always render:\n%s", block)
	}
}

func TestRecentBlock_RoundTripVerbatim(t *testing.T) {
	rec := &catalog.ArticleRecord{
		Title:   "Understanding Go Channels",
		URL:     "https://example.com/go-channels",
		Author:  "Jane Smith",
		PubDate: "2024-03-01",
		AddedBy: "octocat",
		AddedOn: "2024-03-05",
		AddedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Topic:   "golang",
		Tags:    []string{"golang", "concurrency"},
	}

	block := RecentBlock([]*catalog.ArticleRecord{rec}, 5)

	// Labeled lines end with the two-space markdown hard break.
	want := []string{
		"### [Understanding Go Channels](https://example.com/go-channels)\n",
		"**Author:** Jane Smith  \n",
		"**Date:** 2024-03-01  \n",
		"**Added by:** octocat  \n",
		"**Added on:** 2024-03-05  \n",
		"**Tags:** #golang #concurrency  \n",
	}

	for _, line := range want {
		if !strings.Contains(block, line) {
			t.Errorf("missing %q in:\n%s", line, block)
		}
	}
}

func TestRecentBlock_SubtopicInCategory(t *testing.T) {
	rec := record(t, "Deep", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	rec.Subtopic = "concurrency"

	block := RecentBlock([]*catalog.ArticleRecord{rec}, 5)

	if !strings.Contains(block, "**Category:** golang / concurrency") {
		t.Errorf("category with subtopic missing:\n%s", block)
	}
}

func TestStatsBlock_Empty(t *testing.T) {
	block := StatsBlock(stats.AggregateStats{LatestDate: stats.NoEntriesDate})

	if !strings.HasPrefix(block, StatsMarker+"\n") {
		t.Errorf("block must start with its marker, got %q", block)
	}

	if !strings.Contains(block, "No articles yet") {
		t.Errorf("empty catalog must render a placeholder, got %q", block)
	}
}

func TestStatsBlock_Rankings(t *testing.T) {
	s := stats.AggregateStats{
		Total:      3,
		LatestDate: "2024-03-09",
		Topics: []stats.LabelCount{
			{Label: "golang", Count: 2},
			{Label: "rust", Count: 1},
		},
		Contributors: []stats.LabelCount{
			{Label: "octocat", Count: 3},
		},
	}

	block := StatsBlock(s)

	want := []string{
		"**Total articles:** 3",
		"**Latest addition:** 2024-03-09",
		"### Top Topics",
		"| golang | 2        |",
		"| rust   | 1        |",
		"### Top Contributors",
		"| octocat     | 3        |",
	}

	for _, line := range want {
		if !strings.Contains(block, line) {
			t.Errorf("missing %q in:\n%s", line, block)
		}
	}

	if strings.Contains(block, "Top Tags") {
		t.Errorf("empty tag ranking must be skipped:\n%s", block)
	}
}
