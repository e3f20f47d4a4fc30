// Package main provides the index regeneration batch job: it walks the
// catalog, rebuilds the recent-entries and statistics sections, and rewrites
// the index document in place.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"artcat/internal/catalog"
	"artcat/internal/config"
	"artcat/internal/discover"
	"artcat/internal/logger"
	"artcat/internal/patch"
	"artcat/internal/render"
	"artcat/internal/stats"
)

const defaultConfigPath = "configs/catalog.yaml"

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	repoDir := flag.String("repo", ".", "Path to the repository checkout")
	dryRun := flag.Bool("dry-run", false, "Render without writing the index document")
	flag.Parse()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("🚀 Regenerating catalog index", "root", cfg.Catalog.Root, "index", cfg.Catalog.Index)

	rendered, written, err := run(cfg, *repoDir, *dryRun, log)
	if err != nil {
		log.Error("index regeneration failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("📈 Rendered recent entries: %d\n", rendered)

	switch {
	case written:
		fmt.Printf("✅ Index updated: %s\n", cfg.Catalog.Index)
	case *dryRun:
		fmt.Println("👀 Dry-run mode, nothing written")
	default:
		fmt.Println("✅ Index already up to date")
	}
}

// run performs one regeneration pass. It returns the number of rendered
// recent entries and whether the index document was rewritten. Any error
// aborts before the index is touched.
func run(cfg *config.Config, repoDir string, dryRun bool, log *logger.Logger) (int, bool, error) {
	paths, err := discover.List(repoDir, cfg.Catalog.Root, cfg.Catalog.Index, cfg.Catalog.Ignore)
	if err != nil {
		return 0, false, err
	}

	log.Info("📂 Discovered candidate documents", "count", len(paths))

	builder := catalog.NewBuilder()

	var records []*catalog.ArticleRecord

	for _, p := range paths {
		abs := filepath.Join(repoDir, filepath.FromSlash(p))

		data, readErr := os.ReadFile(abs)
		if readErr != nil {
			return 0, false, fmt.Errorf("failed to read document %s: %w", p, readErr)
		}

		info, statErr := os.Stat(abs)
		if statErr != nil {
			return 0, false, fmt.Errorf("failed to stat document %s: %w", p, statErr)
		}

		rec, ok := builder.Build(string(data), p, info.ModTime())
		if !ok {
			log.Debug("skipping non-article document", "path", p)

			continue
		}

		records = append(records, rec)
	}

	log.Info("📊 Built article records", "count", len(records))

	agg := stats.Collect(records, stats.Limits{
		Topics:       cfg.Limits.Topics,
		Contributors: cfg.Limits.Contributors,
		Tags:         cfg.Limits.Tags,
	})

	sections := []patch.Section{
		{Marker: render.RecentMarker, Block: render.RecentBlock(records, cfg.Limits.Recent)},
		{Marker: render.StatsMarker, Block: render.StatsBlock(agg)},
	}

	indexPath := filepath.Join(repoDir, filepath.FromSlash(cfg.Catalog.Index))

	doc, err := os.ReadFile(indexPath)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read index document: %w", err)
	}

	out, err := patch.Apply(string(doc), sections)
	if err != nil {
		return 0, false, err
	}

	rendered := len(records)
	if rendered > cfg.Limits.Recent {
		rendered = cfg.Limits.Recent
	}

	if out == string(doc) {
		return rendered, false, nil
	}

	if dryRun {
		return rendered, false, nil
	}

	if err := atomic.WriteFile(indexPath, strings.NewReader(out)); err != nil {
		return 0, false, fmt.Errorf("failed to write index document: %w", err)
	}

	return rendered, true, nil
}
