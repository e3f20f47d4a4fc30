// Package main provides the validation gate batch job: it checks the
// documents touched by a proposed change and fails when any of them is
// malformed.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"artcat/internal/config"
	"artcat/internal/discover"
	"artcat/internal/logger"
	"artcat/internal/validate"
)

const defaultConfigPath = "configs/catalog.yaml"

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	repoDir := flag.String("repo", ".", "Path to the repository checkout")
	base := flag.String("base", "", "Base revision to diff against (overrides config)")
	all := flag.Bool("all", false, "Check every catalog document, not just changed ones")
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

	if *base != "" {
		cfg.Git.Base = *base
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	var paths []string
	if *all {
		paths, err = discover.List(*repoDir, cfg.Catalog.Root, cfg.Catalog.Index, cfg.Catalog.Ignore)
	} else {
		paths, err = discover.Changed(*repoDir, cfg.Git.Base, cfg.Catalog.Root, cfg.Catalog.Index, cfg.Catalog.Ignore)
	}

	if err != nil {
		log.Error("document discovery failed", "error", err)
		os.Exit(1)
	}

	log.Info("🔍 Checking documents", "count", len(paths))

	engine := validate.New()
	total := 0

	for _, p := range paths {
		data, readErr := os.ReadFile(filepath.Join(*repoDir, filepath.FromSlash(p)))
		if readErr != nil {
			log.Error("failed to read document", "path", p, "error", readErr)
			os.Exit(1)
		}

		violations := engine.Check(string(data))
		if len(violations) == 0 {
			fmt.Printf("✅ %s\n", p)

			continue
		}

		total += len(violations)

		fmt.Printf("❌ %s\n", p)

		for _, v := range violations {
			fmt.Printf("   - %s\n", v)
		}
	}

	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("📈 Checked: %d documents, %d errors\n", len(paths), total)

	if total > 0 {
		os.Exit(1)
	}
}
