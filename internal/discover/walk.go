// Package discover lists candidate catalog documents. It is the I/O-facing
// collaborator of the core: the full walk feeds index regeneration, the git
// query feeds the validation gate. Both return repo-relative slash paths in
// sorted order, which downstream ranking treats as the stable traversal
// order.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// List walks the catalog root under repoDir and returns every markdown
// candidate, excluding the index document itself, ignored basenames, and
// anything under dot-directories.
func List(repoDir, root, index string, ignore []string) ([]string, error) {
	base := filepath.Join(repoDir, root)
	skip := ignoreSet(ignore)

	var paths []string

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != base {
				return filepath.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(repoDir, path)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)
		if isCandidate(rel, root, index, skip) {
			paths = append(paths, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog root: %w", err)
	}

	sort.Strings(paths)

	return paths, nil
}

func ignoreSet(ignore []string) map[string]bool {
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[strings.ToLower(name)] = true
	}

	return skip
}

// isCandidate applies the shared exclusion rule to a repo-relative slash
// path.
func isCandidate(path, root, index string, skip map[string]bool) bool {
	if !strings.HasPrefix(path, strings.TrimSuffix(filepath.ToSlash(root), "/")+"/") {
		return false
	}

	if !strings.EqualFold(filepath.Ext(path), ".md") {
		return false
	}

	if path == filepath.ToSlash(index) {
		return false
	}

	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ".") {
			return false
		}
	}

	return !skip[strings.ToLower(filepath.Base(path))]
}
