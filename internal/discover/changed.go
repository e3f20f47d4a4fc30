package discover

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Changed returns the candidate documents touched by a proposed change.
// With a base revision it diffs the base tree against HEAD; without one it
// falls back to the worktree status, so the gate also works on uncommitted
// checkouts. Deletions are not candidates. The same exclusion rule as List
// applies.
func Changed(repoDir, base, root, index string, ignore []string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	var touched []string

	if base == "" {
		touched, err = worktreeChanges(repo)
	} else {
		touched, err = revisionChanges(repo, base)
	}

	if err != nil {
		return nil, err
	}

	skip := ignoreSet(ignore)

	var paths []string

	for _, path := range touched {
		if isCandidate(path, root, index, skip) {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)

	return paths, nil
}

// revisionChanges diffs the tree of the base revision against HEAD and
// returns the added and modified paths.
func revisionChanges(repo *git.Repository, base string) ([]string, error) {
	baseTree, err := revisionTree(repo, base)
	if err != nil {
		return nil, err
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	headTree, err := commitTree(repo, headRef.Hash())
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	var paths []string

	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, fmt.Errorf("failed to classify change: %w", actionErr)
		}

		if action == merkletrie.Delete {
			continue
		}

		paths = append(paths, change.To.Name)
	}

	return paths, nil
}

func revisionTree(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}

	return commitTree(repo, *hash)
}

func commitTree(repo *git.Repository, hash plumbing.Hash) (*object.Tree, error) {
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for %s: %w", hash, err)
	}

	return tree, nil
}

// worktreeChanges lists paths with staged or unstaged additions and
// modifications.
func worktreeChanges(repo *git.Repository) ([]string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	var paths []string

	for path, st := range status {
		if st.Staging == git.Deleted || st.Worktree == git.Deleted {
			continue
		}

		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}

		paths = append(paths, path)
	}

	return paths, nil
}
