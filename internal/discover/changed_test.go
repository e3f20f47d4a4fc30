package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initRepo creates an empty git repository in a temp dir.
func initRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit failed: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree failed: %v", err)
	}

	return dir, wt
}

// commitAll stages everything and commits, returning the commit hash.
func commitAll(t *testing.T, wt *git.Worktree, msg string) string {
	t.Helper()

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("AddWithOptions failed: %v", err)
	}

	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	return hash.String()
}

func TestChanged_AgainstBaseRevision(t *testing.T) {
	dir, wt := initRepo(t)

	writeFile(t, dir, "README.md", "index")
	writeFile(t, dir, "articles/a.md", "v1")
	writeFile(t, dir, "articles/gone.md", "doomed")
	base := commitAll(t, wt, "base")

	writeFile(t, dir, "articles/a.md", "v2")
	writeFile(t, dir, "articles/golang/b.md", "new")
	writeFile(t, dir, "articles/TEMPLATE.md", "template")
	writeFile(t, dir, "README.md", "index v2")

	if err := os.Remove(filepath.Join(dir, "articles", "gone.md")); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	commitAll(t, wt, "change")

	paths, err := Changed(dir, base, "articles", "README.md", []string{"TEMPLATE.md"})
	if err != nil {
		t.Fatalf("Changed failed: %v", err)
	}

	// Modified and added candidates only: the deletion, the template, and
	// the index document are all excluded.
	want := []string{"articles/a.md", "articles/golang/b.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Changed = %v, want %v", paths, want)
	}
}

func TestChanged_WorktreeFallback(t *testing.T) {
	dir, wt := initRepo(t)

	writeFile(t, dir, "README.md", "index")
	writeFile(t, dir, "articles/a.md", "v1")
	commitAll(t, wt, "base")

	writeFile(t, dir, "articles/a.md", "v2")       // unstaged modification
	writeFile(t, dir, "articles/rust/new.md", "x") // untracked addition

	paths, err := Changed(dir, "", "articles", "README.md", nil)
	if err != nil {
		t.Fatalf("Changed failed: %v", err)
	}

	want := []string{"articles/a.md", "articles/rust/new.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Changed = %v, want %v", paths, want)
	}
}

func TestChanged_UnknownRevision(t *testing.T) {
	dir, wt := initRepo(t)

	writeFile(t, dir, "articles/a.md", "v1")
	commitAll(t, wt, "base")

	if _, err := Changed(dir, "no-such-rev", "articles", "README.md", nil); err == nil {
		t.Fatal("expected error for unknown base revision")
	}
}

func TestChanged_NotARepository(t *testing.T) {
	if _, err := Changed(t.TempDir(), "HEAD", "articles", "README.md", nil); err == nil {
		t.Fatal("expected error outside a git repository")
	}
}
