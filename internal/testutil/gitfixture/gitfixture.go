// Package gitfixture builds throwaway git repositories for tests.
package gitfixture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Commit describes a commit to create
type Commit struct {
	Message string
	Author  string
	Date    string // YYYY-MM-DD, committed at noon local time

	// Files maps path to new content
	Files map[string]string
	// Remove lists paths to delete
	Remove []string
}

// Repo is a repository on disk with a worktree
type Repo struct {
	Dir  string
	Repo *git.Repository

	t testing.TB
}

// New initializes an empty repository in a temporary directory
func New(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &Repo{Dir: dir, Repo: repo, t: t}
}

// Commit writes files, stages them and commits; returns the commit hash
func (r *Repo) Commit(c Commit) string {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)

	for path, content := range c.Files {
		full := filepath.Join(r.Dir, path)
		require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
		_, err = wt.Add(path)
		require.NoError(r.t, err)
	}
	for _, path := range c.Remove {
		_, err = wt.Remove(path)
		require.NoError(r.t, err)
	}

	date, err := time.ParseInLocation("2006-01-02", c.Date, time.Local)
	require.NoError(r.t, err)

	author := c.Author
	if author == "" {
		author = "Test"
	}
	sig := &object.Signature{
		Name:  author,
		Email: "test@test.com",
		When:  date.Add(12 * time.Hour),
	}

	hash, err := wt.Commit(c.Message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)

	return hash.String()
}

// Lines returns content of n numbered lines
func Lines(n int) string {
	var b []byte
	for i := 0; i < n; i++ {
		b = append(b, "line "...)
		b = append(b, byte('a'+i%26))
		b = append(b, '\n')
	}
	return string(b)
}

// Binary returns content that is detected as binary
func Binary() string {
	return "\x00\x01\x02binary\x00data"
}
