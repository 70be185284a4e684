package gogit_test

import (
	"context"
	"testing"

	"github.com/maxbolgarin/changry/internal/history"
	"github.com/maxbolgarin/changry/internal/history/gogit"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/testutil/gitfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommits_Window(t *testing.T) {
	repo := gitfixture.New(t)
	repo.Commit(gitfixture.Commit{Message: "initial", Date: "2024-01-01", Files: map[string]string{"README.md": "hello\n"}})
	mid := repo.Commit(gitfixture.Commit{
		Message: "fix login\n\nUsers can log in again.\n",
		Author:  "Bob",
		Date:    "2024-01-15",
		Files:   map[string]string{"login.go": gitfixture.Lines(3)},
	})
	repo.Commit(gitfixture.Commit{Message: "add cache", Date: "2024-02-01", Files: map[string]string{"cache.go": gitfixture.Lines(2)}})

	src := gogit.Open(repo.Dir)
	ctx := context.Background()

	commits, err := src.ListCommits(ctx, model.LogQuery{Since: "2024-01-01", Until: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, model.RawCommit{
		Hash:    mid,
		Author:  "Bob",
		Date:    "2024-01-15",
		Message: "fix login",
		Body:    "Users can log in again.",
	}, commits[0])
	assert.Equal(t, "initial", commits[1].Message)

	commits, err = src.ListCommits(ctx, model.LogQuery{Since: "2024-02-01", Until: "2024-02-01"})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "add cache", commits[0].Message)
}

func TestListCommits_MaxCount(t *testing.T) {
	repo := gitfixture.New(t)
	for i, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"} {
		repo.Commit(gitfixture.Commit{
			Message: "change " + date,
			Date:    date,
			Files:   map[string]string{"file.txt": gitfixture.Lines(i + 1)},
		})
	}

	src := gogit.New(repo.Repo)

	commits, err := src.ListCommits(context.Background(), model.LogQuery{MaxCount: 1})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "change 2024-03-05", commits[0].Message)

	commits, err = src.ListCommits(context.Background(), model.LogQuery{})
	require.NoError(t, err)
	assert.Len(t, commits, 5)
}

func TestListCommits_EmptyRepository(t *testing.T) {
	repo := gitfixture.New(t)

	commits, err := gogit.New(repo.Repo).ListCommits(context.Background(), model.LogQuery{})
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestListCommits_NotRepository(t *testing.T) {
	_, err := gogit.Open(t.TempDir()).ListCommits(context.Background(), model.LogQuery{})
	assert.Error(t, err)
}

func TestChangedFilesAndNumStat(t *testing.T) {
	repo := gitfixture.New(t)
	first := repo.Commit(gitfixture.Commit{Message: "initial", Date: "2024-01-01", Files: map[string]string{"old.txt": gitfixture.Lines(2)}})
	hash := repo.Commit(gitfixture.Commit{
		Message: "update",
		Date:    "2024-01-02",
		Files: map[string]string{
			"foo.ts":   gitfixture.Lines(10),
			"logo.png": gitfixture.Binary(),
			"old.txt":  "line a\n",
		},
	})

	src := gogit.New(repo.Repo)
	ctx := context.Background()

	files, err := src.ChangedFiles(ctx, hash)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foo.ts", "logo.png", "old.txt"}, files)

	lines, err := src.NumStat(ctx, hash)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10\t0\tfoo.ts", "-\t-\tlogo.png", "0\t1\told.txt"}, lines)
	assert.Equal(t, model.CommitStats{Additions: 10, Deletions: 1}, history.SumNumStat(lines))

	// root commit is compared with an empty tree
	lines, err = src.NumStat(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []string{"2\t0\told.txt"}, lines)
}

func TestChangedFiles_EmptyCommit(t *testing.T) {
	repo := gitfixture.New(t)
	repo.Commit(gitfixture.Commit{Message: "initial", Date: "2024-01-01", Files: map[string]string{"a.txt": "a\n"}})
	hash := repo.Commit(gitfixture.Commit{Message: "empty", Date: "2024-01-02"})

	src := gogit.New(repo.Repo)

	files, err := src.ChangedFiles(context.Background(), hash)
	require.NoError(t, err)
	assert.Empty(t, files)

	lines, err := src.NumStat(context.Background(), hash)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestInvalidHash(t *testing.T) {
	repo := gitfixture.New(t)
	src := gogit.New(repo.Repo)

	_, err := src.ChangedFiles(context.Background(), "--all")
	assert.Error(t, err)

	_, err = src.NumStat(context.Background(), "0000000000000000000000000000000000000001")
	assert.Error(t, err)
}

func TestExtractor(t *testing.T) {
	repo := gitfixture.New(t)
	repo.Commit(gitfixture.Commit{Message: "initial", Date: "2024-01-01", Files: map[string]string{"README.md": gitfixture.Lines(4)}})
	repo.Commit(gitfixture.Commit{Message: "empty", Date: "2024-01-02"})

	commits := history.NewExtractor(gogit.New(repo.Repo)).ExtractCommits(context.Background(), model.LogQuery{})
	require.Len(t, commits, 2)

	assert.Equal(t, "empty", commits[0].Message)
	assert.Empty(t, commits[0].Files)
	assert.Equal(t, model.CommitStats{}, commits[0].Stats)

	assert.Equal(t, []string{"README.md"}, commits[1].Files)
	assert.Equal(t, model.CommitStats{Additions: 4}, commits[1].Stats)
}
