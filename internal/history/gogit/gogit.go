// Package gogit answers history queries with go-git, without a git binary.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var _ interfaces.HistorySource = (*Source)(nil)

// Source implements HistorySource on top of go-git repository
type Source struct {
	path string
	repo *git.Repository
	log  logze.Logger
}

// Open creates a source for the repository at path.
// The repository is opened on the first query, looking for .git in parent directories.
func Open(path string) *Source {
	path = lang.Check(path, ".")
	return &Source{
		path: path,
		log:  logze.With("component", "gogit", "repo", path),
	}
}

// New creates a source for already opened repository
func New(repo *git.Repository) *Source {
	return &Source{
		repo: repo,
		log:  logze.With("component", "gogit"),
	}
}

func (s *Source) repository() (*git.Repository, error) {
	if s.repo != nil {
		return s.repo, nil
	}
	repo, err := git.PlainOpenWithOptions(s.path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to open repository at "+s.path)
	}
	s.repo = repo
	return repo, nil
}

// ListCommits walks history from HEAD ordered by committer time, newest first
func (s *Source) ListCommits(ctx context.Context, query model.LogQuery) ([]model.RawCommit, error) {
	repo, err := s.repository()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			s.log.Debug("repository has no commits yet")
			return nil, nil
		}
		return nil, errm.Wrap(err, "failed to get HEAD")
	}

	iter, err := repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
		Since: query.SinceTime(),
		Until: query.UntilTime(),
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to read log")
	}
	defer iter.Close()

	var commits []model.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		subject, body := model.SplitMessage(c.Message)
		commits = append(commits, model.RawCommit{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Date:    c.Author.When.Format(model.DateLayout),
			Message: subject,
			Body:    body,
		})
		if query.MaxCount > 0 && len(commits) >= query.MaxCount {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to iterate commits")
	}

	return commits, nil
}

// ChangedFiles returns paths changed against the first parent
func (s *Source) ChangedFiles(ctx context.Context, hash string) ([]string, error) {
	patches, err := s.filePatches(ctx, hash)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(patches))
	for _, fp := range patches {
		files = append(files, patchPath(fp))
	}
	return files, nil
}

// NumStat returns numstat lines in git format, binary files are reported as "-\t-\tpath"
func (s *Source) NumStat(ctx context.Context, hash string) ([]string, error) {
	patches, err := s.filePatches(ctx, hash)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(patches))
	for _, fp := range patches {
		path := patchPath(fp)
		if fp.IsBinary() {
			lines = append(lines, "-\t-\t"+path)
			continue
		}
		additions, deletions := countLines(fp)
		lines = append(lines, fmt.Sprintf("%d\t%d\t%s", additions, deletions, path))
	}
	return lines, nil
}

func (s *Source) filePatches(ctx context.Context, hash string) ([]fdiff.FilePatch, error) {
	if !plumbing.IsHash(hash) {
		return nil, errm.New("invalid commit hash: %q", hash)
	}
	repo, err := s.repository()
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, errm.Wrap(err, "failed to get commit")
	}

	toTree, err := commit.Tree()
	if err != nil {
		return nil, errm.Wrap(err, "failed to get commit tree")
	}

	fromTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, errm.Wrap(err, "failed to get parent commit")
		}
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, errm.Wrap(err, "failed to get parent tree")
		}
	}

	patch, err := fromTree.PatchContext(ctx, toTree)
	if err != nil {
		return nil, errm.Wrap(err, "failed to diff trees")
	}

	return patch.FilePatches(), nil
}

func patchPath(fp fdiff.FilePatch) string {
	from, to := fp.Files()
	if to != nil {
		return to.Path()
	}
	if from != nil {
		return from.Path()
	}
	return ""
}

func countLines(fp fdiff.FilePatch) (additions, deletions int) {
	for _, chunk := range fp.Chunks() {
		content := chunk.Content()
		if content == "" {
			continue
		}
		n := strings.Count(content, "\n")
		if !strings.HasSuffix(content, "\n") {
			n++
		}
		switch chunk.Type() {
		case fdiff.Add:
			additions += n
		case fdiff.Delete:
			deletions += n
		}
	}
	return additions, deletions
}
