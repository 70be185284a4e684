package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com"
	pageSize       = 100
)

var _ interfaces.HistorySource = (*Source)(nil)

// Config represents GitLab project to read history from
type Config struct {
	BaseURL string `yaml:"base_url" env:"GITLAB_BASE_URL"`
	Token   string `yaml:"token" env:"GITLAB_TOKEN"`
	Project string `yaml:"project" env:"GITLAB_PROJECT"` // numeric ID or group/project path
	Branch  string `yaml:"branch" env:"GITLAB_BRANCH"`
}

// Source implements HistorySource using GitLab REST API
type Source struct {
	client  *gitlab.Client
	project string
	branch  string
	log     logze.Logger

	// ChangedFiles and NumStat are called one after another for the same commit
	lastHash  string
	lastDiffs []*gitlab.Diff
}

// New creates a new GitLab source
func New(cfg Config) (*Source, error) {
	return NewWithClient(cfg, nil)
}

// NewWithClient creates a new GitLab source with custom HTTP client
func NewWithClient(cfg Config, httpClient *http.Client) (*Source, error) {
	if cfg.Project == "" {
		return nil, errm.New("GitLab project is required")
	}

	opts := []gitlab.ClientOptionFunc{gitlab.WithBaseURL(lang.Check(cfg.BaseURL, defaultBaseURL))}
	if httpClient != nil {
		opts = append(opts, gitlab.WithHTTPClient(httpClient))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Source{
		client:  client,
		project: cfg.Project,
		branch:  cfg.Branch,
		log:     logze.With("component", "gitlab", "project", cfg.Project),
	}, nil
}

// ListCommits lists project commits page by page until the limit is reached
func (s *Source) ListCommits(ctx context.Context, query model.LogQuery) ([]model.RawCommit, error) {
	opts := &gitlab.ListCommitsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: pageSize,
			Page:    1,
		},
		Since: query.SinceTime(),
		Until: query.UntilTime(),
	}
	if s.branch != "" {
		opts.RefName = &s.branch
	}

	var commits []model.RawCommit
	for {
		page, resp, err := s.client.Commits.ListCommits(s.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			if isEmptyRepository(resp, err) {
				s.log.Debug("project has no commits yet")
				return nil, nil
			}
			return nil, errm.Wrap(err, "failed to list commits")
		}

		for _, c := range page {
			commits = append(commits, convertCommit(c))
			if query.MaxCount > 0 && len(commits) >= query.MaxCount {
				return commits, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ChangedFiles returns paths of the commit diff
func (s *Source) ChangedFiles(ctx context.Context, hash string) ([]string, error) {
	diffs, err := s.getDiffs(ctx, hash)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(diffs))
	for _, d := range diffs {
		files = append(files, diffPath(d))
	}
	return files, nil
}

// NumStat counts added and removed lines in the unified diff of every file
func (s *Source) NumStat(ctx context.Context, hash string) ([]string, error) {
	diffs, err := s.getDiffs(ctx, hash)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(diffs))
	for _, d := range diffs {
		path := diffPath(d)
		if isBinary(d) {
			lines = append(lines, "-\t-\t"+path)
			continue
		}
		additions, deletions := CountDiffLines(d.Diff)
		lines = append(lines, fmt.Sprintf("%d\t%d\t%s", additions, deletions, path))
	}
	return lines, nil
}

func (s *Source) getDiffs(ctx context.Context, hash string) ([]*gitlab.Diff, error) {
	if s.lastHash != "" && s.lastHash == hash {
		return s.lastDiffs, nil
	}

	var all []*gitlab.Diff
	opts := &gitlab.GetCommitDiffOptions{
		ListOptions: gitlab.ListOptions{PerPage: pageSize, Page: 1},
	}
	for {
		diffs, resp, err := s.client.Commits.GetCommitDiff(s.project, hash, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to get commit diff")
		}
		all = append(all, diffs...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	s.lastHash, s.lastDiffs = hash, all

	return all, nil
}

// CountDiffLines counts added and removed lines of a unified diff without file headers
func CountDiffLines(diff string) (additions, deletions int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case isFileHeader(line):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

func isFileHeader(line string) bool {
	for _, prefix := range []string{"+++ a/", "+++ b/", "--- a/", "--- b/", "+++ /dev/null", "--- /dev/null"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func convertCommit(c *gitlab.Commit) model.RawCommit {
	_, body := model.SplitMessage(c.Message)
	out := model.RawCommit{
		Hash:    c.ID,
		Author:  c.AuthorName,
		Message: strings.TrimSpace(c.Title),
		Body:    body,
	}
	if c.AuthoredDate != nil {
		out.Date = c.AuthoredDate.Format(model.DateLayout)
	}
	return out
}

// GitLab responds with 404 on the commits of a repository without any branch,
// a missing project is reported as "404 Project Not Found"
func isEmptyRepository(resp *gitlab.Response, err error) bool {
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return false
	}
	return !strings.Contains(err.Error(), "Project Not Found")
}

func diffPath(d *gitlab.Diff) string {
	if d.DeletedFile {
		return d.OldPath
	}
	return d.NewPath
}

// Heuristic for binary files
func isBinary(d *gitlab.Diff) bool {
	return d.Diff == "" && !d.DeletedFile && !d.NewFile && !d.RenamedFile ||
		strings.HasPrefix(d.Diff, "Binary files")
}
