package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://github.com"
	pageSize       = 100
)

var _ interfaces.HistorySource = (*Source)(nil)

// Config represents GitHub repository to read history from
type Config struct {
	BaseURL    string `yaml:"base_url" env:"GITHUB_BASE_URL"`
	Token      string `yaml:"token" env:"GITHUB_TOKEN"`
	Repository string `yaml:"repository" env:"GITHUB_REPOSITORY"` // owner/repo
	Branch     string `yaml:"branch" env:"GITHUB_BRANCH"`
}

// Source implements HistorySource using GitHub REST API
type Source struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	log    logze.Logger

	// ChangedFiles and NumStat are called one after another for the same commit
	last *github.RepositoryCommit
}

// New creates a new GitHub source, token is optional for public repositories
func New(ctx context.Context, cfg Config) (*Source, error) {
	httpClient := http.DefaultClient
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return NewWithClient(cfg, httpClient)
}

// NewWithClient creates a new GitHub source with custom HTTP client
func NewWithClient(cfg Config, httpClient *http.Client) (*Source, error) {
	owner, repo, ok := strings.Cut(cfg.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, errm.New("invalid GitHub repository format, expected 'owner/repo'")
	}

	client := github.NewClient(httpClient)

	// Set base URL if provided (for GitHub Enterprise)
	if cfg.BaseURL != "" && cfg.BaseURL != defaultBaseURL {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Source{
		client: client,
		owner:  owner,
		repo:   repo,
		branch: cfg.Branch,
		log:    logze.With("component", "github", "repository", cfg.Repository),
	}, nil
}

// ListCommits lists repository commits page by page until the limit is reached
func (s *Source) ListCommits(ctx context.Context, query model.LogQuery) ([]model.RawCommit, error) {
	opts := &github.CommitsListOptions{
		SHA:         s.branch,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	if since := query.SinceTime(); since != nil {
		opts.Since = *since
	}
	if until := query.UntilTime(); until != nil {
		opts.Until = *until
	}

	var commits []model.RawCommit
	for {
		page, resp, err := s.client.Repositories.ListCommits(ctx, s.owner, s.repo, opts)
		if err != nil {
			if isEmptyRepository(resp) {
				return nil, nil
			}
			return nil, errm.Wrap(err, "failed to list commits")
		}

		for _, rc := range page {
			commits = append(commits, convertCommit(rc))
			if query.MaxCount > 0 && len(commits) >= query.MaxCount {
				return commits, nil
			}
		}

		s.log.Debug("fetched commits page", "page", opts.Page, "count", len(page))

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ChangedFiles returns file names of the commit
func (s *Source) ChangedFiles(ctx context.Context, hash string) ([]string, error) {
	rc, err := s.getCommit(ctx, hash)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(rc.Files))
	for _, f := range rc.Files {
		files = append(files, f.GetFilename())
	}
	return files, nil
}

// NumStat renders per-file additions and deletions in git numstat format
func (s *Source) NumStat(ctx context.Context, hash string) ([]string, error) {
	rc, err := s.getCommit(ctx, hash)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(rc.Files))
	for _, f := range rc.Files {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%s", f.GetAdditions(), f.GetDeletions(), f.GetFilename()))
	}
	return lines, nil
}

func (s *Source) getCommit(ctx context.Context, hash string) (*github.RepositoryCommit, error) {
	if s.last != nil && s.last.GetSHA() == hash {
		return s.last, nil
	}

	opts := &github.ListOptions{PerPage: pageSize}

	var rc *github.RepositoryCommit
	for {
		page, resp, err := s.client.Repositories.GetCommit(ctx, s.owner, s.repo, hash, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to get commit")
		}
		if rc == nil {
			rc = page
		} else {
			rc.Files = append(rc.Files, page.Files...)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(rc.Files) > pageSize {
		s.log.Debug("fetched files of large commit", "hash", hash, "files", len(rc.Files))
	}
	s.last = rc

	return rc, nil
}

func convertCommit(rc *github.RepositoryCommit) model.RawCommit {
	subject, body := model.SplitMessage(rc.GetCommit().GetMessage())
	author := rc.GetCommit().GetAuthor()

	out := model.RawCommit{
		Hash:    rc.GetSHA(),
		Author:  author.GetName(),
		Message: subject,
		Body:    body,
	}
	if date := author.GetDate(); !date.IsZero() {
		out.Date = date.Format(model.DateLayout)
	}

	return out
}

// GitHub responds with 409 Conflict for repositories without commits
func isEmptyRepository(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusConflict
}
