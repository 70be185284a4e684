package history

import (
	"context"
	"slices"

	"github.com/maxbolgarin/changry/internal/history/gitcli"
	"github.com/maxbolgarin/changry/internal/history/github"
	"github.com/maxbolgarin/changry/internal/history/gitlab"
	"github.com/maxbolgarin/changry/internal/history/gogit"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
)

// SourceType represents the backend used to query history
type SourceType string

// Supported history backends
const (
	Git    SourceType = "git"
	GoGit  SourceType = "gogit"
	GitHub SourceType = "github"
	GitLab SourceType = "gitlab"
)

var supportedSourceTypes = []SourceType{Git, GoGit, GitHub, GitLab}

// Config represents history source configuration
type Config struct {
	Type   SourceType    `yaml:"type" env:"SOURCE_TYPE"`
	Git    gitcli.Config `yaml:"git"`
	GitHub github.Config `yaml:"github"`
	GitLab gitlab.Config `yaml:"gitlab"`
}

func (c *Config) PrepareAndValidate() error {
	c.Type = lang.Check(c.Type, Git)
	if !slices.Contains(supportedSourceTypes, c.Type) {
		return erro.New("invalid source type: %s", c.Type)
	}

	switch c.Type {
	case GitHub:
		if c.GitHub.Repository == "" {
			return erro.New("github repository is required")
		}
	case GitLab:
		if c.GitLab.Project == "" {
			return erro.New("gitlab project is required")
		}
	}

	return nil
}

// NewSource creates a history source based on the configuration
func NewSource(ctx context.Context, cfg Config) (interfaces.HistorySource, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	var (
		source interfaces.HistorySource
		err    error
	)

	switch cfg.Type {
	case Git:
		source = gitcli.New(cfg.Git)
	case GoGit:
		source = gogit.Open(cfg.Git.RepoPath)
	case GitHub:
		source, err = github.New(ctx, cfg.GitHub)
	case GitLab:
		source, err = gitlab.New(cfg.GitLab)
	default:
		return nil, erro.New("unsupported source type: %s", cfg.Type)
	}
	if err != nil {
		return nil, erro.Wrap(err, "failed to create history source")
	}

	return source, nil
}
