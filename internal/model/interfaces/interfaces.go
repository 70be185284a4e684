package interfaces

import (
	"context"

	"github.com/maxbolgarin/changry/internal/model"
)

// HistorySource defines the queries a version control backend must answer (git binary, go-git, GitHub, GitLab)
type HistorySource interface {
	// ListCommits returns commits matching the query, newest first
	ListCommits(ctx context.Context, query model.LogQuery) ([]model.RawCommit, error)
	// ChangedFiles returns paths touched by the commit in the order reported by the backend
	ChangedFiles(ctx context.Context, hash string) ([]string, error)
	// NumStat returns per-file numeric diff lines in "<additions>\t<deletions>\t<path>" form
	NumStat(ctx context.Context, hash string) ([]string, error)
}

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error)
}

// ChangelogWriter turns extracted commits into a changelog document
type ChangelogWriter interface {
	GenerateChangelog(ctx context.Context, commits []model.Commit, period model.DateRange) (string, error)
}
