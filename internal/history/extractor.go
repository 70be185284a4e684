package history

import (
	"context"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// Extractor reads commit history and enriches every commit with changed files and line statistics
type Extractor struct {
	source interfaces.HistorySource
	log    logze.Logger
}

// NewExtractor creates a new extractor on top of the history source
func NewExtractor(source interfaces.HistorySource) *Extractor {
	return &Extractor{
		source: source,
		log:    logze.With("component", "extractor"),
	}
}

// ExtractCommits returns commits matching the query, newest first.
// Failures are reported to the log and result in an empty slice,
// so "no commits" is the only signal the caller gets for both empty history and broken repository.
func (e *Extractor) ExtractCommits(ctx context.Context, query model.LogQuery) []model.Commit {
	commits, err := e.Load(ctx, query)
	if err != nil {
		e.log.Error("cannot fetch git commits", "error", err,
			"since", query.Since, "until", query.Until, "max_count", query.MaxCount)
		return []model.Commit{}
	}
	return commits
}

// Load is the same as ExtractCommits but returns the history query error to the caller.
// Sub-query failures of a single commit are still isolated: the commit is kept without files or stats.
func (e *Extractor) Load(ctx context.Context, query model.LogQuery) ([]model.Commit, error) {
	if err := query.Validate(); err != nil {
		return nil, errm.Wrap(err, "invalid query")
	}

	raw, err := e.source.ListCommits(ctx, query)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list commits")
	}
	if query.MaxCount > 0 && len(raw) > query.MaxCount {
		raw = raw[:query.MaxCount]
	}

	e.log.Debug("fetched commit list", "count", len(raw))

	seen := make(map[string]struct{}, len(raw))
	commits := make([]model.Commit, 0, len(raw))

	for _, rc := range raw {
		if err := ctx.Err(); err != nil {
			return nil, errm.Wrap(err, "extraction interrupted")
		}
		if rc.Hash == "" {
			e.log.Debug("skip commit without hash", "message", rc.Message)
			continue
		}
		if _, ok := seen[rc.Hash]; ok {
			e.log.Debug("skip duplicate commit", "hash", rc.Hash)
			continue
		}
		seen[rc.Hash] = struct{}{}

		commits = append(commits, e.enrich(ctx, rc))
	}

	return commits, nil
}

func (e *Extractor) enrich(ctx context.Context, rc model.RawCommit) model.Commit {
	commit := rc.ToCommit()
	log := e.log.WithFields("hash", rc.Hash)

	files, err := e.source.ChangedFiles(ctx, rc.Hash)
	if err != nil {
		log.Warn("cannot get changed files", "error", err)
	} else if len(files) > 0 {
		commit.Files = files
	}

	lines, err := e.source.NumStat(ctx, rc.Hash)
	if err != nil {
		log.Warn("cannot get commit stats", "error", err)
	} else {
		commit.Stats = SumNumStat(lines)
	}

	return commit
}
