// Package changelog turns extracted commits into a changelog file.
package changelog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/changry/internal/history"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

const (
	defaultOutputDir = "./changelogs"
	fullHistoryName  = "full_history"

	dirPerm  = 0o755
	filePerm = 0o644
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config represents output configuration
type Config struct {
	Dir        string `yaml:"dir" env:"OUTPUT_DIR"`
	StartDate  string `yaml:"start_date" env:"START_DATE"`
	EndDate    string `yaml:"end_date" env:"END_DATE"`
	MaxCommits int    `yaml:"max_commits" env:"MAX_COMMITS"`
	ExportJSON bool   `yaml:"export_json" env:"EXPORT_JSON"`
}

func (c *Config) PrepareAndValidate() error {
	c.Dir = lang.Check(c.Dir, defaultOutputDir)
	return c.Query().Validate()
}

// Query returns the history query described by the configuration
func (c Config) Query() model.LogQuery {
	return model.LogQuery{
		Since:    c.StartDate,
		Until:    c.EndDate,
		MaxCount: c.MaxCommits,
	}
}

// Result describes the outcome of a single generation
type Result struct {
	Path     string
	JSONPath string
	Commits  int
	Fallback bool
	Written  bool
}

// Generator extracts commits, asks writer for the document and stores it
type Generator struct {
	cfg       Config
	extractor *history.Extractor
	writer    interfaces.ChangelogWriter
	log       logze.Logger
}

// NewGenerator creates a new generator
func NewGenerator(cfg Config, extractor *history.Extractor, writer interfaces.ChangelogWriter) (*Generator, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Generator{
		cfg:       cfg,
		extractor: extractor,
		writer:    writer,
		log:       logze.With("component", "changelog"),
	}, nil
}

// Generate writes a changelog for the configured period.
// If there are no commits nothing is written and Result.Written is false.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	g.log.Info("generating changelog from git history", "dir", g.cfg.Dir,
		"start_date", g.cfg.StartDate, "end_date", g.cfg.EndDate, "max_commits", g.cfg.MaxCommits)

	if err := os.MkdirAll(g.cfg.Dir, dirPerm); err != nil {
		return Result{}, errm.Wrap(err, "failed to create output directory")
	}

	query := g.cfg.Query()
	period := query.Range()

	commits := g.extractor.ExtractCommits(ctx, query)
	if len(commits) == 0 {
		g.log.Info("no commits found in the specified date range")
		return Result{}, nil
	}

	result := Result{
		Path:    OutputPath(g.cfg.Dir, period),
		Commits: len(commits),
	}

	content, err := g.writer.GenerateChangelog(ctx, commits, period)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, errm.Wrap(ctx.Err(), "generation interrupted")
		}
		g.log.Error("cannot generate changelog, writing raw commits", "error", err)
		content = FallbackDocument(err, commits)
		result.Fallback = true
	}

	if err := os.WriteFile(result.Path, []byte(content), filePerm); err != nil {
		return Result{}, errm.Wrap(err, "failed to write changelog")
	}
	result.Written = true

	if g.cfg.ExportJSON {
		result.JSONPath = strings.TrimSuffix(result.Path, ".md") + ".json"
		if err := writeJSON(result.JSONPath, commits); err != nil {
			return result, errm.Wrap(err, "failed to export commits")
		}
	}

	g.log.Info("changelog generated", "path", result.Path, "commits", result.Commits, "fallback", result.Fallback)

	return result, nil
}

// OutputPath returns path of the changelog file for the period
func OutputPath(dir string, period model.DateRange) string {
	name := fullHistoryName
	if period.IsFull() {
		name = strings.ReplaceAll(period.Start, "-", "") + "_to_" + strings.ReplaceAll(period.End, "-", "")
	}
	return filepath.Join(dir, "changelog_"+name+".md")
}

// FallbackDocument is written when the changelog can't be generated
func FallbackDocument(cause error, commits []model.Commit) string {
	var sb strings.Builder
	sb.WriteString("# Changelog Generation Failed\n\n")
	fmt.Fprintf(&sb, "Error: %v\n\n", cause)
	sb.WriteString("## Raw Commits\n\n")
	for i, c := range commits {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "* %s - %s (%s)", c.Date, c.Message, c.ShortHash())
	}
	return sb.String()
}

func writeJSON(path string, commits []model.Commit) error {
	data, err := json.MarshalIndent(commits, "", "  ")
	if err != nil {
		return errm.Wrap(err, "failed to marshal commits")
	}
	return os.WriteFile(path, append(data, '\n'), filePerm)
}
