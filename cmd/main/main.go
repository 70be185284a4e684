package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/changry/internal/app"
	"github.com/maxbolgarin/changry/internal/config"
	"github.com/maxbolgarin/changry/internal/history"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

const usage = "GEMINI_API_KEY=your_api_key [START_DATE=YYYY-MM-DD] [END_DATE=YYYY-MM-DD] [OUTPUT_DIR=./changelogs] [MAX_COMMITS=50] changry"

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	since      = kingpin.Flag("since", "include commits on or after this date (YYYY-MM-DD)").String()
	until      = kingpin.Flag("until", "include commits on or before this date (YYYY-MM-DD)").String()
	maxCommits = kingpin.Flag("max-commits", "maximum number of commits, newest first").Short('n').Int()
	outputDir  = kingpin.Flag("output", "directory to write changelog to").Short('o').String()
	repoPath   = kingpin.Flag("repo", "path to git repository").String()
	sourceType = kingpin.Flag("source", "history source: git, gogit, github, gitlab").Enum(
		string(history.Git), string(history.GoGit), string(history.GitHub), string(history.GitLab))
	exportJSON = kingpin.Flag("json", "also export extracted commits as JSON").Bool()
	timeout    = kingpin.Flag("git-timeout", "timeout of a single git command").Duration()
	verbose    = kingpin.Flag("verbose", "enable debug logs").Short('v').Bool()
)

func main() {
	kingpin.Version(fmt.Sprintf("%s (%s, %s, %s)", Version, Branch, Commit, BuildDate))
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
		if isConfigError(err) {
			fmt.Fprintln(os.Stderr, "\nUsage:\n"+usage)
		}
	}
}

// configError is returned when the tool cannot start with the given configuration
type configError struct {
	error
}

func (e configError) Unwrap() error {
	return e.error
}

func isConfigError(err error) bool {
	var cfgErr configError
	return errors.As(err, &cfgErr)
}

func run(ctx contem.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return configError{erro.Wrap(err, "load config")}
	}
	applyFlags(&cfg)

	logze.Init(logze.C().WithConsole().WithLevel(lang.If(cfg.Verbose, logze.LevelDebug, logze.LevelInfo)))

	changry, err := app.New(ctx, cfg)
	if err != nil {
		return configError{erro.Wrap(err, "new app")}
	}

	result, err := changry.Run(ctx)
	if err != nil {
		return erro.Wrap(err, "run")
	}
	if !result.Written {
		return nil
	}

	fmt.Printf("Changelog generated successfully at %s\n", result.Path)

	return nil
}

// applyFlags overrides configuration with command line flags that were set
func applyFlags(cfg *config.Config) {
	if *since != "" {
		cfg.Output.StartDate = *since
	}
	if *until != "" {
		cfg.Output.EndDate = *until
	}
	if *maxCommits != 0 {
		cfg.Output.MaxCommits = *maxCommits
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *exportJSON {
		cfg.Output.ExportJSON = true
	}
	if *repoPath != "" {
		cfg.Source.Git.RepoPath = *repoPath
	}
	if *sourceType != "" {
		cfg.Source.Type = history.SourceType(*sourceType)
	}
	if *timeout != time.Duration(0) {
		cfg.Source.Git.Timeout = *timeout
	}
	if *verbose {
		cfg.Verbose = true
	}
}
