// Package gitcli answers history queries by running the git binary.
package gitcli

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

const (
	defaultBinary  = "git"
	defaultTimeout = 30 * time.Second

	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// hash, author name, author date, subject, body
	logFormat = "%H%x1f%an%x1f%ad%x1f%s%x1f%b%x1e"

	dateTimeLayout = "2006-01-02 15:04:05"
)

var _ interfaces.HistorySource = (*Source)(nil)

// Config configures git binary invocation
type Config struct {
	RepoPath string        `yaml:"repo_path" env:"GIT_REPO_PATH"`
	Binary   string        `yaml:"binary" env:"GIT_BINARY"`
	Timeout  time.Duration `yaml:"timeout" env:"GIT_TIMEOUT"`
}

// Source implements HistorySource using git CLI
type Source struct {
	cfg Config
	log logze.Logger
}

// New creates a new git CLI source
func New(cfg Config) *Source {
	cfg.RepoPath = lang.Check(cfg.RepoPath, ".")
	cfg.Binary = lang.Check(cfg.Binary, defaultBinary)
	cfg.Timeout = lang.Check(cfg.Timeout, defaultTimeout)

	return &Source{
		cfg: cfg,
		log: logze.With("component", "gitcli", "repo", cfg.RepoPath),
	}
}

// ListCommits runs git log and parses its output
func (s *Source) ListCommits(ctx context.Context, query model.LogQuery) ([]model.RawCommit, error) {
	args := []string{"log", "--date=short", "--pretty=format:" + logFormat}
	if since := query.SinceTime(); since != nil {
		args = append(args, "--since="+since.Format(dateTimeLayout))
	}
	if until := query.UntilTime(); until != nil {
		args = append(args, "--until="+until.Format(dateTimeLayout))
	}
	if query.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(query.MaxCount))
	}

	out, err := s.run(ctx, args...)
	if err != nil {
		if isEmptyRepository(err) {
			s.log.Debug("repository has no commits yet")
			return nil, nil
		}
		return nil, err
	}

	return ParseLog(out), nil
}

// ChangedFiles runs git show --name-only for the commit
func (s *Source) ChangedFiles(ctx context.Context, hash string) ([]string, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}
	out, err := s.run(ctx, "show", "--name-only", "--format=", hash, "--")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// NumStat runs git show --numstat for the commit
func (s *Source) NumStat(ctx context.Context, hash string) ([]string, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}
	out, err := s.run(ctx, "show", "--numstat", "--format=", hash, "--")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (s *Source) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	fullArgs := append([]string{"-C", s.cfg.RepoPath, "-c", "core.quotepath=off"}, args...)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.cfg.Binary, fullArgs...)
	cmd.Stderr = &stderr

	s.log.Debug("run git", "args", strings.Join(args, " "))

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctx.Err() != nil {
			return "", errm.Wrap(ctx.Err(), "git "+args[0])
		}
		return "", errm.Wrap(err, "git "+args[0]+lang.If(msg != "", ": "+msg, ""))
	}

	return string(out), nil
}

// ParseLog parses output of git log produced with the record and field separators.
// Records with less than four fields or without hash are skipped, missing body is empty.
func ParseLog(out string) []model.RawCommit {
	var commits []model.RawCommit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		parts := strings.SplitN(record, fieldSep, 5)
		if len(parts) < 4 {
			continue
		}

		hash := strings.TrimSpace(parts[0])
		if hash == "" {
			continue
		}

		rc := model.RawCommit{
			Hash:    hash,
			Author:  parts[1],
			Date:    strings.TrimSpace(parts[2]),
			Message: parts[3],
		}
		if len(parts) == 5 {
			rc.Body = strings.TrimSpace(parts[4])
		}

		commits = append(commits, rc)
	}
	return commits
}

func splitLines(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}

func checkHash(hash string) error {
	if hash == "" || strings.HasPrefix(hash, "-") {
		return errm.New("invalid commit hash: %q", hash)
	}
	return nil
}

func isEmptyRepository(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "does not have any commits yet") ||
		strings.Contains(msg, "bad default revision 'HEAD'")
}
