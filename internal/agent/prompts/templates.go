package prompts

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/changry/internal/model"
)

// MaxFilesPerCommit limits the file list of a single commit in the prompt
const MaxFilesPerCommit = 20

// Builder builds prompts for AI agents
type Builder struct {
	language LanguageConfig
}

// NewBuilder creates a new template builder with language configuration
func NewBuilder(language model.Language) *Builder {
	lang, exists := DefaultLanguages[language]
	if !exists {
		lang = DefaultLanguages[model.LanguageEnglish] // Default to English
	}
	if lang.ChangelogHeaders.isEmpty() {
		lang.ChangelogHeaders = englishHeaders
	}
	return &Builder{
		language: lang,
	}
}

// BuildChangelogPrompt creates a prompt for generating a changelog from commits
func (tb *Builder) BuildChangelogPrompt(commits []model.Commit, period model.DateRange) model.Prompt {
	var total model.CommitStats
	for _, c := range commits {
		total.Additions += c.Stats.Additions
		total.Deletions += c.Stats.Deletions
	}

	h := tb.language.ChangelogHeaders
	systemPrompt := fmt.Sprintf(changelogSystemPromptTemplate, tb.language.Instructions)
	userPrompt := fmt.Sprintf(changelogUserPromptTemplate,
		DescribePeriod(period),
		len(commits), total.Additions, total.Deletions,
		FormatCommits(commits),
		h.NewFeatures,
		h.Improvements,
		h.BugFixes,
		h.Security,
		h.Performance,
		h.Documentation,
		h.ComingSoon,
	)

	return model.Prompt{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Language:     tb.language.Language,
	}
}

// FormatCommits renders commits as plain text blocks separated by a blank line
func FormatCommits(commits []model.Commit) string {
	blocks := make([]string, 0, len(commits))
	for _, c := range commits {
		blocks = append(blocks, FormatCommit(c))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatCommit renders a single commit for the prompt
func FormatCommit(c model.Commit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hash: %s\n", c.Hash)
	fmt.Fprintf(&sb, "Author: %s\n", c.Author)
	fmt.Fprintf(&sb, "Date: %s\n", c.Date)
	fmt.Fprintf(&sb, "Message: %s\n", c.Message)
	fmt.Fprintf(&sb, "Body: %s\n", c.Body)
	fmt.Fprintf(&sb, "Stats: +%d/-%d lines\n", c.Stats.Additions, c.Stats.Deletions)
	fmt.Fprintf(&sb, "Files Changed (%d):\n", len(c.Files))
	sb.WriteString(formatFileList(c.Files))
	return sb.String()
}

func formatFileList(files []string) string {
	if len(files) <= MaxFilesPerCommit {
		return strings.Join(files, "\n")
	}
	return strings.Join(files[:MaxFilesPerCommit], "\n") +
		fmt.Sprintf("\n... and %d more files", len(files)-MaxFilesPerCommit)
}

// DescribePeriod returns human readable period of the changelog
func DescribePeriod(period model.DateRange) string {
	switch {
	case period.IsFull():
		return period.Start + " to " + period.End
	case period.Start != "":
		return "since " + period.Start
	case period.End != "":
		return "until " + period.End
	default:
		return "full history"
	}
}
