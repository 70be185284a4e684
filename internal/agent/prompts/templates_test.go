package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommit(t *testing.T) {
	c := model.Commit{
		Hash:    "abc1234567",
		Author:  "Alice",
		Date:    "2024-01-15",
		Message: "add login",
		Body:    "OAuth support",
		Files:   []string{"login.go", "login_test.go"},
		Stats:   model.CommitStats{Additions: 15, Deletions: 2},
	}

	want := "Hash: abc1234567\n" +
		"Author: Alice\n" +
		"Date: 2024-01-15\n" +
		"Message: add login\n" +
		"Body: OAuth support\n" +
		"Stats: +15/-2 lines\n" +
		"Files Changed (2):\n" +
		"login.go\nlogin_test.go"

	assert.Equal(t, want, FormatCommit(c))
}

func TestFormatCommit_TruncatesFiles(t *testing.T) {
	files := make([]string, 25)
	for i := range files {
		files[i] = fmt.Sprintf("file%02d.go", i)
	}

	out := FormatCommit(model.Commit{Hash: "abc", Files: files})

	assert.Contains(t, out, "Files Changed (25):")
	assert.Contains(t, out, "file19.go")
	assert.NotContains(t, out, "file20.go")
	assert.True(t, strings.HasSuffix(out, "\n... and 5 more files"))
}

func TestFormatCommit_ExactlyLimit(t *testing.T) {
	files := make([]string, MaxFilesPerCommit)
	for i := range files {
		files[i] = fmt.Sprintf("f%d", i)
	}

	out := FormatCommit(model.Commit{Files: files})
	assert.NotContains(t, out, "more files")
}

func TestDescribePeriod(t *testing.T) {
	assert.Equal(t, "2024-01-01 to 2024-01-31", DescribePeriod(model.DateRange{Start: "2024-01-01", End: "2024-01-31"}))
	assert.Equal(t, "since 2024-01-01", DescribePeriod(model.DateRange{Start: "2024-01-01"}))
	assert.Equal(t, "until 2024-01-31", DescribePeriod(model.DateRange{End: "2024-01-31"}))
	assert.Equal(t, "full history", DescribePeriod(model.DateRange{}))
}

func TestBuildChangelogPrompt(t *testing.T) {
	commits := []model.Commit{
		{Hash: "aaa", Message: "add cache", Files: []string{"cache.go"}, Stats: model.CommitStats{Additions: 10, Deletions: 2}},
		{Hash: "bbb", Message: "fix login", Files: []string{}, Stats: model.CommitStats{Additions: 5}},
	}

	prompt := NewBuilder(model.LanguageEnglish).BuildChangelogPrompt(commits, model.DateRange{Start: "2024-01-01", End: "2024-01-31"})

	assert.Equal(t, model.LanguageEnglish, prompt.Language)
	assert.Contains(t, prompt.SystemPrompt, "customer-focused")
	assert.Contains(t, prompt.SystemPrompt, "English")

	assert.Contains(t, prompt.UserPrompt, "Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, prompt.UserPrompt, "Commits: 2 (+15/-2 lines)")
	assert.Contains(t, prompt.UserPrompt, "Message: add cache")
	assert.Contains(t, prompt.UserPrompt, "Message: fix login")
	for _, header := range []string{"✨ New Features", "🚀 Improvements", "🐛 Bug Fixes", "🔒 Security Updates", "🏎️ Performance Enhancements", "📚 Documentation Updates", "🔮 Coming Soon"} {
		assert.Contains(t, prompt.UserPrompt, header)
	}
	assert.NotContains(t, prompt.UserPrompt, "%!")
}

func TestNewBuilder_Languages(t *testing.T) {
	prompt := NewBuilder(model.LanguageSpanish).BuildChangelogPrompt(nil, model.DateRange{})
	assert.Equal(t, model.LanguageSpanish, prompt.Language)
	assert.Contains(t, prompt.UserPrompt, "✨ Nuevas funciones")
	assert.Contains(t, prompt.UserPrompt, "Period: full history")

	prompt = NewBuilder("xx").BuildChangelogPrompt(nil, model.DateRange{})
	assert.Equal(t, model.LanguageEnglish, prompt.Language)

	for language, cfg := range DefaultLanguages {
		b := NewBuilder(language)
		require.False(t, b.language.ChangelogHeaders.isEmpty(), language)
		assert.NotEmpty(t, cfg.Instructions, language)
	}
}
