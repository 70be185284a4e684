package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxbolgarin/changry/internal/agent"
	"github.com/maxbolgarin/changry/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.Agent.APIKey = "key"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "valid range", modify: func(c *Config) {
			c.Output.StartDate = "2024-01-01"
			c.Output.EndDate = "2024-01-31"
		}},
		{name: "same day", modify: func(c *Config) {
			c.Output.StartDate = "2024-01-01"
			c.Output.EndDate = "2024-01-01"
		}},
		{name: "no api key", modify: func(c *Config) { c.Agent.APIKey = "" }, want: ErrMissingAgentAPIKey},
		{name: "bad start", modify: func(c *Config) { c.Output.StartDate = "2024/01/01" }, want: ErrInvalidStartDate},
		{name: "bad end", modify: func(c *Config) { c.Output.EndDate = "2024-02-30" }, want: ErrInvalidEndDate},
		{name: "reversed", modify: func(c *Config) {
			c.Output.StartDate = "2024-02-01"
			c.Output.EndDate = "2024-01-01"
		}, want: ErrInvalidDateRange},
		{name: "negative max commits", modify: func(c *Config) { c.Output.MaxCommits = -1 }, want: ErrInvalidMaxCommits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, history.Git, cfg.Source.Type)
	assert.Equal(t, 30*time.Second, cfg.Source.Git.Timeout)
	assert.Equal(t, agent.Gemini, cfg.Agent.Type)
	assert.Equal(t, "./changelogs", cfg.Output.Dir)

	cfg = Config{}
	cfg.Output.Dir = "out"
	cfg.Source.Type = history.GoGit
	cfg.SetDefaults()
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, history.GoGit, cfg.Source.Type)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("AGENT_API_KEY", "")
	require.NoError(t, os.Unsetenv("AGENT_API_KEY"))
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("START_DATE", "2024-01-01")
	t.Setenv("END_DATE", "2024-01-31")
	t.Setenv("OUTPUT_DIR", "/tmp/changelogs")
	t.Setenv("MAX_COMMITS", "50")
	t.Setenv("SOURCE_TYPE", "gogit")
	t.Setenv("GIT_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Agent.APIKey)
	assert.Equal(t, "2024-01-01", cfg.Output.StartDate)
	assert.Equal(t, "2024-01-31", cfg.Output.EndDate)
	assert.Equal(t, "/tmp/changelogs", cfg.Output.Dir)
	assert.Equal(t, 50, cfg.Output.MaxCommits)
	assert.Equal(t, history.GoGit, cfg.Source.Type)
	assert.Equal(t, 5*time.Second, cfg.Source.Git.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_AgentAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("AGENT_API_KEY", "openai-key")
	t.Setenv("AGENT_TYPE", "openai")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.Agent.APIKey)
	assert.Equal(t, agent.OpenAI, cfg.Agent.Type)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadMaxCommits(t *testing.T) {
	t.Setenv("MAX_COMMITS", "many")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
source:
  type: github
  github:
    repository: acme/shop
agent:
  type: openai
  api_key: file-key
  language: es
output:
  dir: ./out
  start_date: "2024-03-01"
  export_json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, history.GitHub, cfg.Source.Type)
	assert.Equal(t, "acme/shop", cfg.Source.GitHub.Repository)
	assert.Equal(t, agent.OpenAI, cfg.Agent.Type)
	assert.Equal(t, "file-key", cfg.Agent.APIKey)
	assert.Equal(t, "./out", cfg.Output.Dir)
	assert.Equal(t, "2024-03-01", cfg.Output.StartDate)
	assert.True(t, cfg.Output.ExportJSON)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
