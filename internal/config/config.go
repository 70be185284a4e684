package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/maxbolgarin/changry/internal/agent"
	"github.com/maxbolgarin/changry/internal/changelog"
	"github.com/maxbolgarin/changry/internal/history"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/errm"
)

// DotEnvFile is loaded into environment before reading configuration, if exists
const DotEnvFile = ".env"

// Config represents the main application configuration
type Config struct {
	Source  history.Config   `yaml:"source"`
	Agent   agent.Config     `yaml:"agent"`
	Output  changelog.Config `yaml:"output"`
	Verbose bool             `yaml:"verbose" env:"VERBOSE"`
}

// Load reads configuration from the file (if path is not empty) and environment variables
func Load(path string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, errm.Wrap(err, "failed to load "+DotEnvFile)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read config file")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, errm.Wrap(err, "failed to read environment")
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Agent.APIKey == "" {
		return ErrMissingAgentAPIKey
	}
	if model.ValidateDate(c.Output.StartDate) != nil {
		return ErrInvalidStartDate
	}
	if model.ValidateDate(c.Output.EndDate) != nil {
		return ErrInvalidEndDate
	}
	if c.Output.StartDate != "" && c.Output.EndDate != "" && c.Output.StartDate > c.Output.EndDate {
		return ErrInvalidDateRange
	}
	if c.Output.MaxCommits < 0 {
		return ErrInvalidMaxCommits
	}
	return nil
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = history.Git
	}
	if c.Source.Git.Timeout == 0 {
		c.Source.Git.Timeout = 30 * time.Second
	}
	if c.Agent.Type == "" {
		c.Agent.Type = agent.Gemini
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./changelogs"
	}
}
