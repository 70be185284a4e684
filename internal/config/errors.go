package config

import "errors"

var (
	ErrMissingAgentAPIKey = errors.New("GEMINI_API_KEY (or AGENT_API_KEY) environment variable is required")
	ErrInvalidStartDate   = errors.New("START_DATE must be in YYYY-MM-DD format")
	ErrInvalidEndDate     = errors.New("END_DATE must be in YYYY-MM-DD format")
	ErrInvalidDateRange   = errors.New("START_DATE must not be after END_DATE")
	ErrInvalidMaxCommits  = errors.New("MAX_COMMITS must be a non-negative integer")
)
