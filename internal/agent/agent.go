package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/maxbolgarin/changry/internal/agent/claude"
	"github.com/maxbolgarin/changry/internal/agent/gemini"
	"github.com/maxbolgarin/changry/internal/agent/openai"
	"github.com/maxbolgarin/changry/internal/agent/prompts"
	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var _ interfaces.ChangelogWriter = (*Agent)(nil)

// Agent writes changelogs using one of the supported LLM APIs
type Agent struct {
	cfg    Config
	logger logze.Logger
	pb     *prompts.Builder
	api    interfaces.AgentAPI
}

func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	modelCfg := model.ModelConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		URL:      cfg.BaseURL,
		ProxyURL: cfg.ProxyURL,
	}

	var (
		api interfaces.AgentAPI
		err error
	)
	switch cfg.Type {
	case Gemini:
		api, err = gemini.New(ctx, modelCfg)
	case OpenAI, Claude:
		var cli *cliex.HTTP
		cli, err = cliex.NewWithConfig(cliex.Config{
			BaseURL:        cfg.BaseURL,
			UserAgent:      cfg.UserAgent,
			ProxyAddress:   cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		})
		if err != nil {
			return nil, errm.Wrap(err, "failed to create HTTP client")
		}
		if cfg.Type == OpenAI {
			api, err = openai.New(cli, modelCfg)
		} else {
			api, err = claude.New(cli, modelCfg)
		}
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	// spends a few tokens
	if cfg.IsTest {
		if err := checkConnection(ctx, api); err != nil {
			return nil, errm.Wrap(err, "failed to connect to "+string(cfg.Type)+" API")
		}
	}

	return NewWithAPI(cfg, api), nil
}

func checkConnection(ctx context.Context, api interfaces.AgentAPI) error {
	_, err := api.CallAPI(ctx, model.APIRequest{
		Prompt:       "Reply with OK.",
		MaxTokens:    10,
		ResponseType: "text/plain",
	})
	return err
}

// NewWithAPI creates an agent on top of already configured API.
// Config is expected to be prepared.
func NewWithAPI(cfg Config, api interfaces.AgentAPI) *Agent {
	return &Agent{
		cfg:    cfg,
		logger: logze.With("component", "agent", "type", cfg.Type),
		pb:     prompts.NewBuilder(cfg.Language),
		api:    api,
	}
}

// GenerateChangelog generates a markdown changelog for the commits
func (a *Agent) GenerateChangelog(ctx context.Context, commits []model.Commit, period model.DateRange) (string, error) {
	if len(commits) == 0 {
		return "", errm.New("no commits to describe")
	}
	prompt := a.pb.BuildChangelogPrompt(commits, period)

	a.logger.Info("generating changelog", "commits", len(commits), "period", prompts.DescribePeriod(period))

	response, err := a.apiCall(ctx, prompt)
	if err != nil {
		return "", errm.Wrap(err, "failed to generate changelog")
	}

	return cleanMarkdown(response), nil
}

func (a *Agent) apiCall(ctx context.Context, prompt model.Prompt) (string, error) {
	req := model.APIRequest{
		Prompt:       prompt.UserPrompt,
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
		ResponseType: "text/plain",
	}

	attempts := max(a.cfg.MaxRetries, 1)

	var content string
	err := retry.Do(
		func() error {
			response, err := a.api.CallAPI(ctx, req)
			if err != nil {
				return err
			}
			if strings.TrimSpace(response.Content) == "" {
				return errm.New("empty response from API")
			}
			a.logger.Debug("got API response",
				"prompt_tokens", response.PromptTokens,
				"completion_tokens", response.CompletionTokens,
				"total_tokens", response.TotalTokens)
			content = response.Content
			return nil
		},
		retry.Attempts(uint(attempts)),
		retry.Delay(a.cfg.RetryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded) &&
				!model.IsPermanentAPIError(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn("API call failed, retrying",
				"attempt", n+1,
				"max_attempts", attempts,
				"error", err,
			)
		}),
	)
	if err != nil {
		return "", errm.Wrap(err, "failed to call API")
	}

	return content, nil
}

// cleanMarkdown removes code fence some models wrap the whole document into
func cleanMarkdown(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") {
		return response + "\n"
	}
	response = strings.TrimPrefix(response, "```markdown")
	response = strings.TrimPrefix(response, "```md")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response) + "\n"
}
