package claude

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/changry/internal/model"
	"github.com/maxbolgarin/changry/internal/model/interfaces"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel   = "claude-3-5-haiku-20241022"
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent calls Anthropic messages API
type Agent struct {
	cfg model.ModelConfig
	cli *cliex.HTTP
}

// New creates a new Claude agent, the key and API version are sent as headers
func New(cli *cliex.HTTP, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("Claude API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)
	cfg.URL = lang.Check(cfg.URL, defaultBaseURL)

	cli.C().SetHeader("x-api-key", cfg.APIKey)
	cli.C().SetHeader("anthropic-version", apiVersion)

	return &Agent{
		cfg: cfg,
		cli: cli,
	}, nil
}

// CallAPI sends the prompt as a single user message, text blocks of the reply are joined
func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	reqBody := messagesRequest{
		Model:       a.cfg.Model,
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    []message{{Role: "user", Content: req.Prompt}},
	}

	var respBody messagesResponse
	_, err := a.cli.Post(ctx, a.cfg.URL, reqBody, &respBody)
	if err != nil {
		return model.APIResponse{}, model.ClassifyAPIError("Claude", err)
	}
	if respBody.Error != nil {
		return model.APIResponse{}, model.ClassifyAPIError("Claude",
			errm.New("%s: %s", respBody.Error.Type, respBody.Error.Message))
	}
	if len(respBody.Content) == 0 {
		return model.APIResponse{}, errm.New("no content in response")
	}

	var responseText strings.Builder
	for _, c := range respBody.Content {
		if c.Type == "text" {
			responseText.WriteString(c.Text)
		}
	}

	content := strings.TrimSpace(responseText.String())
	out := model.APIResponse{
		CreateTime:       time.Now(),
		Content:          content,
		PromptTokens:     respBody.Usage.InputTokens,
		CompletionTokens: respBody.Usage.OutputTokens,
		TotalTokens:      respBody.Usage.InputTokens + respBody.Usage.OutputTokens,
	}

	return out, nil
}
