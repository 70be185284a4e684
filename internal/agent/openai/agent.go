package openai

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
	defaultModel = "gpt-4o-mini"
	defaultURL   = "https://api.openai.com/v1/chat/completions"

	roleSystem = "system"
	roleUser   = "user"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent calls OpenAI compatible chat completions endpoint
type Agent struct {
	cli *cliex.HTTP
	cfg model.ModelConfig
}

// New creates a new OpenAI agent on top of configured HTTP client
func New(cli *cliex.HTTP, config model.ModelConfig) (*Agent, error) {
	if config.APIKey == "" {
		return nil, errm.New("OpenAI API key is required")
	}
	config.Model = lang.Check(config.Model, defaultModel)
	config.URL = lang.Check(config.URL, defaultURL)

	cli.C().SetAuthToken(config.APIKey)

	return &Agent{
		cli: cli,
		cfg: config,
	}, nil
}

// CallAPI sends system and user prompts as a single chat completion
func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	messages := make([]message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, message{Role: roleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, message{Role: roleUser, Content: req.Prompt})

	var respBody chatCompletionResponse
	_, err := a.cli.Post(ctx, a.cfg.URL, chatCompletionRequest{
		Model:       a.cfg.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, &respBody)
	if err != nil {
		return model.APIResponse{}, model.ClassifyAPIError("OpenAI", err)
	}
	if respBody.Error != nil {
		return model.APIResponse{}, model.ClassifyAPIError("OpenAI",
			errm.New("%s: %s", lang.Check(respBody.Error.Code, respBody.Error.Type), respBody.Error.Message))
	}

	out := model.APIResponse{
		CreateTime:       time.Unix(respBody.Created, 0),
		PromptTokens:     respBody.Usage.PromptTokens,
		CompletionTokens: respBody.Usage.CompletionTokens,
		TotalTokens:      respBody.Usage.TotalTokens,
	}
	// first choice only, n is never set
	if len(respBody.Choices) > 0 {
		out.Content = strings.TrimSpace(respBody.Choices[0].Message.Content)
	}

	return out, nil
}
