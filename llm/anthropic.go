package llm

import (
	"context"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicModel implements the LLM interface using Anthropic's Messages API
type AnthropicModel struct {
	client anthropic.Client
	config
}

// NewAnthropic creates a new Anthropic client.
// An empty API key is accepted; requests then fail upstream with an authentication error.
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	cfg := defaultConfig("claude-3-5-sonnet-20240620")
	cfg.apply(opts)

	if apiKey == "" {
		logger.Warn("Anthropic API key is not set, requests will be rejected by the API")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(cfg.httpClient()),
		// retries are owned by the HTTP client so they stay configurable in one place
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}

	model := &AnthropicModel{
		client: anthropic.NewClient(clientOpts...),
		config: cfg,
	}

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to Anthropic and returns the response.
// Errors from the API are returned unwrapped.
func (a *AnthropicModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := withTimeout(ctx, a.apiTimeout)
	defer cancel()

	messageParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: int64(a.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
		Temperature: anthropic.Float(a.temperature),
		TopP:        anthropic.Float(a.topP),
		TopK:        anthropic.Int(int64(a.topK)),
	}

	logger.Debugf("Sending request to Anthropic with model %s, max tokens %d", a.modelName, a.maxTokens)

	message, err := a.client.Messages.New(ctx, messageParams)
	if err != nil {
		logger.Errorf("Error sending message to Anthropic: %v", err)
		return Response{Error: err}
	}

	var content string
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		}
	}

	logger.Debugf("Anthropic response: stop reason %s, input tokens %d, output tokens %d",
		message.StopReason, message.Usage.InputTokens, message.Usage.OutputTokens)

	return Response{Content: content}
}
