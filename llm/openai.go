package llm

import (
	"context"
	"errors"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIModel implements the LLM interface using OpenAI's chat completions API
type OpenAIModel struct {
	client *openai.Client
	config
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	cfg := defaultConfig("gpt-4.1")
	cfg.apply(opts)

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = cfg.httpClient()
	if cfg.baseURL != "" {
		clientConfig.BaseURL = cfg.baseURL
	}

	model := &OpenAIModel{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}

	logger.Debugf("OpenAI client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to OpenAI and returns the response
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := withTimeout(ctx, o.apiTimeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		},
	}

	if o.topK > 0 {
		logger.Debugf("OpenAI does not support top_k, ignoring top_k=%d", o.topK)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   o.maxTokens,
		Temperature: float32(o.temperature),
		TopP:        float32(o.topP),
	}

	logger.Debugf("Sending request to OpenAI with model %s, max tokens %d", o.modelName, o.maxTokens)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logger.Errorf("Error sending message to OpenAI: %v", err)
		return Response{Error: err}
	}

	if len(resp.Choices) == 0 {
		errMsg := "OpenAI response contained no choices"
		logger.Error(errMsg)
		return Response{Error: errors.New(errMsg)}
	}

	return Response{Content: resp.Choices[0].Message.Content}
}
