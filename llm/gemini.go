package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel implements the LLM interface using Google's Gemini API
type GeminiModel struct {
	client *genai.Client
	config
}

// NewGemini creates a new Gemini client.
// The client talks gRPC, so the retryable HTTP client is not used here.
func NewGemini(apiKey string, opts ...Option) (*GeminiModel, error) {
	if apiKey == "" {
		errMsg := "Gemini API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	cfg := defaultConfig("gemini-2.0-flash")
	cfg.apply(opts)

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.baseURL))
	}

	client, err := genai.NewClient(context.Background(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := &GeminiModel{
		client: client,
		config: cfg,
	}

	logger.Debugf("Gemini client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to Gemini and returns the response
func (g *GeminiModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := withTimeout(ctx, g.apiTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelName)
	model.SetMaxOutputTokens(int32(g.maxTokens))
	model.SetTemperature(float32(g.temperature))
	model.SetTopP(float32(g.topP))
	model.SetTopK(int32(g.topK))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemPrompt)},
	}

	logger.Debugf("Sending request to Gemini with model %s, max tokens %d", g.modelName, g.maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		logger.Errorf("Error sending message to Gemini: %v", err)
		return Response{Error: err}
	}

	content := geminiText(resp)
	if content == "" && (resp == nil || len(resp.Candidates) == 0) {
		errMsg := "Gemini response contained no candidates"
		logger.Error(errMsg)
		return Response{Error: errors.New(errMsg)}
	}

	return Response{Content: content}
}

// Close releases the underlying gRPC connection
func (g *GeminiModel) Close() error {
	return g.client.Close()
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var content string
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}
	return content
}
