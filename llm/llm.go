package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KenichiNogami/ricePriceSurvey/common"
	"github.com/KenichiNogami/ricePriceSurvey/logger"
)

const (
	ProviderAnthropic = common.ProviderAnthropic
	ProviderOpenAI    = common.ProviderOpenAI
	ProviderGemini    = common.ProviderGemini
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	APITimeoutOption  OptionType = "api_timeout"
	TemperatureOption OptionType = "temperature"
	TopPOption        OptionType = "top_p"
	TopKOption        OptionType = "top_k"
	RetryMaxOption    OptionType = "retry_max"
	BaseURLOption     OptionType = "base_url"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{Type: ModelNameOption, Value: model}
}

// WithMaxTokens creates an option to set the max output tokens
func WithMaxTokens(maxTokens int) Option {
	return Option{Type: MaxTokensOption, Value: maxTokens}
}

// WithAPITimeout creates an option to set the API timeout in seconds, 0 disables it
func WithAPITimeout(timeout int) Option {
	return Option{Type: APITimeoutOption, Value: timeout}
}

func WithTemperature(temperature float64) Option {
	return Option{Type: TemperatureOption, Value: temperature}
}

func WithTopP(topP float64) Option {
	return Option{Type: TopPOption, Value: topP}
}

func WithTopK(topK int) Option {
	return Option{Type: TopKOption, Value: topK}
}

// WithRetryMax creates an option to set how many times a failed call is retried
func WithRetryMax(retryMax int) Option {
	return Option{Type: RetryMaxOption, Value: retryMax}
}

// WithBaseURL points the provider at a different API endpoint
func WithBaseURL(baseURL string) Option {
	return Option{Type: BaseURLOption, Value: baseURL}
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(ctx context.Context, req Request) Response
}

// config is the provider-independent result of applying options
type config struct {
	modelName   string
	maxTokens   int
	apiTimeout  int // in seconds
	temperature float64
	topP        float64
	topK        int
	retryMax    int
	baseURL     string
}

func defaultConfig(modelName string) config {
	return config{
		modelName:   modelName,
		maxTokens:   4096,
		apiTimeout:  0,
		temperature: 0.7,
		topP:        0.9,
		topK:        50,
		retryMax:    0,
	}
}

func (c *config) apply(opts []Option) {
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				c.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok {
				c.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok {
				c.apiTimeout = timeout
			}
		case TemperatureOption:
			if temperature, ok := opt.Value.(float64); ok {
				c.temperature = temperature
			}
		case TopPOption:
			if topP, ok := opt.Value.(float64); ok {
				c.topP = topP
			}
		case TopKOption:
			if topK, ok := opt.Value.(int); ok {
				c.topK = topK
			}
		case RetryMaxOption:
			if retryMax, ok := opt.Value.(int); ok {
				c.retryMax = retryMax
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok {
				c.baseURL = baseURL
			}
		}
	}
}

func (c config) httpClient() *http.Client {
	retryConfig := common.DefaultRetryConfig()
	retryConfig.RetryMax = c.retryMax
	return common.NewHTTPClient(retryConfig)
}

// OptionsFromSettings converts the LLM settings section into provider options
func OptionsFromSettings(s common.LLM) []Option {
	opts := []Option{
		WithMaxTokens(s.MaxTokens),
		WithAPITimeout(s.APITimeout),
		WithTemperature(s.Temperature),
		WithTopP(s.TopP),
		WithTopK(s.TopK),
		WithRetryMax(s.RetryMax),
	}
	if s.BaseURL != "" {
		opts = append(opts, WithBaseURL(s.BaseURL))
	}
	return opts
}

// NewLLM creates a client for the named provider
func NewLLM(providerName, modelName, apiKey string, opts ...Option) (LLM, error) {
	var llmClient LLM
	var err error

	options := append([]Option{WithModel(modelName)}, opts...)

	switch providerName {
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, options...)
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, options...)
	case ProviderGemini:
		llmClient, err = NewGemini(apiKey, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", providerName)
	}

	if err == nil {
		logger.Infof("Using LLM provider: %s", providerName)
		logger.Infof("Using model: %s", modelName)
		logger.Infof("Using API key from configuration: %s", common.FoundOrNotFound(apiKey))
	}

	return llmClient, err
}

// withTimeout bounds ctx by the configured API timeout, if any
func withTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}
