package common

import (
	"net/http"
	"time"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryConfig holds the configuration for the outbound HTTP client
type RetryConfig struct {
	// Maximum number of retries, 0 sends every request exactly once
	RetryMax int
	// Minimum time to wait between retries
	RetryWaitMin time.Duration
	// Maximum time to wait between retries
	RetryWaitMax time.Duration
	// Function to determine if a request should be retried
	CheckRetry retryablehttp.CheckRetry
}

// DefaultRetryConfig returns a RetryConfig that never retries.
// Upstream failures surface to the caller on the first attempt.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryMax:     0,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 5 * time.Second,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
	}
}

// NewRetryableClient creates a new HTTP client with retry capabilities
func NewRetryableClient(config RetryConfig) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()

	retryClient.RetryMax = config.RetryMax
	retryClient.RetryWaitMin = config.RetryWaitMin
	retryClient.RetryWaitMax = config.RetryWaitMax

	if config.CheckRetry != nil {
		retryClient.CheckRetry = config.CheckRetry
	}
	// hand the last response back instead of a generic "giving up" error,
	// so SDKs can decode the upstream error body
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	retryClient.Logger = &zapRetryLogger{}

	logger.Debugf("Created retryable client with max retries: %d, min wait: %s, max wait: %s",
		config.RetryMax, config.RetryWaitMin, config.RetryWaitMax)

	return retryClient
}

// NewHTTPClient returns a standard *http.Client backed by the retryable transport
func NewHTTPClient(config RetryConfig) *http.Client {
	return NewRetryableClient(config).StandardClient()
}

// zapRetryLogger adapts our zap logger to retryablehttp.LeveledLogger
type zapRetryLogger struct{}

func (z *zapRetryLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Errorw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Infow(msg, keysAndValues...)
}

func (z *zapRetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Debugw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Warnw(msg, keysAndValues...)
}
