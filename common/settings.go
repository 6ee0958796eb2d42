package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"

	// DefaultClaudeModel is used when CLAUDE_MODEL is not set
	DefaultClaudeModel = "claude-3-5-sonnet-20240620"
	DefaultOpenAIModel = "gpt-4.1"
	DefaultGeminiModel = "gemini-2.0-flash"
)

type LLM struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	TopK        int     `yaml:"top_k"`
	APITimeout  int     `yaml:"api_timeout"` // seconds, 0 disables the deadline
	RetryMax    int     `yaml:"retry_max"`
}

type Server struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"`
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // seconds
}

type Settings struct {
	LogLevel string `yaml:"log_level"`
	LLM      LLM    `yaml:"llm"`
	Server   Server `yaml:"server"`
}

// DefaultSettingsFiles are looked up in the working directory when no path is given
var DefaultSettingsFiles = []string{"rice-survey.yml", "rice-survey.yaml"}

func WithDefaultSettings() Settings {
	return Settings{
		LogLevel: "info",
		LLM: LLM{
			Provider:    ProviderAnthropic,
			Model:       DefaultClaudeModel,
			MaxTokens:   4096,
			Temperature: 0.7,
			TopP:        0.9,
			TopK:        50,
			APITimeout:  0,
			RetryMax:    0,
		},
		Server: Server{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 10,
		},
	}
}

// WithYamlFile returns the default settings overlaid with the YAML file at path.
// An empty path falls back to DefaultSettingsFiles; a missing default file is not an error.
func WithYamlFile(path string) (Settings, error) {
	settings := WithDefaultSettings()

	if path == "" {
		for _, name := range DefaultSettingsFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			logger.Debug("No settings file found in the current directory. Using default settings.")
			return settings, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	// the model default depends on the provider the file may select
	settings.LLM.Model = ""
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return WithDefaultSettings(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	settings.LLM.Provider = strings.ToLower(strings.TrimSpace(settings.LLM.Provider))
	if settings.LLM.Model == "" {
		settings.LLM.Model = defaultModel(settings.LLM.Provider)
	}

	logger.Infof("Using settings from YAML file: %s", path)
	return settings, nil
}

// Load reads the settings file, the optional .env file and the process environment,
// in increasing order of precedence. It is meant to be called once at startup.
func Load(path string) (Settings, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	} else {
		logger.Debug("Loaded environment from .env file")
	}

	settings, err := WithYamlFile(path)
	if err != nil {
		return settings, err
	}

	settings.ApplyEnv()
	return settings, nil
}

// ApplyEnv overrides settings with values from the environment
func (s *Settings) ApplyEnv() {
	if v := envString("LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}

	providerChanged := false
	if v := envString("LLM_PROVIDER"); v != "" {
		providerChanged = !strings.EqualFold(v, s.LLM.Provider)
		s.LLM.Provider = strings.ToLower(v)
	}
	if providerChanged {
		s.LLM.Model = defaultModel(s.LLM.Provider)
	}

	switch s.LLM.Provider {
	case ProviderAnthropic:
		if v := envString("ANTHROPIC_API_KEY"); v != "" {
			s.LLM.APIKey = v
		}
		if v := envString("CLAUDE_MODEL"); v != "" {
			s.LLM.Model = v
		}
	case ProviderOpenAI:
		if v := envString("OPENAI_API_KEY"); v != "" {
			s.LLM.APIKey = v
		}
	case ProviderGemini:
		if v := envString("GEMINI_API_KEY"); v != "" {
			s.LLM.APIKey = v
		}
	}

	if v := envString("LLM_API_KEY"); v != "" {
		s.LLM.APIKey = v
	}
	if v := envString("LLM_MODEL"); v != "" {
		s.LLM.Model = v
	}
	if v := envString("LLM_BASE_URL"); v != "" {
		s.LLM.BaseURL = v
	}
	if v, ok := envInt("LLM_API_TIMEOUT"); ok {
		s.LLM.APITimeout = v
	}
	if v, ok := envInt("LLM_RETRY_MAX"); ok {
		s.LLM.RetryMax = v
	}

	if v := envString("HTTP_ADDR"); v != "" {
		s.Server.Addr = v
	} else if v := envString("PORT"); v != "" {
		s.Server.Addr = ":" + v
	}
	if origins := envList("API_ALLOWED_ORIGINS"); len(origins) > 0 {
		s.Server.AllowedOrigins = origins
	}

	if s.LLM.Model == "" {
		s.LLM.Model = defaultModel(s.LLM.Provider)
	}
}

// Validate checks the settings that cannot be defaulted
func (s Settings) Validate() error {
	switch s.LLM.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider: %s", s.LLM.Provider)
	}
	if s.LLM.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", s.LLM.MaxTokens)
	}
	if s.LLM.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", s.LLM.RetryMax)
	}
	if s.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", s.Server.MaxBodyBytes)
	}
	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultClaudeModel
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string) (int, bool) {
	raw := envString(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warnf("Ignoring %s=%q: %v", key, raw, err)
		return 0, false
	}
	return v, true
}

func envList(key string) []string {
	raw := envString(key)
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
