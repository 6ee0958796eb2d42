package common

import (
	"os"
	"path/filepath"
	"testing"
)

var settingsEnvKeys = []string{
	"LOG_LEVEL", "LLM_PROVIDER", "ANTHROPIC_API_KEY", "CLAUDE_MODEL", "OPENAI_API_KEY",
	"GEMINI_API_KEY", "LLM_API_KEY", "LLM_MODEL", "LLM_BASE_URL", "LLM_API_TIMEOUT",
	"LLM_RETRY_MAX", "HTTP_ADDR", "PORT", "API_ALLOWED_ORIGINS",
}

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsEnvKeys {
		t.Setenv(key, "")
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	return tempDir
}

func TestWithDefaultSettings(t *testing.T) {
	settings := WithDefaultSettings()

	if settings.LLM.Provider != ProviderAnthropic {
		t.Errorf("Expected default provider to be %s, got %s", ProviderAnthropic, settings.LLM.Provider)
	}
	if settings.LLM.Model != DefaultClaudeModel {
		t.Errorf("Expected default model to be %s, got %s", DefaultClaudeModel, settings.LLM.Model)
	}
	if settings.LLM.MaxTokens != 4096 {
		t.Errorf("Expected default max tokens to be 4096, got %d", settings.LLM.MaxTokens)
	}
	if settings.LLM.Temperature != 0.7 {
		t.Errorf("Expected default temperature to be 0.7, got %v", settings.LLM.Temperature)
	}
	if settings.LLM.TopP != 0.9 {
		t.Errorf("Expected default top_p to be 0.9, got %v", settings.LLM.TopP)
	}
	if settings.LLM.TopK != 50 {
		t.Errorf("Expected default top_k to be 50, got %d", settings.LLM.TopK)
	}
	if settings.LLM.RetryMax != 0 {
		t.Errorf("Expected no retries by default, got %d", settings.LLM.RetryMax)
	}
	if settings.LLM.APITimeout != 0 {
		t.Errorf("Expected no API timeout by default, got %d", settings.LLM.APITimeout)
	}
	if settings.LLM.APIKey != "" {
		t.Errorf("Expected empty API key by default, got %s", settings.LLM.APIKey)
	}
	if settings.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", settings.Server.Addr)
	}
	if err := settings.Validate(); err != nil {
		t.Errorf("Expected default settings to be valid, got %v", err)
	}
}

func TestWithYamlFile_ValidFile(t *testing.T) {
	configContent := `log_level: debug
llm:
  provider: openai
  max_tokens: 2048
  temperature: 0.2
  retry_max: 2
server:
  addr: ":9090"
  allowed_origins:
    - https://example.jp
`
	chdirTemp(t)
	if err := os.WriteFile("rice-survey.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings, err := WithYamlFile("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", settings.LogLevel)
	}
	if settings.LLM.Provider != ProviderOpenAI {
		t.Errorf("Expected provider %s, got %s", ProviderOpenAI, settings.LLM.Provider)
	}
	if settings.LLM.Model != DefaultOpenAIModel {
		t.Errorf("Expected model to follow the provider default %s, got %s", DefaultOpenAIModel, settings.LLM.Model)
	}
	if settings.LLM.MaxTokens != 2048 {
		t.Errorf("Expected max tokens 2048, got %d", settings.LLM.MaxTokens)
	}
	if settings.LLM.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", settings.LLM.Temperature)
	}
	if settings.LLM.TopK != 50 {
		t.Errorf("Expected unspecified top_k to keep its default, got %d", settings.LLM.TopK)
	}
	if settings.LLM.RetryMax != 2 {
		t.Errorf("Expected retry max 2, got %d", settings.LLM.RetryMax)
	}
	if settings.Server.Addr != ":9090" {
		t.Errorf("Expected addr :9090, got %s", settings.Server.Addr)
	}
	if len(settings.Server.AllowedOrigins) != 1 || settings.Server.AllowedOrigins[0] != "https://example.jp" {
		t.Errorf("Expected allowed origins [https://example.jp], got %v", settings.Server.AllowedOrigins)
	}
}

func TestWithYamlFile_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  model: claude-3-7-sonnet-latest\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings, err := WithYamlFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if settings.LLM.Model != "claude-3-7-sonnet-latest" {
		t.Errorf("Expected model claude-3-7-sonnet-latest, got %s", settings.LLM.Model)
	}
	if settings.LLM.Provider != ProviderAnthropic {
		t.Errorf("Expected provider to stay %s, got %s", ProviderAnthropic, settings.LLM.Provider)
	}
}

func TestWithYamlFile_NoFile(t *testing.T) {
	chdirTemp(t)

	settings, err := WithYamlFile("")
	if err != nil {
		t.Fatalf("Expected no error without a settings file, got %v", err)
	}
	if settings.LLM.Model != DefaultClaudeModel {
		t.Errorf("Expected default model, got %s", settings.LLM.Model)
	}
}

func TestWithYamlFile_MissingExplicitPath(t *testing.T) {
	if _, err := WithYamlFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected an error for a missing explicit settings file")
	}
}

func TestWithYamlFile_InvalidYaml(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("rice-survey.yaml", []byte("llm: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings, err := WithYamlFile("")
	if err == nil {
		t.Fatal("Expected an error for invalid YAML")
	}
	if settings.LLM.Model != DefaultClaudeModel {
		t.Errorf("Expected default settings on parse error, got model %s", settings.LLM.Model)
	}
}

func TestApplyEnv_Anthropic(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("CLAUDE_MODEL", "claude-3-5-haiku-latest")
	t.Setenv("PORT", "7071")

	settings := WithDefaultSettings()
	settings.ApplyEnv()

	if settings.LLM.APIKey != "sk-ant-test" {
		t.Errorf("Expected API key from ANTHROPIC_API_KEY, got %s", settings.LLM.APIKey)
	}
	if settings.LLM.Model != "claude-3-5-haiku-latest" {
		t.Errorf("Expected model from CLAUDE_MODEL, got %s", settings.LLM.Model)
	}
	if settings.Server.Addr != ":7071" {
		t.Errorf("Expected addr :7071 from PORT, got %s", settings.Server.Addr)
	}
}

func TestApplyEnv_ModelFallback(t *testing.T) {
	clearSettingsEnv(t)

	settings := WithDefaultSettings()
	settings.ApplyEnv()

	if settings.LLM.Model != DefaultClaudeModel {
		t.Errorf("Expected fallback model %s, got %s", DefaultClaudeModel, settings.LLM.Model)
	}
	if settings.LLM.APIKey != "" {
		t.Errorf("Expected empty API key, got %s", settings.LLM.APIKey)
	}
}

func TestApplyEnv_ProviderSwitch(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-ignored")
	t.Setenv("CLAUDE_MODEL", "claude-ignored")

	settings := WithDefaultSettings()
	settings.ApplyEnv()

	if settings.LLM.Provider != ProviderGemini {
		t.Errorf("Expected provider %s, got %s", ProviderGemini, settings.LLM.Provider)
	}
	if settings.LLM.Model != DefaultGeminiModel {
		t.Errorf("Expected model %s, got %s", DefaultGeminiModel, settings.LLM.Model)
	}
	if settings.LLM.APIKey != "gm-key" {
		t.Errorf("Expected API key from GEMINI_API_KEY, got %s", settings.LLM.APIKey)
	}
}

func TestApplyEnv_GenericOverrides(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("LLM_API_KEY", "generic-key")
	t.Setenv("LLM_API_TIMEOUT", "45")
	t.Setenv("LLM_RETRY_MAX", "not-a-number")
	t.Setenv("HTTP_ADDR", "127.0.0.1:3000")
	t.Setenv("PORT", "7071")
	t.Setenv("API_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	settings := WithDefaultSettings()
	settings.ApplyEnv()

	if settings.LLM.APIKey != "generic-key" {
		t.Errorf("Expected LLM_API_KEY to win, got %s", settings.LLM.APIKey)
	}
	if settings.LLM.APITimeout != 45 {
		t.Errorf("Expected API timeout 45, got %d", settings.LLM.APITimeout)
	}
	if settings.LLM.RetryMax != 0 {
		t.Errorf("Expected invalid LLM_RETRY_MAX to be ignored, got %d", settings.LLM.RetryMax)
	}
	if settings.Server.Addr != "127.0.0.1:3000" {
		t.Errorf("Expected HTTP_ADDR to win over PORT, got %s", settings.Server.Addr)
	}
	if len(settings.Server.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 allowed origins, got %v", settings.Server.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	settings := WithDefaultSettings()
	settings.LLM.Provider = "bedrock"
	if err := settings.Validate(); err == nil {
		t.Error("Expected an error for an unsupported provider")
	}

	settings = WithDefaultSettings()
	settings.LLM.MaxTokens = 0
	if err := settings.Validate(); err == nil {
		t.Error("Expected an error for non-positive max tokens")
	}

	settings = WithDefaultSettings()
	settings.LLM.RetryMax = -1
	if err := settings.Validate(); err == nil {
		t.Error("Expected an error for negative retry max")
	}
}
