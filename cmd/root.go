package cmd

import (
	"fmt"
	"io"

	"github.com/KenichiNogami/ricePriceSurvey/common"
	"github.com/KenichiNogami/ricePriceSurvey/llm"
	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/survey"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	logFormat  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "rice-survey",
	Short: "Rice Price Survey - white rice price research backed by an LLM",
	Long: `Rice Price Survey answers questions about white rice prices (5kg bags) in Japan.
It builds a research prompt from the request, sends it to a language model and returns the answer as JSON.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger with the specified log level
		logger.Init(logLevel, logFormat)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	return rootCmd.Execute()
}

func init() {
	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatJSON,
		"Set the log output format (json, console)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML settings file (defaults to rice-survey.yml in the working directory)")
}

// loadSettings reads and validates the settings, letting the settings file or
// LOG_LEVEL pick the log level unless --log-level was given explicitly
func loadSettings(cmd *cobra.Command) (common.Settings, error) {
	settings, err := common.Load(configPath)
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	if !cmd.Flags().Changed("log-level") && settings.LogLevel != "" {
		logger.SetLevel(settings.LogLevel)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}

	logger.Debugf("Using settings: provider=%s model=%s addr=%s", settings.LLM.Provider, settings.LLM.Model, settings.Server.Addr)
	return settings, nil
}

// newSurveyService builds the LLM client and the survey service on top of it.
// The returned cleanup releases the client's connections.
func newSurveyService(settings common.Settings) (*survey.Service, func(), error) {
	llmClient, err := llm.NewLLM(
		settings.LLM.Provider,
		settings.LLM.Model,
		settings.LLM.APIKey,
		llm.OptionsFromSettings(settings.LLM)...,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	cleanup := func() {
		if closer, ok := llmClient.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warnf("Failed to close LLM client: %v", err)
			}
		}
	}

	service, err := survey.NewService(llmClient, survey.WithModelName(settings.LLM.Model))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return service, cleanup, nil
}
