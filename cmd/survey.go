package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KenichiNogami/ricePriceSurvey/model"
	"github.com/spf13/cobra"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Run a single survey from the terminal",
	Long: `Run one survey request through the same validation and prompt pipeline as the HTTP endpoint
and print the JSON response to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		surveyType, _ := cmd.Flags().GetString("type")
		message, _ := cmd.Flags().GetString("message")

		body, err := json.Marshal(map[string]string{
			"message":     message,
			"survey_type": surveyType,
		})
		if err != nil {
			return err
		}

		req, err := model.ParseSurveyRequest(body)
		if err != nil {
			return printSurveyResponse(cmd, model.Failure(err.Error()))
		}

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		service, cleanup, err := newSurveyService(settings)
		if err != nil {
			return err
		}
		defer cleanup()

		response, err := service.Run(cmd.Context(), req)
		if err != nil {
			message := err.Error()
			if message == "" {
				message = "Unknown error occurred"
			}
			return printSurveyResponse(cmd, model.Failure(message))
		}

		return printSurveyResponse(cmd, model.Success(response))
	},
}

// printSurveyResponse writes resp as indented JSON and turns a failed response into a command error
func printSurveyResponse(cmd *cobra.Command, resp model.SurveyResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if !resp.Success {
		return errors.New(resp.Error)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(surveyCmd)

	surveyCmd.Flags().StringP("type", "t", string(model.SurveyTypeInitial), "Survey type (initial_survey, additional_question)")
	surveyCmd.Flags().StringP("message", "m", "", "Survey message or question")
}
