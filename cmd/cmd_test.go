package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/KenichiNogami/ricePriceSurvey/model"
	"github.com/KenichiNogami/ricePriceSurvey/version"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if version.Version == "" {
		t.Fatal("Version should not be empty")
	}
	if want := "Rice Price Survey v" + version.Version + "\n"; out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestSurveyCommand_ValidationFailure(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		expectErr string
	}{
		{
			name:      "blank additional question",
			args:      []string{"survey", "--type", "additional_question", "--message", " "},
			expectErr: "A valid question is required for additional questions",
		},
		{
			name:      "unknown survey type",
			args:      []string{"survey", "--type", "weekly_report", "--message", "hello"},
			expectErr: "Request body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if err == nil || err.Error() != tt.expectErr {
				t.Fatalf("Expected error %q, got %v", tt.expectErr, err)
			}

			var resp model.SurveyResponse
			if err := json.Unmarshal([]byte(out), &resp); err != nil {
				t.Fatalf("Expected JSON output, got %q: %v", out, err)
			}
			if resp.Success || resp.Error != tt.expectErr {
				t.Errorf("Expected failure response %q, got %+v", tt.expectErr, resp)
			}
		})
	}
}
