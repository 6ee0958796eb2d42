package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func withBuffer(t *testing.T, lvl, format string) *bytes.Buffer {
	t.Helper()
	oldLogger, oldSugar, oldLevel := logger, sugar, level.Level()
	t.Cleanup(func() {
		logger, sugar = oldLogger, oldSugar
		level.SetLevel(oldLevel)
	})

	buf := &bytes.Buffer{}
	build(lvl, format, buf)
	return buf
}

func TestJSONOutput(t *testing.T) {
	buf := withBuffer(t, "debug", FormatJSON)

	Infof("survey type: %s", "initial_survey")
	Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "survey type: initial_survey" {
		t.Errorf("Expected msg 'survey type: initial_survey', got %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("Expected level INFO, got %v", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := withBuffer(t, "warn", FormatJSON)

	Info("hidden")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected warn message to be written")
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	buf := withBuffer(t, "verbose", FormatJSON)

	Debug("debug line")
	Info("info line")

	if strings.Contains(buf.String(), "debug line") {
		t.Error("Expected debug message to be filtered with the default info level")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Error("Expected info message to be written")
	}
}

func TestWithAddsFields(t *testing.T) {
	buf := withBuffer(t, "info", FormatJSON)

	With("survey_id", "abc").Info("done")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["survey_id"] != "abc" {
		t.Errorf("Expected survey_id field 'abc', got %v", entry["survey_id"])
	}
}

func TestSetLevel(t *testing.T) {
	buf := withBuffer(t, "info", FormatJSON)

	Debug("before")
	SetLevel("debug")
	Debug("after")

	if strings.Contains(buf.String(), "before") {
		t.Error("Expected debug message to be filtered before SetLevel")
	}
	if !strings.Contains(buf.String(), "after") {
		t.Error("Expected debug message to be written after SetLevel")
	}
}
