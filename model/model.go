package model

import (
	"bytes"
	"encoding/json"

	"github.com/KenichiNogami/ricePriceSurvey/common"
)

// SurveyType selects the prompt template for a request
type SurveyType string

const (
	SurveyTypeInitial    SurveyType = "initial_survey"
	SurveyTypeAdditional SurveyType = "additional_question"
)

// Valid reports whether t is one of the supported survey types
func (t SurveyType) Valid() bool {
	return t == SurveyTypeInitial || t == SurveyTypeAdditional
}

// SurveyRequest is a validated survey request
type SurveyRequest struct {
	Message    string     `json:"message"`
	SurveyType SurveyType `json:"survey_type"`
}

// SurveyResponse is the JSON body returned for every request
type SurveyResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

func Success(response string) SurveyResponse {
	return SurveyResponse{Success: true, Response: response}
}

func Failure(message string) SurveyResponse {
	return SurveyResponse{Success: false, Error: message}
}

// ValidationCode enumerates the ways a request body can be rejected
type ValidationCode int

const (
	InvalidBody ValidationCode = iota + 1
	MissingQuestion
)

// ValidationError is returned by ParseSurveyRequest for rejected bodies
type ValidationError struct {
	Code ValidationCode
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case MissingQuestion:
		return "A valid question is required for additional questions"
	default:
		return "Request body is required"
	}
}

// ParseSurveyRequest decodes and validates a request body.
// Keys are matched exactly and both fields must be JSON strings.
// Blank initial surveys are accepted as-is; survey.Service fills in the default message.
func ParseSurveyRequest(body []byte) (SurveyRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return SurveyRequest{}, &ValidationError{Code: InvalidBody}
	}

	message, ok := stringField(fields, "message")
	if !ok {
		return SurveyRequest{}, &ValidationError{Code: InvalidBody}
	}
	rawType, ok := stringField(fields, "survey_type")
	if !ok {
		return SurveyRequest{}, &ValidationError{Code: InvalidBody}
	}

	surveyType := SurveyType(rawType)
	if !surveyType.Valid() {
		return SurveyRequest{}, &ValidationError{Code: InvalidBody}
	}

	req := SurveyRequest{
		Message:    message,
		SurveyType: surveyType,
	}

	if req.SurveyType == SurveyTypeAdditional && req.IsBlank() {
		return SurveyRequest{}, &ValidationError{Code: MissingQuestion}
	}

	return req, nil
}

// stringField returns fields[key] if it is present and holds a JSON string
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

// IsBlank reports whether the message carries no text
func (r SurveyRequest) IsBlank() bool {
	return common.IsBlank(r.Message)
}
