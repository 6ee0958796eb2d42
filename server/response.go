package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/model"
)

// unknownErrorMessage is reported when a failure carries no message of its own
const unknownErrorMessage = "Unknown error occurred"

// fallbackErrorResponse is written if a response cannot be marshaled
var fallbackErrorResponse []byte

func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(model.Failure("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("failed to marshal fallback error response: %v", err))
	}
}

// writeJSON marshals before touching headers so an encoding failure can still become a 500
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("Failed to marshal JSON response: %v", err)
		data = fallbackErrorResponse
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Warnf("Failed to write JSON response: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, err error) {
	message := unknownErrorMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	writeJSON(w, status, model.Failure(message))
}
