package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/model"
	"github.com/go-chi/chi/v5/middleware"
)

// Surveyor runs a validated survey request and returns the generated text
type Surveyor interface {
	Run(ctx context.Context, req model.SurveyRequest) (string, error)
}

// surveyHandler serves POST /api/riceSurvey
func (s *Server) surveyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With("request_id", middleware.GetReqID(r.Context()))
		log.Info("Rice survey request received")

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
		if err != nil {
			log.Warnf("Failed to read request body: %v", err)
			writeFailure(w, http.StatusBadRequest, &model.ValidationError{Code: model.InvalidBody})
			return
		}

		req, err := model.ParseSurveyRequest(body)
		if err != nil {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				log.Warnw("Rejected survey request", "reason", validationErr.Error())
				writeFailure(w, http.StatusBadRequest, validationErr)
				return
			}
			writeFailure(w, http.StatusInternalServerError, err)
			return
		}

		// the generation call runs to completion even if the client goes away
		response, err := s.surveyor.Run(context.WithoutCancel(r.Context()), req)
		if err != nil {
			log.Errorf("Error processing survey: %v", err)
			writeFailure(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, model.Success(response))
	}
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, model.Failure("Method not allowed"))
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, model.Failure("Not found"))
}
