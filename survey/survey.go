package survey

import (
	"context"
	"errors"

	"github.com/KenichiNogami/ricePriceSurvey/common"
	"github.com/KenichiNogami/ricePriceSurvey/llm"
	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/model"
	"github.com/KenichiNogami/ricePriceSurvey/prompt"
	"github.com/google/uuid"
)

// messagePreviewLength is how much of the user's message ends up in the logs
const messagePreviewLength = 50

// Service runs a survey request through prompt building, augmentation and generation.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	llm          llm.LLM
	augmenter    *prompt.Augmenter
	systemPrompt string
	modelName    string
}

// Option configures a Service
type Option func(*Service)

// WithAugmenter replaces the default prompt augmenter
func WithAugmenter(a *prompt.Augmenter) Option {
	return func(s *Service) {
		s.augmenter = a
	}
}

// WithSystemPrompt replaces the default system prompt
func WithSystemPrompt(systemPrompt string) Option {
	return func(s *Service) {
		s.systemPrompt = systemPrompt
	}
}

// WithModelName sets the model name reported in the logs
func WithModelName(modelName string) Option {
	return func(s *Service) {
		s.modelName = modelName
	}
}

// NewService creates a survey service backed by the given LLM client
func NewService(client llm.LLM, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}

	s := &Service{
		llm:          client,
		augmenter:    prompt.NewAugmenter(),
		systemPrompt: prompt.GetSystemPrompt(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Run builds the prompt for req, sends it to the model and returns the generated text.
// req must already be validated by model.ParseSurveyRequest. Errors from the model
// are returned as they are.
func (s *Service) Run(ctx context.Context, req model.SurveyRequest) (string, error) {
	log := logger.With("survey_id", uuid.NewString())

	message := req.Message
	if req.SurveyType == model.SurveyTypeInitial && req.IsBlank() {
		log.Info("Using default survey message")
		message = prompt.DefaultSurveyMessage
	}

	log.Infow("Processing survey",
		"survey_type", req.SurveyType,
		"message", common.Truncate(message, messagePreviewLength),
	)

	userPrompt := prompt.GetSurveyPrompt(req.SurveyType, message)
	augmented := s.augmenter.Augment(userPrompt, req.SurveyType)

	log.Infow("Calling generation API", "model", s.modelName)

	resp := s.llm.Prompt(ctx, llm.Request{
		SystemPrompt: s.systemPrompt,
		UserPrompt:   augmented,
	})
	if resp.Error != nil {
		log.Errorw("Generation API call failed", "error", resp.Error)
		return "", resp.Error
	}

	log.Infow("Survey completed", "response_length", len(resp.Content))
	return resp.Content, nil
}
