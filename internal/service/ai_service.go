package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrAIUnavailable marks transport-level failures of the generative AI
// call, as opposed to a reply that arrived but could not be parsed.
var ErrAIUnavailable = errors.New("AI service unavailable")

// AIService wraps the Gemini client behind a single Classify call. The
// model identifier and credential are fixed at construction.
type AIService struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

func NewAIService(ctx context.Context, apiKey, modelName string, timeoutSec int) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	temp := float32(0.2)
	model.Temperature = &temp

	return &AIService{
		client:  client,
		model:   model,
		timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (s *AIService) Close() error {
	return s.client.Close()
}

// Classify sends the prompt and returns the model's raw text reply. The
// call is bounded by the configured timeout; nothing is retried here.
func (s *AIService) Classify(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response contained no candidates", ErrAIUnavailable)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: unexpected response part type %T", ErrAIUnavailable, resp.Candidates[0].Content.Parts[0])
	}

	log.Printf("--- Received response from AI --- (Size: %d bytes)", len(text))
	return string(text), nil
}
