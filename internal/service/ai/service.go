// Package ai talks to the Gemini generative-language API and assembles the
// prompts sent to it from the current message and any uploaded file context.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	// ErrNoResponse means the API answered without any candidates.
	ErrNoResponse = errors.New("no response from Gemini API")
	// ErrInvalidResponse means a candidate arrived but carried no text.
	ErrInvalidResponse = errors.New("invalid response format from Gemini API")
)

const (
	generateTimeout = 30 * time.Second

	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 2048
)

var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// Service is a thin synchronous client for one Gemini model. No retries:
// a failed call surfaces immediately to the handler.
type Service struct {
	client *genai.Client
	model  string
	log    *zap.SugaredLogger
}

// NewService builds the Gemini client for the configured model.
func NewService(ctx context.Context, apiKey, model string, log *zap.SugaredLogger) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Service{client: client, model: model, log: log}, nil
}

// Generate sends the composed prompt with the fixed sampling configuration
// and returns the first candidate's text.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopK:            genai.Ptr[float32](topK),
		TopP:            genai.Ptr[float32](topP),
		MaxOutputTokens: maxOutputTokens,
		SafetySettings:  safetySettings,
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrInvalidResponse
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", ErrInvalidResponse
	}
	s.log.Debugw("gemini reply", "model", s.model, "chars", len(text))
	return text, nil
}
