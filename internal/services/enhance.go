package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"docusmith/internal/config"
)

// ErrAIUnavailable is returned when no API credential is configured
var ErrAIUnavailable = errors.New("AI enhancement is not configured")

const (
	// minContentLength is the shortest document worth analyzing
	minContentLength = 50
	// maxContentLength keeps prompts inside the model's context window
	maxContentLength = 8000
)

// EnhanceService submits document text to an OpenAI-compatible endpoint
// (Groq by default) and returns an improved version of the document
type EnhanceService struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewEnhanceService creates a new enhancement service. With no API key the
// service stays constructed but reports itself unavailable.
func NewEnhanceService(cfg config.AIConfig, logger *logrus.Logger) *EnhanceService {
	s := &EnhanceService{model: cfg.Model, logger: logger}

	if cfg.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set - AI enhancement disabled")
		return s
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	s.client = &client
	logger.Info("AI enhancement client initialized")
	return s
}

// Available reports whether a credential is configured
func (s *EnhanceService) Available() bool {
	return s.client != nil
}

// Enhance returns an improved version of the document text. Content shorter
// than the minimum is rejected before any network call.
func (s *EnhanceService) Enhance(ctx context.Context, content, docKind string) (string, error) {
	if !s.Available() {
		return "", ErrAIUnavailable
	}

	if len(strings.TrimSpace(content)) < minContentLength {
		return "", fmt.Errorf("document content is too short for meaningful analysis")
	}

	if len(content) > maxContentLength {
		content = content[:maxContentLength] + "\n...[Content truncated for analysis]"
	}

	prompt := fmt.Sprintf(`You are an expert document enhancement specialist. Please provide an enhanced, improved version of this %s.

ORIGINAL DOCUMENT:
%s

Please create an enhanced version that:
- Has better structure and organization
- Uses clearer, more professional language
- Improves formatting and readability
- Adds relevant headings and sections
- Enhances overall presentation

Provide your response in this format:

**ENHANCED DOCUMENT:**
[Write the complete improved version of the document here]

**IMPROVEMENTS MADE:**
- [List the key improvements, 3-5 main points]`, docKind, content)

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(2048),
		Temperature: openai.Float(0.7),
		TopP:        openai.Float(0.9),
	})
	if err != nil {
		return "", fmt.Errorf("AI analysis failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	s.logger.Debugf("AI enhancement completed (%d chars in, model %s)", len(content), s.model)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
