package llm

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultTemperature    = 0.3
	defaultMaxTokens      = 1024
	defaultTimeoutSeconds = 30
)

// systemPrompt establishes the assistant's persona. The query arrives
// already pivoted to English and the answer goes back through the
// orchestrator's translation step, so the persona only needs to keep
// the assistant factual and within the legal-assistance remit.
const systemPrompt = `You are VaaNi, an AI legal assistant for the Government of India.
Your task is to help citizens navigate legal processes and file applications.
Provide clear, accurate information about legal procedures in simple language.
If you don't know the answer, say so rather than providing incorrect information.`

// GeminiConfig holds configuration for the Gemini legal assistant.
// Required fields:
// - APIKey: Google AI API key
// Optional fields with defaults:
// - Model: model identifier (default: "gemini-2.0-flash")
// - Temperature: sampling temperature between 0 and 1 (default: 0.3)
// - MaxOutputTokens: response length cap (default: 1024)
// - TimeoutSeconds: per-request timeout (default: 30)
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     *float32
	MaxOutputTokens int
	TimeoutSeconds  int
}

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}

	if config.Temperature != nil && (*config.Temperature < 0 || *config.Temperature > 1) {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", *config.Temperature)
	}

	if config.MaxOutputTokens < 0 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", config.MaxOutputTokens)
	}

	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}

	return nil
}

// NewGeminiConfigFromEnv creates a GeminiConfig from environment variables
func NewGeminiConfigFromEnv() GeminiConfig {
	config := GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}

	if tempStr := os.Getenv("GEMINI_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 32); err == nil {
			config.Temperature = genai.Ptr(float32(temp))
		}
	}

	if maxStr := os.Getenv("GEMINI_MAX_OUTPUT_TOKENS"); maxStr != "" {
		if maxTokens, err := strconv.Atoi(maxStr); err == nil && maxTokens > 0 {
			config.MaxOutputTokens = maxTokens
		}
	}

	if timeoutStr := os.Getenv("GEMINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			config.TimeoutSeconds = timeout
		}
	}

	return config
}

// GeminiAssistant implements the LegalAssistant interface using Google's
// Gemini API. Each query is a single chat-style request with the fixed
// system persona and the English query as the sole user turn. Requests
// are never retried; a failure is reported verbatim to the orchestrator.
type GeminiAssistant struct {
	client          *genai.Client
	logger          *zap.Logger
	model           string
	temperature     float32
	maxOutputTokens int
	timeoutSeconds  int
}

var _ repository.LegalAssistant = (*GeminiAssistant)(nil)

// NewGeminiAssistant creates a new Gemini legal assistant
func NewGeminiAssistant(config GeminiConfig, logger *zap.Logger) (*GeminiAssistant, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	temperature := float32(defaultTemperature)
	if config.Temperature != nil {
		temperature = *config.Temperature
	}

	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxTokens
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &GeminiAssistant{
		client:          client,
		logger:          logger,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		timeoutSeconds:  timeoutSeconds,
	}, nil
}

// AnswerLegalQuery implements repository.LegalAssistant
func (g *GeminiAssistant) AnswerLegalQuery(ctx context.Context, englishText string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(englishText, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   int32(g.maxOutputTokens),
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.logger.Error("Failed to generate legal response", zap.Error(err))
		return "", domain.NewServiceError(domain.ErrorKindCompletion, "completion request failed", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		g.logger.Warn("Completion returned no candidates")
		return "", domain.NewServiceError(domain.ErrorKindCompletion, "empty choice set in response", nil)
	}

	var responseText string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText += part.Text
		}
	}

	if responseText == "" {
		g.logger.Warn("Completion returned empty text")
		return "", domain.NewServiceError(domain.ErrorKindCompletion, "empty response text", nil)
	}

	g.logger.Info("Legal query answered",
		zap.String("query_preview", preview(englishText)),
		zap.String("response_preview", preview(responseText)))

	return responseText, nil
}

func preview(s string) string {
	const limit = 50
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
