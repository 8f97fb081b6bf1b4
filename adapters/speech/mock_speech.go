package speech

import (
	"context"
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/repository"
)

// MockLanguageService is a placeholder implementation of the four
// language operations for running the server without Bhashini
// credentials. Translations are identity-tagged so the pivot path is
// visible in the demo transcript.
type MockLanguageService struct {
	logger *zap.Logger
}

var (
	_ repository.LanguageDetector = (*MockLanguageService)(nil)
	_ repository.Translator       = (*MockLanguageService)(nil)
	_ repository.SpeechToText     = (*MockLanguageService)(nil)
	_ repository.TextToSpeech     = (*MockLanguageService)(nil)
)

// NewMockLanguageService creates a new mock language service
func NewMockLanguageService(logger *zap.Logger) *MockLanguageService {
	return &MockLanguageService{logger: logger}
}

// DetectLanguage implements repository.LanguageDetector
func (m *MockLanguageService) DetectLanguage(ctx context.Context, text string) (string, error) {
	language := "english"
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			language = "hindi"
			break
		}
	}

	m.logger.Info("Mock language detection", zap.String("language", language))
	return language, nil
}

// Translate implements repository.Translator
func (m *MockLanguageService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.logger.Info("Mock translation",
		zap.String("sourceLang", sourceLang),
		zap.String("targetLang", targetLang))
	return fmt.Sprintf("[%s→%s] %s", sourceLang, targetLang, text), nil
}

// TranscribeAudio implements repository.SpeechToText
func (m *MockLanguageService) TranscribeAudio(ctx context.Context, audioData []byte, config repository.AudioConfig) (string, error) {
	m.logger.Info("Mock transcription",
		zap.Int("audioSize", len(audioData)),
		zap.String("language", config.Language))

	switch {
	case len(audioData) > 10000:
		return "I want to file a complaint about a defective product I purchased last month.", nil
	case len(audioData) > 1000:
		return "How do I file an RTI application?", nil
	default:
		return "I need legal help.", nil
	}
}

// SynthesizeSpeech implements repository.TextToSpeech
func (m *MockLanguageService) SynthesizeSpeech(ctx context.Context, text string, config repository.VoiceConfig) (string, error) {
	m.logger.Info("Mock synthesis",
		zap.String("language", config.Language),
		zap.String("gender", config.Gender))
	return fmt.Sprintf("mock://audio/%s/%d", config.Language, len(text)), nil
}
