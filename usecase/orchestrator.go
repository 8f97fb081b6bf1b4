package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

// Orchestrator turns one user utterance into one localized answer by
// chaining the remote language and completion services. Every query is
// pivoted through English: translated in before the completion step,
// translated back out after it. When the effective language already is
// English both translation calls are skipped entirely.
//
// Each step is a single best-effort remote call; the first failure
// aborts the remaining steps and its ServiceError propagates to the
// caller untouched. The orchestrator never retries and never falls back
// to partial output.
type Orchestrator struct {
	detector   repository.LanguageDetector
	translator repository.Translator
	stt        repository.SpeechToText
	tts        repository.TextToSpeech
	assistant  repository.LegalAssistant
	logger     *zap.Logger
}

// NewOrchestrator creates a new query orchestrator
func NewOrchestrator(
	detector repository.LanguageDetector,
	translator repository.Translator,
	stt repository.SpeechToText,
	tts repository.TextToSpeech,
	assistant repository.LegalAssistant,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		detector:   detector,
		translator: translator,
		stt:        stt,
		tts:        tts,
		assistant:  assistant,
		logger:     logger,
	}
}

// HandleTextInput processes a typed query. When language is empty the
// remote detector decides; an explicit selection always wins and skips
// detection.
func (o *Orchestrator) HandleTextInput(ctx context.Context, text, language string) (*domain.TextTurn, error) {
	effectiveLanguage := language
	if effectiveLanguage == "" {
		detected, err := o.detector.DetectLanguage(ctx, text)
		if err != nil {
			return nil, err
		}
		effectiveLanguage = detected
	}

	localized, err := o.answerThroughPivot(ctx, text, effectiveLanguage)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Text query completed",
		zap.String("language", effectiveLanguage))

	return &domain.TextTurn{
		OriginalText:     text,
		ResponseText:     localized,
		DetectedLanguage: effectiveLanguage,
	}, nil
}

// HandleVoiceInput processes a spoken query. The source language is
// mandatory because speech recognition needs a language hint; the final
// step synthesizes the localized answer back into speech.
func (o *Orchestrator) HandleVoiceInput(ctx context.Context, audio []byte, sourceLanguage string) (*domain.VoiceTurn, error) {
	originalText, err := o.stt.TranscribeAudio(ctx, audio, repository.DefaultAudioConfig(sourceLanguage))
	if err != nil {
		return nil, err
	}

	localized, err := o.answerThroughPivot(ctx, originalText, sourceLanguage)
	if err != nil {
		return nil, err
	}

	responseAudio, err := o.tts.SynthesizeSpeech(ctx, localized, repository.DefaultVoiceConfig(sourceLanguage))
	if err != nil {
		return nil, err
	}

	o.logger.Info("Voice query completed",
		zap.String("language", sourceLanguage),
		zap.Int("audioSize", len(audio)))

	return &domain.VoiceTurn{
		OriginalText:  originalText,
		ResponseText:  localized,
		ResponseAudio: responseAudio,
	}, nil
}

// answerThroughPivot runs the shared middle of both pipelines:
// translate to English, answer, translate back. English queries pass
// straight through with zero translation calls.
func (o *Orchestrator) answerThroughPivot(ctx context.Context, text, language string) (string, error) {
	englishText := text
	if !domain.IsPivotLanguage(language) {
		translated, err := o.translator.Translate(ctx, text, language, domain.LanguagePivot)
		if err != nil {
			return "", err
		}
		englishText = translated
	}

	englishAnswer, err := o.assistant.AnswerLegalQuery(ctx, englishText)
	if err != nil {
		return "", err
	}

	if domain.IsPivotLanguage(language) {
		return englishAnswer, nil
	}

	return o.translator.Translate(ctx, englishAnswer, domain.LanguagePivot, language)
}
