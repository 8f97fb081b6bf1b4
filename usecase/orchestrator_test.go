package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

// fakeServices records call counts for every remote operation and can
// be told to fail any one of them
type fakeServices struct {
	detectCalls     int
	translateCalls  int
	transcribeCalls int
	synthesizeCalls int
	completionCalls int

	detectResult   string
	transcript     string
	answer         string
	audioRef       string
	translations   map[string]string
	failDetect     bool
	failTranslate  bool
	failTranscribe bool
	failSynthesize bool
	failCompletion bool
}

func newFakeServices() *fakeServices {
	return &fakeServices{
		detectResult: "english",
		transcript:   "I need legal help",
		answer:       "Here is guidance",
		audioRef:     "mock://audio/1",
		translations: map[string]string{},
	}
}

func (f *fakeServices) DetectLanguage(ctx context.Context, text string) (string, error) {
	f.detectCalls++
	if f.failDetect {
		return "", domain.NewServiceError(domain.ErrorKindDetection, "detector down", nil)
	}
	return f.detectResult, nil
}

func (f *fakeServices) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.translateCalls++
	if f.failTranslate {
		return "", domain.NewServiceError(domain.ErrorKindTranslation, "translator down", nil)
	}
	if out, ok := f.translations[text]; ok {
		return out, nil
	}
	return text, nil
}

func (f *fakeServices) TranscribeAudio(ctx context.Context, audioData []byte, config repository.AudioConfig) (string, error) {
	f.transcribeCalls++
	if f.failTranscribe {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "recognizer down", nil)
	}
	return f.transcript, nil
}

func (f *fakeServices) SynthesizeSpeech(ctx context.Context, text string, config repository.VoiceConfig) (string, error) {
	f.synthesizeCalls++
	if f.failSynthesize {
		return "", domain.NewServiceError(domain.ErrorKindSynthesis, "synthesizer down", nil)
	}
	return f.audioRef, nil
}

func (f *fakeServices) AnswerLegalQuery(ctx context.Context, englishText string) (string, error) {
	f.completionCalls++
	if f.failCompletion {
		return "", domain.NewServiceError(domain.ErrorKindCompletion, "completion down", nil)
	}
	return f.answer, nil
}

func newTestOrchestrator(t *testing.T, f *fakeServices) *Orchestrator {
	t.Helper()
	return NewOrchestrator(f, f, f, f, f, zaptest.NewLogger(t))
}

func TestHandleTextInput_English(t *testing.T) {
	f := newFakeServices()
	f.answer = "Please provide more details"
	o := newTestOrchestrator(t, f)

	turn, err := o.HandleTextInput(context.Background(), "I need to file a small claims case", "english")
	if err != nil {
		t.Fatalf("HandleTextInput failed: %v", err)
	}

	if turn.ResponseText != "Please provide more details" {
		t.Errorf("Unexpected response: %s", turn.ResponseText)
	}
	if turn.DetectedLanguage != "english" {
		t.Errorf("Expected detected language 'english', got '%s'", turn.DetectedLanguage)
	}
	if f.translateCalls != 0 {
		t.Errorf("Expected 0 translate calls for English, got %d", f.translateCalls)
	}
	if f.detectCalls != 0 {
		t.Errorf("Expected 0 detect calls with explicit language, got %d", f.detectCalls)
	}
	if f.completionCalls != 1 {
		t.Errorf("Expected 1 completion call, got %d", f.completionCalls)
	}
}

func TestHandleTextInput_NonEnglishPivot(t *testing.T) {
	f := newFakeServices()
	f.translations["मुझे मदद चाहिए"] = "I need help"
	f.translations["Here is guidance"] = "यहाँ मार्गदर्शन है"
	o := newTestOrchestrator(t, f)

	turn, err := o.HandleTextInput(context.Background(), "मुझे मदद चाहिए", "hindi")
	if err != nil {
		t.Fatalf("HandleTextInput failed: %v", err)
	}

	if turn.ResponseText != "यहाँ मार्गदर्शन है" {
		t.Errorf("Unexpected localized response: %s", turn.ResponseText)
	}
	if turn.OriginalText != "मुझे मदद चाहिए" {
		t.Errorf("Unexpected original text: %s", turn.OriginalText)
	}
	if f.translateCalls != 2 {
		t.Errorf("Expected exactly 2 translate calls, got %d", f.translateCalls)
	}
	if f.completionCalls != 1 {
		t.Errorf("Expected 1 completion call, got %d", f.completionCalls)
	}
}

func TestHandleTextInput_CaseInsensitivePivot(t *testing.T) {
	f := newFakeServices()
	o := newTestOrchestrator(t, f)

	if _, err := o.HandleTextInput(context.Background(), "hello", "English"); err != nil {
		t.Fatalf("HandleTextInput failed: %v", err)
	}
	if f.translateCalls != 0 {
		t.Errorf("Expected 0 translate calls for 'English', got %d", f.translateCalls)
	}
}

func TestHandleTextInput_DetectionWhenLanguageOmitted(t *testing.T) {
	f := newFakeServices()
	f.detectResult = "hindi"
	o := newTestOrchestrator(t, f)

	turn, err := o.HandleTextInput(context.Background(), "मुझे मदद चाहिए", "")
	if err != nil {
		t.Fatalf("HandleTextInput failed: %v", err)
	}

	if f.detectCalls != 1 {
		t.Errorf("Expected 1 detect call, got %d", f.detectCalls)
	}
	if turn.DetectedLanguage != "hindi" {
		t.Errorf("Expected detected language 'hindi', got '%s'", turn.DetectedLanguage)
	}
	if f.translateCalls != 2 {
		t.Errorf("Expected 2 translate calls after detecting hindi, got %d", f.translateCalls)
	}
}

func TestHandleTextInput_DetectionFailure(t *testing.T) {
	f := newFakeServices()
	f.failDetect = true
	o := newTestOrchestrator(t, f)

	_, err := o.HandleTextInput(context.Background(), "text", "")
	if err == nil {
		t.Fatal("Expected error when detection fails")
	}

	kind, _ := domain.KindOf(err)
	if kind != domain.ErrorKindDetection {
		t.Errorf("Expected DetectionError, got %s", kind)
	}
	if f.translateCalls != 0 || f.completionCalls != 0 {
		t.Errorf("Expected no further calls after detection failure, got translate=%d completion=%d",
			f.translateCalls, f.completionCalls)
	}
}

func TestHandleTextInput_TranslationFailureShortCircuits(t *testing.T) {
	f := newFakeServices()
	f.failTranslate = true
	o := newTestOrchestrator(t, f)

	_, err := o.HandleTextInput(context.Background(), "মাঝে সাহায্য", "bengali")
	if err == nil {
		t.Fatal("Expected error when translation fails")
	}

	kind, _ := domain.KindOf(err)
	if kind != domain.ErrorKindTranslation {
		t.Errorf("Expected TranslationError, got %s", kind)
	}
	if f.completionCalls != 0 {
		t.Errorf("Expected no completion call after translation failure, got %d", f.completionCalls)
	}
}

func TestHandleTextInput_CompletionFailureStopsBackTranslation(t *testing.T) {
	f := newFakeServices()
	f.failCompletion = true
	o := newTestOrchestrator(t, f)

	_, err := o.HandleTextInput(context.Background(), "मुझे मदद चाहिए", "hindi")
	if err == nil {
		t.Fatal("Expected error when completion fails")
	}

	kind, _ := domain.KindOf(err)
	if kind != domain.ErrorKindCompletion {
		t.Errorf("Expected CompletionError, got %s", kind)
	}
	// The forward translation succeeded, but no back-translation may follow.
	if f.translateCalls != 1 {
		t.Errorf("Expected exactly 1 translate call, got %d", f.translateCalls)
	}
}

func TestHandleVoiceInput_HappyPath(t *testing.T) {
	f := newFakeServices()
	f.transcript = "मुझे मदद चाहिए"
	f.translations["मुझे मदद चाहिए"] = "I need help"
	f.translations["Here is guidance"] = "यहाँ मार्गदर्शन है"
	o := newTestOrchestrator(t, f)

	turn, err := o.HandleVoiceInput(context.Background(), []byte{0x01, 0x02}, "hindi")
	if err != nil {
		t.Fatalf("HandleVoiceInput failed: %v", err)
	}

	if f.transcribeCalls != 1 {
		t.Errorf("Expected exactly 1 transcribe call, got %d", f.transcribeCalls)
	}
	if f.synthesizeCalls != 1 {
		t.Errorf("Expected exactly 1 synthesize call, got %d", f.synthesizeCalls)
	}
	if turn.OriginalText != "मुझे मदद चाहिए" {
		t.Errorf("Unexpected transcript: %s", turn.OriginalText)
	}
	if turn.ResponseText != "यहाँ मार्गदर्शन है" {
		t.Errorf("Unexpected localized response: %s", turn.ResponseText)
	}
	if turn.ResponseAudio != "mock://audio/1" {
		t.Errorf("Unexpected audio reference: %s", turn.ResponseAudio)
	}
}

func TestHandleVoiceInput_EnglishSkipsTranslation(t *testing.T) {
	f := newFakeServices()
	o := newTestOrchestrator(t, f)

	if _, err := o.HandleVoiceInput(context.Background(), []byte{0x01}, "english"); err != nil {
		t.Fatalf("HandleVoiceInput failed: %v", err)
	}

	if f.translateCalls != 0 {
		t.Errorf("Expected 0 translate calls for English voice, got %d", f.translateCalls)
	}
	if f.transcribeCalls != 1 || f.synthesizeCalls != 1 {
		t.Errorf("Expected 1 transcribe and 1 synthesize call, got %d and %d",
			f.transcribeCalls, f.synthesizeCalls)
	}
}

func TestHandleVoiceInput_TranscriptionFailure(t *testing.T) {
	f := newFakeServices()
	f.failTranscribe = true
	o := newTestOrchestrator(t, f)

	_, err := o.HandleVoiceInput(context.Background(), []byte{0x01}, "hindi")
	if err == nil {
		t.Fatal("Expected error when transcription fails")
	}

	kind, _ := domain.KindOf(err)
	if kind != domain.ErrorKindTranscription {
		t.Errorf("Expected TranscriptionError, got %s", kind)
	}
	if f.translateCalls != 0 || f.completionCalls != 0 || f.synthesizeCalls != 0 {
		t.Error("Expected no further calls after transcription failure")
	}
}

func TestHandleVoiceInput_SynthesisFailure(t *testing.T) {
	f := newFakeServices()
	f.failSynthesize = true
	o := newTestOrchestrator(t, f)

	_, err := o.HandleVoiceInput(context.Background(), []byte{0x01}, "english")
	if err == nil {
		t.Fatal("Expected error when synthesis fails")
	}

	kind, _ := domain.KindOf(err)
	if kind != domain.ErrorKindSynthesis {
		t.Errorf("Expected SynthesisError, got %s", kind)
	}
	if f.completionCalls != 1 {
		t.Errorf("Expected completion to have run before synthesis failed, got %d calls", f.completionCalls)
	}
}
