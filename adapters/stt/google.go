package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

// bcp47ByLanguage maps the demo's plain language names onto the BCP-47
// codes Google Cloud Speech expects
var bcp47ByLanguage = map[string]string{
	"english":   "en-IN",
	"hindi":     "hi-IN",
	"bengali":   "bn-IN",
	"tamil":     "ta-IN",
	"telugu":    "te-IN",
	"marathi":   "mr-IN",
	"gujarati":  "gu-IN",
	"kannada":   "kn-IN",
	"malayalam": "ml-IN",
	"punjabi":   "pa-IN",
}

// GoogleSpeechToText implements SpeechToText using Google Cloud
// Speech-to-Text, for deployments where Bhashini ASR is unavailable
type GoogleSpeechToText struct {
	logger *zap.Logger
}

var _ repository.SpeechToText = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates a new Google Cloud speech recognizer.
// Credentials come from the ambient GOOGLE_APPLICATION_CREDENTIALS setup.
func NewGoogleSpeechToText(logger *zap.Logger) *GoogleSpeechToText {
	return &GoogleSpeechToText{logger: logger}
}

// TranscribeAudio implements repository.SpeechToText
func (g *GoogleSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repository.AudioConfig) (string, error) {
	if len(audioData) == 0 {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "no audio data received", nil)
	}

	languageCode, err := languageCodeFor(config.Language)
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "unsupported language", err)
	}

	encoding, err := audioEncodingFor(config.Encoding)
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "unsupported audio encoding", err)
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to create speech client", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: int32(config.SampleRate),
			LanguageCode:    languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "recognition request failed", err)
	}

	var transcript string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript += result.Alternatives[0].Transcript
		}
	}

	if transcript == "" {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "no speech detected in audio", nil)
	}

	g.logger.Info("Transcription completed",
		zap.String("languageCode", languageCode),
		zap.Int("audioSize", len(audioData)))

	return transcript, nil
}

func languageCodeFor(language string) (string, error) {
	if code, ok := bcp47ByLanguage[strings.ToLower(language)]; ok {
		return code, nil
	}
	return "", fmt.Errorf("no BCP-47 mapping for language: %s", language)
}

// audioEncodingFor converts an encoding name to the Google Speech API enum
func audioEncodingFor(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch encoding {
	case "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
