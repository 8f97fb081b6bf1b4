package repository

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// TranscribeAudio converts audio data to text. A single best-effort
	// attempt; failures surface as domain.ServiceError with the
	// TranscriptionError kind.
	TranscribeAudio(ctx context.Context, audioData []byte, config AudioConfig) (string, error)
}

// TextToSpeech abstracts speech synthesis services
type TextToSpeech interface {
	// SynthesizeSpeech converts text to audio and returns a reference
	// (URL or handle) to the synthesized speech
	SynthesizeSpeech(ctx context.Context, text string, config VoiceConfig) (string, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}

// VoiceConfig represents voice configuration for TTS
type VoiceConfig struct {
	Language string `json:"language"`
	Gender   string `json:"gender"`
}

const (
	defaultSampleRate = 16000
	defaultEncoding   = "WEBM_OPUS"
	defaultGender     = "female"
)

// DefaultAudioConfig returns the recognition settings the demo recorder
// produces, with the caller's language hint applied
func DefaultAudioConfig(language string) AudioConfig {
	return AudioConfig{
		SampleRate: defaultSampleRate,
		Encoding:   defaultEncoding,
		Language:   language,
	}
}

// DefaultVoiceConfig returns the synthesis settings for a language,
// using the female voice the original demo ships with
func DefaultVoiceConfig(language string) VoiceConfig {
	return VoiceConfig{
		Language: language,
		Gender:   defaultGender,
	}
}
