package bhashini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:     "test-api-key",
		APIBaseURL: server.URL,
		UserID:     "test-user",
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client, server
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{}); err == nil {
		t.Error("Expected error when API key is missing")
	}

	if err := ValidateConfig(Config{APIKey: "key", TimeoutSeconds: -1}); err == nil {
		t.Error("Expected error for negative timeout")
	}

	if err := ValidateConfig(Config{APIKey: "key"}); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	os.Setenv("BHASHINI_API_KEY", "env-key")
	os.Setenv("BHASHINI_USER_ID", "env-user")
	os.Setenv("BHASHINI_TIMEOUT_SECONDS", "5")
	defer func() {
		os.Unsetenv("BHASHINI_API_KEY")
		os.Unsetenv("BHASHINI_USER_ID")
		os.Unsetenv("BHASHINI_TIMEOUT_SECONDS")
	}()

	config := NewConfigFromEnv()
	if config.APIKey != "env-key" {
		t.Errorf("Expected API key 'env-key', got '%s'", config.APIKey)
	}
	if config.UserID != "env-user" {
		t.Errorf("Expected user ID 'env-user', got '%s'", config.UserID)
	}
	if config.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", config.TimeoutSeconds)
	}
}

func TestDetectLanguage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/language-detection" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-api-key" {
			t.Errorf("Unexpected Authorization header: %s", got)
		}
		if got := r.Header.Get("User-ID"); got != "test-user" {
			t.Errorf("Unexpected User-ID header: %s", got)
		}

		var req detectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Text != "मुझे मदद चाहिए" {
			t.Errorf("Unexpected text in request: %s", req.Text)
		}

		json.NewEncoder(w).Encode(detectionResponse{Language: "hindi"})
	}))

	language, err := client.DetectLanguage(context.Background(), "मुझे मदद चाहिए")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if language != "hindi" {
		t.Errorf("Expected language 'hindi', got '%s'", language)
	}
}

func TestDetectLanguage_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))

	_, err := client.DetectLanguage(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected error for non-2xx response")
	}

	kind, ok := domain.KindOf(err)
	if !ok || kind != domain.ErrorKindDetection {
		t.Errorf("Expected DetectionError kind, got %v (ok=%v)", kind, ok)
	}
}

func TestTranslate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translation" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req translationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Input) != 1 || req.Input[0].Source != "I need help" {
			t.Errorf("Unexpected input segment: %+v", req.Input)
		}
		if req.Config.Language.SourceLanguage != "english" || req.Config.Language.TargetLanguage != "hindi" {
			t.Errorf("Unexpected language pair: %+v", req.Config.Language)
		}

		var resp translationResponse
		resp.Output = []struct {
			Target string `json:"target"`
		}{{Target: "मुझे मदद चाहिए"}}
		json.NewEncoder(w).Encode(resp)
	}))

	translated, err := client.Translate(context.Background(), "I need help", "english", "hindi")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if translated != "मुझे मदद चाहिए" {
		t.Errorf("Unexpected translation: %s", translated)
	}
}

func TestTranslate_EmptyOutput(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(translationResponse{})
	}))

	_, err := client.Translate(context.Background(), "text", "hindi", "english")
	if err == nil {
		t.Fatal("Expected error for empty output")
	}

	kind, ok := domain.KindOf(err)
	if !ok || kind != domain.ErrorKindTranslation {
		t.Errorf("Expected TranslationError kind, got %v (ok=%v)", kind, ok)
	}
}

func TestTranscribeAudio(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03, 0x04}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speech-to-text" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("language"); got != "hindi" {
			t.Errorf("Expected language 'hindi', got '%s'", got)
		}

		file, _, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("Missing audio file part: %v", err)
		}
		defer file.Close()

		json.NewEncoder(w).Encode(transcriptionResponse{Text: "मुझे मदद चाहिए"})
	}))

	text, err := client.TranscribeAudio(context.Background(), audio, repository.DefaultAudioConfig("hindi"))
	if err != nil {
		t.Fatalf("TranscribeAudio failed: %v", err)
	}
	if text != "मुझे मदद चाहिए" {
		t.Errorf("Unexpected transcript: %s", text)
	}
}

func TestSynthesizeSpeech(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req synthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Config.Gender != "female" {
			t.Errorf("Expected gender 'female', got '%s'", req.Config.Gender)
		}
		if req.Config.Language.SourceLanguage != "hindi" {
			t.Errorf("Expected language 'hindi', got '%s'", req.Config.Language.SourceLanguage)
		}

		json.NewEncoder(w).Encode(synthesisResponse{AudioURL: "https://cdn.example/audio/42.mp3"})
	}))

	audioRef, err := client.SynthesizeSpeech(context.Background(), "यहाँ मार्गदर्शन है", repository.DefaultVoiceConfig("hindi"))
	if err != nil {
		t.Fatalf("SynthesizeSpeech failed: %v", err)
	}
	if audioRef != "https://cdn.example/audio/42.mp3" {
		t.Errorf("Unexpected audio reference: %s", audioRef)
	}
}

func TestSynthesizeSpeech_TransportError(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.SynthesizeSpeech(context.Background(), "text", repository.DefaultVoiceConfig("tamil"))
	if err == nil {
		t.Fatal("Expected error when server is unreachable")
	}

	kind, ok := domain.KindOf(err)
	if !ok || kind != domain.ErrorKindSynthesis {
		t.Errorf("Expected SynthesisError kind, got %v (ok=%v)", kind, ok)
	}
}
