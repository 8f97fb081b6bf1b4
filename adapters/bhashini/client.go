package bhashini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/repository"
)

const (
	defaultAPIBaseURL     = "https://meity-auth.ulcacontrib.org/api/v1"
	defaultTimeoutSeconds = 30
)

// Config holds configuration for the Bhashini language-service client.
// Required fields:
// - APIKey: Bhashini API key
// Optional fields with defaults:
// - APIBaseURL: base URL of the Bhashini pipeline (default ULCA endpoint)
// - UserID: Bhashini user identifier sent on every request
// - TimeoutSeconds: per-request timeout (default: 30)
type Config struct {
	APIKey         string
	APIBaseURL     string
	UserID         string
	TimeoutSeconds int
}

// ValidateConfig validates the Config
func ValidateConfig(config Config) error {
	if config.APIKey == "" {
		return fmt.Errorf("bhashini API key is required")
	}

	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}

	return nil
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := Config{
		APIKey:     os.Getenv("BHASHINI_API_KEY"),
		APIBaseURL: os.Getenv("BHASHINI_API_ENDPOINT"),
		UserID:     os.Getenv("BHASHINI_USER_ID"),
	}

	if timeoutStr := os.Getenv("BHASHINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			config.TimeoutSeconds = timeout
		}
	}

	return config
}

// Client calls a Bhashini-style language API: detection, translation,
// speech recognition and speech synthesis. Each operation is one
// best-effort request; every failure is normalized into a
// domain.ServiceError carrying the operation's error kind.
type Client struct {
	apiKey     string
	apiBaseURL string
	userID     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Compile-time interface checks
var (
	_ repository.LanguageDetector = (*Client)(nil)
	_ repository.Translator       = (*Client)(nil)
	_ repository.SpeechToText     = (*Client)(nil)
	_ repository.TextToSpeech     = (*Client)(nil)
)

// NewClient creates a new Bhashini client
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
		logger.Info("Using default API base URL", zap.String("apiBaseURL", apiBaseURL))
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &Client{
		apiKey:     config.APIKey,
		apiBaseURL: apiBaseURL,
		userID:     config.UserID,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		logger:     logger,
	}, nil
}

type languagePair struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

type textSegment struct {
	Source string `json:"source"`
}

type detectionRequest struct {
	Text string `json:"text"`
}

type detectionResponse struct {
	Language string `json:"language"`
}

type translationRequest struct {
	Input  []textSegment `json:"input"`
	Config struct {
		Language languagePair `json:"language"`
	} `json:"config"`
}

type translationResponse struct {
	Output []struct {
		Target string `json:"target"`
	} `json:"output"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type synthesisRequest struct {
	Input  []textSegment `json:"input"`
	Config struct {
		Language languagePair `json:"language"`
		Gender   string       `json:"gender"`
	} `json:"config"`
}

type synthesisResponse struct {
	AudioURL string `json:"audio_url"`
}

// DetectLanguage implements repository.LanguageDetector
func (c *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	var resp detectionResponse
	err := c.postJSON(ctx, "/language-detection", detectionRequest{Text: text}, &resp, domain.ErrorKindDetection)
	if err != nil {
		return "", err
	}

	if resp.Language == "" {
		return "", domain.NewServiceError(domain.ErrorKindDetection, "empty language in response", nil)
	}

	c.logger.Debug("Language detected", zap.String("language", resp.Language))
	return resp.Language, nil
}

// Translate implements repository.Translator
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	req := translationRequest{Input: []textSegment{{Source: text}}}
	req.Config.Language = languagePair{SourceLanguage: sourceLang, TargetLanguage: targetLang}

	var resp translationResponse
	if err := c.postJSON(ctx, "/translation", req, &resp, domain.ErrorKindTranslation); err != nil {
		return "", err
	}

	if len(resp.Output) == 0 {
		return "", domain.NewServiceError(domain.ErrorKindTranslation, "empty output in response", nil)
	}

	c.logger.Debug("Translation completed",
		zap.String("sourceLang", sourceLang),
		zap.String("targetLang", targetLang))
	return resp.Output[0].Target, nil
}

// TranscribeAudio implements repository.SpeechToText
func (c *Client) TranscribeAudio(ctx context.Context, audioData []byte, config repository.AudioConfig) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("audio", "utterance")
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to build multipart body", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to build multipart body", err)
	}
	if err := writer.WriteField("language", config.Language); err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to build multipart body", err)
	}
	if err := writer.Close(); err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to build multipart body", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/speech-to-text", body)
	if err != nil {
		return "", domain.NewServiceError(domain.ErrorKindTranscription, "failed to create request", err)
	}
	c.setAuthHeaders(httpReq)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	var resp transcriptionResponse
	if err := c.do(httpReq, &resp, domain.ErrorKindTranscription); err != nil {
		return "", err
	}

	c.logger.Debug("Transcription completed",
		zap.String("language", config.Language),
		zap.Int("audioSize", len(audioData)))
	return resp.Text, nil
}

// SynthesizeSpeech implements repository.TextToSpeech
func (c *Client) SynthesizeSpeech(ctx context.Context, text string, config repository.VoiceConfig) (string, error) {
	req := synthesisRequest{Input: []textSegment{{Source: text}}}
	req.Config.Language = languagePair{SourceLanguage: config.Language}
	req.Config.Gender = config.Gender

	var resp synthesisResponse
	if err := c.postJSON(ctx, "/text-to-speech", req, &resp, domain.ErrorKindSynthesis); err != nil {
		return "", err
	}

	if resp.AudioURL == "" {
		return "", domain.NewServiceError(domain.ErrorKindSynthesis, "empty audio_url in response", nil)
	}

	c.logger.Debug("Synthesis completed", zap.String("language", config.Language))
	return resp.AudioURL, nil
}

// postJSON issues a JSON POST to path and decodes the response into out,
// normalizing every failure mode into a ServiceError of the given kind
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}, kind domain.ErrorKind) error {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return domain.NewServiceError(kind, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+path, bytes.NewReader(requestBody))
	if err != nil {
		return domain.NewServiceError(kind, "failed to create request", err)
	}
	c.setAuthHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out, kind)
}

func (c *Client) do(httpReq *http.Request, out interface{}, kind domain.ErrorKind) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.NewServiceError(kind, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Bhashini API returned error",
			zap.String("path", httpReq.URL.Path),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return domain.NewServiceError(kind,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewServiceError(kind, "failed to decode response", err)
	}

	return nil
}

func (c *Client) setAuthHeaders(httpReq *http.Request) {
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userID != "" {
		httpReq.Header.Set("User-ID", c.userID)
	}
}
