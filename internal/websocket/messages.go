package websocket

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/SubrataD27/vaani/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Supported message types
const (
	MessageTypeTextQuery     MessageType = "text_query"
	MessageTypeVoiceQuery    MessageType = "voice_query"
	MessageTypeQueryResponse MessageType = "query_response"
	MessageTypeSetLanguage   MessageType = "set_language"
	MessageTypeError         MessageType = "error"
	MessageTypePing          MessageType = "ping"
	MessageTypePong          MessageType = "pong"
)

// BaseMessage defines the common structure for all WebSocket messages
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// TextQueryMessage carries one typed turn from the demo client
type TextQueryMessage struct {
	BaseMessage
	Text string `json:"text"`
}

// VoiceQueryMessage carries one spoken turn; AudioData is base64
type VoiceQueryMessage struct {
	BaseMessage
	AudioData string `json:"audio_data"`
}

// SetLanguageMessage replaces the session's active language
type SetLanguageMessage struct {
	BaseMessage
	Language string `json:"language"`
}

// QueryResponseMessage mirrors the store's state after a turn settles
type QueryResponseMessage struct {
	BaseMessage
	Accepted bool             `json:"accepted"`
	Messages []domain.Message `json:"messages"`
}

// ErrorMessage reports a protocol-level failure to the client
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// MessageValidator validates inbound WebSocket messages
type MessageValidator struct{}

// NewMessageValidator creates a new message validator
func NewMessageValidator() *MessageValidator {
	return &MessageValidator{}
}

// ParseType extracts the message type from a raw frame
func (v *MessageValidator) ParseType(data []byte) (MessageType, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return "", fmt.Errorf("invalid message frame: %w", err)
	}
	if base.Type == "" {
		return "", fmt.Errorf("message type is required")
	}
	return base.Type, nil
}

// ValidateTextQuery parses and validates a text_query frame
func (v *MessageValidator) ValidateTextQuery(data []byte) (*TextQueryMessage, error) {
	var msg TextQueryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid text_query message: %w", err)
	}
	if msg.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	return &msg, nil
}

// ValidateVoiceQuery parses a voice_query frame and decodes its audio
func (v *MessageValidator) ValidateVoiceQuery(data []byte) (*VoiceQueryMessage, []byte, error) {
	var msg VoiceQueryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, nil, fmt.Errorf("invalid voice_query message: %w", err)
	}
	if msg.AudioData == "" {
		return nil, nil, fmt.Errorf("audio_data is required")
	}

	audio, err := base64.StdEncoding.DecodeString(msg.AudioData)
	if err != nil {
		return nil, nil, fmt.Errorf("audio_data is not valid base64: %w", err)
	}
	if len(audio) == 0 {
		return nil, nil, fmt.Errorf("audio_data is empty")
	}

	return &msg, audio, nil
}

// ValidateSetLanguage parses and validates a set_language frame
func (v *MessageValidator) ValidateSetLanguage(data []byte) (*SetLanguageMessage, error) {
	var msg SetLanguageMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid set_language message: %w", err)
	}
	if !domain.IsSupportedLanguage(msg.Language) {
		return nil, fmt.Errorf("unsupported language: %s", msg.Language)
	}
	return &msg, nil
}
