package domain

import (
	"time"
)

// Role defines the type of message sender
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// Message represents a single turn entry in a conversation. Once appended
// its ID is stable; only Text and AudioRef may be replaced in place, which
// is how a provisional "processing" entry becomes the final transcript.
type Message struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	AudioRef  string    `json:"audio_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TextTurn is the aggregated result of one text submission
type TextTurn struct {
	OriginalText     string `json:"original_text"`
	ResponseText     string `json:"response_text"`
	DetectedLanguage string `json:"detected_language"`
}

// VoiceTurn is the aggregated result of one voice submission
type VoiceTurn struct {
	OriginalText  string `json:"original_text"`
	ResponseText  string `json:"response_text"`
	ResponseAudio string `json:"response_audio"`
}
