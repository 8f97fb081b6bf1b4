package api

import (
	"time"

	"github.com/SubrataD27/vaani/domain"
)

// SessionResponse is returned when a new demo session is opened
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TextQueryRequest carries one typed turn
type TextQueryRequest struct {
	Text string `json:"text"`
}

// SetLanguageRequest replaces the session's active language
type SetLanguageRequest struct {
	Language string `json:"language"`
}

// TurnResponse is returned after a submission settles. Accepted is
// false when the store dropped the submission (blank text or a turn
// already in flight); Messages is the history snapshot either way.
type TurnResponse struct {
	Accepted bool             `json:"accepted"`
	Busy     bool             `json:"busy"`
	Messages []domain.Message `json:"messages"`
}

// MessagesResponse is the conversation history for a session
type MessagesResponse struct {
	Language string           `json:"language"`
	Messages []domain.Message `json:"messages"`
}

// LanguagesResponse lists the language codes the demo accepts
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// ErrorResponse is the uniform error body for the HTTP surface
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
