package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/domain"
)

const (
	welcomeText          = "Welcome to VaaNi. How can I help you today?"
	voicePlaceholderText = "Processing your voice message..."
	voiceFailedText      = "Voice message could not be processed."
	textApology          = "Sorry, I encountered an error processing your request. Please try again."
	voiceApology         = "Sorry, I encountered an error processing your voice message. Please try again."
)

// QueryOrchestrator is the store's view of the pipeline
type QueryOrchestrator interface {
	HandleTextInput(ctx context.Context, text, language string) (*domain.TextTurn, error)
	HandleVoiceInput(ctx context.Context, audio []byte, sourceLanguage string) (*domain.VoiceTurn, error)
}

// ConversationStore mediates between the UI surface and the
// orchestrator for one session. It owns the ordered message history,
// the active language selection and the single-flight busy gate: a
// submission made while a turn is outstanding is dropped, not queued.
//
// The store is the final recovery boundary. A pipeline failure never
// escapes it; the failure becomes an apology message and the store
// returns to idle.
type ConversationStore struct {
	mu             sync.Mutex
	messages       []domain.Message
	activeLanguage string
	busy           bool
	nextID         int64

	orchestrator QueryOrchestrator
	logger       *zap.Logger
	now          func() time.Time
}

// NewConversationStore creates a store seeded with the welcome message
// and English as the active language
func NewConversationStore(orchestrator QueryOrchestrator, logger *zap.Logger) *ConversationStore {
	s := &ConversationStore{
		activeLanguage: domain.LanguagePivot,
		orchestrator:   orchestrator,
		logger:         logger,
		now:            time.Now,
	}
	s.appendLocked(domain.RoleSystem, welcomeText, "")
	return s
}

// SetLanguage replaces the active language. It takes effect on the next
// submitted turn; an in-flight turn keeps the language it started with.
func (s *ConversationStore) SetLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeLanguage = code
}

// Language returns the active language selection
func (s *ConversationStore) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLanguage
}

// Busy reports whether a turn is currently outstanding
func (s *ConversationStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a snapshot of the conversation history
func (s *ConversationStore) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]domain.Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Clear resets the history to empty. The next store construction or UI
// render is responsible for re-seeding the welcome message.
func (s *ConversationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// SubmitText processes one typed turn. It reports false, changing
// nothing, when the text is blank or another turn is outstanding.
func (s *ConversationStore) SubmitText(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Debug("Dropping text submission while busy")
		return false
	}
	s.busy = true
	language := s.activeLanguage
	s.appendLocked(domain.RoleUser, text, "")
	s.mu.Unlock()

	defer s.clearBusy()

	turn, err := s.orchestrator.HandleTextInput(ctx, text, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		kind, _ := domain.KindOf(err)
		s.logger.Warn("Text turn failed",
			zap.String("errorKind", string(kind)),
			zap.Error(err))
		s.appendLocked(domain.RoleSystem, textApology, "")
		return true
	}

	s.appendLocked(domain.RoleSystem, turn.ResponseText, "")
	return true
}

// SubmitVoice processes one spoken turn. The user entry is appended
// immediately as a provisional placeholder and replaced by the
// transcript (or a failure note) once the pipeline settles.
func (s *ConversationStore) SubmitVoice(ctx context.Context, audio []byte) bool {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Debug("Dropping voice submission while busy")
		return false
	}
	s.busy = true
	language := s.activeLanguage
	placeholder := s.appendLocked(domain.RoleUser, voicePlaceholderText, "")
	s.mu.Unlock()

	defer s.clearBusy()

	turn, err := s.orchestrator.HandleVoiceInput(ctx, audio, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		kind, _ := domain.KindOf(err)
		s.logger.Warn("Voice turn failed",
			zap.String("errorKind", string(kind)),
			zap.Error(err))
		s.replaceLocked(placeholder.ID, voiceFailedText, "")
		s.appendLocked(domain.RoleSystem, voiceApology, "")
		return true
	}

	s.replaceLocked(placeholder.ID, turn.OriginalText, "")
	s.appendLocked(domain.RoleSystem, turn.ResponseText, turn.ResponseAudio)
	return true
}

func (s *ConversationStore) clearBusy() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// appendLocked appends a message and returns it. Callers hold s.mu,
// except during construction when no other goroutine can see the store.
func (s *ConversationStore) appendLocked(role domain.Role, text, audioRef string) domain.Message {
	s.nextID++
	msg := domain.Message{
		ID:        s.nextID,
		Role:      role,
		Text:      text,
		AudioRef:  audioRef,
		CreatedAt: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// replaceLocked swaps the text and audio reference of the message with
// the given ID in place. IDs are stable, so this is the only sanctioned
// mutation of an appended message.
func (s *ConversationStore) replaceLocked(id int64, text, audioRef string) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Text = text
			s.messages[i].AudioRef = audioRef
			return
		}
	}
}
