package llm

import (
	"context"
	"fmt"

	"github.com/SubrataD27/vaani/repository"
)

// MockAssistant is a placeholder implementation of the legal assistant
// for running the server without Gemini credentials
type MockAssistant struct{}

// NewMockAssistant creates a new mock legal assistant
func NewMockAssistant() repository.LegalAssistant {
	return &MockAssistant{}
}

// AnswerLegalQuery implements repository.LegalAssistant
func (m *MockAssistant) AnswerLegalQuery(ctx context.Context, englishText string) (string, error) {
	return fmt.Sprintf(
		"Thank you for your query about %q. To proceed, gather your identity documents and file the application at your nearest district office. Please consult a qualified advocate for advice specific to your situation.",
		preview(englishText)), nil
}
