package repository

import "context"

// LegalAssistant abstracts the completion service that answers a
// citizen's legal query. Input and output are both English; language
// pivoting is the orchestrator's concern, not the assistant's.
type LegalAssistant interface {
	AnswerLegalQuery(ctx context.Context, englishText string) (string, error)
}
