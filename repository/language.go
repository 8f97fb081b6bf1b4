package repository

import "context"

// LanguageDetector abstracts remote language identification
type LanguageDetector interface {
	// DetectLanguage returns the language code of a piece of text
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Translator abstracts remote text translation between language codes.
// Passing identical source and target is permitted but callers are
// expected to skip the call in that case.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
