package domain

import "strings"

// LanguagePivot is the intermediate language every non-English query is
// translated through before and after the completion step. The demo UI
// sends plain language names, not BCP-47 codes, so the pivot check is a
// case-insensitive compare against this literal.
const LanguagePivot = "english"

// SupportedLanguages lists the language codes the demo front-end offers
var SupportedLanguages = []string{
	"english",
	"hindi",
	"bengali",
	"tamil",
	"telugu",
	"marathi",
	"gujarati",
	"kannada",
	"malayalam",
	"punjabi",
}

// IsPivotLanguage reports whether code names the English pivot
func IsPivotLanguage(code string) bool {
	return strings.EqualFold(code, LanguagePivot)
}

// IsSupportedLanguage reports whether code is one the demo accepts
func IsSupportedLanguage(code string) bool {
	for _, lang := range SupportedLanguages {
		if strings.EqualFold(code, lang) {
			return true
		}
	}
	return false
}
