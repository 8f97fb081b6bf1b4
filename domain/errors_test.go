package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := NewServiceError(ErrorKindTranslation, "translate hindi to english", errors.New("upstream 502"))

	kind, ok := KindOf(base)
	if !ok || kind != ErrorKindTranslation {
		t.Fatalf("KindOf(base) = %v, %v", kind, ok)
	}

	wrapped := fmt.Errorf("pipeline turn failed: %w", base)
	kind, ok = KindOf(wrapped)
	if !ok || kind != ErrorKindTranslation {
		t.Fatalf("KindOf(wrapped) = %v, %v", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("KindOf should not match a plain error")
	}
}

func TestServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServiceError(ErrorKindDetection, "detect language", cause)

	if !errors.Is(err, cause) {
		t.Fatal("ServiceError should unwrap to its cause")
	}
}

func TestIsPivotLanguage(t *testing.T) {
	for _, lang := range []string{"english", "English", "ENGLISH"} {
		if !IsPivotLanguage(lang) {
			t.Errorf("IsPivotLanguage(%q) = false, want true", lang)
		}
	}
	if IsPivotLanguage("hindi") {
		t.Error("IsPivotLanguage(hindi) = true, want false")
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	if !IsSupportedLanguage("tamil") {
		t.Error("tamil should be supported")
	}
	if IsSupportedLanguage("french") {
		t.Error("french should not be supported")
	}
}
