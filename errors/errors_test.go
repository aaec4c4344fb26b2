package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNoMatch, "no match")
	if err.Code != ErrCodeNoMatch {
		t.Errorf("expected code %s, got %s", ErrCodeNoMatch, err.Code)
	}
	if err.Message != "no match" {
		t.Errorf("expected message 'no match', got %q", err.Message)
	}
}

func TestAppError_EmptyInput(t *testing.T) {
	err := EmptyInput("Max")
	if err.Code != ErrCodeEmptyInput {
		t.Errorf("expected EMPTY_INPUT, got %s", err.Code)
	}
	if err.Details["operation"] != "Max" {
		t.Errorf("expected operation=Max, got %v", err.Details["operation"])
	}
}

func TestAppError_NoMatch(t *testing.T) {
	err := NoMatch("First")
	if err.Code != ErrCodeNoMatch {
		t.Errorf("expected NO_MATCH, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "no element matching") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAppError_CallbackFailed_WrapsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := CallbackFailed("Map", cause)
	if err.Code != ErrCodeCallbackFailed {
		t.Errorf("expected CALLBACK_FAILED, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_SourceFailed(t *testing.T) {
	cause := stderrors.New("read failed")
	err := SourceFailed("Count", cause)
	if err.Code != ErrCodeSourceFailed {
		t.Errorf("expected SOURCE_FAILED, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeEmptyInput, "")
	err := EmptyInput("Min").WithDetail("segment", 3)

	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match on code")
	}
	if stderrors.Is(err, New(ErrCodeNoMatch, "")) {
		t.Error("different codes must not match")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("expected match through wrapping")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := InvalidInput("parallelism", "must be positive")
	err.WithDetails(map[string]any{"value": -1, "min": 1})
	if err.Details["field"] != "parallelism" {
		t.Errorf("expected field detail preserved, got %v", err.Details["field"])
	}
	if err.Details["value"] != -1 || err.Details["min"] != 1 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", NoMatch("Last"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Code != ErrCodeNoMatch {
		t.Errorf("expected NO_MATCH, got %s", appErr.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not be an AppError")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Internal(nil), ErrCodeInternal) {
		t.Error("expected INTERNAL_ERROR")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error has no code")
	}
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(CallbackFailed("Filter", stderrors.New("bad value")))
	if resp.Error.Code != ErrCodeCallbackFailed {
		t.Errorf("expected CALLBACK_FAILED, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "bad value" {
		t.Errorf("expected cause 'bad value', got %q", resp.Error.Cause)
	}

	plain := ToResponse(stderrors.New("oops"))
	if plain.Error.Code != ErrCodeInternal {
		t.Errorf("plain errors should report INTERNAL_ERROR, got %s", plain.Error.Code)
	}
}
