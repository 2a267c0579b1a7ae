package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	err := NewError(CodeNotFound, "scholarship not found", nil)
	if !Is(err, CodeNotFound) {
		t.Fatal("expected Is to match the code")
	}
	if Is(err, CodeForbidden) {
		t.Fatal("expected Is to reject a different code")
	}
	if Is(errors.New("plain"), CodeNotFound) {
		t.Fatal("expected Is to reject plain errors")
	}
}

func TestIs_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewError(CodeClosed, "deadline passed", nil))
	if !Is(err, CodeClosed) {
		t.Fatal("expected Is to unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	if code := CodeOf(NewError(CodeDuplicate, "already applied", nil)); code != CodeDuplicate {
		t.Fatalf("expected duplicate, got %s", code)
	}
	if code := CodeOf(errors.New("plain")); code != CodeInternal {
		t.Fatalf("expected internal for plain errors, got %s", code)
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("row not found")
	err := NewError(CodeNotFound, "scholarship not found", cause)
	if err.Error() != "scholarship not found: row not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid scholarship", map[string]string{"title": "too short"})
	if err.Code != CodeValidation {
		t.Fatalf("expected validation code, got %s", err.Code)
	}
	if err.Fields["title"] != "too short" {
		t.Fatalf("unexpected fields: %v", err.Fields)
	}
}
