package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("save: %w", NewValidationError("title", "is required"))

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("validation error should match ErrInvalidInput")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	if ve.Error() != "title: is required" {
		t.Fatalf("unexpected message %q", ve.Error())
	}
	if NewValidationError("", "bad").Error() != "bad" {
		t.Fatal("field-less error should print only the reason")
	}
}
