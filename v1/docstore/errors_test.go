package docstore

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpers_MatchWrappedErrors(t *testing.T) {
	cases := []struct {
		sentinel error
		check    func(error) bool
	}{
		{ErrConnection, IsConnectionError},
		{ErrNotFound, IsNotFoundError},
		{ErrValidation, IsValidationError},
		{ErrSchema, IsSchemaError},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("collection %q: %w", "documents", c.sentinel)
		if !c.check(wrapped) {
			t.Errorf("helper did not match wrapped %v", c.sentinel)
		}
		if !errors.Is(wrapped, c.sentinel) {
			t.Errorf("errors.Is did not match wrapped %v", c.sentinel)
		}
	}
}

func TestErrorHelpers_DoNotCrossMatch(t *testing.T) {
	if IsNotFoundError(ErrConnection) {
		t.Error("ErrConnection must not match IsNotFoundError")
	}
	if IsValidationError(ErrSchema) {
		t.Error("ErrSchema must not match IsValidationError")
	}
	if IsConnectionError(errors.New("unrelated")) {
		t.Error("unrelated error must not match IsConnectionError")
	}
}
