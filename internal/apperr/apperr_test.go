package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew_ClassifiesAndKeepsMessage(t *testing.T) {
	err := New(ErrForbidden, "You can only update your own posts")

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected errors.Is(err, ErrForbidden)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected match against ErrNotFound")
	}
	if got := err.Error(); got != "You can only update your own posts" {
		t.Fatalf("message: got %q", got)
	}
}

func TestNew_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("update post: %w", New(ErrNotFound, "Post not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrapped error lost its kind")
	}
}
