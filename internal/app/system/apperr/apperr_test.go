package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	if got := apperr.KindOf(apperr.NotFound("group not found")); got != apperr.KindNotFound {
		t.Errorf("expected KindNotFound, got %v", got)
	}
	if got := apperr.KindOf(errors.New("plain")); got != apperr.KindInternal {
		t.Errorf("unclassified errors default to internal, got %v", got)
	}
	if got := apperr.KindOf(nil); got != apperr.KindInternal {
		t.Errorf("nil defaults to internal, got %v", got)
	}

	// The kind survives wrapping.
	wrapped := fmt.Errorf("creating group: %w", apperr.Conflict("course already in use"))
	if !apperr.Is(wrapped, apperr.KindConflict) {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}

func TestReason(t *testing.T) {
	if got := apperr.Reason(apperr.Invalid("title is required")); got != "title is required" {
		t.Errorf("unexpected reason %q", got)
	}
	// Storage errors never leak their text to the client.
	if got := apperr.Reason(errors.New("connection refused 10.0.0.3:27017")); got != "internal server error" {
		t.Errorf("unclassified reason should be generic, got %q", got)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("invalid character '}'")
	err := apperr.Wrap(apperr.KindInvalid, cause, "malformed JSON body")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() != "malformed JSON body: invalid character '}'" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if apperr.Reason(err) != "malformed JSON body" {
		t.Errorf("reason should omit the cause, got %q", apperr.Reason(err))
	}
}
