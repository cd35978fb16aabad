package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "not found", err: NotFound("skill_not_found", "Skill not found"), want: KindNotFound},
		{name: "access denied", err: AccessDenied("not_owner", "denied"), want: KindAccessDenied},
		{name: "conflict", err: Conflict("email_taken", "taken"), want: KindConflict},
		{name: "invalid input", err: InvalidInput("bad", "bad"), want: KindInvalidInput},
		{name: "unauthorized", err: Unauthorized("bad_creds", "bad"), want: KindUnauthorized},
		{name: "upstream", err: UpstreamUnavailable("down", "down", errors.New("refused")), want: KindUpstreamUnavailable},
		{name: "untyped", err: errors.New("boom"), want: KindInternal},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NotFound("gone", "gone")), want: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExpected(t *testing.T) {
	if !IsExpected(NotFound("x", "x")) {
		t.Error("NotFound should be expected")
	}
	if IsExpected(Internal(errors.New("boom"))) {
		t.Error("Internal should not be expected")
	}
	if IsExpected(UpstreamUnavailable("x", "x", nil)) {
		t.Error("UpstreamUnavailable should not be expected")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("refused")
	err := UpstreamUnavailable("down", "provider down", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
}
