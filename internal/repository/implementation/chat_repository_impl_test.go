package implementation

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPair(t *testing.T) {
	low := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	high := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	tests := []struct {
		name string
		a, b uuid.UUID
	}{
		{name: "already ordered", a: low, b: high},
		{name: "reversed", a: high, b: low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := canonicalPair(tt.a, tt.b)
			if first != low || second != high {
				t.Errorf("canonicalPair(%s, %s) = (%s, %s), want (%s, %s)",
					tt.a, tt.b, first, second, low, high)
			}
		})
	}
}

func TestCanonicalPairEqualIds(t *testing.T) {
	id := uuid.New()
	first, second := canonicalPair(id, id)
	if first != id || second != id {
		t.Errorf("canonicalPair with equal ids changed them")
	}
}
