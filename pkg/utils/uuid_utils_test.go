package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	if id.Version() != 7 {
		t.Fatalf("expected version 7, got %d", id.Version())
	}
}

func TestGenerateUUIDv7_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := GenerateUUIDv7()
	if id == uuid.Nil {
		t.Fatal("expected v4 fallback id when v7 fails")
	}
}

func TestNormalizeRequestID(t *testing.T) {
	if got := NormalizeRequestID(" req-42 "); got != "req-42" {
		t.Fatalf("expected trimmed caller id, got %q", got)
	}

	for _, in := range []string{"", "   ", strings.Repeat("x", 129)} {
		got := NormalizeRequestID(in)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected generated uuid for %q, got %q", in, got)
		}
	}
}
