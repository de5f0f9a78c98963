package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDv7Generator_NewID(t *testing.T) {
	gen := NewUUIDv7Generator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}

	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("parse generated id %q: %v", first, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected uuid version 7, got %d", parsed.Version())
	}
	if second < first {
		t.Fatalf("expected time-ordered ids, got %s before %s", first, second)
	}
}
