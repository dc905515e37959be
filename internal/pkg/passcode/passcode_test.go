package passcode

import (
	"strconv"
	"testing"
)

func TestNumericGenerate(t *testing.T) {
	// Arrange
	gen := NewNumeric()

	for range 200 {
		// Act
		code, err := gen.Generate()

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestNumericGenerateVaries(t *testing.T) {
	// Arrange
	gen := NewNumeric()
	seen := make(map[string]struct{})

	// Act
	for range 50 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		seen[code] = struct{}{}
	}

	// Assert: 50 draws from 900k values collide occasionally, but never all.
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct", len(seen))
	}
}
