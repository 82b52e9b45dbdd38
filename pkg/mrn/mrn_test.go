package mrn

import (
	"regexp"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^RT-[0-9A-F]{8}$`)

	for i := 0; i < 100; i++ {
		got := Generate()
		if !pattern.MatchString(got) {
			t.Fatalf("Generate() = %q, want format RT-XXXXXXXX", got)
		}
	}
}

func TestGenerateDispersion(t *testing.T) {
	// 1000 candidates over a 32-bit space; any collision here points at a
	// broken random source.
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		got := Generate()
		if seen[got] {
			t.Fatalf("duplicate candidate %q after %d generations", got, i)
		}
		seen[got] = true
	}
}
