// Package mrn generates Medical Record Number candidates.
//
// Candidates are random, so uniqueness is only probabilistic; callers must
// run the generate-check-insert retry loop against the patients table and
// fail registration after MaxAttempts misses.
package mrn

import (
	"crypto/rand"
	"fmt"
)

// MaxAttempts bounds the generate-check-insert retry loop during
// registration. Exhausting it fails the whole registration.
const MaxAttempts = 5

// Prefix identifies radiotherapy patients. Format: RT-XXXXXXXX (hex).
const Prefix = "RT"

// Generate returns a new MRN candidate.
func Generate() string {
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("%s-%08X", Prefix, randomBytes)
}
