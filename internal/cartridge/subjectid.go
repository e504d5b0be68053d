package cartridge

import (
	"crypto/rand"
	"fmt"
)

const (
	subjectIDLen      = 6
	subjectIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// NewSubjectID returns a random 6-character identifier drawn from
// lowercase letters and digits.
func NewSubjectID() (string, error) {
	buf := make([]byte, subjectIDLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating subject id: %w", err)
	}
	for i, b := range buf {
		buf[i] = subjectIDAlphabet[int(b)%len(subjectIDAlphabet)]
	}
	return string(buf), nil
}

// ValidSubjectID reports whether s is a well-formed subject identifier.
func ValidSubjectID(s string) bool {
	if len(s) != subjectIDLen {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
