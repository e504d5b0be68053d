package cartridge

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced subject does not exist.
var ErrNotFound = errors.New("subject not found")

// ValidationError reports a malformed cartridge or malformed input to
// the catalog. Rejected before any generation call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid cartridge: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid cartridge: %s", e.Reason)
}

// Validate checks a cartridge's structural invariants: non-empty
// curriculum, contiguous ascending level numbers, and a non-empty
// concept set per level.
func Validate(c Cartridge) error {
	if c.Meta.Subject == "" {
		return &ValidationError{Field: "meta.subject", Reason: "must not be empty"}
	}
	if c.Meta.DisplayName == "" {
		return &ValidationError{Field: "meta.display_name", Reason: "must not be empty"}
	}
	if len(c.Curriculum) == 0 {
		return &ValidationError{Field: "curriculum", Reason: "must contain at least one level"}
	}

	base := c.Curriculum[0].Level
	if base < 0 {
		return &ValidationError{Field: "curriculum", Reason: "base level must not be negative"}
	}

	for i, lvl := range c.Curriculum {
		if lvl.Level != base+i {
			return &ValidationError{
				Field:  fmt.Sprintf("curriculum[%d].level", i),
				Reason: fmt.Sprintf("levels must be contiguous: want %d, got %d", base+i, lvl.Level),
			}
		}
		if len(lvl.Concepts) == 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("curriculum[%d].concepts", i),
				Reason: "must contain at least one concept",
			}
		}
	}

	return nil
}
