package cartridge

import "testing"

func TestNewSubjectIDShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewSubjectID()
		if err != nil {
			t.Fatalf("NewSubjectID() error: %v", err)
		}
		if !ValidSubjectID(id) {
			t.Fatalf("NewSubjectID() = %q, not a valid id", id)
		}
		seen[id] = true
	}
	// 100 draws from a 36^6 space should essentially never collide.
	if len(seen) < 95 {
		t.Errorf("only %d distinct ids out of 100", len(seen))
	}
}

func TestValidSubjectID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"abc123", true},
		{"zzzzzz", true},
		{"000000", true},
		{"abc12", false},
		{"abc1234", false},
		{"ABC123", false},
		{"abc-12", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidSubjectID(tc.id); got != tc.want {
			t.Errorf("ValidSubjectID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
