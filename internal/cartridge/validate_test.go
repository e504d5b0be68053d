package cartridge

import (
	"errors"
	"testing"
)

func validCartridge() Cartridge {
	return Cartridge{
		Meta: Meta{
			Subject:     "algebra",
			DisplayName: "Algebra Basics",
			Description: "Linear equations and friends",
		},
		Curriculum: []Level{
			{Level: 1, Name: "Foundations", Concepts: []string{"variables", "expressions"}},
			{Level: 2, Name: "Equations", Concepts: []string{"one-step equations"}},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validCartridge()); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateEmptyCurriculum(t *testing.T) {
	c := validCartridge()
	c.Curriculum = nil

	err := Validate(c)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	if verr.Field != "curriculum" {
		t.Errorf("Field = %q, want curriculum", verr.Field)
	}
}

func TestValidateNonContiguousLevels(t *testing.T) {
	c := validCartridge()
	c.Curriculum[1].Level = 5

	err := Validate(c)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
}

func TestValidateEmptyConcepts(t *testing.T) {
	c := validCartridge()
	c.Curriculum[1].Concepts = nil

	if err := Validate(c); err == nil {
		t.Fatal("Validate() accepted a level with no concepts")
	}
}

func TestValidateMissingMeta(t *testing.T) {
	c := validCartridge()
	c.Meta.Subject = ""
	if err := Validate(c); err == nil {
		t.Fatal("Validate() accepted empty subject")
	}

	c = validCartridge()
	c.Meta.DisplayName = ""
	if err := Validate(c); err == nil {
		t.Fatal("Validate() accepted empty display name")
	}
}

func TestLevelAtClamps(t *testing.T) {
	c := validCartridge()

	if got := c.LevelAt(99).Level; got != 2 {
		t.Errorf("LevelAt(99).Level = %d, want 2", got)
	}
	if got := c.LevelAt(-3).Level; got != 1 {
		t.Errorf("LevelAt(-3).Level = %d, want 1", got)
	}
	if got := c.LevelAt(2).Name; got != "Equations" {
		t.Errorf("LevelAt(2).Name = %q, want Equations", got)
	}
}

func TestSummarizeFlattensConcepts(t *testing.T) {
	c := validCartridge()
	c.Meta.SubjectID = "abc123"

	sum := Summarize(c)
	if sum.SubjectID != "abc123" {
		t.Errorf("SubjectID = %q, want abc123", sum.SubjectID)
	}
	want := []string{"variables", "expressions", "one-step equations"}
	if len(sum.Concepts) != len(want) {
		t.Fatalf("Concepts = %v, want %v", sum.Concepts, want)
	}
	for i, w := range want {
		if sum.Concepts[i] != w {
			t.Errorf("Concepts[%d] = %q, want %q", i, sum.Concepts[i], w)
		}
	}
}
