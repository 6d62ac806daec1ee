package classifier

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeFoodDefaultsMissingMacros(t *testing.T) {
	cal := 450
	entry, err := NormalizeFood(&FoodCandidate{Description: "Chicken caesar salad", Calories: &cal})
	if err != nil {
		t.Fatalf("NormalizeFood: %v", err)
	}
	if entry.Calories != 450 {
		t.Fatalf("calories=%d", entry.Calories)
	}
	if entry.Protein != 0 || entry.Carbs != 0 || entry.Fat != 0 {
		t.Fatalf("missing macros should default to zero, got %+v", entry)
	}
}

func TestNormalizeFoodRequiresDescription(t *testing.T) {
	_, err := NormalizeFood(&FoodCandidate{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "food_description" {
		t.Fatalf("field=%q", verr.Field)
	}
}

func TestNormalizeFoodRoundsMacros(t *testing.T) {
	p, c, f := 35.333, 20.08, 27.96
	entry, err := NormalizeFood(&FoodCandidate{Description: "Salad", Protein: &p, Carbs: &c, Fat: &f})
	if err != nil {
		t.Fatalf("NormalizeFood: %v", err)
	}
	if entry.Protein != 35.3 || entry.Carbs != 20.1 || entry.Fat != 28.0 {
		t.Fatalf("macros not rounded to one decimal: %+v", entry)
	}
}

func TestNormalizeFoodClampsNegatives(t *testing.T) {
	cal := -200
	entry, err := NormalizeFood(&FoodCandidate{Description: "Mystery meal", Calories: &cal})
	if err != nil {
		t.Fatalf("NormalizeFood: %v", err)
	}
	if entry.Calories != 0 {
		t.Fatalf("negative calories should clamp to zero, got %d", entry.Calories)
	}
}

func TestNormalizeWorkoutKeepsUnknownDurationNil(t *testing.T) {
	entry, err := NormalizeWorkout(&WorkoutCandidate{ActivityType: "Yoga"})
	if err != nil {
		t.Fatalf("NormalizeWorkout: %v", err)
	}
	if entry.DurationMins != nil {
		t.Fatalf("unknown duration should stay nil")
	}
}

func TestNormalizeWorkoutDropsNonPositiveDuration(t *testing.T) {
	zero := 0
	entry, err := NormalizeWorkout(&WorkoutCandidate{ActivityType: "Run", DurationMins: &zero})
	if err != nil {
		t.Fatalf("NormalizeWorkout: %v", err)
	}
	if entry.DurationMins != nil {
		t.Fatalf("zero duration should be dropped")
	}
}

func TestNormalizeWorkoutRequiresActivity(t *testing.T) {
	_, err := NormalizeWorkout(&WorkoutCandidate{Notes: "felt great"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "activity_type" {
		t.Fatalf("field=%q", verr.Field)
	}
}

func TestNormalizeNoteDerivesSummary(t *testing.T) {
	long := strings.Repeat("remember the milk and ", 10)
	note, err := NormalizeNote(&NoteCandidate{Content: long})
	if err != nil {
		t.Fatalf("NormalizeNote: %v", err)
	}
	if note.Summary == "" {
		t.Fatal("summary should be derived from content")
	}
	if n := len([]rune(note.Summary)); n > summaryMaxRunes {
		t.Fatalf("summary too long: %d runes", n)
	}
	if note.Tags == nil {
		t.Fatal("tags should never be nil")
	}
}

func TestNormalizeNoteRequiresContent(t *testing.T) {
	_, err := NormalizeNote(&NoteCandidate{Summary: "empty"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "content" {
		t.Fatalf("field=%q", verr.Field)
	}
}
