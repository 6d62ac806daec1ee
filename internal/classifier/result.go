package classifier

import (
	"errors"
	"fmt"
)

// Kind tags the classified shape of a message.
type Kind string

const (
	KindNote    Kind = "note"
	KindFood    Kind = "food"
	KindWorkout Kind = "workout"
	KindAnswer  Kind = "question"
)

// ErrUnclassified means the model reply could not be mapped to any
// known shape: malformed JSON, a missing or unknown type tag. Distinct
// from a field validation failure.
var ErrUnclassified = errors.New("message could not be classified")

// ValidationError reports a required field the candidate is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// NoteCandidate is the untrusted note payload from the model.
type NoteCandidate struct {
	Content string
	Summary string
	Tags    []string
}

// FoodCandidate is the untrusted food payload. Nil numerics mean the
// model gave no usable value.
type FoodCandidate struct {
	Description string
	Calories    *int
	Protein     *float64
	Carbs       *float64
	Fat         *float64
}

// WorkoutCandidate is the untrusted workout payload.
type WorkoutCandidate struct {
	ActivityType string
	DurationMins *int
	DistanceKm   *float64
	Notes        string
}

// Result is the classifier's discriminated union. Exactly one of the
// payload pointers matching Kind is set; KindAnswer carries only the
// answer text.
type Result struct {
	Kind       Kind
	Confidence float64
	Answer     string
	Note       *NoteCandidate
	Food       *FoodCandidate
	Workout    *WorkoutCandidate
}
