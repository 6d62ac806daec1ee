package classifier

import (
	"math"
	"strings"

	"lifelog/internal/model"
)

const summaryMaxRunes = 80

// NormalizeNote coerces a note candidate into a persistable record.
// Content is required; a missing summary is derived from the content.
func NormalizeNote(c *NoteCandidate) (*model.Note, error) {
	if c == nil || c.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	summary := c.Summary
	if summary == "" {
		summary = truncate(c.Content, summaryMaxRunes)
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return &model.Note{
		Content: c.Content,
		Summary: summary,
		Tags:    tags,
	}, nil
}

// NormalizeFood coerces a food candidate. Missing or unparseable
// macros default to zero; the entry is still worth keeping without
// them. The description is required.
func NormalizeFood(c *FoodCandidate) (*model.FoodEntry, error) {
	if c == nil || c.Description == "" {
		return nil, &ValidationError{Field: "food_description"}
	}
	return &model.FoodEntry{
		Description: c.Description,
		Calories:    intOrZero(c.Calories),
		Protein:     round1(floatOrZero(c.Protein)),
		Carbs:       round1(floatOrZero(c.Carbs)),
		Fat:         round1(floatOrZero(c.Fat)),
	}, nil
}

// NormalizeWorkout coerces a workout candidate. Unknown duration stays
// nil; the activity type is required.
func NormalizeWorkout(c *WorkoutCandidate) (*model.WorkoutEntry, error) {
	if c == nil || c.ActivityType == "" {
		return nil, &ValidationError{Field: "activity_type"}
	}
	duration := c.DurationMins
	if duration != nil && *duration <= 0 {
		duration = nil
	}
	distance := c.DistanceKm
	if distance != nil && *distance < 0 {
		distance = nil
	}
	return &model.WorkoutEntry{
		ActivityType: c.ActivityType,
		DurationMins: duration,
		DistanceKm:   distance,
		Notes:        c.Notes,
	}, nil
}

func intOrZero(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncate(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes-1])) + "…"
}
