package service

import (
	"context"
	"fmt"
	"time"

	"lifelog/internal/classifier"
	"lifelog/internal/llm"
	"lifelog/internal/logger"
	"lifelog/internal/model"
	"lifelog/internal/repository"
)

const narrativeMaxTokens = 300

// DailySummary aggregates one day of records for a user.
type DailySummary struct {
	Date              time.Time
	TotalCalories     int
	TotalProtein      float64
	TotalCarbs        float64
	TotalFat          float64
	CaloriesTarget    *int
	CaloriesRemaining *int
	FoodEntries       int
	WorkoutCount      int
	WorkoutMinutes    int
	NotesCount        int64
}

// SummaryService builds daily reports from the stored records.
type SummaryService struct {
	foods     *repository.FoodRepository
	workouts  *repository.WorkoutRepository
	notes     *repository.NoteRepository
	completer classifier.Completer
	log       *logger.Logger
}

func NewSummaryService(
	foods *repository.FoodRepository,
	workouts *repository.WorkoutRepository,
	notes *repository.NoteRepository,
	completer classifier.Completer,
	log *logger.Logger,
) *SummaryService {
	return &SummaryService{
		foods:     foods,
		workouts:  workouts,
		notes:     notes,
		completer: completer,
		log:       log.With("service", "summary"),
	}
}

// Daily aggregates the local day containing now.
func (s *SummaryService) Daily(ctx context.Context, user *model.User, now time.Time) (DailySummary, error) {
	from, to := dayBounds(now)

	totals, err := s.foods.TotalsBetween(ctx, user.ID, from, to)
	if err != nil {
		return DailySummary{}, fmt.Errorf("food totals: %w", err)
	}

	sessions, err := s.workouts.ListBetween(ctx, user.ID, from, to)
	if err != nil {
		return DailySummary{}, fmt.Errorf("workouts: %w", err)
	}
	workoutMins := 0
	for _, w := range sessions {
		if w.DurationMins != nil {
			workoutMins += *w.DurationMins
		}
	}

	notesCount, err := s.notes.CountBetween(ctx, user.ID, from, to)
	if err != nil {
		return DailySummary{}, fmt.Errorf("notes count: %w", err)
	}

	summary := DailySummary{
		Date:           from,
		TotalCalories:  totals.Calories,
		TotalProtein:   totals.Protein,
		TotalCarbs:     totals.Carbs,
		TotalFat:       totals.Fat,
		FoodEntries:    totals.Entries,
		WorkoutCount:   len(sessions),
		WorkoutMinutes: workoutMins,
		NotesCount:     notesCount,
	}
	if user.DailyCalorieTarget != nil {
		target := *user.DailyCalorieTarget
		remaining := target - totals.Calories
		summary.CaloriesTarget = &target
		summary.CaloriesRemaining = &remaining
	}
	return summary, nil
}

// Narrative asks the model for a short motivational wrap-up of the
// day. Falls back to a plain one-liner when the call fails, so the
// daily report never depends on the model being up.
func (s *SummaryService) Narrative(ctx context.Context, sum DailySummary) string {
	target := 0
	if sum.CaloriesTarget != nil {
		target = *sum.CaloriesTarget
	}

	prompt := llm.SummaryPrompt(
		sum.Date.Format("2006-01-02"),
		sum.TotalCalories, target,
		sum.TotalProtein, sum.TotalCarbs, sum.TotalFat,
		sum.FoodEntries, sum.WorkoutCount, sum.WorkoutMinutes, sum.NotesCount,
	)

	text, err := s.completer.Complete(ctx, "", prompt, narrativeMaxTokens)
	if err != nil {
		s.log.Warn("summary narrative fallback", "error", err.Error())
		return fmt.Sprintf("Summary for %s: %d/%d kcal, %d workout(s).",
			sum.Date.Format("2006-01-02"), sum.TotalCalories, target, sum.WorkoutCount)
	}
	return text
}
