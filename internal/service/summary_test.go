package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lifelog/internal/logger"
	"lifelog/internal/model"
	"lifelog/internal/repository"
)

type completerFunc func(ctx context.Context, system, user string, maxTokens int) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	return f(ctx, system, user, maxTokens)
}

func TestDailyAggregates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, err := repository.NewUserRepository(db).UpsertFromTelegram(ctx, 42, "Test", "", "")
	if err != nil {
		t.Fatalf("UpsertFromTelegram: %v", err)
	}

	foods := repository.NewFoodRepository(db)
	workouts := repository.NewWorkoutRepository(db)
	notes := repository.NewNoteRepository(db)

	if err := foods.Create(ctx, &model.FoodEntry{UserID: user.ID, Description: "Oatmeal", Calories: 300, Protein: 10}); err != nil {
		t.Fatalf("food: %v", err)
	}
	if err := foods.Create(ctx, &model.FoodEntry{UserID: user.ID, Description: "Salad", Calories: 450, Protein: 35}); err != nil {
		t.Fatalf("food: %v", err)
	}
	mins := 30
	if err := workouts.Create(ctx, &model.WorkoutEntry{UserID: user.ID, ActivityType: "Running", DurationMins: &mins}); err != nil {
		t.Fatalf("workout: %v", err)
	}
	if err := workouts.Create(ctx, &model.WorkoutEntry{UserID: user.ID, ActivityType: "Yoga"}); err != nil {
		t.Fatalf("workout: %v", err)
	}
	if err := notes.Create(ctx, &model.Note{UserID: user.ID, Content: "idea", Summary: "idea", Tags: []string{}}); err != nil {
		t.Fatalf("note: %v", err)
	}

	svc := NewSummaryService(foods, workouts, notes, nil, logger.NewNop())
	sum, err := svc.Daily(ctx, user, time.Now())
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}

	if sum.TotalCalories != 750 || sum.TotalProtein != 45 || sum.FoodEntries != 2 {
		t.Fatalf("food totals=%+v", sum)
	}
	if sum.WorkoutCount != 2 || sum.WorkoutMinutes != 30 {
		t.Fatalf("workout totals=%+v", sum)
	}
	if sum.NotesCount != 1 {
		t.Fatalf("notes=%d", sum.NotesCount)
	}
	if sum.CaloriesTarget == nil || *sum.CaloriesTarget != 2000 {
		t.Fatalf("target=%v", sum.CaloriesTarget)
	}
	if sum.CaloriesRemaining == nil || *sum.CaloriesRemaining != 1250 {
		t.Fatalf("remaining=%v", sum.CaloriesRemaining)
	}
}

func TestNarrativeFallsBackWhenModelDown(t *testing.T) {
	svc := NewSummaryService(nil, nil, nil, completerFunc(func(context.Context, string, string, int) (string, error) {
		return "", errors.New("upstream down")
	}), logger.NewNop())

	target := 2000
	text := svc.Narrative(context.Background(), DailySummary{
		Date:           time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		TotalCalories:  750,
		CaloriesTarget: &target,
		WorkoutCount:   1,
	})
	if text == "" {
		t.Fatal("fallback narrative must not be empty")
	}
	if !strings.Contains(text, "750") || !strings.Contains(text, "2026-08-29") {
		t.Fatalf("fallback=%q", text)
	}
}

func TestNarrativeUsesModelReply(t *testing.T) {
	svc := NewSummaryService(nil, nil, nil, completerFunc(func(_ context.Context, _, user string, _ int) (string, error) {
		if user == "" {
			t.Fatal("summary prompt should not be empty")
		}
		return "Great day, keep it up!", nil
	}), logger.NewNop())

	text := svc.Narrative(context.Background(), DailySummary{Date: time.Now()})
	if text != "Great day, keep it up!" {
		t.Fatalf("narrative=%q", text)
	}
}
