package bot

import (
	"strings"
	"testing"
	"time"

	"lifelog/internal/model"
	"lifelog/internal/service"
)

func TestChunksShortTextIsOnePiece(t *testing.T) {
	parts := chunks("hello")
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("parts=%v", parts)
	}
}

func TestChunksSplitsOnLineBoundaries(t *testing.T) {
	line := strings.Repeat("x", 100) + "\n"
	text := strings.Repeat(line, 60) // ~6060 chars

	parts := chunks(text)
	if len(parts) < 2 {
		t.Fatalf("expected a split, got %d part(s)", len(parts))
	}
	var total int
	for _, p := range parts {
		if len(p) > tgMaxMessage {
			t.Fatalf("part exceeds telegram limit: %d", len(p))
		}
		if p != "" && !strings.HasSuffix(p, "\n") && p != parts[len(parts)-1] {
			t.Fatalf("part should end on a line boundary: %q", p[len(p)-10:])
		}
		total += len(p)
	}
	if total != len(text) {
		t.Fatalf("chunks lost text: %d != %d", total, len(text))
	}
}

func TestFormatFoodConfirmationEscapesHTML(t *testing.T) {
	out := &service.Outcome{
		Food: &model.FoodEntry{Description: "Fish <&> chips", Calories: 800},
	}
	msg := formatFoodConfirmation(out)
	if strings.Contains(msg, "<&>") {
		t.Fatal("description must be HTML-escaped")
	}
	if !strings.Contains(msg, "800 kcal") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestFormatWorkoutConfirmationUnknownDuration(t *testing.T) {
	out := &service.Outcome{
		Workout: &model.WorkoutEntry{ActivityType: "Yoga"},
	}
	msg := formatWorkoutConfirmation(out)
	if !strings.Contains(msg, "duration unknown") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestFormatDailySummaryOverTarget(t *testing.T) {
	target := 2000
	remaining := -150
	sum := service.DailySummary{
		Date:              time.Now(),
		TotalCalories:     2150,
		FoodEntries:       3,
		CaloriesTarget:    &target,
		CaloriesRemaining: &remaining,
	}
	msg := formatDailySummary(sum, &model.User{})
	if !strings.Contains(msg, "150 over") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestFormatDailySummaryEmptyDay(t *testing.T) {
	msg := formatDailySummary(service.DailySummary{Date: time.Now()}, &model.User{})
	for _, want := range []string{"No meals logged yet", "No workouts logged yet", "No notes today"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in %q", want, msg)
		}
	}
}

func TestFormatNoteListEmpty(t *testing.T) {
	msg := formatNoteList("📝 Notes", nil)
	if !strings.Contains(msg, "No notes found") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestFormatNoteListEntries(t *testing.T) {
	notes := []model.Note{
		{Content: "Buy milk & bread", Summary: "Groceries", Tags: []string{"errand"}},
	}
	msg := formatNoteList("📝 Notes", notes)
	if !strings.Contains(msg, "Groceries") || !strings.Contains(msg, "errand") {
		t.Fatalf("msg=%q", msg)
	}
	if strings.Contains(msg, "milk & bread") {
		t.Fatal("content must be HTML-escaped")
	}
}
