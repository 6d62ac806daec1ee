package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"lifelog/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user, err := NewUserRepository(db).UpsertFromTelegram(context.Background(), 42, "Test", "", "tester")
	if err != nil {
		t.Fatalf("UpsertFromTelegram: %v", err)
	}
	return user
}

func TestUpsertFromTelegramIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.UpsertFromTelegram(ctx, 7, "Ann", "", "ann")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.DailyCalorieTarget == nil || *first.DailyCalorieTarget != 2000 {
		t.Fatalf("new user should get the default calorie target, got %v", first.DailyCalorieTarget)
	}

	second, err := repo.UpsertFromTelegram(ctx, 7, "Ann", "Lee", "ann")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("same telegram id must map to one user: %d vs %d", first.ID, second.ID)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := newTestUser(t, db)
	ctx := context.Background()

	weight := 82.5
	updated, err := repo.UpdateProfile(ctx, user.ID, ProfileUpdate{CurrentWeight: &weight})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.CurrentWeight == nil || *updated.CurrentWeight != 82.5 {
		t.Fatalf("weight=%v", updated.CurrentWeight)
	}
	if updated.DailyCalorieTarget == nil || *updated.DailyCalorieTarget != 2000 {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestNoteSearchAndRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	for _, content := range []string{"Call the dentist on Monday", "Great idea for the garden", "Dentist moved to Friday"} {
		if err := repo.Create(ctx, &model.Note{UserID: user.ID, Content: content, Summary: content, Tags: []string{}}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	found, err := repo.Search(ctx, user.ID, "DENTIST", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("search hits=%d", len(found))
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	inRange, err := repo.ListBetween(ctx, user.ID, from, to)
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(inRange) != 3 {
		t.Fatalf("range hits=%d", len(inRange))
	}

	count, err := repo.CountBetween(ctx, user.ID, from, to)
	if err != nil {
		t.Fatalf("CountBetween: %v", err)
	}
	if count != 3 {
		t.Fatalf("count=%d", count)
	}

	empty, err := repo.ListBetween(ctx, user.ID, to, to.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBetween empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("future range should be empty, got %d", len(empty))
	}
}

func TestNotesDoNotLeakBetweenUsers(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	notes := NewNoteRepository(db)
	ctx := context.Background()

	alice, _ := users.UpsertFromTelegram(ctx, 1, "Alice", "", "")
	bob, _ := users.UpsertFromTelegram(ctx, 2, "Bob", "", "")

	if err := notes.Create(ctx, &model.Note{UserID: alice.ID, Content: "secret plan", Summary: "secret plan", Tags: []string{}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := notes.ListRecent(ctx, bob.ID, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("one user's notes must not be visible to another")
	}

	if err := notes.Delete(ctx, bob.ID, 1); err == nil {
		t.Fatal("deleting someone else's note must fail")
	}
}

func TestFoodTotalsBetween(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewFoodRepository(db)
	ctx := context.Background()

	entries := []model.FoodEntry{
		{UserID: user.ID, Description: "Oatmeal", Calories: 300, Protein: 10, Carbs: 50, Fat: 5},
		{UserID: user.ID, Description: "Salad", Calories: 450, Protein: 35, Carbs: 20, Fat: 28},
	}
	for i := range entries {
		if err := repo.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	totals, err := repo.TotalsBetween(ctx, user.ID, from, to)
	if err != nil {
		t.Fatalf("TotalsBetween: %v", err)
	}
	if totals.Calories != 750 || totals.Protein != 45 || totals.Entries != 2 {
		t.Fatalf("totals=%+v", totals)
	}

	empty, err := repo.TotalsBetween(ctx, user.ID, to, to.Add(time.Hour))
	if err != nil {
		t.Fatalf("TotalsBetween empty: %v", err)
	}
	if empty.Calories != 0 || empty.Entries != 0 {
		t.Fatalf("empty range totals=%+v", empty)
	}
}

func TestWorkoutRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	mins := 30
	km := 5.2
	entry := &model.WorkoutEntry{UserID: user.ID, ActivityType: "Running", DurationMins: &mins, DistanceKm: &km}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListBetween(ctx, user.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d", len(got))
	}
	w := got[0]
	if w.ActivityType != "Running" || w.DurationMins == nil || *w.DurationMins != 30 || w.DistanceKm == nil || *w.DistanceKm != 5.2 {
		t.Fatalf("workout=%+v", w)
	}
}
