package classifier

import (
	"context"
	"errors"
	"testing"
)

type completerFunc func(ctx context.Context, system, user string, maxTokens int) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	return f(ctx, system, user, maxTokens)
}

func TestClassifyRejectsBlankBeforeCalling(t *testing.T) {
	called := false
	cls := New(completerFunc(func(context.Context, string, string, int) (string, error) {
		called = true
		return "", nil
	}))

	_, err := cls.Classify(context.Background(), "   \n\t", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "message" {
		t.Fatalf("want validation error on message, got %v", err)
	}
	if called {
		t.Fatal("completer should not be called for a blank message")
	}
}

func TestClassifyWrapsTransportError(t *testing.T) {
	sentinel := errors.New("upstream down")
	cls := New(completerFunc(func(context.Context, string, string, int) (string, error) {
		return "", sentinel
	}))

	_, err := cls.Classify(context.Background(), "Had eggs for breakfast", nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("transport error should be wrapped, got %v", err)
	}
	if errors.Is(err, ErrUnclassified) {
		t.Fatal("transport failure must not look like a classification failure")
	}
}

func TestClassifyParsesReply(t *testing.T) {
	cls := New(completerFunc(func(_ context.Context, _, user string, _ int) (string, error) {
		if user == "" {
			t.Fatal("user prompt should carry the message text")
		}
		return `{"type": "workout", "confidence": 0.9, "activity_type": "Running", "duration_mins": 30}`, nil
	}))

	res, err := cls.Classify(context.Background(), "Went for a 30 minute run", nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Kind != KindWorkout || res.Workout.ActivityType != "Running" {
		t.Fatalf("res=%+v", res)
	}
	if res.Workout.DurationMins == nil || *res.Workout.DurationMins != 30 {
		t.Fatalf("duration=%v", res.Workout.DurationMins)
	}
}
