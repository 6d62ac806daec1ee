package service

import (
	"context"
	"strings"
	"time"

	"lifelog/internal/classifier"
	"lifelog/internal/logger"
	"lifelog/internal/model"
	"lifelog/internal/repository"
)

// MessageClassifier is what IngestService needs from the classifier.
type MessageClassifier interface {
	Classify(ctx context.Context, text string, recentContext []string) (classifier.Result, error)
}

// Outcome tells the transport what happened to a message. Exactly one
// of the record pointers matching Kind is set; KindAnswer carries only
// the answer text and writes nothing.
type Outcome struct {
	Kind   classifier.Kind
	Answer string

	Note    *model.Note
	Food    *model.FoodEntry
	Workout *model.WorkoutEntry

	// Running day totals, filled for food and workout confirmations.
	FoodToday        repository.NutritionTotals
	WorkoutMinsToday int
}

// IngestService runs the classify-validate-persist flow for one
// inbound message. It holds no per-message state; concurrent calls for
// different users are safe.
type IngestService struct {
	classifier MessageClassifier
	notes      *repository.NoteRepository
	foods      *repository.FoodRepository
	workouts   *repository.WorkoutRepository
	recent     *ContextCache
	log        *logger.Logger
}

func NewIngestService(
	cls MessageClassifier,
	notes *repository.NoteRepository,
	foods *repository.FoodRepository,
	workouts *repository.WorkoutRepository,
	recent *ContextCache,
	log *logger.Logger,
) *IngestService {
	return &IngestService{
		classifier: cls,
		notes:      notes,
		foods:      foods,
		workouts:   workouts,
		recent:     recent,
		log:        log.With("service", "ingest"),
	}
}

// Process handles one message end to end. Nothing is written until
// validation has passed, so any error means no partial state.
func (s *IngestService) Process(ctx context.Context, user *model.User, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &classifier.ValidationError{Field: "message"}
	}

	recentContext := s.recent.Recent(ctx, user.TelegramID)

	result, err := s.classifier.Classify(ctx, text, recentContext)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Kind: result.Kind}

	switch result.Kind {
	case classifier.KindAnswer:
		outcome.Answer = result.Answer

	case classifier.KindNote:
		note, err := classifier.NormalizeNote(result.Note)
		if err != nil {
			return nil, err
		}
		note.UserID = user.ID
		if err := s.notes.Create(ctx, note); err != nil {
			return nil, err
		}
		outcome.Note = note

	case classifier.KindFood:
		entry, err := classifier.NormalizeFood(result.Food)
		if err != nil {
			return nil, err
		}
		entry.UserID = user.ID
		if err := s.foods.Create(ctx, entry); err != nil {
			return nil, err
		}
		outcome.Food = entry
		from, to := dayBounds(time.Now())
		if totals, err := s.foods.TotalsBetween(ctx, user.ID, from, to); err == nil {
			outcome.FoodToday = totals
		}

	case classifier.KindWorkout:
		entry, err := classifier.NormalizeWorkout(result.Workout)
		if err != nil {
			return nil, err
		}
		entry.UserID = user.ID
		if err := s.workouts.Create(ctx, entry); err != nil {
			return nil, err
		}
		outcome.Workout = entry
		from, to := dayBounds(time.Now())
		if sessions, err := s.workouts.ListBetween(ctx, user.ID, from, to); err == nil {
			for _, w := range sessions {
				if w.DurationMins != nil {
					outcome.WorkoutMinsToday += *w.DurationMins
				}
			}
		}

	default:
		return nil, classifier.ErrUnclassified
	}

	s.recent.Remember(ctx, user.TelegramID, text)
	s.log.Info("message handled", "telegram_id", user.TelegramID, "kind", string(result.Kind), "confidence", result.Confidence)
	return outcome, nil
}

// dayBounds returns [start, end) of the local day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
