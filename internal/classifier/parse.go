package classifier

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseResult decodes the model reply into the closed set of known
// shapes. Open-ended maps never leave this file.
func parseResult(raw string) (Result, error) {
	raw = stripFences(raw)

	var envelope struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return Result{}, fmt.Errorf("%w: invalid JSON from model", ErrUnclassified)
	}

	res := Result{Confidence: envelope.Confidence}

	switch Kind(envelope.Type) {
	case KindAnswer:
		var payload struct {
			Answer string `json:"answer"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return Result{}, fmt.Errorf("%w: bad question payload", ErrUnclassified)
		}
		if strings.TrimSpace(payload.Answer) == "" {
			return Result{}, fmt.Errorf("%w: question without answer text", ErrUnclassified)
		}
		res.Kind = KindAnswer
		res.Answer = strings.TrimSpace(payload.Answer)
		return res, nil

	case KindNote:
		var payload struct {
			Content string          `json:"content"`
			Summary string          `json:"summary"`
			Tags    json.RawMessage `json:"tags"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return Result{}, fmt.Errorf("%w: bad note payload", ErrUnclassified)
		}
		res.Kind = KindNote
		res.Note = &NoteCandidate{
			Content: strings.TrimSpace(payload.Content),
			Summary: strings.TrimSpace(payload.Summary),
			Tags:    asStringSlice(payload.Tags),
		}
		return res, nil

	case KindFood:
		var payload struct {
			FoodDescription string          `json:"food_description"`
			Calories        json.RawMessage `json:"calories"`
			Protein         json.RawMessage `json:"protein"`
			Carbs           json.RawMessage `json:"carbs"`
			Fat             json.RawMessage `json:"fat"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return Result{}, fmt.Errorf("%w: bad food payload", ErrUnclassified)
		}
		res.Kind = KindFood
		res.Food = &FoodCandidate{
			Description: strings.TrimSpace(payload.FoodDescription),
			Calories:    asInt(payload.Calories),
			Protein:     asFloat(payload.Protein),
			Carbs:       asFloat(payload.Carbs),
			Fat:         asFloat(payload.Fat),
		}
		return res, nil

	case KindWorkout:
		var payload struct {
			ActivityType string          `json:"activity_type"`
			DurationMins json.RawMessage `json:"duration_mins"`
			DistanceKm   json.RawMessage `json:"distance_km"`
			Notes        string          `json:"notes"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return Result{}, fmt.Errorf("%w: bad workout payload", ErrUnclassified)
		}
		res.Kind = KindWorkout
		res.Workout = &WorkoutCandidate{
			ActivityType: strings.TrimSpace(payload.ActivityType),
			DurationMins: asInt(payload.DurationMins),
			DistanceKm:   asFloat(payload.DistanceKm),
			Notes:        strings.TrimSpace(payload.Notes),
		}
		return res, nil

	default:
		return Result{}, fmt.Errorf("%w: unknown type tag %q", ErrUnclassified, envelope.Type)
	}
}

// stripFences removes accidental markdown code fences around the JSON.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// asFloat accepts numbers, numeric strings and null. Anything else
// counts as absent.
func asFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &v
		}
	}
	return nil
}

func asInt(raw json.RawMessage) *int {
	f := asFloat(raw)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

func asStringSlice(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	out := tags[:0]
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
