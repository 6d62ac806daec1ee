package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"lifelog/internal/model"
	"lifelog/internal/service"
)

// Telegram message character limit.
const tgMaxMessage = 4096

func escape(s string) string {
	return html.EscapeString(s)
}

func fmtTimestamp(t time.Time) string {
	return t.Format("Jan 02, 2006 · 3:04 PM")
}

// chunks splits text into <=4096-char pieces on line boundaries.
func chunks(text string) []string {
	if len(text) <= tgMaxMessage {
		return []string{text}
	}
	var parts []string
	var buf strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if buf.Len()+len(line) > tgMaxMessage && buf.Len() > 0 {
			parts = append(parts, buf.String())
			buf.Reset()
		}
		buf.WriteString(line)
	}
	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}

func formatNoteList(header string, notes []model.Note) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if len(notes) == 0 {
		b.WriteString("<i>No notes found.</i>")
		return b.String()
	}
	for i, note := range notes {
		fmt.Fprintf(&b, "<b>%d. %s</b>\n", i+1, escape(note.Summary))
		fmt.Fprintf(&b, "<i>%s</i>\n", fmtTimestamp(note.CreatedAt))
		if len(note.Tags) > 0 {
			fmt.Fprintf(&b, "🏷 %s\n", escape(strings.Join(note.Tags, ", ")))
		}
		b.WriteString(escape(note.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

func formatDailySummary(sum service.DailySummary, user *model.User) string {
	var b strings.Builder
	b.WriteString("📊 <b>Daily Summary</b>\n")
	fmt.Fprintf(&b, "<i>%s</i>\n\n", sum.Date.Format("Monday, January 02, 2006"))

	b.WriteString("<b>🍽 Nutrition</b>\n")
	if sum.FoodEntries > 0 {
		fmt.Fprintf(&b, "Calories: %d", sum.TotalCalories)
		if sum.CaloriesTarget != nil && sum.CaloriesRemaining != nil {
			rem := *sum.CaloriesRemaining
			icon, word := "✅", "remaining"
			if rem < 0 {
				icon, word = "⚠️", "over"
				rem = -rem
			}
			fmt.Fprintf(&b, " / %d %s (%d %s)", *sum.CaloriesTarget, icon, rem, word)
		}
		fmt.Fprintf(&b, "\nProtein: %.1fg · Carbs: %.1fg · Fat: %.1fg\n", sum.TotalProtein, sum.TotalCarbs, sum.TotalFat)
		fmt.Fprintf(&b, "Meals logged: %d\n", sum.FoodEntries)
	} else {
		b.WriteString("<i>No meals logged yet</i>\n")
	}

	b.WriteString("\n<b>💪 Activity</b>\n")
	if sum.WorkoutCount > 0 {
		fmt.Fprintf(&b, "Sessions: %d · Total: %d mins\n", sum.WorkoutCount, sum.WorkoutMinutes)
	} else {
		b.WriteString("<i>No workouts logged yet</i>\n")
	}

	b.WriteString("\n<b>📝 Notes</b>\n")
	if sum.NotesCount > 0 {
		fmt.Fprintf(&b, "Entries today: %d — use /notes to read them\n", sum.NotesCount)
	} else {
		b.WriteString("<i>No notes today</i>\n")
	}

	if user.CurrentWeight != nil && user.GoalWeight != nil {
		diff := *user.CurrentWeight - *user.GoalWeight
		fmt.Fprintf(&b, "\n<b>⚖️ Weight</b>\nCurrent: %.1fkg · Goal: %.1fkg\n", *user.CurrentWeight, *user.GoalWeight)
		if diff > 0 {
			fmt.Fprintf(&b, "To lose: %.1fkg\n", diff)
		} else {
			b.WriteString("🎉 Goal reached!\n")
		}
	}

	return strings.TrimSpace(b.String())
}

func formatProfile(user *model.User) string {
	var b strings.Builder
	b.WriteString("👤 <b>Your Profile</b>\n\n")
	if user.CurrentWeight != nil {
		fmt.Fprintf(&b, "Current Weight: %.1fkg\n", *user.CurrentWeight)
	} else {
		b.WriteString("Current Weight: <i>Not set</i>\n")
	}
	if user.GoalWeight != nil {
		fmt.Fprintf(&b, "Goal Weight: %.1fkg\n", *user.GoalWeight)
	} else {
		b.WriteString("Goal Weight: <i>Not set</i>\n")
	}
	if user.DailyCalorieTarget != nil {
		fmt.Fprintf(&b, "Daily Calorie Target: %d kcal\n", *user.DailyCalorieTarget)
	} else {
		b.WriteString("Daily Calorie Target: <i>Not set</i>\n")
	}
	b.WriteString("\n<b>Update:</b> /setweight · /setgoal · /settarget")
	return b.String()
}

func formatFoodConfirmation(out *service.Outcome) string {
	entry := out.Food
	var b strings.Builder
	fmt.Fprintf(&b, "🍽 <b>Logged:</b> %s\n\n", escape(entry.Description))
	fmt.Fprintf(&b, "• %d kcal\n", entry.Calories)
	fmt.Fprintf(&b, "• Protein: %.1fg · Carbs: %.1fg · Fat: %.1fg\n\n", entry.Protein, entry.Carbs, entry.Fat)
	fmt.Fprintf(&b, "<b>Today's total:</b> %d kcal (%d entries)", out.FoodToday.Calories, out.FoodToday.Entries)
	return b.String()
}

func formatWorkoutConfirmation(out *service.Outcome) string {
	entry := out.Workout
	var b strings.Builder
	fmt.Fprintf(&b, "💪 <b>Logged:</b> %s\n\n", escape(entry.ActivityType))
	if entry.DurationMins != nil {
		fmt.Fprintf(&b, "⏱ %d mins", *entry.DurationMins)
	} else {
		b.WriteString("⏱ duration unknown")
	}
	if entry.DistanceKm != nil {
		fmt.Fprintf(&b, " · 📏 %.1f km", *entry.DistanceKm)
	}
	if entry.Notes != "" {
		fmt.Fprintf(&b, "\n<i>%s</i>", escape(entry.Notes))
	}
	fmt.Fprintf(&b, "\n\n<b>Today's activity:</b> %d mins total", out.WorkoutMinsToday)
	return b.String()
}

func formatNoteConfirmation(out *service.Outcome) string {
	note := out.Note
	var b strings.Builder
	fmt.Fprintf(&b, "📝 <b>Note saved</b>\n<i>%s</i>", escape(note.Summary))
	if len(note.Tags) > 0 {
		fmt.Fprintf(&b, "\n🏷 %s", escape(strings.Join(note.Tags, ", ")))
	}
	b.WriteString("\n\nUse /notes to read your notes.")
	return b.String()
}
