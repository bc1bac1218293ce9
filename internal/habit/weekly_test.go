package habit

import (
	"testing"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
)

func completion(habitID, date string) models.HabitCompletion {
	return models.HabitCompletion{
		ID:        habitID + "_" + date,
		HabitID:   habitID,
		UserID:    "u1",
		Date:      date,
		Completed: true,
	}
}

func TestShouldShow(t *testing.T) {
	tests := []struct {
		name string
		h    models.Habit
		date string
		want bool
	}{
		{"daily always shows", models.Habit{Type: constants.HabitDaily}, "2024-03-13", true},
		{"weekly any shows every day", models.Habit{Type: constants.HabitWeekly, Weekday: "any"}, "2024-03-13", true},
		{"weekly fixed shows on its day", models.Habit{Type: constants.HabitWeekly, Weekday: "Friday"}, "2024-03-15", true},
		{"weekly fixed hidden off-day", models.Habit{Type: constants.HabitWeekly, Weekday: "Friday"}, "2024-03-13", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldShow(tt.h, tt.date); got != tt.want {
				t.Errorf("ShouldShow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionCount(t *testing.T) {
	completions := []models.HabitCompletion{
		completion("h1", "2024-03-09"), // saturday, in window
		completion("h1", "2024-03-12"),
		completion("h1", "2024-03-15"), // friday, in window
		completion("h1", "2024-03-08"), // previous week
		completion("h1", "2024-03-16"), // next week
		completion("h2", "2024-03-12"), // other habit
	}

	if got := CompletionCount("h1", "2024-03-13", completions); got != 3 {
		t.Errorf("CompletionCount = %d, want 3", got)
	}
	if got := CompletionCount("h1", "2024-03-16", completions); got != 1 {
		t.Errorf("next-week CompletionCount = %d, want 1", got)
	}
	if got := CompletionCount("h1", "bogus", completions); got != 0 {
		t.Errorf("malformed date CompletionCount = %d, want 0", got)
	}
}

func TestCompletionCountIgnoresUncompleted(t *testing.T) {
	completions := []models.HabitCompletion{
		{HabitID: "h1", Date: "2024-03-12", Completed: false},
		completion("h1", "2024-03-13"),
	}
	if got := CompletionCount("h1", "2024-03-13", completions); got != 1 {
		t.Errorf("CompletionCount = %d, want 1", got)
	}
}

func TestIsDisabledAnyHabit(t *testing.T) {
	h := models.Habit{
		ID:      "h1",
		Type:    constants.HabitWeekly,
		Weekday: "any",
		Repeat:  2,
	}

	tests := []struct {
		name        string
		completions []models.HabitCompletion
		date        string
		want        bool
	}{
		{
			"no completions, enabled",
			nil,
			"2024-03-13",
			false,
		},
		{
			"below quota, enabled",
			[]models.HabitCompletion{completion("h1", "2024-03-10")},
			"2024-03-13",
			false,
		},
		{
			"quota reached, disabled on an uncompleted day",
			[]models.HabitCompletion{completion("h1", "2024-03-10"), completion("h1", "2024-03-11")},
			"2024-03-13",
			true,
		},
		{
			"quota reached but completed on the selected day stays active",
			[]models.HabitCompletion{completion("h1", "2024-03-10"), completion("h1", "2024-03-13")},
			"2024-03-13",
			false,
		},
		{
			"quota resets in the next week",
			[]models.HabitCompletion{completion("h1", "2024-03-10"), completion("h1", "2024-03-11")},
			"2024-03-16",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisabled(h, tt.date, tt.completions); got != tt.want {
				t.Errorf("IsDisabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDisabledUnsetRepeatDefaultsToOne(t *testing.T) {
	h := models.Habit{ID: "h1", Type: constants.HabitWeekly, Weekday: "any"}
	completions := []models.HabitCompletion{completion("h1", "2024-03-10")}

	if !IsDisabled(h, "2024-03-13", completions) {
		t.Error("quota of 1 should disable after a single completion")
	}
}

func TestIsDisabledFixedWeekday(t *testing.T) {
	h := models.Habit{ID: "h1", Type: constants.HabitWeekly, Weekday: "Friday"}

	if IsDisabled(h, "2024-03-15", nil) {
		t.Error("fixed-weekday habit should be active on its day")
	}
	// Off-day stays disabled even when that day carries a completion.
	completions := []models.HabitCompletion{completion("h1", "2024-03-13")}
	if !IsDisabled(h, "2024-03-13", completions) {
		t.Error("fixed-weekday habit should be disabled off-day")
	}
}

func TestIsDisabledDailyNever(t *testing.T) {
	h := models.Habit{ID: "h1", Type: constants.HabitDaily}
	if IsDisabled(h, "2024-03-13", nil) {
		t.Error("daily habit should never be disabled")
	}
}

func TestIsCompleted(t *testing.T) {
	h := models.Habit{ID: "h1", Type: constants.HabitWeekly, Weekday: "any"}
	completions := []models.HabitCompletion{completion("h1", "2024-03-13")}

	if !IsCompleted(h, "2024-03-13", completions) {
		t.Error("expected completed on 2024-03-13")
	}
	if IsCompleted(h, "2024-03-14", completions) {
		t.Error("expected not completed on 2024-03-14")
	}
}

func TestVisibleHabits(t *testing.T) {
	habits := []models.Habit{
		{ID: "daily", Type: constants.HabitDaily, IsActive: true},
		{ID: "inactive", Type: constants.HabitDaily, IsActive: false},
		{ID: "gated", Type: constants.HabitDaily, IsActive: true, Makam: 3},
		{ID: "friday", Type: constants.HabitWeekly, Weekday: "Friday", IsActive: true},
		{ID: "anyday", Type: constants.HabitWeekly, Weekday: "any", IsActive: true},
	}
	user := models.User{ID: "u1", Makam: 1}

	// 2024-03-13 is a Wednesday.
	got := VisibleHabits(habits, user, "2024-03-13")
	want := []string{"daily", "anyday"}
	if len(got) != len(want) {
		t.Fatalf("expected %d habits, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("habit %d = %s, want %s", i, got[i].ID, id)
		}
	}

	got = VisibleHabits(habits, user, "2024-03-15")
	if len(got) != 3 || got[1].ID != "friday" {
		t.Errorf("expected friday habit visible on Friday, got %v", ids(got))
	}
}

func ids(habits []models.Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.ID
	}
	return out
}
