package habit

import (
	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
)

// ShouldShow reports whether a habit belongs on the board for the selected
// date. Daily habits always show. Weekly habits show every day when their
// weekday is "any", otherwise only on their fixed weekday.
func ShouldShow(h models.Habit, selectedDate string) bool {
	switch h.Type {
	case constants.HabitWeekly:
		if h.Weekday == constants.WeekdayAny {
			return true
		}
		return h.Weekday == DayOfWeek(selectedDate)
	default:
		return true
	}
}

// CompletionCount counts how many days within the selected date's week the
// habit was completed. Only completed entries inside the Saturday-start
// window count toward the weekly quota.
func CompletionCount(habitID, selectedDate string, completions []models.HabitCompletion) int {
	start, end, err := WeekRange(selectedDate)
	if err != nil {
		return 0
	}
	n := 0
	for _, c := range completions {
		if c.HabitID == habitID && c.Completed && c.Date >= start && c.Date <= end {
			n++
		}
	}
	return n
}

// IsCompleted reports whether the habit is completed on the selected date.
func IsCompleted(h models.Habit, selectedDate string, completions []models.HabitCompletion) bool {
	for _, c := range completions {
		if c.HabitID == h.ID && c.Completed && c.Date == selectedDate {
			return true
		}
	}
	return false
}

// IsDisabled reports whether the habit's checkbox should be inert on the
// selected date. A fixed-weekday weekly habit is disabled on every other
// day. An "any" weekly habit is disabled once the week's quota is reached,
// except on days it was completed, which stay active so the completion can
// be undone. Daily habits are never disabled.
func IsDisabled(h models.Habit, selectedDate string, completions []models.HabitCompletion) bool {
	if h.Type != constants.HabitWeekly {
		return false
	}

	if h.Weekday == constants.WeekdayAny {
		if IsCompleted(h, selectedDate, completions) {
			return false
		}
		return CompletionCount(h.ID, selectedDate, completions) >= h.RepeatOrDefault()
	}

	return h.Weekday != DayOfWeek(selectedDate)
}

// VisibleHabits filters the catalog down to what the selected date's board
// shows: active habits the user's level unlocks, scheduled for that day.
func VisibleHabits(habits []models.Habit, user models.User, selectedDate string) []models.Habit {
	var out []models.Habit
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		if !CanAccess(user, h) {
			continue
		}
		if !ShouldShow(h, selectedDate) {
			continue
		}
		out = append(out, h)
	}
	return out
}
