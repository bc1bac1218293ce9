package habit

import "github.com/kervan-app/kervan/internal/models"

// CanAccess reports whether a user's progression level unlocks a habit.
// An unset makam on either side behaves as level 0, so a habit without a
// level requirement is open to everyone.
func CanAccess(user models.User, h models.Habit) bool {
	return levelOrZero(user.Makam) >= levelOrZero(h.Makam)
}

// FilterByPermission keeps only the habits the user's level unlocks,
// preserving order.
func FilterByPermission(habits []models.Habit, user models.User) []models.Habit {
	var out []models.Habit
	for _, h := range habits {
		if CanAccess(user, h) {
			out = append(out, h)
		}
	}
	return out
}

func levelOrZero(level int) int {
	if level < 0 {
		return 0
	}
	return level
}
