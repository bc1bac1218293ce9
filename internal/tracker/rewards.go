package tracker

import "github.com/kervan-app/kervan/internal/models"

// Reward is the gold and life delta a habit pays out on completion.
type Reward struct {
	Gold  int
	Lives int
}

// RewardFor reads a habit's payout.
func RewardFor(h models.Habit) Reward {
	return Reward{Gold: h.GoldReward, Lives: h.CanReward}
}

// Inverse returns the opposite delta, used when a completion is undone.
func (r Reward) Inverse() Reward {
	return Reward{Gold: -r.Gold, Lives: -r.Lives}
}

// ApplyDelta returns the user with gold and life deltas applied. Gold never
// drops below zero and lives stays within [0, maxHealth]. The input is not
// mutated.
func ApplyDelta(u models.User, goldDelta, livesDelta int) models.User {
	u.Gold += goldDelta
	if u.Gold < 0 {
		u.Gold = 0
	}

	u.Lives += livesDelta
	if u.Lives < 0 {
		u.Lives = 0
	}
	if max := u.EffectiveMaxHealth(); u.Lives > max {
		u.Lives = max
	}
	return u
}
