package models

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
)

// Habit is a catalog entry. The client only reads active habits; creation
// and editing happen through back-office tooling.
type Habit struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Icon        string              `json:"icon,omitempty"`
	GoldReward  int                 `json:"gold_reward"`
	CanReward   int                 `json:"can_reward"` // life delta on completion
	Points      int                 `json:"points"`
	Type        constants.HabitType `json:"type"`
	Repeat      int                 `json:"repeat,omitempty"`  // weekly quota when Weekday == "any"
	Weekday     string              `json:"weekday,omitempty"` // day name, or "any"
	IsActive    bool                `json:"is_active"`
	Makam       int                 `json:"makam"`
	Approval    string              `json:"approval,omitempty"` // "manual" routes completions to review
	CreatedAt   time.Time           `json:"created_at"`
}

// RepeatOrDefault returns the weekly quota, treating an unset value as 1.
func (h Habit) RepeatOrDefault() int {
	if h.Repeat <= 0 {
		return 1
	}
	return h.Repeat
}
