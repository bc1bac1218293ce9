package models

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
)

// CompletionRecord is the per-item completion document: one record per
// (user, item) holding every date the item was completed. A date present in
// Dates means "completed on that date". Progress always equals len(Dates).
type CompletionRecord struct {
	ItemID      string                  `json:"item_id"`
	UserID      string                  `json:"user_id"`
	Kind        constants.CompletionKind `json:"kind"`
	Completed   bool                    `json:"completed"`
	CompletedAt time.Time               `json:"completed_at"`
	Dates       []string                `json:"dates"`
	Progress    int                     `json:"progress"`
	State       constants.ApprovalState `json:"state"`
}

// HasDate reports whether the record holds a completion for the given date.
func (r CompletionRecord) HasDate(date string) bool {
	for _, d := range r.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// HabitCompletion is the flattened per-date view consumed by the evaluator
// and the screen layer: one entry per (habit, date).
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
	GoldEarned  int       `json:"gold_earned"` // informational, recomputed from the habit
}

// Flatten expands a date-array record into per-date completions, keeping
// only dates within [start, end] inclusive. Pass "" bounds to keep all.
func (r CompletionRecord) Flatten(start, end string) []HabitCompletion {
	var out []HabitCompletion
	for _, d := range r.Dates {
		if start != "" && d < start {
			continue
		}
		if end != "" && d > end {
			continue
		}
		out = append(out, HabitCompletion{
			ID:          r.ItemID + "_" + d,
			HabitID:     r.ItemID,
			UserID:      r.UserID,
			Date:        d,
			Completed:   r.Completed,
			CompletedAt: r.CompletedAt,
		})
	}
	return out
}

// HabitLog is the legacy flat shape: one row per (user, habit, date),
// toggled between completed and cancelled. Kept only as the source for the
// one-time consolidation into CompletionRecord.
type HabitLog struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	HabitID   string                  `json:"habit_id"`
	Date      string                  `json:"date"`
	Completed bool                    `json:"completed"`
	State     constants.ApprovalState `json:"state"`
	CreatedAt time.Time               `json:"created_at"`
	Timestamp string                  `json:"timestamp,omitempty"`
}
