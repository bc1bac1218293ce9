package storage

import (
	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	GetUser(id string) (models.User, error)
	SaveUser(models.User) error
	// AdjustUserRewards applies gold and life deltas atomically, clamping
	// gold at zero and lives to [0, maxHealth].
	AdjustUserRewards(id string, goldDelta, livesDelta int) (models.User, error)
	// FixUserHealth backfills a missing maxHealth and clamps lives down to
	// it. Returns the repaired record and whether a write happened.
	FixUserHealth(id string) (models.User, bool, error)

	// Habit catalog (read-only for the client; writes exist for seeding)
	GetActiveHabits() ([]models.Habit, error)
	GetHabit(id string) (models.Habit, error)
	SaveHabit(models.Habit) error

	// Completions (per-item date-array records)
	GetCompletionsForDate(userID, date string, kind constants.CompletionKind) ([]models.HabitCompletion, error)
	GetCompletionsForRange(userID, start, end string, kind constants.CompletionKind) ([]models.HabitCompletion, error)
	GetCompletionRecord(userID, itemID string, kind constants.CompletionKind) (models.CompletionRecord, error)
	IsItemCompleted(userID, itemID, date string, kind constants.CompletionKind) (bool, error)
	// CompleteItem records a completion for the date. Idempotent per date:
	// an already-present date leaves the record untouched.
	CompleteItem(userID, itemID, date string, kind constants.CompletionKind, state constants.ApprovalState) (models.CompletionRecord, error)
	// UncompleteItem removes the date. Draining the array marks the record
	// not-completed with state cancelled.
	UncompleteItem(userID, itemID, date string, kind constants.CompletionKind) (models.CompletionRecord, error)

	// Quests and sliders
	GetActiveQuests() ([]models.Quest, error)
	GetQuest(id string) (models.Quest, error)
	SaveQuest(models.Quest) error
	GetSliders(page string) ([]models.Slider, error)
	SaveSlider(models.Slider) error

	// Legacy flat logs, read-side source for the one-time consolidation
	GetAllHabitLogs() ([]models.HabitLog, error)
	AddHabitLog(models.HabitLog) error

	// Utils
	GetConfigPath() string
}
