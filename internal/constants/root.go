package constants

// SessionState represents the current state of the TUI application
type SessionState int

// HabitType represents how often a habit recurs
type HabitType string

// ApprovalState represents the review state of a completion record
type ApprovalState string

// CompletionKind selects which completion collection a record belongs to
type CompletionKind string

const (
	AppName            = "kervan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/kervan/kervan.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ProfileFileName holds the active profile id inside the config directory
	ProfileFileName = "profile"

	// Default user values applied when fields are absent in the store
	DefaultLives     = 5
	DefaultGold      = 0
	DefaultMakam     = 0
	DefaultMaxHealth = 100

	// MaxMakamLevel is the highest progression level
	MaxMakamLevel = 4

	// Habit type constants
	HabitDaily   HabitType = "daily"
	HabitWeekly  HabitType = "weekly"
	HabitMonthly HabitType = "monthly"

	// WeekdayAny marks a weekly habit completable on any day of the week
	WeekdayAny = "any"

	// Approval state constants
	StateApproved  ApprovalState = "approved"
	StatePending   ApprovalState = "pending"
	StateCancelled ApprovalState = "cancelled"

	// ApprovalManual on a catalog item routes its completions to review
	ApprovalManual = "manual"

	// Completion collections
	KindHabit CompletionKind = "habits"
	KindQuest CompletionKind = "quests"
)

// Session states
const (
	StateLogin SessionState = iota
	StateHabits
	StateQuests
	StateProfile
	StateQuestDetail
	StateError
)

// NumMainTabs is the count of tab-navigable states (Habits, Quests, Profile)
const NumMainTabs = 3

// MakamNames maps progression levels to their display names (index = level).
// The names come from the product's rank ladder and are shown as-is.
var MakamNames = []string{
	"Çalışkan Karınca",
	"Azimli Çekirge",
	"Pürdikkat Kertenkele",
	"Arif Karga",
	"İşlek Efendi",
}

// MakamName returns the display name for a progression level.
func MakamName(level int) string {
	if level < 0 || level >= len(MakamNames) {
		return "Bilinmeyen makam"
	}
	return MakamNames[level]
}

// IsValidMakamLevel reports whether level is within the rank ladder.
func IsValidMakamLevel(level int) bool {
	return level >= 0 && level <= MaxMakamLevel
}
