package migration

import (
	"fmt"
	"sort"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/storage"
)

// ConsolidateHabitLogs folds the legacy flat habit_logs rows into per-item
// date-array completion records. Only completed, non-cancelled rows
// contribute a date; duplicates collapse because CompleteItem is idempotent
// per date. The legacy rows are left in place so the pass can be re-run.
func ConsolidateHabitLogs(store storage.Provider, logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	logs, err := store.GetAllHabitLogs()
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy habit logs: %w", err)
	}

	if len(logs) == 0 {
		logFn("No legacy habit logs found")
		return 0, nil
	}

	type key struct{ userID, habitID string }
	grouped := make(map[key][]models.HabitLog)
	for _, l := range logs {
		k := key{l.UserID, l.HabitID}
		grouped[k] = append(grouped[k], l)
	}

	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].userID != keys[j].userID {
			return keys[i].userID < keys[j].userID
		}
		return keys[i].habitID < keys[j].habitID
	})

	logFn(fmt.Sprintf("Consolidating %d legacy log(s) across %d habit record(s)...", len(logs), len(keys)))

	migrated := 0
	for _, k := range keys {
		dates := make(map[string]constants.ApprovalState)
		for _, l := range grouped[k] {
			if !l.Completed || l.State == constants.StateCancelled {
				continue
			}
			state := l.State
			if state == "" {
				state = constants.StateApproved
			}
			dates[l.Date] = state
		}
		if len(dates) == 0 {
			continue
		}

		// Sorted so the record's final state is always the latest date's.
		sortedDates := make([]string, 0, len(dates))
		for d := range dates {
			sortedDates = append(sortedDates, d)
		}
		sort.Strings(sortedDates)

		for _, date := range sortedDates {
			if _, err := store.CompleteItem(k.userID, k.habitID, date, constants.KindHabit, dates[date]); err != nil {
				return migrated, fmt.Errorf("failed to migrate logs for user %s habit %s: %w", k.userID, k.habitID, err)
			}
		}
		migrated++
	}

	logFn(fmt.Sprintf("Consolidated %d habit record(s)", migrated))
	return migrated, nil
}
