package migration_test

import (
	"path/filepath"
	"testing"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/migration"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s := sqlite.NewStore(filepath.Join(t.TempDir(), "kervan.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConsolidateHabitLogs(t *testing.T) {
	s := newTestStore(t)

	logs := []models.HabitLog{
		{ID: "l1", UserID: "u1", HabitID: "h1", Date: "2024-03-10", Completed: true, State: constants.StateApproved},
		{ID: "l2", UserID: "u1", HabitID: "h1", Date: "2024-03-11", Completed: true, State: constants.StateApproved},
		{ID: "l3", UserID: "u1", HabitID: "h1", Date: "2024-03-12", Completed: false, State: constants.StateCancelled},
		{ID: "l4", UserID: "u1", HabitID: "h2", Date: "2024-03-10", Completed: true, State: constants.StatePending},
		{ID: "l5", UserID: "u2", HabitID: "h1", Date: "2024-03-10", Completed: true, State: constants.StateApproved},
	}
	for _, l := range logs {
		if err := s.AddHabitLog(l); err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	migrated, err := migration.ConsolidateHabitLogs(s, nil)
	if err != nil {
		t.Fatalf("ConsolidateHabitLogs failed: %v", err)
	}
	if migrated != 3 {
		t.Errorf("migrated = %d, want 3", migrated)
	}

	r, err := s.GetCompletionRecord("u1", "h1", constants.KindHabit)
	if err != nil {
		t.Fatalf("GetCompletionRecord failed: %v", err)
	}
	if len(r.Dates) != 2 || r.Progress != 2 {
		t.Errorf("expected 2 consolidated dates, got dates=%v progress=%d", r.Dates, r.Progress)
	}
	if r.HasDate("2024-03-12") {
		t.Error("cancelled log must not contribute a date")
	}
	if !r.Completed {
		t.Error("consolidated record should be completed")
	}
}

func TestConsolidateHabitLogsIsRerunnable(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddHabitLog(models.HabitLog{
		ID: "l1", UserID: "u1", HabitID: "h1", Date: "2024-03-10",
		Completed: true, State: constants.StateApproved,
	}); err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := migration.ConsolidateHabitLogs(s, nil); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	r, err := s.GetCompletionRecord("u1", "h1", constants.KindHabit)
	if err != nil {
		t.Fatalf("GetCompletionRecord failed: %v", err)
	}
	if len(r.Dates) != 1 {
		t.Errorf("re-run must not duplicate dates, got %v", r.Dates)
	}
}

func TestConsolidateHabitLogsEmpty(t *testing.T) {
	s := newTestStore(t)

	migrated, err := migration.ConsolidateHabitLogs(s, nil)
	if err != nil {
		t.Fatalf("ConsolidateHabitLogs failed: %v", err)
	}
	if migrated != 0 {
		t.Errorf("migrated = %d, want 0", migrated)
	}
}

func TestConsolidateHabitLogsStateIsDeterministic(t *testing.T) {
	s := newTestStore(t)

	// Mixed states for the same habit, seeded newest-first: the consolidated
	// record must end in the latest date's state regardless of input order.
	logs := []models.HabitLog{
		{ID: "l1", UserID: "u1", HabitID: "h1", Date: "2024-03-12", Completed: true, State: constants.StatePending},
		{ID: "l2", UserID: "u1", HabitID: "h1", Date: "2024-03-10", Completed: true, State: constants.StateApproved},
		{ID: "l3", UserID: "u1", HabitID: "h1", Date: "2024-03-11", Completed: true, State: constants.StateApproved},
	}
	for _, l := range logs {
		if err := s.AddHabitLog(l); err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	if _, err := migration.ConsolidateHabitLogs(s, nil); err != nil {
		t.Fatalf("ConsolidateHabitLogs failed: %v", err)
	}

	r, err := s.GetCompletionRecord("u1", "h1", constants.KindHabit)
	if err != nil {
		t.Fatalf("GetCompletionRecord failed: %v", err)
	}
	if r.State != constants.StatePending {
		t.Errorf("state = %s, want %s (latest date's state)", r.State, constants.StatePending)
	}
	if len(r.Dates) != 3 {
		t.Errorf("expected 3 dates, got %v", r.Dates)
	}
}
