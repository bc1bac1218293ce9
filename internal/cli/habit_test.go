package cli

import (
	"path/filepath"
	"testing"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/session"
	"github.com/kervan-app/kervan/internal/storage/sqlite"
	"github.com/kervan-app/kervan/internal/utils"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()

	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	user := models.User{ID: "yolcu", Name: "Yolcu", Gold: 100, Lives: 50, Makam: 2, MaxHealth: 100}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("failed to save user: %v", err)
	}

	habits := []models.Habit{
		{ID: "okuma", Name: "Okuma", GoldReward: 10, CanReward: 1, Type: constants.HabitDaily, IsActive: true, Makam: 0},
		{ID: "zikir", Name: "Zikir", GoldReward: 5, Type: constants.HabitDaily, IsActive: true, Makam: 4},
		{ID: "onayli", Name: "Onaylı", GoldReward: 20, Type: constants.HabitDaily, IsActive: true, Makam: 0, Approval: constants.ApprovalManual},
	}
	for _, h := range habits {
		if err := store.SaveHabit(h); err != nil {
			t.Fatalf("failed to save habit %s: %v", h.ID, err)
		}
	}

	sess := session.New(tempDir)
	if err := sess.SetActiveProfile("yolcu"); err != nil {
		t.Fatalf("failed to set active profile: %v", err)
	}

	return &Context{Store: store, Session: sess, ConfigDir: tempDir}
}

func TestHabitCompleteCmd(t *testing.T) {
	ctx := setupTestContext(t)
	today := utils.Today()

	cmd := &HabitCompleteCmd{HabitID: "okuma"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	done, err := ctx.Store.IsItemCompleted("yolcu", "okuma", today, constants.KindHabit)
	if err != nil {
		t.Fatalf("failed to check completion: %v", err)
	}
	if !done {
		t.Error("habit not recorded as completed")
	}

	user, err := ctx.Store.GetUser("yolcu")
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if user.Gold != 110 {
		t.Errorf("gold = %d, want 110", user.Gold)
	}
	if user.Lives != 51 {
		t.Errorf("lives = %d, want 51", user.Lives)
	}
}

func TestHabitCompleteCmd_AlreadyCompleted(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &HabitCompleteCmd{HabitID: "okuma"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	// Second run is a friendly no-op, no double reward.
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second complete failed: %v", err)
	}

	user, err := ctx.Store.GetUser("yolcu")
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if user.Gold != 110 {
		t.Errorf("gold = %d after repeat complete, want 110", user.Gold)
	}
}

func TestHabitCompleteCmd_LockedByMakam(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &HabitCompleteCmd{HabitID: "zikir"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error completing a habit above the user's makam level")
	}
}

func TestHabitCompleteCmd_ManualApprovalPending(t *testing.T) {
	ctx := setupTestContext(t)
	today := utils.Today()

	cmd := &HabitCompleteCmd{HabitID: "onayli"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	rec, err := ctx.Store.GetCompletionRecord("yolcu", "onayli", constants.KindHabit)
	if err != nil {
		t.Fatalf("failed to get completion record: %v", err)
	}
	if rec.State != constants.StatePending {
		t.Errorf("state = %s, want %s", rec.State, constants.StatePending)
	}
	if !rec.HasDate(today) {
		t.Error("completion date missing from record")
	}
}

func TestHabitUncompleteCmd(t *testing.T) {
	ctx := setupTestContext(t)
	today := utils.Today()

	if err := (&HabitCompleteCmd{HabitID: "okuma"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := (&HabitUncompleteCmd{HabitID: "okuma"}).Run(ctx); err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}

	done, err := ctx.Store.IsItemCompleted("yolcu", "okuma", today, constants.KindHabit)
	if err != nil {
		t.Fatalf("failed to check completion: %v", err)
	}
	if done {
		t.Error("habit still recorded as completed")
	}

	user, err := ctx.Store.GetUser("yolcu")
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if user.Gold != 100 || user.Lives != 50 {
		t.Errorf("rewards not restored: gold=%d lives=%d, want 100/50", user.Gold, user.Lives)
	}
}

func TestHabitUncompleteCmd_NotCompleted(t *testing.T) {
	ctx := setupTestContext(t)

	// Uncompleting something never completed is a friendly no-op.
	if err := (&HabitUncompleteCmd{HabitID: "okuma"}).Run(ctx); err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}

	user, err := ctx.Store.GetUser("yolcu")
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if user.Gold != 100 {
		t.Errorf("gold = %d, want untouched 100", user.Gold)
	}
}

func TestHabitCompleteCmd_UnknownHabit(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&HabitCompleteCmd{HabitID: "yok"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit id")
	}
}
