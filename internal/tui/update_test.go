package tui

import (
	"path/filepath"
	"testing"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/session"
	"github.com/kervan-app/kervan/internal/storage/sqlite"
	"github.com/kervan-app/kervan/internal/utils"
)

func newBoardTestModel(t *testing.T) (Model, *sqlite.Store, models.Habit) {
	t.Helper()

	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "kervan.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	user := models.User{ID: "yolcu", Name: "Yolcu", Gold: 10, Lives: 50, MaxHealth: 100}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("failed to save user: %v", err)
	}

	h := models.Habit{ID: "okuma", Name: "Okuma", GoldReward: 5, Type: constants.HabitDaily, IsActive: true}
	if err := store.SaveHabit(h); err != nil {
		t.Fatalf("failed to save habit: %v", err)
	}

	sess := session.New(dir)
	if err := sess.SetActiveProfile("yolcu"); err != nil {
		t.Fatalf("failed to set active profile: %v", err)
	}

	m := NewModel(store, sess)
	m.tracker.SetUser(user)
	m.habits = []models.Habit{h}
	return m, store, h
}

// A toggle result that confirms one op and dispatches a queued one must not
// clobber the queued op's optimistic deltas, and a failure of the queued op
// must roll back to the confirmed state.
func TestToggleResultQueuedOpSurvivesConfirm(t *testing.T) {
	m, store, h := newBoardTestModel(t)
	date := utils.Today()

	op1, queued := m.tracker.Toggle(h, date)
	if queued || op1 == nil {
		t.Fatal("first toggle should start immediately")
	}
	if _, queued := m.tracker.Toggle(h, date); !queued {
		t.Fatal("second toggle should queue behind the first")
	}
	if g := m.tracker.User().Gold; g != 15 {
		t.Fatalf("gold after optimistic complete = %d, want 15", g)
	}

	// Store confirms the complete with the authoritative user record.
	confirmed := models.User{ID: "yolcu", Name: "Yolcu", Gold: 15, Lives: 50, MaxHealth: 100}
	mm, cmd := m.Update(toggleResultMsg{opID: op1.ID, user: confirmed, hasUser: true})
	m = mm.(Model)

	if cmd == nil {
		t.Fatal("expected the queued uncomplete to dispatch")
	}
	if g := m.tracker.User().Gold; g != 10 {
		t.Fatalf("gold after queued uncomplete applied = %d, want 10", g)
	}
	if m.tracker.IsCompleted(h.ID, date) {
		t.Fatal("queued uncomplete should have cleared the local completion")
	}

	// Fail the queued op's store round trip.
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	raw := cmd()
	msg, ok := raw.(toggleResultMsg)
	if !ok {
		t.Fatalf("expected toggleResultMsg, got %T", raw)
	}
	if msg.err == nil {
		t.Fatal("expected the queued op to fail against a closed store")
	}

	mm, _ = m.Update(msg)
	m = mm.(Model)

	if g := m.tracker.User().Gold; g != 15 {
		t.Errorf("gold after rollback = %d, want 15", g)
	}
	if !m.tracker.IsCompleted(h.ID, date) {
		t.Error("rollback should restore the confirmed completion")
	}
	if m.errMsg == "" {
		t.Error("failed toggle should surface an error message")
	}
}
