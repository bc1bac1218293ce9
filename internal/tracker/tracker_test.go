package tracker

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kervan-app/kervan/internal/models"
)

func testHabit() models.Habit {
	return models.Habit{ID: "h1", Name: "Kitap oku", GoldReward: 5, CanReward: 2}
}

func testUser() models.User {
	return models.User{ID: "u1", Gold: 10, Lives: 50, MaxHealth: 100}
}

func TestToggleCompleteAppliesOptimistically(t *testing.T) {
	tr := New(testUser(), nil)

	op, queued := tr.Toggle(testHabit(), "2024-03-13")
	if queued {
		t.Fatal("first toggle should not queue")
	}
	if !op.Complete {
		t.Error("toggle of an uncompleted habit should be a complete")
	}
	if op.State != OptimisticApplied {
		t.Errorf("op state = %v, want OptimisticApplied", op.State)
	}

	if !tr.IsCompleted("h1", "2024-03-13") {
		t.Error("completion should apply before the store round trip")
	}
	u := tr.User()
	if u.Gold != 15 || u.Lives != 52 {
		t.Errorf("rewards should apply optimistically, got gold=%d lives=%d", u.Gold, u.Lives)
	}
}

func TestResolveConfirms(t *testing.T) {
	tr := New(testUser(), nil)
	op, _ := tr.Toggle(testHabit(), "2024-03-13")

	next, err := tr.Resolve(op.ID, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if next != nil {
		t.Error("no queued op expected")
	}
	if op.State != Confirmed {
		t.Errorf("op state = %v, want Confirmed", op.State)
	}
	if !tr.IsCompleted("h1", "2024-03-13") {
		t.Error("confirmed completion should stand")
	}
}

func TestResolveFailureRollsBackExactly(t *testing.T) {
	tr := New(testUser(), nil)
	wantUser := tr.User()
	wantCompletions := append([]models.HabitCompletion(nil), tr.Completions()...)

	op, _ := tr.Toggle(testHabit(), "2024-03-13")
	storeErr := errors.New("store down")

	_, err := tr.Resolve(op.ID, storeErr)
	if !errors.Is(err, storeErr) {
		t.Errorf("Resolve should surface the store error, got %v", err)
	}
	if op.State != RolledBack {
		t.Errorf("op state = %v, want RolledBack", op.State)
	}
	if !reflect.DeepEqual(tr.User(), wantUser) {
		t.Errorf("user after rollback = %+v, want %+v", tr.User(), wantUser)
	}
	if len(tr.Completions()) != len(wantCompletions) {
		t.Errorf("completions after rollback = %v, want %v", tr.Completions(), wantCompletions)
	}
}

func TestRollbackIsExactUnderClamping(t *testing.T) {
	// Lives 99 of 100: completing pays +2 but only +1 lands. The rollback
	// must undo exactly the +1 that was applied.
	u := models.User{ID: "u1", Gold: 0, Lives: 99, MaxHealth: 100}
	tr := New(u, nil)

	op, _ := tr.Toggle(testHabit(), "2024-03-13")
	if got := tr.User().Lives; got != 100 {
		t.Fatalf("lives after clamped gain = %d, want 100", got)
	}

	if _, err := tr.Resolve(op.ID, errors.New("store down")); err == nil {
		t.Fatal("expected store error surfaced")
	}
	if got := tr.User().Lives; got != 99 {
		t.Errorf("lives after rollback = %d, want 99", got)
	}
	if got := tr.User().Gold; got != 0 {
		t.Errorf("gold after rollback = %d, want 0", got)
	}
}

func TestToggleUncomplete(t *testing.T) {
	completions := []models.HabitCompletion{
		{ID: "h1_2024-03-13", HabitID: "h1", UserID: "u1", Date: "2024-03-13", Completed: true},
	}
	tr := New(testUser(), completions)

	op, queued := tr.Toggle(testHabit(), "2024-03-13")
	if queued {
		t.Fatal("toggle should not queue")
	}
	if op.Complete {
		t.Error("toggle of a completed habit should be an uncomplete")
	}
	if tr.IsCompleted("h1", "2024-03-13") {
		t.Error("uncomplete should apply before the store round trip")
	}
	u := tr.User()
	if u.Gold != 5 || u.Lives != 48 {
		t.Errorf("rewards should be withdrawn, got gold=%d lives=%d", u.Gold, u.Lives)
	}
}

func TestUncompleteGoldClampsAtZero(t *testing.T) {
	completions := []models.HabitCompletion{
		{ID: "h1_2024-03-13", HabitID: "h1", UserID: "u1", Date: "2024-03-13", Completed: true},
	}
	u := models.User{ID: "u1", Gold: 2, Lives: 50, MaxHealth: 100}
	tr := New(u, completions)

	tr.Toggle(testHabit(), "2024-03-13")
	if got := tr.User().Gold; got != 0 {
		t.Errorf("gold = %d, want clamped 0", got)
	}
}

func TestSecondToggleQueuesBehindFirst(t *testing.T) {
	tr := New(testUser(), nil)
	h := testHabit()

	first, queued := tr.Toggle(h, "2024-03-13")
	if queued {
		t.Fatal("first toggle should start immediately")
	}

	second, queued := tr.Toggle(h, "2024-03-13")
	if !queued || second != nil {
		t.Fatal("second toggle for the same habit should queue")
	}
	if !tr.Busy("h1") {
		t.Error("habit should report busy while an op is in flight")
	}

	next, err := tr.Resolve(first.ID, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if next == nil {
		t.Fatal("queued toggle should start when the first resolves")
	}
	if next.Complete {
		t.Error("queued toggle should invert the now-completed state")
	}

	// The pair cancels out once both settle.
	if _, err := tr.Resolve(next.ID, nil); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if tr.IsCompleted("h1", "2024-03-13") {
		t.Error("complete then uncomplete should end uncompleted")
	}
	if got := tr.User(); got.Gold != 10 || got.Lives != 50 {
		t.Errorf("rewards should cancel out, got gold=%d lives=%d", got.Gold, got.Lives)
	}
}

func TestTogglesForDifferentHabitsRunIndependently(t *testing.T) {
	tr := New(testUser(), nil)
	h2 := models.Habit{ID: "h2", GoldReward: 1, CanReward: 0}

	op1, queued1 := tr.Toggle(testHabit(), "2024-03-13")
	op2, queued2 := tr.Toggle(h2, "2024-03-13")
	if queued1 || queued2 {
		t.Fatal("toggles for different habits must not queue behind each other")
	}

	// Failing h1 must not disturb h2's optimistic completion.
	if _, err := tr.Resolve(op1.ID, errors.New("store down")); err == nil {
		t.Fatal("expected store error")
	}
	if tr.IsCompleted("h1", "2024-03-13") {
		t.Error("h1 should be rolled back")
	}
	if !tr.IsCompleted("h2", "2024-03-13") {
		t.Error("h2 should stay optimistically completed")
	}

	if _, err := tr.Resolve(op2.ID, nil); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := tr.User().Gold; got != 11 {
		t.Errorf("gold = %d, want 11 (h1 rolled back, h2 confirmed)", got)
	}
}

func TestResolveUnknownOp(t *testing.T) {
	tr := New(testUser(), nil)
	if _, err := tr.Resolve("missing", nil); err == nil {
		t.Error("expected error for unknown op id")
	}
}
