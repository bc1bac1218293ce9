package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kervan-app/kervan/internal/models"
)

// ToggleState tracks an optimistic completion toggle through its lifecycle.
type ToggleState int

const (
	// OptimisticApplied means the local mutation happened and the store
	// round trip is in flight.
	OptimisticApplied ToggleState = iota
	// Confirmed means the store accepted the write; the local state stands.
	Confirmed
	// RolledBack means the store write failed and the local mutation was
	// inverted.
	RolledBack
)

// Op is one in-flight toggle. It carries exactly what the rollback needs:
// the completion mutation and the reward delta that was actually applied
// after clamping.
type Op struct {
	ID       string
	Habit    models.Habit
	Date     string
	Complete bool // true when this op marks the habit done
	State    ToggleState

	appliedGold  int
	appliedLives int
}

// Tracker is the habit board's local state: the signed-in user plus the
// loaded completions, mutated optimistically before each store round trip.
// It is a pure state machine; the caller owns the store I/O and reports the
// outcome through Resolve. Toggles for the same habit are serialized: a
// second toggle while one is in flight waits until the first resolves.
// Not safe for concurrent use; bubbletea's update loop is single-threaded.
type Tracker struct {
	user        models.User
	completions []models.HabitCompletion

	inflight map[string]*Op          // habit id -> active op
	waiting  map[string][]toggleReq // habit id -> queued toggle requests
}

type toggleReq struct {
	habit models.Habit
	date  string
}

func New(user models.User, completions []models.HabitCompletion) *Tracker {
	return &Tracker{
		user:        user,
		completions: completions,
		inflight:    make(map[string]*Op),
		waiting:     make(map[string][]toggleReq),
	}
}

// User returns the current (optimistically adjusted) user record.
func (t *Tracker) User() models.User {
	return t.user
}

// SetUser replaces the user record, e.g. after a fresh load.
func (t *Tracker) SetUser(u models.User) {
	t.user = u
}

// Completions returns the current local completion view.
func (t *Tracker) Completions() []models.HabitCompletion {
	return t.completions
}

// SetCompletions replaces the local completion view after a refetch.
func (t *Tracker) SetCompletions(completions []models.HabitCompletion) {
	t.completions = completions
}

// IsCompleted reports the local completion state for a habit and date.
func (t *Tracker) IsCompleted(habitID, date string) bool {
	for _, c := range t.completions {
		if c.HabitID == habitID && c.Date == date && c.Completed {
			return true
		}
	}
	return false
}

// Busy reports whether a toggle is in flight for the habit.
func (t *Tracker) Busy(habitID string) bool {
	return t.inflight[habitID] != nil
}

// Toggle flips the habit's completion for the date. When no toggle is in
// flight for the habit, the local mutation is applied immediately and the
// returned op must be dispatched to the store. When one is in flight the
// request queues and Toggle returns (nil, true): Resolve hands back the
// queued op once the earlier one settles.
func (t *Tracker) Toggle(h models.Habit, date string) (op *Op, queued bool) {
	if t.inflight[h.ID] != nil {
		t.waiting[h.ID] = append(t.waiting[h.ID], toggleReq{habit: h, date: date})
		return nil, true
	}
	return t.start(h, date), false
}

func (t *Tracker) start(h models.Habit, date string) *Op {
	complete := !t.IsCompleted(h.ID, date)
	op := &Op{
		ID:       uuid.NewString(),
		Habit:    h,
		Date:     date,
		Complete: complete,
		State:    OptimisticApplied,
	}

	reward := RewardFor(h)
	if !complete {
		reward = reward.Inverse()
	}

	prev := t.user
	t.user = ApplyDelta(t.user, reward.Gold, reward.Lives)
	// Record what clamping actually let through so the rollback is exact.
	op.appliedGold = t.user.Gold - prev.Gold
	op.appliedLives = t.user.Lives - prev.Lives

	if complete {
		t.addCompletion(h.ID, date)
	} else {
		t.removeCompletion(h.ID, date)
	}

	t.inflight[h.ID] = op
	return op
}

// Resolve settles an in-flight op with the store outcome. On failure the
// exact inverse mutation is replayed. If a toggle request queued behind this
// op, it starts now and is returned for dispatch.
func (t *Tracker) Resolve(opID string, storeErr error) (next *Op, err error) {
	var op *Op
	var habitID string
	for id, o := range t.inflight {
		if o.ID == opID {
			op, habitID = o, id
			break
		}
	}
	if op == nil {
		return nil, fmt.Errorf("no in-flight toggle with id %s", opID)
	}

	delete(t.inflight, habitID)

	if storeErr == nil {
		op.State = Confirmed
	} else {
		op.State = RolledBack
		t.rollback(op)
		err = storeErr
	}

	if queue := t.waiting[habitID]; len(queue) > 0 {
		req := queue[0]
		if len(queue) == 1 {
			delete(t.waiting, habitID)
		} else {
			t.waiting[habitID] = queue[1:]
		}
		next = t.start(req.habit, req.date)
	}

	return next, err
}

func (t *Tracker) rollback(op *Op) {
	t.user = ApplyDelta(t.user, -op.appliedGold, -op.appliedLives)
	if op.Complete {
		t.removeCompletion(op.Habit.ID, op.Date)
	} else {
		t.addCompletion(op.Habit.ID, op.Date)
	}
}

func (t *Tracker) addCompletion(habitID, date string) {
	for i, c := range t.completions {
		if c.HabitID == habitID && c.Date == date {
			t.completions[i].Completed = true
			return
		}
	}
	t.completions = append(t.completions, models.HabitCompletion{
		ID:          habitID + "_" + date,
		HabitID:     habitID,
		UserID:      t.user.ID,
		Date:        date,
		Completed:   true,
		CompletedAt: time.Now(),
	})
}

func (t *Tracker) removeCompletion(habitID, date string) {
	kept := t.completions[:0]
	for _, c := range t.completions {
		if c.HabitID == habitID && c.Date == date {
			continue
		}
		kept = append(kept, c)
	}
	t.completions = kept
}
