package cli

import (
	"errors"
	"fmt"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/habit"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/tracker"
	"github.com/kervan-app/kervan/internal/utils"
	"github.com/kervan-app/kervan/internal/validation"
)

type HabitCmd struct {
	List       HabitListCmd       `cmd:"" help:"List the active habit catalog."`
	Today      HabitTodayCmd      `cmd:"" default:"1" help:"Show the habit board for a day."`
	Log        HabitLogCmd        `cmd:"" help:"Show completions for a date range."`
	Complete   HabitCompleteCmd   `cmd:"" help:"Mark a habit completed for a day."`
	Uncomplete HabitUncompleteCmd `cmd:"" help:"Undo a habit completion for a day."`
}

// boardFor loads the signed-in user plus the completions for the week
// containing date.
func boardFor(ctx *Context, date string) (models.User, []models.Habit, []models.HabitCompletion, error) {
	id, err := ctx.Session.ActiveProfile()
	if err != nil {
		return models.User{}, nil, nil, err
	}

	user, err := ctx.Store.GetUser(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Render defaults rather than failing when the profile record
			// is gone; writes against it will still error.
			user = models.GuestUser(id)
		} else {
			return models.User{}, nil, nil, err
		}
	}

	habits, err := ctx.Store.GetActiveHabits()
	if err != nil {
		return models.User{}, nil, nil, err
	}

	start, end, err := habit.WeekRange(date)
	if err != nil {
		return models.User{}, nil, nil, err
	}
	completions, err := ctx.Store.GetCompletionsForRange(id, start, end, constants.KindHabit)
	if err != nil {
		return models.User{}, nil, nil, err
	}

	return user, habits, completions, nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	id, err := ctx.Session.ActiveProfile()
	if err != nil {
		return err
	}
	user, err := ctx.Store.GetUser(id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		user = models.GuestUser(id)
	}

	habits, err := ctx.Store.GetActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No active habits")
		return nil
	}

	for _, h := range habits {
		lock := " "
		if !habit.CanAccess(user, h) {
			lock = "🔒"
		}
		schedule := string(h.Type)
		if h.Type == constants.HabitWeekly {
			if h.Weekday == constants.WeekdayAny {
				schedule = fmt.Sprintf("weekly x%d", h.RepeatOrDefault())
			} else {
				schedule = "weekly on " + h.Weekday
			}
		}
		fmt.Printf("%s %-30s %-18s %3d gold  makam %d\n", lock, h.Name, schedule, h.GoldReward, h.Makam)
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD), defaults to today."`
}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = utils.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	user, habits, completions, err := boardFor(ctx, date)
	if err != nil {
		return err
	}

	visible := habit.VisibleHabits(habits, user, date)
	fmt.Printf("%s — %s\n\n", utils.DisplayDate(date), constants.MakamName(user.Makam))
	if len(visible) == 0 {
		fmt.Println("No habits for this day")
		return nil
	}

	for _, h := range visible {
		mark := "○"
		note := ""
		switch {
		case habit.IsCompleted(h, date, completions):
			mark = "✓"
		case habit.IsDisabled(h, date, completions):
			mark = "·"
			note = " (closed for this day)"
		}
		line := fmt.Sprintf("%s %s", mark, h.Name)
		if h.Type == constants.HabitWeekly && h.Weekday == constants.WeekdayAny {
			line += fmt.Sprintf(" [%d/%d this week]", habit.CompletionCount(h.ID, date, completions), h.RepeatOrDefault())
		}
		fmt.Println(line + note)
	}
	return nil
}

type HabitLogCmd struct {
	From string `help:"Range start (YYYY-MM-DD), defaults to the current week's Saturday."`
	To   string `help:"Range end (YYYY-MM-DD), defaults to the current week's Friday."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	id, err := ctx.Session.ActiveProfile()
	if err != nil {
		return err
	}

	from, to := c.From, c.To
	if from == "" || to == "" {
		start, end, err := habit.WeekRange(utils.Today())
		if err != nil {
			return err
		}
		if from == "" {
			from = start
		}
		if to == "" {
			to = end
		}
	}
	if err := validation.Date(from); err != nil {
		return err
	}
	if err := validation.Date(to); err != nil {
		return err
	}

	completions, err := ctx.Store.GetCompletionsForRange(id, from, to, constants.KindHabit)
	if err != nil {
		return err
	}
	if len(completions) == 0 {
		fmt.Printf("No completions between %s and %s\n", from, to)
		return nil
	}

	habits, err := ctx.Store.GetActiveHabits()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	for _, comp := range completions {
		name := names[comp.HabitID]
		if name == "" {
			name = comp.HabitID
		}
		fmt.Printf("%s  %s\n", comp.Date, name)
	}
	return nil
}

type HabitCompleteCmd struct {
	HabitID string `arg:"" help:"Habit id to complete."`
	Date    string `help:"Day to complete (YYYY-MM-DD), defaults to today."`
}

func (c *HabitCompleteCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = utils.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	user, _, completions, err := boardFor(ctx, date)
	if err != nil {
		return err
	}

	h, err := ctx.Store.GetHabit(c.HabitID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("habit %q not found", c.HabitID)
		}
		return err
	}

	if !habit.CanAccess(user, h) {
		return fmt.Errorf("habit %q requires makam level %d", h.Name, h.Makam)
	}
	if habit.IsCompleted(h, date, completions) {
		fmt.Printf("%s is already completed on %s\n", h.Name, date)
		return nil
	}
	if habit.IsDisabled(h, date, completions) {
		return fmt.Errorf("habit %q is closed for %s", h.Name, date)
	}

	state := constants.StateApproved
	if h.Approval == constants.ApprovalManual {
		state = constants.StatePending
	}
	if _, err := ctx.Store.CompleteItem(user.ID, h.ID, date, constants.KindHabit, state); err != nil {
		return err
	}

	reward := tracker.RewardFor(h)
	updated, err := ctx.Store.AdjustUserRewards(user.ID, reward.Gold, reward.Lives)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s completed on %s (gold %d, lives %d/%d)\n",
		h.Name, date, updated.Gold, updated.Lives, updated.EffectiveMaxHealth())
	if state == constants.StatePending {
		fmt.Println("  Awaiting approval")
	}
	return nil
}

type HabitUncompleteCmd struct {
	HabitID string `arg:"" help:"Habit id to uncomplete."`
	Date    string `help:"Day to undo (YYYY-MM-DD), defaults to today."`
}

func (c *HabitUncompleteCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = utils.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	user, _, completions, err := boardFor(ctx, date)
	if err != nil {
		return err
	}

	h, err := ctx.Store.GetHabit(c.HabitID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("habit %q not found", c.HabitID)
		}
		return err
	}

	if !habit.IsCompleted(h, date, completions) {
		fmt.Printf("%s is not completed on %s\n", h.Name, date)
		return nil
	}

	if _, err := ctx.Store.UncompleteItem(user.ID, h.ID, date, constants.KindHabit); err != nil {
		return err
	}

	reward := tracker.RewardFor(h).Inverse()
	updated, err := ctx.Store.AdjustUserRewards(user.ID, reward.Gold, reward.Lives)
	if err != nil {
		return err
	}

	fmt.Printf("○ %s uncompleted on %s (gold %d, lives %d/%d)\n",
		h.Name, date, updated.Gold, updated.Lives, updated.EffectiveMaxHealth())
	return nil
}
