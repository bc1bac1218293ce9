package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/habit"
	"github.com/kervan-app/kervan/internal/models"
)

// ToggleHabitMsg asks the root model to flip the selected habit's
// completion for the selected date.
type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit       models.Habit
	IsCompleted bool
	IsDisabled  bool
	IsPending   bool // a toggle is in flight
	WeekCount   int  // completions this week, for "any" weekly habits
}

func (i Item) Title() string {
	mark := "○"
	if i.IsCompleted {
		mark = "✓"
	}
	if i.IsDisabled && !i.IsCompleted {
		mark = "·"
	}
	title := mark + " " + i.Habit.Name
	if i.IsPending {
		title += " …"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d altın", i.Habit.GoldReward)
	if i.Habit.CanReward != 0 {
		desc += fmt.Sprintf(" · %+d can", i.Habit.CanReward)
	}
	if i.Habit.Type == constants.HabitWeekly && i.Habit.Weekday == constants.WeekdayAny {
		desc += fmt.Sprintf(" · hafta %d/%d", i.WeekCount, i.Habit.RepeatOrDefault())
	}
	if i.IsDisabled && !i.IsCompleted {
		desc += " · bu gün kapalı"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Alışkanlıklar"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

// SetBoard rebuilds the items for the selected date from the visible
// habits, the local completion view, and the set of busy habit ids.
func (m *Model) SetBoard(habits []models.Habit, completions []models.HabitCompletion, date string, busy func(string) bool) {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{
			Habit:       h,
			IsCompleted: habit.IsCompleted(h, date, completions),
			IsDisabled:  habit.IsDisabled(h, date, completions),
			IsPending:   busy != nil && busy(h.ID),
			WeekCount:   habit.CompletionCount(h.ID, date, completions),
		}
	}
	m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDisabled {
					return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
				}
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Bu gün için alışkanlık yok."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
