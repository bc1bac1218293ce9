package questlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kervan-app/kervan/internal/models"
)

// OpenQuestMsg asks the root model to show the quest detail view.
type OpenQuestMsg struct {
	ID string
}

// AcceptQuestMsg asks the root model to record a quest acceptance.
type AcceptQuestMsg struct {
	ID string
}

type Item struct {
	Quest      models.Quest
	IsAccepted bool
}

func (i Item) Title() string {
	if i.IsAccepted {
		return "★ " + i.Quest.Title
	}
	return i.Quest.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d altın", i.Quest.Reward)
	if i.Quest.BriefDesc != "" {
		desc += " · " + i.Quest.BriefDesc
	}
	if i.IsAccepted {
		desc += " · kabul edildi"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Quest.Title }

type KeyMap struct {
	Open   key.Binding
	Accept key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "detail"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Görevler"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Accept}
	}

	return Model{list: l, keys: keys}
}

// SetQuests rebuilds the items. accepted maps quest id to whether the user
// already accepted it.
func (m *Model) SetQuests(quests []models.Quest, accepted map[string]bool) {
	items := make([]list.Item, len(quests))
	for i, q := range quests {
		items[i] = Item{Quest: q, IsAccepted: accepted[q.ID]}
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
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenQuestMsg{ID: i.Quest.ID} }
			}
		case key.Matches(msg, m.keys.Accept):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsAccepted {
					return m, func() tea.Msg { return AcceptQuestMsg{ID: i.Quest.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Şu an açık görev yok."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
