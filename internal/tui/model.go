package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kervan-app/kervan/internal/cache"
	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/habit"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/session"
	"github.com/kervan-app/kervan/internal/storage"
	"github.com/kervan-app/kervan/internal/tracker"
	"github.com/kervan-app/kervan/internal/tui/components/datebar"
	"github.com/kervan-app/kervan/internal/tui/components/habitlist"
	"github.com/kervan-app/kervan/internal/tui/components/header"
	"github.com/kervan-app/kervan/internal/tui/components/questlist"
	"github.com/kervan-app/kervan/internal/utils"
)

// questCacheTTL bounds how stale the quest and slider catalogs may get
// before the next tab visit refetches them.
const questCacheTTL = 5 * time.Minute

type Model struct {
	store storage.Provider
	sess  *session.Session

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	tracker *tracker.Tracker
	habits  []models.Habit

	header    header.Model
	dateBar   datebar.Model
	habitList habitlist.Model
	questList questlist.Model

	questCache     *cache.Cache[[]models.Quest]
	sliderCache    *cache.Cache[[]models.Slider]
	quests         []models.Quest
	sliders        []models.Slider
	acceptedQuests map[string]bool
	selectedQuest  *models.Quest

	form    *huh.Form
	loginID string

	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, sess *session.Session) Model {
	m := Model{
		store:          store,
		sess:           sess,
		state:          constants.StateLogin,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dateBar:        datebar.New(utils.Today()),
		habitList:      habitlist.New(0, 0),
		questList:      questlist.New(0, 0),
		questCache:     cache.New[[]models.Quest](questCacheTTL),
		sliderCache:    cache.New[[]models.Slider](questCacheTTL),
		acceptedQuests: make(map[string]bool),
	}

	m.header = header.New(models.User{})

	if id, err := sess.ActiveProfile(); err == nil {
		// A persisted profile skips the login screen; the user record
		// loads asynchronously in Init.
		m.state = constants.StateHabits
		m.tracker = tracker.New(models.GuestUser(id), nil)
		m.header.SetUser(m.tracker.User())
	} else {
		m.form = newLoginForm(&m.loginID)
	}

	return m
}

func newLoginForm(loginID *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("profile").
				Title("Profil ID").
				Description("Giriş yapmak için profil kimliğinizi yazın").
				Value(loginID),
		),
	)
}

func (m Model) Init() tea.Cmd {
	if m.state == constants.StateLogin {
		return m.form.Init()
	}
	return tea.Batch(
		m.loginCmd(m.tracker.User().ID),
		m.loadBoardCmd(m.dateBar.Selected()),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Today)
	case constants.StateQuests:
		keys = append(keys, m.keys.Refresh)
	case constants.StateQuestDetail:
		keys = append(keys, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	board := []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Refresh, m.keys.Back}
	return [][]key.Binding{global, board}
}

// visibleHabits filters the catalog for the selected date and the signed-in
// user's level.
func (m Model) visibleHabits() []models.Habit {
	return habit.VisibleHabits(m.habits, m.tracker.User(), m.dateBar.Selected())
}

// refreshHabitBoard rebuilds the habit list items from the tracker's local
// state. Called after every optimistic mutation and every resolve.
func (m *Model) refreshHabitBoard() {
	m.habitList.SetBoard(m.visibleHabits(), m.tracker.Completions(), m.dateBar.Selected(), m.tracker.Busy)
	m.header.SetUser(m.tracker.User())
}

// refreshQuestBoard filters quests to the user's level and rebuilds the list.
func (m *Model) refreshQuestBoard() {
	level := m.tracker.User().Makam
	var visible []models.Quest
	for _, q := range m.quests {
		if q.Makam <= level {
			visible = append(visible, q)
		}
	}
	m.questList.SetQuests(visible, m.acceptedQuests)
}
