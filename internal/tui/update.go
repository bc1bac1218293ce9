package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/habit"
	"github.com/kervan-app/kervan/internal/logger"
	"github.com/kervan-app/kervan/internal/models"
	"github.com/kervan-app/kervan/internal/tracker"
	"github.com/kervan-app/kervan/internal/tui/components/habitlist"
	"github.com/kervan-app/kervan/internal/tui/components/questlist"
	"github.com/kervan-app/kervan/internal/utils"
	"github.com/kervan-app/kervan/internal/validation"
)

type loginResultMsg struct {
	user models.User
	err  error
}

type boardLoadedMsg struct {
	date        string
	habits      []models.Habit
	completions []models.HabitCompletion
	err         error
}

type toggleResultMsg struct {
	opID    string
	user    models.User
	hasUser bool
	err     error
}

type questsLoadedMsg struct {
	quests   []models.Quest
	sliders  []models.Slider
	accepted map[string]bool
	err      error
}

type questAcceptedMsg struct {
	id   string
	user models.User
	err  error
}

// loginCmd resolves a profile id to a user record, runs the one-time health
// repair, and persists the session.
func (m Model) loginCmd(id string) tea.Cmd {
	store, sess := m.store, m.sess
	return func() tea.Msg {
		if err := validation.ProfileID(id); err != nil {
			return loginResultMsg{err: err}
		}

		user, err := store.GetUser(id)
		if err != nil {
			return loginResultMsg{err: err}
		}

		if repaired, changed, err := store.FixUserHealth(id); err == nil && changed {
			logger.Info("Repaired user health fields", "user", id)
			user = repaired
		}

		if err := sess.SetActiveProfile(id); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{user: user}
	}
}

// loadBoardCmd fetches the habit catalog plus the completions for the week
// containing the selected date.
func (m Model) loadBoardCmd(date string) tea.Cmd {
	store := m.store
	userID := m.tracker.User().ID
	return func() tea.Msg {
		habits, err := store.GetActiveHabits()
		if err != nil {
			return boardLoadedMsg{date: date, err: err}
		}

		start, end, err := habit.WeekRange(date)
		if err != nil {
			return boardLoadedMsg{date: date, err: err}
		}
		completions, err := store.GetCompletionsForRange(userID, start, end, constants.KindHabit)
		if err != nil {
			return boardLoadedMsg{date: date, err: err}
		}
		return boardLoadedMsg{date: date, habits: habits, completions: completions}
	}
}

// toggleCmd performs the store round trip for an optimistic toggle. The
// returned user record is the store's authoritative post-adjustment state.
func (m Model) toggleCmd(op *tracker.Op) tea.Cmd {
	store := m.store
	userID := m.tracker.User().ID
	h, date, complete, opID := op.Habit, op.Date, op.Complete, op.ID
	return func() tea.Msg {
		var err error
		if complete {
			state := constants.StateApproved
			if h.Approval == constants.ApprovalManual {
				state = constants.StatePending
			}
			_, err = store.CompleteItem(userID, h.ID, date, constants.KindHabit, state)
		} else {
			_, err = store.UncompleteItem(userID, h.ID, date, constants.KindHabit)
		}
		if err != nil {
			return toggleResultMsg{opID: opID, err: err}
		}

		reward := tracker.RewardFor(h)
		if !complete {
			reward = reward.Inverse()
		}
		user, err := store.AdjustUserRewards(userID, reward.Gold, reward.Lives)
		if err != nil {
			return toggleResultMsg{opID: opID, err: err}
		}
		return toggleResultMsg{opID: opID, user: user, hasUser: true}
	}
}

// loadQuestsCmd fetches quests and sliders through their caches, plus the
// user's quest acceptance records.
func (m Model) loadQuestsCmd(force bool) tea.Cmd {
	store := m.store
	userID := m.tracker.User().ID
	questCache, sliderCache := m.questCache, m.sliderCache
	return func() tea.Msg {
		if force {
			questCache.Invalidate()
			sliderCache.Invalidate()
		}

		quests, err := questCache.GetOrFetch(store.GetActiveQuests)
		if err != nil {
			return questsLoadedMsg{err: err}
		}
		sliders, err := sliderCache.GetOrFetch(func() ([]models.Slider, error) {
			return store.GetSliders("adventure")
		})
		if err != nil {
			return questsLoadedMsg{err: err}
		}

		records, err := store.GetCompletionsForRange(userID, "", "9999-12-31", constants.KindQuest)
		if err != nil {
			return questsLoadedMsg{err: err}
		}
		accepted := make(map[string]bool)
		for _, r := range records {
			accepted[r.HabitID] = true
		}
		return questsLoadedMsg{quests: quests, sliders: sliders, accepted: accepted}
	}
}

// acceptQuestCmd records a quest acceptance and pays out its reward.
func (m Model) acceptQuestCmd(q models.Quest) tea.Cmd {
	store := m.store
	userID := m.tracker.User().ID
	return func() tea.Msg {
		if _, err := store.CompleteItem(userID, q.ID, utils.Today(), constants.KindQuest, constants.StateApproved); err != nil {
			return questAcceptedMsg{id: q.ID, err: err}
		}
		user, err := store.AdjustUserRewards(userID, q.Reward, 0)
		if err != nil {
			return questAcceptedMsg{id: q.ID, err: err}
		}
		return questAcceptedMsg{id: q.ID, user: user}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		listHeight := msg.Height - 8
		if listHeight < 3 {
			listHeight = 3
		}
		m.habitList.SetSize(msg.Width-4, listHeight)
		m.questList.SetSize(msg.Width-4, listHeight)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == constants.StateLogin {
			return m.updateLogin(msg)
		}
		if handled, mm, cmd := m.handleGlobalKeys(msg); handled {
			return mm, cmd
		}

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case boardLoadedMsg:
		if msg.err != nil {
			m.errMsg = errs.Format(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.habits = msg.habits
		m.tracker.SetCompletions(msg.completions)
		m.refreshHabitBoard()
		return m, nil

	case toggleResultMsg:
		return m.handleToggleResult(msg)

	case questsLoadedMsg:
		if msg.err != nil {
			m.errMsg = errs.Format(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.quests = msg.quests
		m.sliders = msg.sliders
		m.acceptedQuests = msg.accepted
		m.refreshQuestBoard()
		return m, nil

	case questAcceptedMsg:
		if msg.err != nil {
			m.errMsg = errs.Format(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.acceptedQuests[msg.id] = true
		m.tracker.SetUser(msg.user)
		m.header.SetUser(msg.user)
		m.refreshQuestBoard()
		return m, nil

	case habitlist.ToggleHabitMsg:
		return m.handleToggle(msg.ID)

	case questlist.OpenQuestMsg:
		for i := range m.quests {
			if m.quests[i].ID == msg.ID {
				m.selectedQuest = &m.quests[i]
				m.state = constants.StateQuestDetail
				break
			}
		}
		return m, nil

	case questlist.AcceptQuestMsg:
		for _, q := range m.quests {
			if q.ID == msg.ID {
				return m, m.acceptQuestCmd(q)
			}
		}
		return m, nil
	}

	if m.state == constants.StateLogin {
		return m.updateLogin(msg)
	}

	// Delegate remaining messages to the focused component.
	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case constants.StateQuests:
		m.questList, cmd = m.questList.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		id := m.loginID
		if err := validation.ProfileID(id); err != nil {
			m.errMsg = errs.Format(err)
			m.loginID = ""
			m.form = newLoginForm(&m.loginID)
			return m, m.form.Init()
		}
		m.tracker = tracker.New(models.GuestUser(id), nil)
		return m, m.loginCmd(id)
	}

	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, errs.ErrNotFound) {
			m.errMsg = "Profil bulunamadı"
		} else {
			m.errMsg = errs.Format(msg.err)
		}
		// A restored session whose profile disappeared goes back to login.
		_ = m.sess.Clear()
		m.state = constants.StateLogin
		m.loginID = ""
		m.form = newLoginForm(&m.loginID)
		return m, m.form.Init()
	}

	m.errMsg = ""
	m.tracker.SetUser(msg.user)
	m.header.SetUser(msg.user)
	m.header.SetWidth(m.width)
	m.state = constants.StateHabits
	return m, m.loadBoardCmd(m.dateBar.Selected())
}

func (m Model) handleToggle(habitID string) (tea.Model, tea.Cmd) {
	var h *models.Habit
	for i := range m.habits {
		if m.habits[i].ID == habitID {
			h = &m.habits[i]
			break
		}
	}
	if h == nil {
		return m, nil
	}

	op, queued := m.tracker.Toggle(*h, m.dateBar.Selected())
	m.refreshHabitBoard()
	if queued {
		return m, nil
	}
	return m, m.toggleCmd(op)
}

func (m Model) handleToggleResult(msg toggleResultMsg) (tea.Model, tea.Cmd) {
	// The authoritative user lands before Resolve, because Resolve may start
	// a queued toggle whose optimistic deltas must stack on top of it.
	if msg.err == nil && msg.hasUser {
		m.tracker.SetUser(msg.user)
	}
	next, err := m.tracker.Resolve(msg.opID, msg.err)
	if err != nil {
		logger.Error("Toggle failed, rolled back", "error", err)
		m.errMsg = errs.Format(err)
	} else {
		m.errMsg = ""
	}
	m.refreshHabitBoard()

	if next != nil {
		return m, m.toggleCmd(next)
	}
	return m, nil
}

func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		m.state = nextTab(m.state, key.Matches(msg, m.keys.ShiftTab))
		if m.state == constants.StateQuests {
			return true, m, m.loadQuestsCmd(false)
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Back):
		if m.state == constants.StateQuestDetail {
			m.selectedQuest = nil
			m.state = constants.StateQuests
		}
		return true, m, nil

	case key.Matches(msg, m.keys.PrevDay) && m.state == constants.StateHabits:
		mm, cmd := m.changeDate(utils.AddDays(m.dateBar.Selected(), -1))
		return true, mm, cmd

	case key.Matches(msg, m.keys.NextDay) && m.state == constants.StateHabits:
		mm, cmd := m.changeDate(utils.AddDays(m.dateBar.Selected(), 1))
		return true, mm, cmd

	case key.Matches(msg, m.keys.Today) && m.state == constants.StateHabits:
		mm, cmd := m.changeDate(utils.Today())
		return true, mm, cmd

	case key.Matches(msg, m.keys.Refresh):
		if m.state == constants.StateQuests {
			return true, m, m.loadQuestsCmd(true)
		}
		if m.state == constants.StateHabits {
			return true, m, m.loadBoardCmd(m.dateBar.Selected())
		}
		return true, m, nil
	}

	return false, m, nil
}

func (m Model) changeDate(date string) (tea.Model, tea.Cmd) {
	prev := m.dateBar.Selected()
	m.dateBar.SetSelected(date)
	// Crossing a week boundary needs the new week's completions.
	if !habit.InWeek(date, prev) {
		return m, m.loadBoardCmd(date)
	}
	m.refreshHabitBoard()
	return m, nil
}

func nextTab(state constants.SessionState, backwards bool) constants.SessionState {
	tabs := []constants.SessionState{constants.StateHabits, constants.StateQuests, constants.StateProfile}
	for i, s := range tabs {
		if s == state {
			if backwards {
				return tabs[(i+len(tabs)-1)%len(tabs)]
			}
			return tabs[(i+1)%len(tabs)]
		}
	}
	return state
}
