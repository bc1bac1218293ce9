package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kervan-app/kervan/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateLogin {
		return m.loginView()
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch m.state {
	case constants.StateHabits:
		b.WriteString(m.dateBar.View())
		b.WriteString("\n\n")
		b.WriteString(m.habitList.View())
	case constants.StateQuests:
		b.WriteString(m.slidersView())
		b.WriteString(m.questList.View())
	case constants.StateQuestDetail:
		b.WriteString(m.questDetailView())
	case constants.StateProfile:
		b.WriteString(m.profileView())
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(dangerStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m))

	return docStyle.Render(b.String())
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(detailTitleStyle.Render("kervan"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render(m.errMsg))
	}
	return docStyle.Render(b.String())
}

func (m Model) tabsView() string {
	labels := []struct {
		state constants.SessionState
		name  string
	}{
		{constants.StateHabits, "Alışkanlıklar"},
		{constants.StateQuests, "Görevler"},
		{constants.StateProfile, "Profil"},
	}

	var tabs []string
	for _, l := range labels {
		active := m.state == l.state ||
			(l.state == constants.StateQuests && m.state == constants.StateQuestDetail)
		if active {
			tabs = append(tabs, activeTabStyle.Render(l.name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(l.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

func (m Model) slidersView() string {
	if len(m.sliders) == 0 {
		return ""
	}
	var banners []string
	for _, sl := range m.sliders {
		text := detailTitleStyle.Render(sl.Title)
		if sl.Description != "" {
			text += "\n" + mutedStyle.Render(sl.Description)
		}
		banners = append(banners, sliderStyle.Render(text))
	}
	return strings.Join(banners, "\n") + "\n\n"
}

func (m Model) questDetailView() string {
	q := m.selectedQuest
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(q.Title))
	b.WriteString("\n\n")
	if q.Description != "" {
		b.WriteString(q.Description)
	} else {
		b.WriteString(q.BriefDesc)
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Ödül: %d altın", q.Reward))
	if m.acceptedQuests[q.ID] {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Bu görev kabul edildi."))
	}
	return b.String()
}

func (m Model) profileView() string {
	u := m.tracker.User()
	name := u.Name
	if name == "" {
		name = u.ID
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Makam: %s (seviye %d)\n", constants.MakamName(u.Makam), u.Makam))
	b.WriteString(fmt.Sprintf("Altın: %d\n", u.Gold))
	b.WriteString(fmt.Sprintf("Can: %d/%d\n", u.Lives, u.EffectiveMaxHealth()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Profil: " + u.ID))
	return b.String()
}
