package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	rankStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	goldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	livesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	barStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Model is the stats bar shown above every main tab: name, rank, gold, and
// lives out of the health cap.
type Model struct {
	user  models.User
	width int
}

func New(user models.User) Model {
	return Model{user: user}
}

func (m *Model) SetUser(user models.User) {
	m.user = user
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) View() string {
	name := m.user.Name
	if name == "" {
		name = m.user.ID
	}

	parts := lipgloss.JoinHorizontal(lipgloss.Center,
		nameStyle.Render(name),
		"  ",
		rankStyle.Render(constants.MakamName(m.user.Makam)),
		"  ",
		goldStyle.Render(fmt.Sprintf("⛀ %d", m.user.Gold)),
		"  ",
		livesStyle.Render(fmt.Sprintf("♥ %d/%d", m.user.Lives, m.user.EffectiveMaxHealth())),
	)
	return barStyle.Width(m.width).Render(parts)
}
