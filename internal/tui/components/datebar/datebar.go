package datebar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/habit"
	"github.com/kervan-app/kervan/internal/utils"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dayStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	todayStyle = lipgloss.NewStyle().Padding(0, 1).Underline(true)
)

// Model renders the selected date plus the Saturday-to-Friday week strip it
// falls in.
type Model struct {
	selected string
	today    string
}

func New(selected string) Model {
	return Model{selected: selected, today: utils.Today()}
}

func (m *Model) SetSelected(date string) {
	m.selected = date
	m.today = utils.Today()
}

func (m Model) Selected() string {
	return m.selected
}

func (m Model) View() string {
	start, _, err := habit.WeekRange(m.selected)
	if err != nil {
		return titleStyle.Render(m.selected)
	}

	var days []string
	t, _ := time.Parse(constants.DateFormat, start)
	for i := 0; i < 7; i++ {
		d := t.AddDate(0, 0, i)
		date := d.Format(constants.DateFormat)
		label := d.Format("2") + " " + shortDayTR(d.Weekday())

		switch {
		case date == m.selected:
			days = append(days, selectedStyle.Render(label))
		case date == m.today:
			days = append(days, todayStyle.Render(label))
		default:
			days = append(days, dayStyle.Render(label))
		}
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Center, days...)
	return titleStyle.Render(utils.DisplayDate(m.selected)) + "\n" + strip
}

func shortDayTR(d time.Weekday) string {
	name := habit.DayNameTR(d.String())
	if len(name) == 0 {
		return ""
	}
	// First three runes, Turkish names are multibyte.
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes[:1])) + string(runes[1:])
}
