package utils

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/habit"
)

var monthNamesTR = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Today returns the current calendar day as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days. A malformed input
// comes back unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}

// DisplayDate renders a date the way the app shows it, e.g.
// "13 Mart 2024 Çarşamba".
func DisplayDate(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	day := habit.DayNameTR(t.Weekday().String())
	return t.Format("2") + " " + monthNamesTR[int(t.Month())-1] + " " + t.Format("2006") + " " + day
}
