package habit

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
)

// dayNamesTR maps English weekday names to their Turkish display form.
var dayNamesTR = map[string]string{
	"Monday":    "Pazartesi",
	"Tuesday":   "Salı",
	"Wednesday": "Çarşamba",
	"Thursday":  "Perşembe",
	"Friday":    "Cuma",
	"Saturday":  "Cumartesi",
	"Sunday":    "Pazar",
}

// DayOfWeek returns the English weekday name for a YYYY-MM-DD date string.
// A malformed date returns "".
func DayOfWeek(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// DayNameTR translates an English weekday name to Turkish for display.
func DayNameTR(day string) string {
	if tr, ok := dayNamesTR[day]; ok {
		return tr
	}
	return day
}

// WeekRange returns the Saturday-through-Friday window containing date, as
// inclusive YYYY-MM-DD bounds. The weekly quota resets on Saturday, so the
// window walks back to the most recent Saturday and forward six days.
// Dates are plain calendar days; no timezone conversion happens anywhere.
func WeekRange(date string) (start, end string, err error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "", "", err
	}

	// Sunday is 0 and Saturday is 6, so a Saturday walks back zero days
	// and every other day walks back weekday+1.
	day := int(t.Weekday())
	back := day + 1
	if day == int(time.Saturday) {
		back = 0
	}

	s := t.AddDate(0, 0, -back)
	e := s.AddDate(0, 0, 6)
	return s.Format(constants.DateFormat), e.Format(constants.DateFormat), nil
}

// InWeek reports whether date falls within the Saturday-start week that
// contains ref. Comparison is lexicographic, which is safe for YYYY-MM-DD.
func InWeek(date, ref string) bool {
	start, end, err := WeekRange(ref)
	if err != nil {
		return false
	}
	return date >= start && date <= end
}
