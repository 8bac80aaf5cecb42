package entity

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// YearWindow is the number of calendar years offered for selection, ending at the current year.
const YearWindow = 50

var (
	ErrInvalidMonth = errors.New("month must be one of the twelve calendar months")
	ErrInvalidYear  = errors.New("year is outside the selectable window")
)

// Months holds the canonical (lowercase) month names in calendar order.
var Months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Period scopes a financial query to a single month of a year.
type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// IsComplete reports whether both month and year have been selected.
func (p Period) IsComplete() bool {
	return p.Month != "" && p.Year != 0
}

// YearString returns the year as sent to the backend, or "" when unset.
func (p Period) YearString() string {
	if p.Year == 0 {
		return ""
	}
	return strconv.Itoa(p.Year)
}

// Label renders the period for titles, e.g. "March 2024".
func (p Period) Label() string {
	if !p.IsComplete() {
		return "unspecified period"
	}
	return DisplayMonth(p.Month) + " " + p.YearString()
}

// NormalizeMonth maps any casing of a month name to its canonical form.
func NormalizeMonth(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, m := range Months {
		if m == v {
			return m, nil
		}
	}
	return "", ErrInvalidMonth
}

// DisplayMonth capitalizes a canonical month name for display.
func DisplayMonth(month string) string {
	if month == "" {
		return ""
	}
	return strings.ToUpper(month[:1]) + month[1:]
}

// YearOptions lists the selectable years, newest first.
func YearOptions(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, YearWindow)
	for i := 0; i < YearWindow; i++ {
		years = append(years, current-i)
	}
	return years
}

// ParseYear validates a year against the trailing window ending at now.
func ParseYear(value string, now time.Time) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, ErrInvalidYear
	}
	current := now.Year()
	if year > current || year <= current-YearWindow {
		return 0, ErrInvalidYear
	}
	return year, nil
}
