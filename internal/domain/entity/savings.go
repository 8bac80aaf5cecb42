package entity

import "github.com/shopspring/decimal"

// EntryType distinguishes the two stacked series of the weekly chart.
type EntryType string

const (
	EntrySavings EntryType = "Savings"
	EntryExpense EntryType = "Expense"
)

// SeriesColor is the colour a bar is drawn with.
type SeriesColor string

const (
	ColorGreen SeriesColor = "green"
	ColorRed   SeriesColor = "red"
)

// Color is the only cue separating savings from expenses when both share a bar track:
// Savings are green, everything else red.
func (t EntryType) Color() SeriesColor {
	if t == EntrySavings {
		return ColorGreen
	}
	return ColorRed
}

// WeeklyEntry is one week's amount for one series.
type WeeklyEntry struct {
	Week   string          `json:"week"`
	Amount decimal.Decimal `json:"amount"`
	Type   EntryType       `json:"type"`
}

// WeeklySeries is the backend's savings vs. expenses payload.
type WeeklySeries struct {
	MonthName string        `json:"month_name"`
	Entries   []WeeklyEntry `json:"entries"`
}

// SeriesBar is a single stacked bar segment ready for rendering.
type SeriesBar struct {
	X     string          `json:"x"`
	Y     decimal.Decimal `json:"y"`
	Type  EntryType       `json:"type"`
	Color SeriesColor     `json:"color"`
}

// StackedSeries is the display shape for the weekly chart.
type StackedSeries struct {
	Title string      `json:"title"`
	Bars  []SeriesBar `json:"bars"`
}

// Stacked carries every entry forward as one bar, in order.
func (s WeeklySeries) Stacked() StackedSeries {
	series := StackedSeries{
		Title: s.MonthName,
		Bars:  make([]SeriesBar, 0, len(s.Entries)),
	}
	for _, e := range s.Entries {
		series.Bars = append(series.Bars, SeriesBar{
			X:     e.Week,
			Y:     e.Amount,
			Type:  e.Type,
			Color: e.Type.Color(),
		})
	}
	return series
}
