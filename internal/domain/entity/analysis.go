package entity

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPercentage = errors.New("percentage must be an integer between 0 and 100")

// AnalysisTarget is the desired split between spending and saving.
type AnalysisTarget struct {
	SpendingPct int `json:"spending_pct"`
	SavingPct   int `json:"saving_pct"`
}

// DefaultAnalysisTarget is the split offered before the user changes anything.
var DefaultAnalysisTarget = AnalysisTarget{SpendingPct: 70, SavingPct: 30}

// Balanced reports whether the two percentages add up to exactly 100.
func (t AnalysisTarget) Balanced() bool {
	return t.SpendingPct+t.SavingPct == 100
}

// ParsePercentage parses an integer percentage in [0,100].
func ParsePercentage(value string) (int, error) {
	pct, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || pct < 0 || pct > 100 {
		return 0, ErrInvalidPercentage
	}
	return pct, nil
}

// AnalysisResult is the deviation and recommendation report for a target split.
type AnalysisResult struct {
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalSaved        decimal.Decimal `json:"total_saved"`
	ExpectedSpent     decimal.Decimal `json:"expected_spent"`
	ExpectedSaved     decimal.Decimal `json:"expected_saved"`
	DeviationSpent    decimal.Decimal `json:"deviation_spent"`
	DeviationSaved    decimal.Decimal `json:"deviation_saved"`
	MaxSpentCategory  string          `json:"max_spent_category"`
	AIRecommendations string          `json:"ai_recommendations"`
	Suggestions       []string        `json:"suggestions"`
}

// ReportField is one labelled line of the analysis report.
type ReportField struct {
	Label string
	Value string
}

// Fields lists every scalar field of the result in display order.
func (r AnalysisResult) Fields() []ReportField {
	return []ReportField{
		{Label: "Total Spent", Value: r.TotalSpent.StringFixed(2)},
		{Label: "Total Saved", Value: r.TotalSaved.StringFixed(2)},
		{Label: "Expected Spending", Value: r.ExpectedSpent.StringFixed(2)},
		{Label: "Expected Saving", Value: r.ExpectedSaved.StringFixed(2)},
		{Label: "Spending Deviation", Value: r.DeviationSpent.StringFixed(2)},
		{Label: "Saving Deviation", Value: r.DeviationSaved.StringFixed(2)},
		{Label: "Max Spent Category", Value: r.MaxSpentCategory},
		{Label: "AI Recommendations", Value: r.AIRecommendations},
	}
}

// HasSuggestions reports whether the suggestion list should be rendered.
func (r AnalysisResult) HasSuggestions() bool {
	return len(r.Suggestions) > 0
}
