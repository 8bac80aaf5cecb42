package entity

import "time"

// DashboardReport gathers the display models of one period for export and archival.
type DashboardReport struct {
	Period      Period          `json:"period"`
	GeneratedAt time.Time       `json:"generated_at"`
	Breakdown   *PieChart       `json:"breakdown,omitempty"`
	Weekly      *StackedSeries  `json:"weekly,omitempty"`
	Target      *AnalysisTarget `json:"target,omitempty"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
}

// IsEmpty reports whether no section holds data.
func (r DashboardReport) IsEmpty() bool {
	return r.Breakdown == nil && r.Weekly == nil && r.Analysis == nil
}
