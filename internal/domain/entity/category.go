package entity

import "github.com/shopspring/decimal"

// CategoryAmount is one row of the spending breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategorySummary is the breakdown as returned by the backend. Categories may repeat;
// it is an ordered sequence, not a mapping.
type CategorySummary []CategoryAmount

// PieChart is the display shape for a breakdown: parallel label and value sequences.
type PieChart struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// Chart projects the summary into parallel sequences, preserving order.
func (s CategorySummary) Chart() PieChart {
	chart := PieChart{
		Labels: make([]string, 0, len(s)),
		Values: make([]decimal.Decimal, 0, len(s)),
	}
	for _, row := range s {
		chart.Labels = append(chart.Labels, row.Category)
		chart.Values = append(chart.Values, row.Amount)
	}
	return chart
}

// Total sums the chart values.
func (c PieChart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range c.Values {
		total = total.Add(v)
	}
	return total
}
