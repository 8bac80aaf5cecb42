package backend

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type categoryDTO struct {
	Category string          `json:"Category"`
	Amount   decimal.Decimal `json:"Amount"`
}

type weeklyEntryDTO struct {
	Week   string          `json:"Week"`
	Amount decimal.Decimal `json:"Amount"`
	Type   string          `json:"Type"`
}

type weeklyDTO struct {
	MonthName      string           `json:"month_name"`
	WeeklySpending []weeklyEntryDTO `json:"weekly_spending"`
}

func (d weeklyDTO) toEntity() entity.WeeklySeries {
	series := entity.WeeklySeries{
		MonthName: d.MonthName,
		Entries:   make([]entity.WeeklyEntry, 0, len(d.WeeklySpending)),
	}
	for _, e := range d.WeeklySpending {
		series.Entries = append(series.Entries, entity.WeeklyEntry{
			Week:   e.Week,
			Amount: e.Amount,
			Type:   entity.EntryType(e.Type),
		})
	}
	return series
}

// text accepts a JSON string, number or null.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*t = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(raw)
	return nil
}

type receiptDTO struct {
	Date      text `json:"date"`
	Brand     text `json:"brand"`
	TotalCost text `json:"total_cost"`
	Category  text `json:"category"`
}

func (d receiptDTO) toEntity() entity.ReceiptDetails {
	return entity.ReceiptDetails{
		Date:      string(d.Date),
		Brand:     string(d.Brand),
		TotalCost: string(d.TotalCost),
		Category:  string(d.Category),
	}
}

type chatRequestDTO struct {
	Query string `json:"query"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

type chatReplyDTO struct {
	Response *string `json:"response"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
