package workflow

import (
	"context"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// SavingsView is the weekly savings vs. expenses panel.
type SavingsView struct {
	Status  QueryStatus
	Message string
	Period  entity.Period
	Series  *entity.WeeklySeries
	Chart   *entity.StackedSeries
}

// Savings fetches weekly savings and expense amounts of a period.
type Savings struct {
	query *periodQuery[entity.WeeklySeries]
}

// NewSavings creates a workflow that has never been queried.
func NewSavings(backend repository.BackendRepository, logger *log.Logger) *Savings {
	return &Savings{
		query: newPeriodQuery(logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpSavings), backend.GetWeeklySeries),
	}
}

// Period exposes the workflow's own period selector.
func (w *Savings) Period() *PeriodSelector {
	return w.query.period
}

// Submit requests the weekly series for the selected period.
func (w *Savings) Submit(ctx context.Context) (SavingsView, error) {
	snap, err := w.query.submit(ctx)
	return savingsView(snap), err
}

// View returns what is currently displayed.
func (w *Savings) View() SavingsView {
	return savingsView(w.query.snapshot())
}

func savingsView(snap querySnapshot[entity.WeeklySeries]) SavingsView {
	view := SavingsView{
		Status:  snap.status,
		Message: snap.message,
		Period:  snap.period,
	}
	if snap.result != nil {
		series := *snap.result
		view.Series = &series
		chart := series.Stacked()
		view.Chart = &chart
	}
	return view
}
