package workflow

import (
	"context"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// CategorizationView is the spending breakdown panel.
type CategorizationView struct {
	Status  QueryStatus
	Message string
	Period  entity.Period
	Summary entity.CategorySummary
	Chart   *entity.PieChart
}

// Categorization fetches the categorized spending breakdown of a period.
type Categorization struct {
	query *periodQuery[entity.CategorySummary]
}

// NewCategorization creates a workflow that has never been queried.
func NewCategorization(backend repository.BackendRepository, logger *log.Logger) *Categorization {
	return &Categorization{
		query: newPeriodQuery(logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpCategorize), backend.GetCategoryBreakdown),
	}
}

// Period exposes the workflow's own period selector.
func (w *Categorization) Period() *PeriodSelector {
	return w.query.period
}

// Submit requests the breakdown for the selected period.
func (w *Categorization) Submit(ctx context.Context) (CategorizationView, error) {
	snap, err := w.query.submit(ctx)
	return categorizationView(snap), err
}

// View returns what is currently displayed.
func (w *Categorization) View() CategorizationView {
	return categorizationView(w.query.snapshot())
}

func categorizationView(snap querySnapshot[entity.CategorySummary]) CategorizationView {
	view := CategorizationView{
		Status:  snap.status,
		Message: snap.message,
		Period:  snap.period,
	}
	if snap.result != nil {
		view.Summary = *snap.result
		chart := snap.result.Chart()
		view.Chart = &chart
	}
	return view
}
