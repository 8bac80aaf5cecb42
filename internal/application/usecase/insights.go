package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/application/workflow"
	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"golang.org/x/sync/errgroup"
)

// RunCategorize shows the spending breakdown of a period.
func (uc *DashboardUseCase) RunCategorize(ctx context.Context, args *types.CLIArgs) error {
	categorization := workflow.NewCategorization(uc.backend, uc.logger)
	if err := categorization.Period().Select(args.Month, args.Year); err != nil {
		return err
	}

	status := uc.console.Status("Fetching spending breakdown...")
	view, err := categorization.Submit(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogWarning("%s", view.Message)
		return err
	}

	if view.Chart == nil {
		uc.console.LogWarning("%s", view.Message)
		return nil
	}
	uc.console.DisplayCategoryBreakdown(view.Period, *view.Chart)

	return uc.exportReport(ctx, entity.DashboardReport{
		Period:      view.Period,
		GeneratedAt: uc.now(),
		Breakdown:   view.Chart,
	})
}

// RunSavings shows weekly savings against expenses for a period.
func (uc *DashboardUseCase) RunSavings(ctx context.Context, args *types.CLIArgs) error {
	savings := workflow.NewSavings(uc.backend, uc.logger)
	if err := savings.Period().Select(args.Month, args.Year); err != nil {
		return err
	}

	status := uc.console.Status("Fetching weekly savings and expenses...")
	view, err := savings.Submit(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogWarning("%s", view.Message)
		return err
	}

	if view.Chart == nil {
		uc.console.LogWarning("%s", view.Message)
		return nil
	}
	uc.console.DisplayWeeklySeries(view.Period, *view.Chart)

	return uc.exportReport(ctx, entity.DashboardReport{
		Period:      view.Period,
		GeneratedAt: uc.now(),
		Weekly:      view.Chart,
	})
}

// newAnalysis builds an analysis workflow with the requested split. Empty inputs keep the defaults.
func (uc *DashboardUseCase) newAnalysis(args *types.CLIArgs) (*workflow.Analysis, error) {
	analysis := workflow.NewAnalysis(uc.backend, uc.logger)
	if args.SpendingPct != "" {
		if err := analysis.SetSpendingPct(args.SpendingPct); err != nil {
			return nil, err
		}
	}
	if args.SavingPct != "" {
		if err := analysis.SetSavingPct(args.SavingPct); err != nil {
			return nil, err
		}
	}
	return analysis, nil
}

// RunAnalysis compares actual spending and saving with the target split.
func (uc *DashboardUseCase) RunAnalysis(ctx context.Context, args *types.CLIArgs) error {
	analysis, err := uc.newAnalysis(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Analyzing spending...")
	view, err := analysis.Submit(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogWarning("%s", view.Message)
		return err
	}

	if view.Message != "" {
		uc.console.LogError("%s", view.Message)
		return types.ErrRequestFailed
	}
	uc.console.DisplayAnalysis(view.Target, *view.Result)

	target := view.Target
	return uc.exportReport(ctx, entity.DashboardReport{
		GeneratedAt: uc.now(),
		Target:      &target,
		Analysis:    view.Result,
	})
}

// RunOverview runs the breakdown, weekly and analysis workflows concurrently for one
// period, displays every section that came back and exports them as a single report.
func (uc *DashboardUseCase) RunOverview(ctx context.Context, args *types.CLIArgs) error {
	categorization := workflow.NewCategorization(uc.backend, uc.logger)
	savings := workflow.NewSavings(uc.backend, uc.logger)
	analysis, err := uc.newAnalysis(args)
	if err != nil {
		return err
	}
	if err := errors.Join(
		categorization.Period().Select(args.Month, args.Year),
		savings.Period().Select(args.Month, args.Year),
	); err != nil {
		return err
	}

	// Every workflow's inputs are checked before any request is issued.
	if !categorization.Period().IsComplete() || !savings.Period().IsComplete() {
		uc.console.LogWarning("%s", workflow.MsgPeriodRequired)
		return workflow.ErrIncomplete
	}
	if target := analysis.View().Target; !target.Balanced() {
		uc.console.LogWarning("%s", workflow.MsgPercentSum)
		return workflow.ErrPercentSum
	}

	var (
		catView  workflow.CategorizationView
		savView  workflow.SavingsView
		anaView  workflow.AnalysisView
		progress = uc.console.ProgressWithTotal(3, "Fetching dashboard data")
		mu       sync.Mutex
	)
	step := func() {
		mu.Lock()
		progress.Increment()
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		defer step()
		var err error
		catView, err = categorization.Submit(ctx)
		return err
	})
	g.Go(func() error {
		defer step()
		var err error
		savView, err = savings.Submit(ctx)
		return err
	})
	g.Go(func() error {
		defer step()
		var err error
		anaView, err = analysis.Submit(ctx)
		return err
	})
	err = g.Wait()
	progress.Stop()

	if err != nil {
		for _, msg := range []string{catView.Message, savView.Message, anaView.Message} {
			if msg != "" {
				uc.console.LogWarning("%s", msg)
			}
		}
		return err
	}

	period := catView.Period
	report := entity.DashboardReport{Period: period, GeneratedAt: uc.now()}

	if catView.Chart != nil {
		uc.console.DisplayCategoryBreakdown(period, *catView.Chart)
		report.Breakdown = catView.Chart
	} else {
		uc.console.LogWarning("Spending by category: %s", catView.Message)
	}

	if savView.Chart != nil {
		uc.console.DisplayWeeklySeries(period, *savView.Chart)
		report.Weekly = savView.Chart
	} else {
		uc.console.LogWarning("Savings vs expenses: %s", savView.Message)
	}

	if anaView.Result != nil && anaView.Message == "" {
		uc.console.DisplayAnalysis(anaView.Target, *anaView.Result)
		target := anaView.Target
		report.Target = &target
		report.Analysis = anaView.Result
	} else {
		uc.console.LogError("%s", anaView.Message)
	}

	uc.logger.Debug("overview complete",
		log.FieldMonth, period.Month, log.FieldYear, period.Year,
		"sections", sectionCount(report))

	return uc.exportReport(ctx, report)
}

func sectionCount(r entity.DashboardReport) int {
	n := 0
	for _, present := range []bool{r.Breakdown != nil, r.Weekly != nil, r.Analysis != nil} {
		if present {
			n++
		}
	}
	return n
}
