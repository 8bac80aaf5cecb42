package workflow

import (
	"context"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// AnalysisView is the deviation and recommendation report.
type AnalysisView struct {
	Target          entity.AnalysisTarget
	Message         string
	Result          *entity.AnalysisResult
	ShowSuggestions bool
}

// Analysis compares actual spending and saving with a target percentage split.
type Analysis struct {
	mu      sync.Mutex
	backend repository.BackendRepository
	logger  *log.Logger
	target  entity.AnalysisTarget
	result  *entity.AnalysisResult
	message string
	fence   fence
}

// NewAnalysis starts from the default 70/30 split.
func NewAnalysis(backend repository.BackendRepository, logger *log.Logger) *Analysis {
	return &Analysis{
		backend: backend,
		logger:  logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpAnalyze),
		target:  entity.DefaultAnalysisTarget,
	}
}

// SetSpendingPct sets the spending share from user input.
func (w *Analysis) SetSpendingPct(value string) error {
	pct, err := entity.ParsePercentage(value)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.target.SpendingPct = pct
	w.mu.Unlock()
	return nil
}

// SetSavingPct sets the saving share from user input.
func (w *Analysis) SetSavingPct(value string) error {
	pct, err := entity.ParsePercentage(value)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.target.SavingPct = pct
	w.mu.Unlock()
	return nil
}

// Submit runs the analysis when the split adds up to 100.
// A failed call keeps the previously displayed result.
func (w *Analysis) Submit(ctx context.Context) (AnalysisView, error) {
	w.mu.Lock()
	w.message = ""
	target := w.target
	if !target.Balanced() {
		w.message = MsgPercentSum
		view := w.viewLocked()
		w.mu.Unlock()
		return view, ErrPercentSum
	}
	seq := w.fence.next()
	w.mu.Unlock()

	outcome := w.backend.RunAnalysis(ctx, target)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.fence.isLatest(seq) {
		w.logger.Debug("discarding stale analysis response", log.FieldSequence, seq)
		return w.viewLocked(), nil
	}

	if outcome.IsOK() {
		result := outcome.Payload
		w.result = &result
		w.message = ""
	} else {
		w.message = MsgAnalysisFailed
		w.logger.Warn("analysis failed",
			"spending_pct", target.SpendingPct,
			"saving_pct", target.SavingPct,
			log.FieldOutcome, outcome.Kind.String(),
			log.FieldError, outcome.Err)
	}
	return w.viewLocked(), nil
}

// View returns the current report state.
func (w *Analysis) View() AnalysisView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Analysis) viewLocked() AnalysisView {
	view := AnalysisView{
		Target:  w.target,
		Message: w.message,
	}
	if w.result != nil {
		result := *w.result
		view.Result = &result
		view.ShowSuggestions = result.HasSuggestions()
	}
	return view
}
