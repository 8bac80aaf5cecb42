package workflow

import (
	"context"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// UploadState is the lifecycle of a file submission.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadValidating
	UploadSubmitting
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadValidating:
		return "validating"
	case UploadSubmitting:
		return "submitting"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadView is what the statement upload form displays.
type UploadView struct {
	State         UploadState
	Message       string
	Uploading     bool
	FileName      string
	SubmittedName string
}

// Upload submits a monthly statement tagged with its period.
type Upload struct {
	mu        sync.Mutex
	backend   repository.BackendRepository
	logger    *log.Logger
	period    *PeriodSelector
	file      *entity.File
	submitted string
	state     UploadState
	message   string
	uploading bool
}

// NewUpload creates an idle statement upload workflow.
func NewUpload(backend repository.BackendRepository, logger *log.Logger) *Upload {
	return &Upload{
		backend: backend,
		logger:  logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpUpload),
		period:  NewPeriodSelector(),
	}
}

// Period exposes the workflow's own period selector.
func (w *Upload) Period() *PeriodSelector {
	return w.period
}

// SelectFile stores the candidate file and resets the form. Nothing is validated yet.
func (w *Upload) SelectFile(file entity.File) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.file = &file
	w.submitted = ""
	w.state = UploadIdle
	w.message = ""
}

// Submit validates the form and ingests the renamed statement.
func (w *Upload) Submit(ctx context.Context) (UploadView, error) {
	w.mu.Lock()
	if w.uploading {
		view := w.viewLocked()
		w.mu.Unlock()
		return view, ErrBusy
	}

	w.message = ""
	w.state = UploadValidating
	period := w.period.Period()
	if w.file == nil || w.file.IsZero() || !period.IsComplete() {
		w.state = UploadIdle
		w.message = MsgUploadIncomplete
		view := w.viewLocked()
		w.mu.Unlock()
		return view, ErrIncomplete
	}

	req := entity.UploadRequest{File: *w.file, Period: period}
	w.submitted = req.SubmittedName()
	w.state = UploadSubmitting
	w.uploading = true
	w.mu.Unlock()

	outcome := w.backend.IngestStatement(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploading = false

	if outcome.IsOK() {
		w.state = UploadSucceeded
		w.message = MsgUploadSucceeded
	} else {
		w.state = UploadFailed
		w.message = MsgUploadFailed
		w.logger.Warn("statement upload failed",
			log.FieldFile, req.SubmittedName(),
			log.FieldOutcome, outcome.Kind.String(),
			log.FieldError, outcome.Err)
	}
	return w.viewLocked(), nil
}

// View returns the current form state.
func (w *Upload) View() UploadView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Upload) viewLocked() UploadView {
	view := UploadView{
		State:         w.state,
		Message:       w.message,
		Uploading:     w.uploading,
		SubmittedName: w.submitted,
	}
	if w.file != nil {
		view.FileName = w.file.Name
	}
	return view
}
