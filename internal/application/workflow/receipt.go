package workflow

import (
	"context"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// ReceiptView is what the receipt form displays.
type ReceiptView struct {
	State           UploadState
	Message         string
	Uploading       bool
	TransactionType entity.TransactionType
	Details         *entity.ReceiptDetails
}

// Receipt submits a receipt for OCR extraction. It is keyed by transaction type, not by period.
type Receipt struct {
	mu        sync.Mutex
	backend   repository.BackendRepository
	logger    *log.Logger
	file      *entity.File
	txType    entity.TransactionType
	details   *entity.ReceiptDetails
	state     UploadState
	message   string
	uploading bool
}

// NewReceipt creates an idle receipt workflow.
func NewReceipt(backend repository.BackendRepository, logger *log.Logger) *Receipt {
	return &Receipt{
		backend: backend,
		logger:  logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpReceipt),
	}
}

// SelectFile stores the candidate receipt and resets the form state.
func (w *Receipt) SelectFile(file entity.File) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.file = &file
	w.state = UploadIdle
	w.message = ""
}

// SetTransactionType selects "received" or "paid"; an empty value clears the selection.
func (w *Receipt) SetTransactionType(value string) error {
	tt, err := entity.ParseTransactionType(value)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.txType = tt
	w.mu.Unlock()
	return nil
}

// Submit validates the form, uploads the receipt and keeps the extracted details.
func (w *Receipt) Submit(ctx context.Context) (ReceiptView, error) {
	w.mu.Lock()
	if w.uploading {
		view := w.viewLocked()
		w.mu.Unlock()
		return view, ErrBusy
	}

	w.message = ""
	w.state = UploadValidating
	if w.file == nil || w.file.IsZero() || w.txType == "" {
		w.state = UploadIdle
		w.message = MsgReceiptIncomplete
		view := w.viewLocked()
		w.mu.Unlock()
		return view, ErrIncomplete
	}

	req := entity.ReceiptUploadRequest{File: *w.file, TransactionType: w.txType}
	w.state = UploadSubmitting
	w.uploading = true
	w.mu.Unlock()

	outcome := w.backend.IngestReceipt(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploading = false

	if outcome.IsOK() {
		details := outcome.Payload
		w.details = &details
		w.state = UploadSucceeded
		w.message = MsgUploadSucceeded
	} else {
		w.state = UploadFailed
		w.message = MsgUploadFailed
		w.logger.Warn("receipt upload failed",
			log.FieldFile, req.File.Name,
			log.FieldOutcome, outcome.Kind.String(),
			log.FieldError, outcome.Err)
	}
	return w.viewLocked(), nil
}

// View returns the current form state.
func (w *Receipt) View() ReceiptView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Receipt) viewLocked() ReceiptView {
	view := ReceiptView{
		State:           w.state,
		Message:         w.message,
		Uploading:       w.uploading,
		TransactionType: w.txType,
	}
	if w.details != nil {
		details := *w.details
		view.Details = &details
	}
	return view
}
