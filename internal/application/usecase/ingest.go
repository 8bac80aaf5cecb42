package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/diillson/finsight-dashboard-go/internal/application/workflow"
	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
)

// readFile loads a local file. An empty path yields the zero File so the
// workflow reports the missing input itself.
func readFile(path string) (entity.File, error) {
	if path == "" {
		return entity.File{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return entity.File{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	return entity.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// RunUpload submits a monthly statement for the given period.
func (uc *DashboardUseCase) RunUpload(ctx context.Context, args *types.CLIArgs) error {
	upload := workflow.NewUpload(uc.backend, uc.logger)
	if err := upload.Period().Select(args.Month, args.Year); err != nil {
		return err
	}

	file, err := readFile(args.File)
	if err != nil {
		return err
	}
	if !file.IsZero() {
		upload.SelectFile(file)
	}

	status := uc.console.Status(fmt.Sprintf("Uploading %s...", file.Name))
	view, err := upload.Submit(ctx)
	status.Stop()

	if errors.Is(err, workflow.ErrIncomplete) {
		uc.console.LogWarning("%s", view.Message)
		return err
	}
	if err != nil {
		return err
	}

	if view.State != workflow.UploadSucceeded {
		uc.console.LogError("%s", view.Message)
		return types.ErrRequestFailed
	}
	uc.console.LogSuccess("%s", view.Message)
	uc.console.LogInfo("Stored as %s", view.SubmittedName)
	return nil
}

// RunReceipt submits a receipt image and shows the extracted details.
func (uc *DashboardUseCase) RunReceipt(ctx context.Context, args *types.CLIArgs) error {
	receipt := workflow.NewReceipt(uc.backend, uc.logger)
	if err := receipt.SetTransactionType(args.TransactionType); err != nil {
		return err
	}

	file, err := readFile(args.File)
	if err != nil {
		return err
	}
	if !file.IsZero() {
		receipt.SelectFile(file)
	}

	status := uc.console.Status(fmt.Sprintf("Uploading %s...", file.Name))
	view, err := receipt.Submit(ctx)
	status.Stop()

	if errors.Is(err, workflow.ErrIncomplete) {
		uc.console.LogWarning("%s", view.Message)
		return err
	}
	if err != nil {
		return err
	}

	if view.State != workflow.UploadSucceeded {
		uc.console.LogError("%s", view.Message)
		return types.ErrRequestFailed
	}
	uc.console.LogSuccess("%s", view.Message)
	if view.Details != nil {
		uc.console.DisplayReceipt(*view.Details)
	}
	return nil
}
