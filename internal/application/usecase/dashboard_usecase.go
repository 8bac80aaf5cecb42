package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
)

// DashboardUseCase drives the dashboard workflows from the command line.
type DashboardUseCase struct {
	backend     repository.BackendRepository
	exportRepo  repository.ExportRepository
	archiveRepo repository.ArchiveRepository
	console     types.ConsoleInterface
	config      *types.Config
	logger      *log.Logger
	now         func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case.
// archiveRepo may be nil when archival is not configured.
func NewDashboardUseCase(
	backend repository.BackendRepository,
	exportRepo repository.ExportRepository,
	archiveRepo repository.ArchiveRepository,
	console types.ConsoleInterface,
	config *types.Config,
	logger *log.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		backend:     backend,
		exportRepo:  exportRepo,
		archiveRepo: archiveRepo,
		console:     console,
		config:      config,
		logger:      logger.WithComponent(log.ComponentApp),
		now:         time.Now,
	}
}

// exportReport writes the report in every configured format and archives each file.
// Nothing happens without a report name.
func (uc *DashboardUseCase) exportReport(ctx context.Context, report entity.DashboardReport) error {
	if uc.config.ReportName == "" {
		return nil
	}
	if report.IsEmpty() {
		uc.console.LogWarning("Nothing to export for %s", report.Period.Label())
		return nil
	}

	var paths []string
	for _, reportType := range uc.config.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportReportToCSV(report, uc.config.ReportName, uc.config.Dir)
		case "json":
			path, err = uc.exportRepo.ExportReportToJSON(report, uc.config.ReportName, uc.config.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportReportToPDF(report, uc.config.ReportName, uc.config.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportReportToXLSX(report, uc.config.ReportName, uc.config.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s' skipped", reportType)
			continue
		}
		if err != nil {
			uc.logger.ErrorContext(ctx, "export failed", log.FieldOperation, log.OpExport, "type", reportType, log.FieldError, err)
			return fmt.Errorf("failed to export %s report: %w", reportType, err)
		}
		uc.console.LogSuccess("Saved %s report to %s", reportType, path)
		paths = append(paths, path)
	}

	return uc.archive(ctx, paths...)
}

func (uc *DashboardUseCase) archive(ctx context.Context, paths ...string) error {
	if uc.archiveRepo == nil || !uc.config.Archive.Enabled() {
		return nil
	}

	var errs []error
	for _, path := range paths {
		uri, err := uc.archiveRepo.Archive(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		uc.console.LogSuccess("Archived to %s", uri)
	}
	return errors.Join(errs...)
}
