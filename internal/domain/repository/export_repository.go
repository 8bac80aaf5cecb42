package repository

import (
	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportReportToCSV(report entity.DashboardReport, filename, outputDir string) (string, error)
	ExportReportToJSON(report entity.DashboardReport, filename, outputDir string) (string, error)
	ExportReportToPDF(report entity.DashboardReport, filename, outputDir string) (string, error)
	ExportReportToXLSX(report entity.DashboardReport, filename, outputDir string) (string, error)

	// Chat
	ExportTranscriptToJSON(transcript []entity.ChatMessage, period entity.Period, filename, outputDir string) (string, error)
}
