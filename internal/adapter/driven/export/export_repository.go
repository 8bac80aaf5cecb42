package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
)

// Section titles shared by every format.
const (
	sectionBreakdown = "Spending by Category"
	sectionWeekly    = "Savings vs Expenses"
	sectionAnalysis  = "Financial Analysis"
	sectionTarget    = "Target Split"
	sectionTip       = "Suggestions"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// reportRow is one flattened line of a dashboard report.
type reportRow struct {
	Section string
	Label   string
	Value   string
	Type    string
}

// reportRows flattens the report in display order. Empty sections are skipped.
func reportRows(report entity.DashboardReport) []reportRow {
	var rows []reportRow

	if report.Breakdown != nil {
		for i, label := range report.Breakdown.Labels {
			rows = append(rows, reportRow{Section: sectionBreakdown, Label: label, Value: report.Breakdown.Values[i].StringFixed(2)})
		}
		rows = append(rows, reportRow{Section: sectionBreakdown, Label: "Total", Value: report.Breakdown.Total().StringFixed(2)})
	}

	if report.Weekly != nil {
		for _, bar := range report.Weekly.Bars {
			rows = append(rows, reportRow{Section: sectionWeekly, Label: bar.X, Value: bar.Y.StringFixed(2), Type: string(bar.Type)})
		}
	}

	if report.Analysis != nil {
		if report.Target != nil {
			rows = append(rows,
				reportRow{Section: sectionTarget, Label: "Spending %", Value: strconv.Itoa(report.Target.SpendingPct)},
				reportRow{Section: sectionTarget, Label: "Saving %", Value: strconv.Itoa(report.Target.SavingPct)},
			)
		}
		for _, f := range report.Analysis.Fields() {
			rows = append(rows, reportRow{Section: sectionAnalysis, Label: f.Label, Value: cleanRichTags(f.Value)})
		}
		for i, s := range report.Analysis.Suggestions {
			rows = append(rows, reportRow{Section: sectionTip, Label: strconv.Itoa(i + 1), Value: cleanRichTags(s)})
		}
	}

	return rows
}

func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.DashboardReport, filename, outputDir string) (string, error) {
	if report.IsEmpty() {
		return "", types.ErrNothingToExport
	}
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Reports not scoped to a period, like a standalone analysis, drop the column.
	scoped := report.Period.IsComplete()
	header := []string{"Section", "Label", "Value", "Type"}
	if scoped {
		header = append([]string{"Period"}, header...)
	}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	period := report.Period.Label()
	for _, row := range reportRows(report) {
		record := []string{row.Section, row.Label, row.Value, row.Type}
		if scoped {
			record = append([]string{period}, record...)
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// reportTitle names the report after its period when it has one.
func reportTitle(report entity.DashboardReport) string {
	if !report.Period.IsComplete() {
		return "Financial Report"
	}
	return "Financial Report: " + report.Period.Label()
}

func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.DashboardReport, filename, outputDir string) (string, error) {
	if report.IsEmpty() {
		return "", types.ErrNothingToExport
	}
	return writeJSON(report, filename, outputDir)
}

// ExportTranscriptToJSON writes a chat transcript along with the period it was scoped to.
func (r *ExportRepositoryImpl) ExportTranscriptToJSON(transcript []entity.ChatMessage, period entity.Period, filename, outputDir string) (string, error) {
	if len(transcript) == 0 {
		return "", types.ErrNothingToExport
	}
	doc := struct {
		Period     entity.Period        `json:"period"`
		ExportedAt time.Time            `json:"exported_at"`
		Messages   []entity.ChatMessage `json:"messages"`
	}{
		Period:     period,
		ExportedAt: time.Now().UTC(),
		Messages:   transcript,
	}
	return writeJSON(doc, filename, outputDir)
}

func writeJSON(data any, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
