package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
)

func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.DashboardReport, filename, outputDir string) (string, error) {
	if report.IsEmpty() {
		return "", types.ErrNothingToExport
	}
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+reportTitle(report)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	if report.Breakdown != nil {
		sectionTitle(sectionBreakdown)
		total := report.Breakdown.Total()
		for i, label := range report.Breakdown.Labels {
			value := report.Breakdown.Values[i]
			share := ""
			if !total.IsZero() {
				share = fmt.Sprintf("  (%s%%)", value.Div(total).Mul(hundred).StringFixed(1))
			}
			pdf.CellFormat(120, 6, tr(label), "", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, tr(value.StringFixed(2)+share), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(120, 7, "Total", "T", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, total.StringFixed(2), "T", 1, "R", false, 0, "")
		pdf.Ln(8)
	}

	if report.Weekly != nil {
		sectionTitle(fmt.Sprintf("%s (%s)", sectionWeekly, report.Weekly.Title))
		for _, bar := range report.Weekly.Bars {
			red, green, blue := rgbOf(bar.Color)
			pdf.SetTextColor(red, green, blue)
			pdf.CellFormat(60, 6, tr(bar.X), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, tr(string(bar.Type)), "", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, bar.Y.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.Ln(8)
	}

	if report.Analysis != nil {
		title := sectionAnalysis
		if report.Target != nil {
			title = fmt.Sprintf("%s (%d%% spending / %d%% saving)", sectionAnalysis, report.Target.SpendingPct, report.Target.SavingPct)
		}
		sectionTitle(title)
		for _, f := range report.Analysis.Fields() {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(50, 6, tr(f.Label), "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(140, 6, tr(cleanRichTags(f.Value)), "", "L", false)
		}
		pdf.Ln(6)

		if report.Analysis.HasSuggestions() {
			sectionTitle(sectionTip)
			var lines []string
			for _, s := range report.Analysis.Suggestions {
				lines = append(lines, "- "+cleanRichTags(s))
			}
			pdf.MultiCell(190, 5, tr(strings.Join(lines, "\n")), "", "L", false)
		}
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by FinSight Dashboard (Go) | %s", report.GeneratedAt.Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func rgbOf(c entity.SeriesColor) (int, int, int) {
	if c == entity.ColorGreen {
		return 0, 128, 0
	}
	return 192, 0, 0
}
