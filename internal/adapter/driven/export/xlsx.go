package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var hundred = decimal.NewFromInt(100)

const (
	sheetSummary = "Summary"
	sheetWeekly  = "Weekly"
)

func (r *ExportRepositoryImpl) ExportReportToXLSX(report entity.DashboardReport, filename, outputDir string) (string, error) {
	if report.IsEmpty() {
		return "", types.ErrNothingToExport
	}
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return "", fmt.Errorf("error naming sheet: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#282828"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#C8C8C8", Style: 1}},
	})
	savingsStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#008000"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D4EFDF"}, Pattern: 1},
	})
	expenseStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#C00000"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FADBD8"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheetSummary, "A1", reportTitle(report))
	_ = f.SetCellStyle(sheetSummary, "A1", "A1", titleStyle)
	if err := f.SetSheetRow(sheetSummary, "A3", &[]interface{}{"Section", "Label", "Value"}); err != nil {
		return "", fmt.Errorf("error writing XLSX header: %w", err)
	}
	_ = f.SetCellStyle(sheetSummary, "A3", "C3", headerStyle)

	row := 4
	for _, rr := range reportRows(report) {
		if rr.Section == sectionWeekly {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetSummary, cell, &[]interface{}{rr.Section, rr.Label, rr.Value}); err != nil {
			return "", fmt.Errorf("error writing XLSX row: %w", err)
		}
		row++
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 24)
	_ = f.SetColWidth(sheetSummary, "B", "B", 24)
	_ = f.SetColWidth(sheetSummary, "C", "C", 60)

	if report.Weekly != nil {
		if _, err := f.NewSheet(sheetWeekly); err != nil {
			return "", fmt.Errorf("error creating weekly sheet: %w", err)
		}
		_ = f.SetCellValue(sheetWeekly, "A1", report.Weekly.Title)
		_ = f.SetCellStyle(sheetWeekly, "A1", "A1", titleStyle)
		_ = f.SetSheetRow(sheetWeekly, "A3", &[]interface{}{"Week", "Type", "Amount"})
		_ = f.SetCellStyle(sheetWeekly, "A3", "C3", headerStyle)

		for i, bar := range report.Weekly.Bars {
			line := i + 4
			start, _ := excelize.CoordinatesToCellName(1, line)
			end, _ := excelize.CoordinatesToCellName(3, line)
			amount, _ := bar.Y.Float64()
			if err := f.SetSheetRow(sheetWeekly, start, &[]interface{}{bar.X, string(bar.Type), amount}); err != nil {
				return "", fmt.Errorf("error writing XLSX row: %w", err)
			}
			style := expenseStyle
			if bar.Color == entity.ColorGreen {
				style = savingsStyle
			}
			_ = f.SetCellStyle(sheetWeekly, start, end, style)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}
	return filepath.Abs(outputFilename)
}
