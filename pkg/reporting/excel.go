package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ibexquant/swing-backtest/internal/backtest"
)

// ExcelReporter writes the trade log and summary to an Excel workbook.
type ExcelReporter struct{}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

type excelStyles struct {
	header   int
	currency int
	number   int
}

// WriteTradesXLSX writes one workbook with a Trades sheet and a Summary
// sheet.
func (r *ExcelReporter) WriteTradesXLSX(trades []*backtest.Trade, summary backtest.Summary, initialCapital, finalCapital float64, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, trades, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, summary, initialCapital, finalCapital, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.currency, err = fx.NewStyle(&excelize.Style{
		NumFmt:    7,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, err
	}

	styles.number, err = fx.NewStyle(&excelize.Style{
		NumFmt:    2,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	return styles, err
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, trades []*backtest.Trade, styles excelStyles) error {
	headers := []string{"Entry Date", "Exit Date", "Entry", "Stop", "Exit", "Size", "Reason", "Result", "R"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for row, t := range trades {
		values := []interface{}{
			t.EntryTime.Format("2006-01-02"),
			t.ExitTime.Format("2006-01-02"),
			t.EntryPrice,
			t.StopPrice,
			t.ExitPrice,
			t.Size,
			string(t.ExitReason),
			t.Result,
			t.R,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}

		for _, col := range []int{3, 4, 5, 8} {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			fx.SetCellStyle(sheet, cell, cell, styles.currency)
		}
		cell, _ := excelize.CoordinatesToCellName(9, row+2)
		fx.SetCellStyle(sheet, cell, cell, styles.number)
	}

	return fx.SetColWidth(sheet, "A", "I", 14)
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, summary backtest.Summary, initialCapital, finalCapital float64, styles excelStyles) error {
	rows := []struct {
		label string
		value interface{}
	}{
		{"Initial Capital", initialCapital},
		{"Final Capital", finalCapital},
		{"Total Trades", summary.Trades},
		{"Win Rate %", summary.WinRatePct},
		{"Expectancy R", summary.ExpectancyR},
		{"Max Drawdown %", summary.MaxDrawdownPct},
	}

	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := fx.SetCellValue(sheet, labelCell, row.label); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valueCell, row.value); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.header)
		fx.SetCellStyle(sheet, valueCell, valueCell, styles.number)
	}

	return fx.SetColWidth(sheet, "A", "B", 18)
}
