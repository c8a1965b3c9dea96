package document

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/domain/expense"
)

// StatementWriter renders a compiled Statement into an xlsx workbook for
// the finance office. Page layout beyond the cell grid is left to the
// downstream template.
type StatementWriter struct {
	unitName string
	city     string
	logger   *zap.Logger
}

// NewStatementWriter creates a statement writer stamped with the issuing
// unit name and its city, which heads the signature block.
func NewStatementWriter(unitName, city string, logger *zap.Logger) *StatementWriter {
	return &StatementWriter{unitName: unitName, city: city, logger: logger}
}

const statementSheet = "Rincian Biaya"

// Write renders the statement to outputPath
func (w *StatementWriter) Write(stmt *Statement, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if _, err := f.NewSheet(statementSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	w.setCell(f, "A1", w.unitName)
	w.setCell(f, "A2", "Rincian Biaya Perjalanan Dinas")
	w.setCell(f, "A4", "Nomor Laporan")
	w.setCell(f, "B4", stmt.ReportID)
	w.setCell(f, "A5", "Pelaksana")
	w.setCell(f, "B5", stmt.OwnerID)
	w.setCell(f, "A6", "Lama Perjalanan")
	w.setCell(f, "B6", fmt.Sprintf("%d Hari", stmt.DurationDays))

	w.setCell(f, "A8", "No")
	w.setCell(f, "B8", "Uraian")
	w.setCell(f, "C8", "Jumlah")
	w.setCell(f, "D8", "Keterangan")

	row := 9
	for i, item := range stmt.Items {
		w.setCell(f, fmt.Sprintf("A%d", row), fmt.Sprintf("%d", i+1))
		w.setCell(f, fmt.Sprintf("B%d", row), item.Description)
		w.setCell(f, fmt.Sprintf("C%d", row), expense.FormatRupiah(item.Amount))
		w.setCell(f, fmt.Sprintf("D%d", row), item.Note)
		row++
	}

	w.setCell(f, fmt.Sprintf("B%d", row), "Jumlah")
	w.setCell(f, fmt.Sprintf("C%d", row), expense.FormatRupiah(stmt.Total))
	row++
	w.setCell(f, fmt.Sprintf("B%d", row), "Terbilang")
	w.setCell(f, fmt.Sprintf("C%d", row), stmt.TotalInWords)
	row += 2

	w.setCell(f, fmt.Sprintf("A%d", row), "Pernyataan Pengeluaran Riil")
	row++
	w.setCell(f, fmt.Sprintf("B%d", row), "Jumlah")
	w.setCell(f, fmt.Sprintf("C%d", row), expense.FormatRupiah(stmt.ActualExpenseTotal))
	row++
	w.setCell(f, fmt.Sprintf("B%d", row), "Terbilang")
	w.setCell(f, fmt.Sprintf("C%d", row), stmt.ActualExpenseInWords)
	row += 2

	w.setCell(f, fmt.Sprintf("C%d", row),
		fmt.Sprintf("%s, %s", w.city, stmt.GeneratedAt.Format("02-01-2006")))
	row++
	w.setCell(f, fmt.Sprintf("C%d", row), "Pelaksana Perjalanan Dinas,")

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save statement: %w", err)
	}

	w.logger.Info("Statement written",
		zap.String("report_id", stmt.ReportID),
		zap.String("output_path", outputPath))
	return nil
}

func (w *StatementWriter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(statementSheet, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
