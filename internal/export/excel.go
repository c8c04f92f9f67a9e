// Package export renders bill lists as Excel workbooks for the
// accounting handover.
package export

import (
	"fmt"
	"io"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/internal/format"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Bills"

var headers = []string{
	"ID", "Email", "Type", "Nom", "Montant", "Date", "TVA", "Pct",
	"Commentaire", "Justificatif", "Statut", "Commentaire admin",
}

// BillExporter writes bills to xlsx workbooks.
type BillExporter struct {
	logger *zap.Logger
}

// NewBillExporter creates a bill exporter.
func NewBillExporter(logger *zap.Logger) *BillExporter {
	return &BillExporter{logger: logger}
}

// Write renders bills as a single-sheet workbook on w.
func (e *BillExporter) Write(bills []entity.Bill, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for row, bill := range bills {
		status := format.Status(bill.Status)
		values := []any{
			bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount,
			bill.Date, bill.VAT, bill.Pct, bill.Commentary,
			bill.FileName, status, bill.CommentAdmin,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Exported bills workbook", zap.Int("bills", len(bills)))
	return nil
}
