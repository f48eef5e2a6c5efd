package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyser/internal/models"
)

const sheetName = "Transactions"

// ExcelWriter writes transactions as an .xlsx workbook with a single
// Transactions sheet. Amounts land as numbers so spreadsheet formulas work
// on them; an unparsed balance keeps its raw text.
type ExcelWriter struct{}

// Write streams the workbook to out.
func (w *ExcelWriter) Write(out io.Writer, txns []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for r, txn := range txns {
		values := []interface{}{
			txn.Date,
			txn.Particulars,
			amountValue(txn.Debit),
			amountValue(txn.Credit),
			balanceValue(&txn),
			txn.Head,
			txn.Page,
		}
		for c, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func amountValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func balanceValue(txn *models.Transaction) interface{} {
	if txn.Balance != nil {
		return *txn.Balance
	}
	if txn.BalanceRaw != "" {
		return txn.BalanceRaw
	}
	return nil
}
