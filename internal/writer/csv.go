// Package writer renders extracted transactions as CSV or Excel. Both
// writers are stateless and consume the record list read-only.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-analyser/internal/models"
)

var columns = []string{"Date", "Particulars", "Debit", "Credit", "Balance", "Head", "Page"}

// CSVWriter writes transactions in CSV form. With IncludeHeader set, the
// account metadata is emitted first as comment-style rows.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the records to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, meta *models.Metadata, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, meta, txns)
}

// Write writes the records in CSV form to out.
func (w *CSVWriter) Write(out io.Writer, meta *models.Metadata, txns []models.Transaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader && meta != nil {
		if meta.BankName != "" {
			cw.Write([]string{"# Bank", meta.BankName})
		}
		if meta.AccountHolder != "" {
			cw.Write([]string{"# Account Holder", meta.AccountHolder})
		}
		if meta.AccountNumber != "" {
			cw.Write([]string{"# Account Number", meta.AccountNumber})
		}
	}

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			txn.Particulars,
			formatAmount(txn.Debit),
			formatAmount(txn.Credit),
			balanceCell(&txn),
			txn.Head,
			strconv.Itoa(txn.Page),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func balanceCell(txn *models.Transaction) string {
	if txn.Balance != nil {
		return strconv.FormatFloat(*txn.Balance, 'f', 2, 64)
	}
	return txn.BalanceRaw
}
