package engine

import (
	"strings"

	"github.com/insightdelivered/statement-analyser/internal/classify"
	"github.com/insightdelivered/statement-analyser/internal/models"
	"github.com/insightdelivered/statement-analyser/internal/schema"
	"github.com/insightdelivered/statement-analyser/internal/token"
)

// convertTable turns one raw cell grid into canonical transaction records:
// locate the header row, map its cells to canonical fields, merge
// continuation rows, then parse and validate each logical row.
func convertTable(grid [][]string, page int) []models.Transaction {
	if len(grid) < 2 {
		return nil
	}

	headerIdx := findHeaderRow(grid)
	fields := make([]string, len(grid[headerIdx]))
	for i, cell := range grid[headerIdx] {
		fields[i], _ = schema.MapHeader(cell)
	}

	var txns []models.Transaction
	for _, row := range mergeRows(grid[headerIdx+1:]) {
		if txn, ok := convertRow(fields, row, page); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// convertRow builds a record from one merged logical row. The second return
// is false when the row is boilerplate or fails the validity rule: date and
// particulars present plus at least one parsed debit/credit amount.
func convertRow(fields []string, row []string, page int) (models.Transaction, bool) {
	// Pad short rows to the header width; trailing cells beyond the header
	// have no column to live in and are ignored.
	dict := make(map[string]string, len(fields))
	for i, field := range fields {
		cell := ""
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}
		if field == "" {
			continue
		}
		if _, exists := dict[field]; !exists {
			dict[field] = cell
		}
	}

	rowText := strings.Join(row, " ")
	if isBoilerplate(rowText) {
		return models.Transaction{}, false
	}

	date := extractRowDate(dict, row)
	particulars := extractRowParticulars(dict, row)
	if date == "" || particulars == "" || isBoilerplate(particulars) {
		return models.Transaction{}, false
	}

	txn := models.Transaction{
		Date:        date,
		Particulars: particulars,
		Page:        page,
		ParseMethod: models.MethodTable,
	}

	if v, ok := token.ParseAmount(dict[schema.FieldDebit]); ok {
		txn.Debit = &v
	}
	if v, ok := token.ParseAmount(dict[schema.FieldCredit]); ok {
		txn.Credit = &v
	}
	if txn.Debit == nil && txn.Credit == nil {
		return models.Transaction{}, false
	}

	if raw := dict[schema.FieldBalance]; raw != "" {
		if v, ok := token.ParseAmount(raw); ok {
			txn.Balance = &v
		} else {
			txn.BalanceRaw = raw
		}
	}

	txn.Head = classify.Classify(particulars)
	return txn, true
}

// extractRowDate takes the mapped date column when it holds a date, else
// scans every cell for one. An unnormalizable date keeps its raw text — the
// row is never dropped just because normalization failed.
func extractRowDate(dict map[string]string, row []string) string {
	if raw := dict[schema.FieldDate]; raw != "" {
		if normalized, ok := token.CleanDate(raw); ok {
			return normalized
		}
		return strings.Trim(raw, `'" `)
	}
	for _, cell := range row {
		if token.HasDate(cell) {
			if normalized, ok := token.CleanDate(cell); ok {
				return normalized
			}
		}
	}
	return ""
}

// extractRowParticulars prefers the mapped particulars column and falls back
// to the longest letter-bearing cell, a stand-in that holds up well on
// statements with unlabeled narration columns. Text is preserved verbatim.
func extractRowParticulars(dict map[string]string, row []string) string {
	if p := dict[schema.FieldParticulars]; p != "" {
		return p
	}
	longest := ""
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if containsLetter(cell) && len(cell) > len(longest) && !token.HasDate(cell) {
			longest = cell
		}
	}
	return longest
}
