package models

import (
	"fmt"
	"strconv"
)

// Parse methods recorded on each transaction so callers (and tests) can tell
// which pipeline path produced a record.
const (
	MethodTable    = "table"
	MethodFallback = "text-fallback"
)

// Transaction is the canonical output unit of the extraction pipeline.
// Debit, Credit and Balance are magnitudes; a transaction is a debit or a
// credit depending on which field is set. Balance stays nil when the source
// cell could not be parsed, in which case BalanceRaw keeps the original text.
type Transaction struct {
	Date        string   `json:"date"`
	Particulars string   `json:"particulars"`
	Debit       *float64 `json:"debit,omitempty"`
	Credit      *float64 `json:"credit,omitempty"`
	Balance     *float64 `json:"balance,omitempty"`
	BalanceRaw  string   `json:"balanceRaw,omitempty"`
	Head        string   `json:"head"`
	Page        int      `json:"page"`
	ParseMethod string   `json:"parseMethod,omitempty"`
}

// Key returns the identity tuple used for deduplication:
// (date, particulars, debit, credit, page). First occurrence wins.
func (t *Transaction) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d",
		t.Date, t.Particulars, amountKey(t.Debit), amountKey(t.Credit), t.Page)
}

func amountKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// Metadata accumulates the diagnostic trail plus any account attributes
// scraped from the statement. It is owned and mutated exclusively by the
// document orchestrator and returned alongside the transaction list.
type Metadata struct {
	Filename         string   `json:"filename,omitempty"`
	BankName         string   `json:"bankName,omitempty"`
	AccountHolder    string   `json:"accountHolder,omitempty"`
	AccountNumber    string   `json:"accountNumber,omitempty"`
	PageCount        int      `json:"pageCount"`
	TransactionCount int      `json:"transactionCount"`
	Logs             []string `json:"logs"`
}

// Logf appends a formatted entry to the diagnostic log.
func (m *Metadata) Logf(format string, args ...interface{}) {
	m.Logs = append(m.Logs, fmt.Sprintf(format, args...))
}
