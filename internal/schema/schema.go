// Package schema maps the wildly inconsistent column headers found in bank
// statements onto one canonical field set.
package schema

import "strings"

// Canonical field names every table converges on.
const (
	FieldDate        = "date"
	FieldParticulars = "particulars"
	FieldDebit       = "debit"
	FieldCredit      = "credit"
	FieldBalance     = "balance"
)

// aliasEntry keeps the declaration order significant: the first canonical
// field whose alias list matches wins, so date outranks particulars, which
// outranks debit, and so on.
type aliasEntry struct {
	field   string
	aliases []string
}

var headerAliases = []aliasEntry{
	{FieldDate, []string{
		"date", "txn date", "tran date", "transaction date", "value date",
		"value dt", "post date", "posting date", "book date",
	}},
	{FieldParticulars, []string{
		"particulars", "narration", "description", "details", "transaction details",
		"remarks", "transaction remarks", "narrative", "payment type and details",
	}},
	{FieldDebit, []string{
		"debit", "withdrawal", "withdrawal amt", "withdrawals", "paid out",
		"dr amount", "dr amt", "dr", "money out", "debit amount",
	}},
	{FieldCredit, []string{
		"credit", "deposit", "deposit amt", "deposits", "paid in",
		"cr amount", "cr amt", "cr", "money in", "credit amount",
	}},
	{FieldBalance, []string{
		"balance", "closing balance", "running balance", "available balance",
		"bal", "balance amount",
	}},
}

// MapHeader maps a raw header cell to a canonical field name. When no alias
// matches, the normalized header text itself comes back with canonical=false
// so downstream code still has a stable key to hang the column on.
func MapHeader(raw string) (field string, canonical bool) {
	norm := Normalize(raw)
	if norm == "" {
		return "", false
	}
	for _, entry := range headerAliases {
		for _, alias := range entry.aliases {
			if matchesAlias(norm, alias) {
				return entry.field, true
			}
		}
	}
	return norm, false
}

// IsHeaderCell reports whether a cell looks like any known column header.
// The table locator scores candidate header rows with this.
func IsHeaderCell(raw string) bool {
	norm := Normalize(raw)
	if norm == "" {
		return false
	}
	for _, entry := range headerAliases {
		for _, alias := range entry.aliases {
			if matchesAlias(norm, alias) {
				return true
			}
		}
	}
	return false
}

// Normalize lower-cases, trims and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// matchesAlias is the bidirectional "starts-with OR contains" test: a header
// "txn date & time" matches the alias "txn date", and a header "dt" does not
// accidentally match "date".
func matchesAlias(norm, alias string) bool {
	return strings.HasPrefix(norm, alias) || strings.HasPrefix(alias, norm) ||
		strings.Contains(norm, alias)
}
