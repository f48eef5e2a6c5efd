package engine

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-analyser/internal/classify"
	"github.com/insightdelivered/statement-analyser/internal/models"
	"github.com/insightdelivered/statement-analyser/internal/token"
)

var (
	debitKeywords  = regexp.MustCompile(`(?i)\b(debit|debited|withdrawal|wdl|dr)\b`)
	creditKeywords = regexp.MustCompile(`(?i)\b(credit|credited|deposit|cr)\b`)
)

// parseTextFallback scans raw page text line by line. It runs only when a
// page's tables produced nothing, and emits approximate records from lines
// that carry both a date token and at least one amount. Narration is the
// full line, kept verbatim.
func parseTextFallback(text string, page int) []models.Transaction {
	var txns []models.Transaction

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isBoilerplate(line) {
			continue
		}
		if !token.HasDate(line) {
			continue
		}
		amounts := token.Amounts(line)
		if len(amounts) == 0 {
			continue
		}

		date, ok := token.CleanDate(line)
		if !ok {
			continue
		}

		txn := models.Transaction{
			Date:        date,
			Particulars: line,
			Page:        page,
			ParseMethod: models.MethodFallback,
		}

		hasDebitKw := debitKeywords.MatchString(line)
		hasCreditKw := creditKeywords.MatchString(line)

		assign := func(v float64) {
			if hasCreditKw && !hasDebitKw {
				txn.Credit = &v
			} else {
				txn.Debit = &v
			}
		}

		switch n := len(amounts); {
		case n == 1:
			// Single number: keyword decides the side, defaulting to debit.
			assign(amounts[0])
		case n == 2:
			// Amount then running balance.
			assign(amounts[0])
			txn.Balance = &amounts[1]
		default:
			// Last is the balance, second-to-last the amount. When the line
			// names both sides, the leading number is taken as the debit and
			// the second-to-last as the credit.
			txn.Balance = &amounts[n-1]
			if hasDebitKw && hasCreditKw {
				txn.Debit = &amounts[0]
				txn.Credit = &amounts[n-2]
			} else {
				assign(amounts[n-2])
			}
		}

		txn.Head = classify.Classify(line)
		txns = append(txns, txn)
	}

	return txns
}
