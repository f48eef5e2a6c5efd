// Package token turns raw statement cell strings into typed values.
// Both parsers are best-effort and never fail hard: the second return value
// reports whether anything usable was found.
package token

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// DD/MM/YYYY, DD-MM-YY, DD.MM.YYYY etc., anywhere in the string
	datePattern = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	// first numeric-looking substring, used when direct conversion fails
	numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	// candidate amount tokens on a free-text line: 1,234.56 / 500.00 / 4500
	amountTokenPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d{1,2})?`)
)

// ParseAmount converts a cell like "1,234.56", "₹1,234.50Dr" or "- 500" to a
// non-negative magnitude. The sign is discarded; whether the value is a debit
// or a credit is decided by the column (or keyword context) it came from.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Strip everything that is not part of a number. Currency symbols,
	// thousands separators (comma, space, NBSP) and Dr/Cr suffixes all go.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		if v < 0 {
			v = -v
		}
		return v, true
	}

	// Direct conversion failed (stray dots or dashes left over) — take the
	// first numeric-looking substring instead.
	if m := numberPattern.FindString(cleaned); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			if v < 0 {
				v = -v
			}
			return v, true
		}
	}

	return 0, false
}

// CleanDate normalizes the first date token found in s to DD/MM/YYYY.
// Two-digit years are promoted to 20YY. Quote wrapping (a leading ' is how
// some statements force text cells) is tolerated. When no date token exists
// the input is returned unchanged with ok=false so the caller can keep the
// raw text.
func CleanDate(s string) (string, bool) {
	trimmed := strings.Trim(strings.TrimSpace(s), `'"`)
	m := datePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return s, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%02d/%02d/%s", day, month, year), true
}

// HasDate reports whether s contains a recognizable date token. The row
// merger uses this to tell a new transaction row from a continuation row.
func HasDate(s string) bool {
	return datePattern.MatchString(s)
}

// Amounts returns every numeric token on a free-text line, parsed to
// magnitudes, in order of appearance. Tokens that are part of a date are
// excluded so "12/05/2024" does not contribute 12, 5 and 2024.
func Amounts(line string) []float64 {
	stripped := datePattern.ReplaceAllString(line, " ")
	var out []float64
	for _, tok := range amountTokenPattern.FindAllString(stripped, -1) {
		if v, ok := ParseAmount(tok); ok {
			out = append(out, v)
		}
	}
	return out
}
