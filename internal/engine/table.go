package engine

import (
	"strings"
	"unicode"

	"github.com/insightdelivered/statement-analyser/internal/schema"
	"github.com/insightdelivered/statement-analyser/internal/token"
)

// headerScanDepth is how many leading rows are scored when hunting for the
// header row; statements often put a title or blank spacer above it.
const headerScanDepth = 4

// findHeaderRow scores the first few rows of a raw grid and returns the
// index of the most header-like one. A cell matching a known column alias
// scores 3, any cell containing a letter scores 1. Ties keep the earliest
// row (strictly-greater comparison).
func findHeaderRow(grid [][]string) int {
	best, bestScore := 0, -1
	limit := len(grid)
	if limit > headerScanDepth {
		limit = headerScanDepth
	}
	for i := 0; i < limit; i++ {
		score := 0
		for _, cell := range grid[i] {
			if schema.IsHeaderCell(cell) {
				score += 3
			} else if containsLetter(cell) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// mergeRows repairs transactions whose narration wraps onto further visual
// lines. A row begins a new logical transaction only when its first cell
// carries a date token; anything else is folded column-wise into the row
// being buffered, joined by single spaces. The pending row is flushed at end
// of input.
func mergeRows(rows [][]string) [][]string {
	var merged [][]string
	var buffer []string

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if token.HasDate(row[0]) {
			if buffer != nil {
				merged = append(merged, buffer)
			}
			buffer = append([]string(nil), row...)
			continue
		}
		if buffer == nil {
			// Continuation with nothing to continue — noise above the first
			// dated row, drop it.
			continue
		}
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			for len(buffer) <= i {
				buffer = append(buffer, "")
			}
			if buffer[i] == "" {
				buffer[i] = cell
			} else {
				buffer[i] += " " + cell
			}
		}
	}
	if buffer != nil {
		merged = append(merged, buffer)
	}
	return merged
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// boilerplatePhrases mark non-transactional rows and lines: titles, footers,
// page markers and the opening/closing summary block.
var boilerplatePhrases = []string{
	"statement of account",
	"account statement",
	"statement period",
	"opening balance",
	"closing balance",
	"balance brought forward",
	"brought forward",
	"carried forward",
	"total debits",
	"total credits",
	"total withdrawal",
	"total deposit",
	"grand total",
	"page total",
	"end of statement",
	"computer generated",
	"page no",
	"continued on next page",
	"transactions legend",
}

// isBoilerplate reports whether a row or line is known non-transactional
// furniture.
func isBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
