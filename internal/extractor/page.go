package extractor

import "strings"

// Page holds the reconstructed visual rows of one PDF page. Each row is a
// slice of cell strings in left-to-right order.
type Page struct {
	rows [][]string
}

// ExtractTables returns zero or more tables found on the page. A table is a
// maximal run of consecutive rows that each split into two or more cells;
// isolated multi-cell rows are not worth treating as tabular data.
func (p *Page) ExtractTables() [][][]string {
	var tables [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, row := range p.rows {
		if len(row) >= 2 {
			current = append(current, row)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// ExtractText renders the page as plain text, one line per visual row with
// cells joined by single spaces.
func (p *Page) ExtractText() string {
	lines := make([]string, 0, len(p.rows))
	for _, row := range p.rows {
		lines = append(lines, strings.Join(row, " "))
	}
	return strings.Join(lines, "\n")
}
