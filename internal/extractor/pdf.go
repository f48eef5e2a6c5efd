// Package extractor opens a PDF from raw bytes and exposes per-page tables
// and plain text. It tries the structured library first and falls back to
// raw content-stream parsing for files the library cannot decode.
package extractor

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Document is an opened statement PDF.
type Document struct {
	pages []*Page
}

// Open parses the given PDF bytes. It never panics: library crashes are
// recovered and reported as errors. When the structured library produces
// garbage (identity-encoded fonts, broken xref) the raw stream fallback is
// tried before giving up.
func Open(data []byte) (*Document, error) {
	doc, libErr := openWithLibrary(data)
	if libErr == nil && isReadable(doc.pages) {
		return doc, nil
	}

	rawPages, rawErr := extractRaw(data)
	if rawErr == nil {
		doc := &Document{}
		for _, text := range rawPages {
			doc.pages = append(doc.pages, pageFromText(text))
		}
		if isReadable(doc.pages) {
			return doc, nil
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v; the file may be image-based/scanned or use undecodable font encodings", libErr)
	}
	// The library opened the file but nothing readable came out. A scanned
	// statement is a legitimate document that simply yields no text.
	return doc, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the 1-based i-th page.
func (d *Document) Page(i int) *Page {
	return d.pages[i-1]
}

func openWithLibrary(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	doc = &Document{}
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.pages = append(doc.pages, &Page{})
			continue
		}
		doc.pages = append(doc.pages, buildPage(page.Content()))
	}
	return doc, nil
}

// buildPage reconstructs visual rows from positioned text fragments. The PDF
// content stream carries text in draw order, not reading order, so fragments
// are grouped by rounded Y coordinate and sorted left-to-right within a row
// (Y grows bottom-to-top in PDF space, hence the descending sort).
func buildPage(content pdf.Content) *Page {
	type fragment struct {
		x, w float64
		s    string
	}
	rowMap := make(map[int][]fragment)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], fragment{x: t.X, w: t.W, s: t.S})
	}

	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	page := &Page{}
	for _, y := range yKeys {
		frags := rowMap[y]
		sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

		// Fragments separated by a wide horizontal gap belong to different
		// table cells; tight fragments are pieces of the same cell.
		var cells []string
		var current strings.Builder
		var prevEnd float64
		for i, f := range frags {
			if i > 0 {
				gap := f.x - prevEnd
				if gap > cellGap {
					cells = append(cells, strings.TrimSpace(current.String()))
					current.Reset()
				} else if gap > fragmentGap {
					current.WriteByte(' ')
				}
			}
			current.WriteString(f.s)
			end := f.x + f.w
			if end < f.x {
				end = f.x
			}
			prevEnd = end
		}
		if current.Len() > 0 {
			cells = append(cells, strings.TrimSpace(current.String()))
		}

		if len(cells) > 0 {
			page.rows = append(page.rows, cells)
		}
	}
	return page
}

const (
	// cellGap is the minimum horizontal whitespace (in points) treated as a
	// column boundary; fragmentGap is the threshold for inserting a plain
	// space between pieces of the same cell.
	cellGap     = 14.0
	fragmentGap = 1.5
)

// pageFromText wraps plain text (from the raw fallback) as a Page with one
// single-cell row per line. Such pages yield no tables, which routes them to
// the text fallback parser downstream.
func pageFromText(text string) *Page {
	page := &Page{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			page.rows = append(page.rows, []string{line})
		}
	}
	return page
}

// isReadable guards against garbage text from identity-encoded fonts: the
// output must have some length, be mostly plain ASCII, and contain at least
// one word every bank statement has.
func isReadable(pages []*Page) bool {
	var combined strings.Builder
	for _, p := range pages {
		combined.WriteString(p.ExtractText())
		combined.WriteByte('\n')
	}
	text := combined.String()
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if readableRatio(text) <= 0.6 {
		return false
	}
	return containsStatementWord(text)
}

func readableRatio(text string) float64 {
	total, readable := 0, 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"%&@#!?+=*`, r) ||
			r == '£' || r == '$' || r == '€' || r == '₹' {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "particulars",
	"narration", "withdrawal", "deposit", "opening", "closing", "page",
}

func containsStatementWord(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
