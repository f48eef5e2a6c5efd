// Package engine is the extraction and normalization core: it walks the
// pages of a statement document, converts tabular data to canonical
// transaction records, falls back to free-text line scanning when a page has
// no usable table, and aggregates and deduplicates the result.
package engine

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyser/internal/extractor"
	"github.com/insightdelivered/statement-analyser/internal/models"
)

// Page is one page of an opened document.
type Page interface {
	ExtractTables() [][][]string
	ExtractText() string
}

// Document is the capability the engine needs from a document library:
// ordered pages exposing raw tables and plain text.
type Document interface {
	NumPages() int
	Page(i int) Page
}

// Engine runs the extraction pipeline. The zerolog logger carries the
// diagnostic trail for operators; the same entries accumulate in the
// returned metadata.
type Engine struct {
	log zerolog.Logger
}

// New returns an engine logging diagnostics to log.
func New(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// ProcessFile is the core entry point: raw document bytes and the original
// filename in, metadata and an ordered transaction list out. The list is
// empty — never nil — when nothing could be extracted, and no failure
// escalates to the caller.
func (e *Engine) ProcessFile(data []byte, filename string) (*models.Metadata, []models.Transaction) {
	meta := &models.Metadata{Filename: filename, Logs: []string{}}

	doc, err := extractor.Open(data)
	if err != nil {
		meta.Logf("failed to open %s: %v", filename, err)
		e.log.Warn().Str("file", filename).Err(err).Msg("document open failed")
		return meta, []models.Transaction{}
	}

	txns := e.Process(pdfDocument{doc}, meta)
	return meta, txns
}

// Process walks the document page by page, strictly in order. Per-page
// failures are logged and skipped; they never abort later pages.
func (e *Engine) Process(doc Document, meta *models.Metadata) []models.Transaction {
	numPages := doc.NumPages()
	meta.PageCount = numPages
	meta.Logf("document opened: %d page(s)", numPages)

	all := []models.Transaction{}
	var pageTexts []string

	for i := 1; i <= numPages; i++ {
		pageTxns, pageText := e.processPage(doc, i, meta)
		all = append(all, pageTxns...)
		pageTexts = append(pageTexts, pageText)
	}

	scrapeAccountInfo(meta, pageTexts)

	all = dedupe(all)
	meta.TransactionCount = len(all)
	meta.Logf("total: %d transaction(s) after deduplication", len(all))
	e.log.Info().
		Int("pages", numPages).
		Int("transactions", len(all)).
		Msg("document processed")
	return all
}

// processPage extracts one page's transactions: every table through the
// converter first, then the text fallback if the tables yielded nothing.
// A panicking page (malformed content, library bug) contributes zero
// transactions and a log entry.
func (e *Engine) processPage(doc Document, pageNum int, meta *models.Metadata) (txns []models.Transaction, pageText string) {
	defer func() {
		if r := recover(); r != nil {
			meta.Logf("page %d: extraction failed: %v", pageNum, r)
			e.log.Warn().Int("page", pageNum).Interface("panic", r).Msg("page extraction failed")
			txns = nil
		}
	}()

	page := doc.Page(pageNum)
	tables := page.ExtractTables()
	pageText = page.ExtractText()
	meta.Logf("page %d: %d table(s)", pageNum, len(tables))

	for t, grid := range tables {
		tableTxns := convertTable(grid, pageNum)
		meta.Logf("page %d table %d: %d transaction(s)", pageNum, t+1, len(tableTxns))
		txns = append(txns, tableTxns...)
	}

	if len(txns) == 0 {
		fallbackTxns := parseTextFallback(pageText, pageNum)
		if len(fallbackTxns) > 0 {
			meta.Logf("page %d: text fallback found %d transaction(s)", pageNum, len(fallbackTxns))
		}
		txns = fallbackTxns
	}
	return txns, pageText
}

// dedupe collapses records sharing the identity tuple
// (date, particulars, debit, credit, page), keeping first-seen order.
func dedupe(txns []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(txns))
	out := txns[:0]
	for _, txn := range txns {
		key := txn.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, txn)
	}
	return out
}

type pdfDocument struct {
	doc *extractor.Document
}

func (d pdfDocument) NumPages() int { return d.doc.NumPages() }

func (d pdfDocument) Page(i int) Page { return d.doc.Page(i) }

// knownBanks maps an identifying substring to the display name recorded in
// the metadata.
var knownBanks = []struct{ needle, name string }{
	{"state bank of india", "State Bank of India"},
	{"hdfc bank", "HDFC Bank"},
	{"icici bank", "ICICI Bank"},
	{"axis bank", "Axis Bank"},
	{"kotak mahindra", "Kotak Mahindra Bank"},
	{"punjab national", "Punjab National Bank"},
	{"bank of baroda", "Bank of Baroda"},
	{"yes bank", "Yes Bank"},
	{"idfc first", "IDFC First Bank"},
	{"hsbc", "HSBC"},
	{"barclays", "Barclays"},
	{"metro bank", "Metro Bank"},
}

// Indian account numbers run 9–18 digits.
var accountNumberPattern = regexp.MustCompile(`\b\d{9,18}\b`)

var holderLabels = []string{
	"account holder", "account name", "customer name", "name of customer",
}

// scrapeAccountInfo opportunistically pulls the bank name, account holder
// and account number out of the page text. All three are optional metadata;
// nothing fails when they are absent.
func scrapeAccountInfo(meta *models.Metadata, pageTexts []string) {
	combined := strings.Join(pageTexts, "\n")
	lower := strings.ToLower(combined)

	for _, bank := range knownBanks {
		if strings.Contains(lower, bank.needle) {
			meta.BankName = bank.name
			break
		}
	}

	for _, line := range strings.Split(combined, "\n") {
		lowerLine := strings.ToLower(line)
		if meta.AccountHolder == "" {
			for _, label := range holderLabels {
				if idx := strings.Index(lowerLine, label); idx >= 0 {
					rest := strings.TrimSpace(line[idx+len(label):])
					rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
					if rest != "" {
						meta.AccountHolder = rest
					}
					break
				}
			}
		}
		if meta.AccountNumber == "" &&
			(strings.Contains(lowerLine, "account no") || strings.Contains(lowerLine, "a/c no") ||
				strings.Contains(lowerLine, "account number")) {
			if num := accountNumberPattern.FindString(line); num != "" {
				meta.AccountNumber = num
			}
		}
	}
}
