package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-analyser/internal/api"
	"github.com/insightdelivered/statement-analyser/internal/engine"
	"github.com/insightdelivered/statement-analyser/internal/logger"
	"github.com/insightdelivered/statement-analyser/internal/writer"
)

const version = "1.0.0"

func main() {
	formatFlag := flag.String("format", "csv", "Output format: csv or xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format's extension)")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	addrFlag := flag.String("addr", ":8080", "Listen address for -serve (PORT env overrides)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Analyser
by Insight Delivered

Extracts normalized transaction records (date, particulars, debit, credit,
balance, category) from bank statement PDFs of arbitrary layout.

Usage:
  statement-analyser [flags] <input.pdf> [input2.pdf ...]
  statement-analyser -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement to CSV
  statement-analyser statement.pdf

  # Convert to Excel
  statement-analyser -format=xlsx statement.pdf

  # Run the upload API
  statement-analyser -serve -addr=:9000
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-analyser v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		addr := *addrFlag
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
		app := api.NewApp()
		fmt.Printf("Listening on %s\n", addr)
		if err := app.Listen(addr); err != nil {
			fatalf("Server failed: %v\n", err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	format := strings.ToLower(*formatFlag)
	if format != "csv" && format != "xlsx" {
		fatalf("Unknown format %q. Supported: csv, xlsx\n", *formatFlag)
	}

	eng := engine.New(logger.New())
	failed := false
	for _, inputPath := range flag.Args() {
		if err := processFile(eng, inputPath, format, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func processFile(eng *engine.Engine, inputPath, format, outputPath string, includeHeader bool) error {
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	meta, txns := eng.ProcessFile(data, filepath.Base(inputPath))
	fmt.Printf("  %d page(s), %d transaction(s)\n", meta.PageCount, len(txns))

	if len(txns) == 0 {
		fmt.Println("  Warning: no transactions found. The PDF may be scanned or use an unusual layout.")
		for _, entry := range meta.Logs {
			fmt.Printf("    %s\n", entry)
		}
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	switch format {
	case "xlsx":
		w := &writer.ExcelWriter{}
		if err := w.Write(out, txns); err != nil {
			return fmt.Errorf("Excel write failed: %w", err)
		}
	default:
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.Write(out, meta, txns); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)

	if meta.BankName != "" {
		fmt.Printf("  Bank: %s\n", meta.BankName)
	}
	if meta.AccountHolder != "" {
		fmt.Printf("  Account holder: %s\n", meta.AccountHolder)
	}
	if meta.AccountNumber != "" {
		fmt.Printf("  Account number: %s\n", meta.AccountNumber)
	}

	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
