package writer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-analyser/internal/models"
)

func sampleTxns() []models.Transaction {
	debit := 500.00
	balance := 4500.00
	credit := 5000.00
	return []models.Transaction{
		{Date: "01/03/2024", Particulars: "UPI/ATM WDL/SELF", Debit: &debit, Balance: &balance, Head: "CASH", Page: 1},
		{Date: "02/03/2024", Particulars: "SALARY CREDIT XYZ CORP", Credit: &credit, BalanceRaw: "ERR", Head: "SALARY", Page: 1},
	}
}

func TestCSVWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, nil, sampleTxns()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][5] != "Head" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "500.00" || records[1][3] != "" {
		t.Errorf("debit row: %v", records[1])
	}
	if records[2][4] != "ERR" {
		t.Errorf("unparsed balance must pass through raw, got %q", records[2][4])
	}
}

func TestCSVWriteIncludesMetadataHeader(t *testing.T) {
	meta := &models.Metadata{BankName: "HDFC Bank", AccountNumber: "50100123456789"}

	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, meta, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Bank,HDFC Bank") {
		t.Errorf("missing bank header row in:\n%s", out)
	}
	if !strings.Contains(out, "# Account Number,50100123456789") {
		t.Errorf("missing account number row in:\n%s", out)
	}
}

func TestCSVWriteEmptyList(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, nil, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(records) != 1 {
		t.Errorf("expected just the header row, got %v (err %v)", records, err)
	}
}
