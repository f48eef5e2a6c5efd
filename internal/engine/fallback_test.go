package engine

import (
	"testing"

	"github.com/insightdelivered/statement-analyser/internal/models"
)

func TestFallbackSingleAmountDefaultsToDebit(t *testing.T) {
	txns := parseTextFallback("05/04/2024 POS PURCHASE GROCERY 450.00", 1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Debit == nil || *txn.Debit != 450.00 {
		t.Errorf("debit: got %v", txn.Debit)
	}
	if txn.Credit != nil || txn.Balance != nil {
		t.Errorf("unexpected credit/balance: %+v", txn)
	}
	if txn.ParseMethod != models.MethodFallback {
		t.Errorf("parse method: got %q", txn.ParseMethod)
	}
}

func TestFallbackSingleAmountCreditKeyword(t *testing.T) {
	txns := parseTextFallback("05/04/2024 SALARY DEPOSIT ACME 5000.00", 1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Credit == nil || *txns[0].Credit != 5000.00 {
		t.Errorf("credit: got %v", txns[0].Credit)
	}
	if txns[0].Debit != nil {
		t.Errorf("debit should be absent")
	}
}

func TestFallbackTwoAmountsSecondIsBalance(t *testing.T) {
	txns := parseTextFallback("05/04/2024 ATM WDL SELF 500.00 4,500.00", 2)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Debit == nil || *txn.Debit != 500.00 {
		t.Errorf("debit: got %v", txn.Debit)
	}
	if txn.Balance == nil || *txn.Balance != 4500.00 {
		t.Errorf("balance: got %v", txn.Balance)
	}
	if txn.Head != "CASH" {
		t.Errorf("head: got %q", txn.Head)
	}
	if txn.Page != 2 {
		t.Errorf("page: got %d", txn.Page)
	}
}

func TestFallbackThreeAmounts(t *testing.T) {
	txns := parseTextFallback("05/04/2024 CHARGES REVERSAL 10.00 50.00 1,040.00", 1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Balance == nil || *txn.Balance != 1040.00 {
		t.Errorf("balance: got %v", txn.Balance)
	}
	if txn.Debit == nil || *txn.Debit != 50.00 {
		t.Errorf("debit should take the second-to-last amount: got %v", txn.Debit)
	}
}

func TestFallbackBothKeywordsSplitsSides(t *testing.T) {
	txns := parseTextFallback("05/04/2024 DEBIT 100.00 CREDIT 200.00 BAL 1,100.00", 1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Debit == nil || *txn.Debit != 100.00 {
		t.Errorf("debit: got %v", txn.Debit)
	}
	if txn.Credit == nil || *txn.Credit != 200.00 {
		t.Errorf("credit: got %v", txn.Credit)
	}
	if txn.Balance == nil || *txn.Balance != 1100.00 {
		t.Errorf("balance: got %v", txn.Balance)
	}
}

func TestFallbackSkipsUnusableLines(t *testing.T) {
	text := "STATEMENT OF ACCOUNT\n" + // boilerplate
		"no date on this line 500.00\n" + // no date token
		"05/04/2024 no amounts here\n" + // no numeric token
		"\n"
	if txns := parseTextFallback(text, 1); len(txns) != 0 {
		t.Errorf("expected no transactions, got %v", txns)
	}
}

func TestFallbackKeepsNarrationVerbatim(t *testing.T) {
	line := "05/04/2024 UPI/P2P/123/Some Payee 750.00"
	txns := parseTextFallback(line, 1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Particulars != line {
		t.Errorf("narration must be the full line, got %q", txns[0].Particulars)
	}
}
