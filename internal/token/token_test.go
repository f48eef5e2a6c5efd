package token

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"1,234.50", 1234.50, true},
		{"₹1,234.50Dr", 1234.50, true},
		{"500.00 Cr", 500.00, true},
		{"£25.99", 25.99, true},
		{"-500.00", 500.00, true},
		{"4,500.00-", 4500.00, true},
		{"1 234.56", 1234.56, true},
		{"abc", 0, false},
		{"", 0, false},
		{"Dr", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q): ok=%v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseAmount(%q): got %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"12/05/24", "12/05/2024", true},
		{"'1-1-2023'", "01/01/2023", true},
		{"03.02.2024", "03/02/2024", true},
		{"Value date 5/6/2023 ref", "05/06/2023", true},
		{"not a date", "not a date", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := CleanDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("CleanDate(%q): ok=%v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("CleanDate(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHasDate(t *testing.T) {
	if !HasDate("12/01/2024 Payment to") {
		t.Error("expected date to be detected")
	}
	if HasDate("ABC Corp 100.00") {
		t.Error("did not expect a date in continuation text")
	}
}

func TestAmounts(t *testing.T) {
	got := Amounts("01/03/2024 UPI/ATM WDL/SELF 500.00 4,500.00")
	want := []float64{500.00, 4500.00}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("amount %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestAmountsExcludesDateTokens(t *testing.T) {
	got := Amounts("12/05/2024 no amounts here")
	if len(got) != 0 {
		t.Errorf("expected no amounts, got %v", got)
	}
}
