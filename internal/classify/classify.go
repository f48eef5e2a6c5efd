// Package classify assigns a semantic head (category tag) to a transaction
// narration using ordered keyword rules. Specific rules (named institutions,
// tax, charges) outrank the generic buckets (cash, salary, transfer), which
// in turn outrank the OTHER catch-all.
package classify

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Head tags produced by the classifier.
const (
	HeadInsurance  = "INSURANCE"
	HeadInvestment = "INVESTMENT"
	HeadTax        = "TAX"
	HeadCharges    = "CHARGES"
	HeadInterest   = "INTEREST"
	HeadDividend   = "DIVIDEND"
	HeadCash       = "CASH"
	HeadSalary     = "SALARY"
	HeadRent       = "RENT"
	HeadLoan       = "LOAN"
	HeadTransfer   = "TRANSFER"
	HeadShopping   = "SHOPPING"
	HeadFuel       = "FUEL"
	HeadUtilities  = "UTILITIES"
	HeadFood       = "FOOD"
	HeadOther      = "OTHER"
)

// rule is one "any of these substrings → tag" entry. Priority encodes the
// evaluation order of the original rule chain: higher wins, and every
// specific rule carries a higher priority than every generic bucket.
type rule struct {
	tag      string
	priority int
	keywords []string
}

var rules = []rule{
	// High-specificity rules: named institutions and statutory items. These
	// must win over generic buckets sharing substrings (e.g. "ICICI
	// SECURITIES" must not be caught by the interest rule).
	{HeadInvestment, 210, []string{
		"ICICI SECURITIES", "ZERODHA", "GROWW", "UPSTOX", "MUTUAL FUND",
		"MF PURCHASE", "SIP ", "NSDL", "CDSL", "DEMAT",
	}},
	{HeadInsurance, 200, []string{
		"LIC ", "LIC PREMIUM", "INSURANCE", "POLICY PREMIUM", "HDFC LIFE",
		"SBI LIFE", "ICICI PRUDENTIAL",
	}},
	{HeadTax, 190, []string{
		"INCOME TAX", "GST", "TDS", "ADVANCE TAX", "TAX PAYMENT", "CBDT",
	}},
	{HeadCharges, 180, []string{
		"BANK CHARGES", "SMS CHARGES", "SERVICE CHARGE", "AMC CHARGE",
		"CHEQUE BOUNCE", "PENALTY", "MIN BAL", "ATM FEE",
	}},
	{HeadInterest, 170, []string{
		"INTEREST", "INT.PD", "INT PAID", "SB INT",
	}},
	{HeadDividend, 160, []string{
		"DIVIDEND", "DIV PAYOUT",
	}},

	// Generic buckets, evaluated only when no specific rule fires.
	{HeadCash, 100, []string{
		"ATM", "CASH", "WDL", "WITHDRAWAL", "CSH DEP", "CASH DEPOSIT",
	}},
	{HeadSalary, 95, []string{
		"SALARY", "SAL CREDIT", "PAYROLL", "WAGES", "STIPEND",
	}},
	{HeadRent, 90, []string{
		"RENT",
	}},
	{HeadLoan, 85, []string{
		"EMI", "LOAN", "REPAYMENT",
	}},
	{HeadFuel, 80, []string{
		"PETROL", "FUEL", "DIESEL", "HPCL", "BPCL", "INDIAN OIL", "IOCL",
	}},
	{HeadUtilities, 75, []string{
		"ELECTRICITY", "POWER BILL", "WATER BILL", "BROADBAND", "RECHARGE",
		"MOBILE BILL", "DTH", "GAS BILL",
	}},
	{HeadFood, 70, []string{
		"SWIGGY", "ZOMATO", "RESTAURANT", "HOTEL", "CAFE",
	}},
	{HeadShopping, 65, []string{
		"AMAZON", "FLIPKART", "MYNTRA", "MALL", "MART", "STORES",
	}},
	{HeadTransfer, 60, []string{
		"NEFT", "RTGS", "IMPS", "UPI", "TRANSFER", "TRF",
	}},
}

// matcher is built once at init over every keyword of every rule; match
// indices map back to (tag, priority) through keywordRules. A single
// Aho-Corasick pass replaces the per-rule substring loops while keeping the
// rule-chain semantics: the highest-priority matching rule wins.
var (
	matcher      *ahocorasick.Matcher
	keywordRules []rule
)

func init() {
	var patterns [][]byte
	for _, r := range rules {
		for _, kw := range r.keywords {
			patterns = append(patterns, []byte(kw))
			keywordRules = append(keywordRules, rule{tag: r.tag, priority: r.priority})
		}
	}
	matcher = ahocorasick.NewMatcher(patterns)
}

// Classify returns the head tag for a narration. Matching is case-insensitive
// and falls through to OTHER when no rule fires.
func Classify(narration string) string {
	text := strings.ToUpper(narration)
	if text == "" {
		return HeadOther
	}

	best := ""
	bestPriority := -1
	for _, idx := range matcher.Match([]byte(text)) {
		if idx < 0 || idx >= len(keywordRules) {
			continue
		}
		if r := keywordRules[idx]; r.priority > bestPriority {
			best = r.tag
			bestPriority = r.priority
		}
	}

	if best == "" {
		return HeadOther
	}
	return best
}
