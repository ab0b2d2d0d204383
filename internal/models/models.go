// Package models defines the data structures shared by the loader,
// categorizer, aggregator and presentation layers.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow holds one record as loaded from a statement file, before any
// validation. All fields are raw strings and may be empty or malformed.
// Amount carries a signed value when the export uses a single column;
// exports that split movements into separate columns fill Debit/Credit
// instead.
type RawRow struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Currency    string
}

// Transaction is a normalized statement record. Amount is signed: credits
// (income) are positive, debits (expenses) negative.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	Category    string
	IsRefund    bool
}

// Summary aggregates a classified transaction sequence. TotalExpenses is a
// non-negative magnitude net of refunds, so TotalIncome - TotalExpenses
// always equals NetBalance, and the ExpenseByCategory values sum to
// TotalExpenses.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetBalance        decimal.Decimal
	TotalRefunded     decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	RefundsByCategory map[string]decimal.Decimal
}

// NewSummary returns a zero-valued Summary with initialized maps.
func NewSummary() Summary {
	return Summary{
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
		RefundsByCategory: make(map[string]decimal.Decimal),
	}
}

// MonthlySummary holds the totals of a single calendar month.
// Month is formatted as YYYY-MM.
type MonthlySummary struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// SavingsPlan is the suggested monthly amount to set aside, with the
// reasoning behind it.
type SavingsPlan struct {
	SuggestedMonthlyAmount decimal.Decimal
	Rationale              string
}

// AdvicePlan bundles the advisor output: advice lines in rule-evaluation
// order plus the savings plan.
type AdvicePlan struct {
	Advice []string
	Plan   SavingsPlan
}

// SubscriptionFrequency classifies the cadence of a recurring charge.
type SubscriptionFrequency string

const (
	FrequencyMonthly   SubscriptionFrequency = "monthly"
	FrequencyQuarterly SubscriptionFrequency = "quarterly"
	FrequencyAnnual    SubscriptionFrequency = "annual"
)

// Subscription describes a recurring charge detected in the statement.
type Subscription struct {
	Description   string
	AverageAmount decimal.Decimal
	Frequency     SubscriptionFrequency
	Occurrences   int
	FirstPayment  time.Time
	LastPayment   time.Time
}
