// Package advisor turns a Summary into advice lines and a savings plan.
// Advice rules are evaluated in a fixed order and every matching rule
// fires, unlike the categorizer's first-match policy; the output order is
// therefore the rule-definition order.
package advisor

import (
	"fmt"
	"sort"

	"finadvisor/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Advisor evaluates threshold rules against a Summary. Thresholds are
// injected from configuration rather than hard-coded.
type Advisor struct {
	shareThreshold decimal.Decimal
	targetRate     decimal.Decimal
}

// NewAdvisor creates an Advisor. shareThreshold is the fraction of income
// above which a single expense category triggers a warning; targetRate is
// the savings rate to aim for.
func NewAdvisor(shareThreshold, targetRate float64) *Advisor {
	return &Advisor{
		shareThreshold: decimal.NewFromFloat(shareThreshold),
		targetRate:     decimal.NewFromFloat(targetRate),
	}
}

// Advise returns the advice lines for a Summary. The result is never
// empty: when no rule fires, a generic all-clear message is returned.
func (a *Advisor) Advise(s models.Summary) []string {
	var advice []string

	if s.TotalIncome.IsZero() && s.TotalExpenses.IsZero() && s.TotalRefunded.IsZero() {
		advice = append(advice, "No transactions could be analyzed. Check that the statement file has data rows with valid dates and amounts.")
		return advice
	}

	if s.TotalIncome.IsZero() {
		advice = append(advice, "No income was detected in this statement. Totals below only reflect spending, so the balance figures may be misleading.")
	}

	if s.NetBalance.IsNegative() {
		advice = append(advice, fmt.Sprintf(
			"You spent %s more than you earned this period. Review the biggest expense categories and cut back where possible.",
			s.NetBalance.Abs().StringFixed(2)))
	}

	if s.TotalIncome.IsPositive() {
		for _, entry := range sortedCategories(s.ExpenseByCategory) {
			share := entry.amount.Div(s.TotalIncome)
			if share.GreaterThan(a.shareThreshold) {
				advice = append(advice, fmt.Sprintf(
					"Spending on %s is %s%% of your income, above the %s%% warning threshold.",
					entry.name,
					share.Mul(hundred).StringFixed(1),
					a.shareThreshold.Mul(hundred).StringFixed(0)))
			}
		}

		rate := s.NetBalance.Div(s.TotalIncome)
		if rate.LessThan(a.targetRate) {
			advice = append(advice, fmt.Sprintf(
				"Your savings rate is %s%%. Aim for at least %s%% of income saved each month.",
				rate.Mul(hundred).StringFixed(1),
				a.targetRate.Mul(hundred).StringFixed(0)))
		}
	}

	if len(advice) == 0 {
		advice = append(advice, "Your finances look healthy this period: income covers expenses with room to spare.")
	}

	return advice
}

type categoryEntry struct {
	name   string
	amount decimal.Decimal
}

// sortedCategories orders categories by descending amount, name as the
// tie-break, so advice output is deterministic.
func sortedCategories(totals map[string]decimal.Decimal) []categoryEntry {
	entries := make([]categoryEntry, 0, len(totals))
	for name, amount := range totals {
		entries = append(entries, categoryEntry{name: name, amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].name < entries[j].name
	})
	return entries
}
