// Package aggregator folds a classified transaction sequence into summary
// totals. One pass, no mutation of the input; summaries are recomputed
// per run, never updated incrementally.
package aggregator

import (
	"sort"

	"finadvisor/internal/dateutils"
	"finadvisor/internal/models"
)

// Summarize computes the overall Summary. Positive non-refund amounts add
// to income, negative amounts add their magnitude to expenses, and
// refunds reduce the net expense of the category they reverse without
// touching income. A zero amount contributes nothing. An empty sequence
// yields a zero-valued Summary.
func Summarize(txs []models.Transaction) models.Summary {
	s := models.NewSummary()

	for _, tx := range txs {
		switch {
		case tx.IsRefund:
			s.TotalExpenses = s.TotalExpenses.Sub(tx.Amount)
			s.ExpenseByCategory[tx.Category] = s.ExpenseByCategory[tx.Category].Sub(tx.Amount)
			s.RefundsByCategory[tx.Category] = s.RefundsByCategory[tx.Category].Add(tx.Amount)
			s.TotalRefunded = s.TotalRefunded.Add(tx.Amount)
		case tx.Amount.IsPositive():
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			s.IncomeByCategory[tx.Category] = s.IncomeByCategory[tx.Category].Add(tx.Amount)
		case tx.Amount.IsNegative():
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount.Abs())
			s.ExpenseByCategory[tx.Category] = s.ExpenseByCategory[tx.Category].Add(tx.Amount.Abs())
		}
	}

	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// MonthlyTotals groups transactions by calendar month, ascending. Refunds
// reduce the expenses of the month they were booked in, mirroring
// Summarize.
func MonthlyTotals(txs []models.Transaction) []models.MonthlySummary {
	byMonth := make(map[string]*models.MonthlySummary)

	for _, tx := range txs {
		key := dateutils.MonthKey(tx.Date)
		month, ok := byMonth[key]
		if !ok {
			month = &models.MonthlySummary{Month: key}
			byMonth[key] = month
		}

		switch {
		case tx.IsRefund:
			month.Expenses = month.Expenses.Sub(tx.Amount)
		case tx.Amount.IsPositive():
			month.Income = month.Income.Add(tx.Amount)
		case tx.Amount.IsNegative():
			month.Expenses = month.Expenses.Add(tx.Amount.Abs())
		}
	}

	out := make([]models.MonthlySummary, 0, len(byMonth))
	for _, month := range byMonth {
		month.Net = month.Income.Sub(month.Expenses)
		out = append(out, *month)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out
}
