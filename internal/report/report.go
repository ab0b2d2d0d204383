// Package report renders an analysis as plain text for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"finadvisor/internal/assistant"
	"finadvisor/internal/models"

	"github.com/shopspring/decimal"
)

// WriteAnalysis renders the full analysis report.
func WriteAnalysis(w io.Writer, a *assistant.Analysis) error {
	writeHeader(w, "Summary")
	s := a.Summary
	fmt.Fprintf(w, "Transactions analyzed: %d", len(a.Transactions))
	if a.SkippedRows > 0 {
		fmt.Fprintf(w, " (%d malformed rows skipped)", a.SkippedRows)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total income:   %s\n", s.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Total expenses: %s\n", s.TotalExpenses.StringFixed(2))
	if s.TotalRefunded.IsPositive() {
		fmt.Fprintf(w, "Refunded:       %s\n", s.TotalRefunded.StringFixed(2))
	}
	fmt.Fprintf(w, "Net balance:    %s\n", s.NetBalance.StringFixed(2))

	if len(s.ExpenseByCategory) > 0 {
		writeHeader(w, "Expenses by category")
		writeCategoryTable(w, s.ExpenseByCategory, s.RefundsByCategory)
	}
	if len(s.IncomeByCategory) > 0 {
		writeHeader(w, "Income by category")
		writeCategoryTable(w, s.IncomeByCategory, nil)
	}

	if len(a.Monthly) > 1 {
		writeHeader(w, "Monthly breakdown")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MONTH\tINCOME\tEXPENSES\tNET")
		for _, m := range a.Monthly {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				m.Month,
				m.Income.StringFixed(2),
				m.Expenses.StringFixed(2),
				m.Net.StringFixed(2))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(a.Subscriptions) > 0 {
		writeHeader(w, "Recurring charges")
		if err := writeSubscriptionTable(w, a.Subscriptions); err != nil {
			return err
		}
	}

	writeHeader(w, "Advice")
	for _, line := range a.Advice.Advice {
		fmt.Fprintf(w, "- %s\n", line)
	}

	writeHeader(w, "Savings plan")
	fmt.Fprintf(w, "Suggested monthly amount: %s\n", a.Advice.Plan.SuggestedMonthlyAmount.StringFixed(2))
	fmt.Fprintln(w, a.Advice.Plan.Rationale)

	return nil
}

// WriteSubscriptions renders only the recurring charge table.
func WriteSubscriptions(w io.Writer, subs []models.Subscription) error {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No recurring charges detected.")
		return nil
	}
	return writeSubscriptionTable(w, subs)
}

func writeSubscriptionTable(w io.Writer, subs []models.Subscription) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tAMOUNT\tFREQUENCY\tCHARGES\tLAST SEEN")
	for _, sub := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			sub.Description,
			sub.AverageAmount.StringFixed(2),
			sub.Frequency,
			sub.Occurrences,
			sub.LastPayment.Format("2006-01-02"))
	}
	return tw.Flush()
}

func writeCategoryTable(w io.Writer, totals, refunds map[string]decimal.Decimal) {
	type entry struct {
		name   string
		amount decimal.Decimal
	}
	entries := make([]entry, 0, len(totals))
	for name, amount := range totals {
		entries = append(entries, entry{name: name, amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].name < entries[j].name
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		line := fmt.Sprintf("%s\t%s", e.name, e.amount.StringFixed(2))
		if refunded, ok := refunds[e.name]; ok && refunded.IsPositive() {
			line += fmt.Sprintf("\t(after %s refunded)", refunded.StringFixed(2))
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}
