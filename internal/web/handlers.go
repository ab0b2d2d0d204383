package web

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"finadvisor/internal/assistant"

	"github.com/shopspring/decimal"
)

// reportData is the view model for report.html. Amounts are pre-formatted
// so the template stays free of decimal arithmetic.
type reportData struct {
	FileName         string
	TransactionCount int
	SkippedRows      int
	TotalIncome      string
	TotalExpenses    string
	TotalRefunded    string
	NetBalance       string
	NetNegative      bool
	Expenses         []categoryRow
	Monthly          []monthRow
	Subscriptions    []subscriptionRow
	Advice           []string
	PlanAmount       string
	PlanRationale    string
}

type categoryRow struct {
	Name    string
	Amount  string
	Percent int
}

type monthRow struct {
	Month    string
	Income   string
	Expenses string
	Net      string
}

type subscriptionRow struct {
	Description string
	Amount      string
	Frequency   string
	Occurrences int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.WithError(err).Error("Index template execution failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("statement")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "No statement file was uploaded, or it exceeds the upload size limit.")
		return
	}
	defer file.Close()

	path, err := s.saveUpload(file, header.Filename)
	if err != nil {
		s.logger.WithError(err).Error("Failed to buffer upload")
		s.renderError(w, http.StatusInternalServerError, "The uploaded file could not be processed.")
		return
	}
	defer os.Remove(path)

	analysis, err := s.assistant.Analyze(path)
	if err != nil {
		s.logger.WithError(err).WithField("file", header.Filename).Warn("Analysis failed")
		s.renderError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	data := buildReportData(header.Filename, analysis)
	if err := s.templates.ExecuteTemplate(w, "report.html", data); err != nil {
		s.logger.WithError(err).Error("Report template execution failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// saveUpload copies the upload to a temp file, keeping the original
// extension so the loader can pick a parser.
func (s *Server) saveUpload(file io.Reader, name string) (string, error) {
	ext := filepath.Ext(name)
	tmp, err := os.CreateTemp("", "statement-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	data := struct{ Message string }{Message: message}
	if err := s.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		s.logger.WithError(err).Error("Error template execution failed")
		http.Error(w, message, status)
	}
}

func buildReportData(fileName string, a *assistant.Analysis) reportData {
	s := a.Summary
	data := reportData{
		FileName:         fileName,
		TransactionCount: len(a.Transactions),
		SkippedRows:      a.SkippedRows,
		TotalIncome:      s.TotalIncome.StringFixed(2),
		TotalExpenses:    s.TotalExpenses.StringFixed(2),
		NetBalance:       s.NetBalance.StringFixed(2),
		NetNegative:      s.NetBalance.IsNegative(),
		Advice:           a.Advice.Advice,
		PlanAmount:       a.Advice.Plan.SuggestedMonthlyAmount.StringFixed(2),
		PlanRationale:    a.Advice.Plan.Rationale,
	}
	if s.TotalRefunded.IsPositive() {
		data.TotalRefunded = s.TotalRefunded.StringFixed(2)
	}

	data.Expenses = expenseRows(s.ExpenseByCategory)

	for _, m := range a.Monthly {
		data.Monthly = append(data.Monthly, monthRow{
			Month:    m.Month,
			Income:   m.Income.StringFixed(2),
			Expenses: m.Expenses.StringFixed(2),
			Net:      m.Net.StringFixed(2),
		})
	}

	for _, sub := range a.Subscriptions {
		data.Subscriptions = append(data.Subscriptions, subscriptionRow{
			Description: sub.Description,
			Amount:      sub.AverageAmount.StringFixed(2),
			Frequency:   string(sub.Frequency),
			Occurrences: sub.Occurrences,
		})
	}

	return data
}

// expenseRows sorts categories by descending amount and scales the share
// bars against the largest category.
func expenseRows(totals map[string]decimal.Decimal) []categoryRow {
	entries := sortCategories(totals)
	if len(entries) == 0 {
		return nil
	}

	largest := entries[0].amount
	rows := make([]categoryRow, 0, len(entries))
	for _, e := range entries {
		percent := 0
		if largest.IsPositive() {
			percent = int(e.amount.Div(largest).Mul(decimal.NewFromInt(100)).IntPart())
		}
		rows = append(rows, categoryRow{
			Name:    e.name,
			Amount:  e.amount.StringFixed(2),
			Percent: percent,
		})
	}
	return rows
}

type catEntry struct {
	name   string
	amount decimal.Decimal
}

func sortCategories(totals map[string]decimal.Decimal) []catEntry {
	entries := make([]catEntry, 0, len(totals))
	for name, amount := range totals {
		entries = append(entries, catEntry{name: name, amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].name < entries[j].name
	})
	return entries
}
