// Package assistant wires the full analysis pipeline: load, normalize,
// categorize, aggregate, advise. It is the single entry point shared by
// the CLI commands and the web dashboard, so both surfaces produce the
// same numbers for the same file.
package assistant

import (
	"errors"
	"fmt"

	"finadvisor/internal/advisor"
	"finadvisor/internal/aggregator"
	"finadvisor/internal/categorizer"
	"finadvisor/internal/config"
	"finadvisor/internal/loader"
	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/normalizer"
	"finadvisor/internal/parsererror"
	"finadvisor/internal/subscriptions"
)

// Analysis is the complete result of one pipeline run.
type Analysis struct {
	Transactions  []models.Transaction
	RowsLoaded    int
	SkippedRows   int
	Summary       models.Summary
	Monthly       []models.MonthlySummary
	Advice        models.AdvicePlan
	Subscriptions []models.Subscription
}

// Assistant runs the analysis pipeline with a fixed configuration and
// rule set. It is safe to reuse across runs.
type Assistant struct {
	cfg         *config.Config
	categorizer *categorizer.Categorizer
	advisor     *advisor.Advisor
	planner     *advisor.Planner
	detector    *subscriptions.Detector
	logger      logging.Logger
}

// New builds an Assistant from configuration and a loaded rule set.
func New(cfg *config.Config, rules models.RulesConfig, logger logging.Logger) *Assistant {
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	return &Assistant{
		cfg:         cfg,
		categorizer: categorizer.NewCategorizer(rules, logger),
		advisor:     advisor.NewAdvisor(cfg.Advisor.CategoryShareThreshold, cfg.Advisor.TargetSavingsRate),
		planner:     advisor.NewPlanner(cfg.Savings.Rate),
		detector: subscriptions.NewDetector(
			rules.SubscriptionKeywords(),
			cfg.Subscriptions.AmountTolerance,
			cfg.Subscriptions.MinOccurrences,
			logger),
		logger: logger,
	}
}

// Analyze loads the statement file at path and runs the full pipeline.
// An unreadable or unrecognized file is an error; a readable file with
// zero data rows is also an error, since there is nothing to analyze.
func (a *Assistant) Analyze(path string) (*Analysis, error) {
	l, err := loader.ForFile(path, a.cfg.Delimiter(), a.logger)
	if err != nil {
		return nil, err
	}

	rows, err := l.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, &parsererror.InvalidFormatError{
			Path: path,
			Msg:  "statement contains no data rows",
		}
	}

	a.logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(rows)},
	).Info("Statement loaded")

	return a.AnalyzeRows(rows), nil
}

// AnalyzeRows runs the pipeline over already-loaded raw rows. Malformed
// rows are skipped and counted, never fatal; running twice over the same
// input yields identical results.
func (a *Assistant) AnalyzeRows(rows []models.RawRow) *Analysis {
	analysis := &Analysis{RowsLoaded: len(rows)}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := normalizer.Normalize(row, i+1)
		if err != nil {
			analysis.SkippedRows++
			var rowErr *parsererror.RowError
			if errors.As(err, &rowErr) {
				a.logger.WithFields(
					logging.Field{Key: "line", Value: rowErr.Line},
					logging.Field{Key: "field", Value: rowErr.Field},
				).WithError(rowErr.Err).Warn("Skipping malformed row")
			} else {
				a.logger.WithError(err).Warn("Skipping malformed row")
			}
			continue
		}
		txs = append(txs, tx)
	}

	analysis.Transactions = a.categorizer.CategorizeAll(txs)
	analysis.Summary = aggregator.Summarize(analysis.Transactions)
	analysis.Monthly = aggregator.MonthlyTotals(analysis.Transactions)
	analysis.Advice = models.AdvicePlan{
		Advice: a.advisor.Advise(analysis.Summary),
		Plan:   a.planner.Plan(analysis.Summary),
	}
	analysis.Subscriptions = a.detector.Detect(analysis.Transactions)

	a.logger.WithFields(
		logging.Field{Key: "transactions", Value: len(analysis.Transactions)},
		logging.Field{Key: "skipped", Value: analysis.SkippedRows},
	).Info("Analysis complete")

	return analysis
}
