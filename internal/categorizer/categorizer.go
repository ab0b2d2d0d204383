// Package categorizer assigns a category to each transaction by matching
// keyword rules against the description. Rules are evaluated in table
// order and the first match wins, which makes classification deterministic
// and the tie-break policy testable. Credits that reverse an expense
// category are flagged as refunds instead of being counted as income.
package categorizer

import (
	"strings"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"
)

// Categorizer holds the immutable rule table for one analysis run. The
// rule set is injected at construction so tests can supply custom tables.
type Categorizer struct {
	rules          []models.CategoryRule
	refundKeywords []string
	logger         logging.Logger
}

// NewCategorizer creates a Categorizer from the given rule set.
func NewCategorizer(rules models.RulesConfig, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{
		rules:          rules.Categories,
		refundKeywords: rules.RefundKeywords,
		logger:         logger,
	}
}

// Categorize returns the transaction with Category and IsRefund set. It
// never fails: descriptions that match no rule fall back to
// "uncategorized".
//
// A transaction is a refund when its description carries a refund keyword,
// its amount is positive, and the matched base category is an expense
// category. A credit matching an income category (e.g. salary) is never a
// refund, and neither is an unmatched credit.
func (c *Categorizer) Categorize(tx models.Transaction) models.Transaction {
	description := strings.ToLower(tx.Description)

	rule, found := c.match(description)
	if !found {
		tx.Category = models.CategoryUncategorized
		return tx
	}

	tx.Category = rule.Name
	if tx.Amount.IsPositive() && rule.Kind == models.KindExpense && containsAny(description, c.refundKeywords) {
		tx.IsRefund = true
		c.logger.WithFields(
			logging.Field{Key: "description", Value: tx.Description},
			logging.Field{Key: "category", Value: rule.Name},
		).Debug("Transaction flagged as refund")
	}

	return tx
}

// CategorizeAll classifies a whole transaction sequence in order.
func (c *Categorizer) CategorizeAll(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, c.Categorize(tx))
	}
	return out
}

func (c *Categorizer) match(description string) (models.CategoryRule, bool) {
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(description, strings.ToLower(keyword)) {
				c.logger.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.Name},
				).Debug("Transaction categorized by keyword")
				return rule, true
			}
		}
	}
	return models.CategoryRule{}, false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
