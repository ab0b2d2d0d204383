package models

// Well-known category labels. The rule table is open-ended; these constants
// cover the labels the built-in rule set and the advisor refer to.
const (
	CategoryUncategorized = "uncategorized"
	CategorySalary        = "salary"
	CategoryRent          = "rent"
	CategoryGroceries     = "groceries"
	CategoryRestaurants   = "restaurants"
	CategoryTransport     = "transport"
	CategoryUtilities     = "utilities"
	CategorySubscriptions = "subscriptions"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
)

// RuleKind tells whether a category collects income or expenses. Refund
// detection only applies to expense-kind categories.
type RuleKind string

const (
	KindIncome  RuleKind = "income"
	KindExpense RuleKind = "expense"
)

// CategoryRule maps keyword patterns to one category. Rules are evaluated
// in slice order and the first matching rule wins.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Kind     RuleKind `yaml:"kind"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig is the full classification rule set, as stored in the
// categories YAML file.
type RulesConfig struct {
	Categories     []CategoryRule `yaml:"categories"`
	RefundKeywords []string       `yaml:"refund_keywords"`
}

// SubscriptionKeywords returns the keyword list of the subscriptions rule,
// or nil when the rule set has none.
func (r RulesConfig) SubscriptionKeywords() []string {
	for _, rule := range r.Categories {
		if rule.Name == CategorySubscriptions {
			return rule.Keywords
		}
	}
	return nil
}
