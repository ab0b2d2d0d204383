package advisor

import (
	"fmt"

	"finadvisor/internal/models"

	"github.com/shopspring/decimal"
)

// Planner computes the suggested monthly savings contribution as a
// configurable fraction of the period surplus.
type Planner struct {
	rate decimal.Decimal
}

// NewPlanner creates a Planner saving the given fraction of the surplus.
func NewPlanner(rate float64) *Planner {
	return &Planner{rate: decimal.NewFromFloat(rate)}
}

// Plan derives the savings plan from a Summary. With no surplus
// (NetBalance <= 0, including exactly zero) the suggested amount is zero,
// never negative.
func (p *Planner) Plan(s models.Summary) models.SavingsPlan {
	if !s.NetBalance.IsPositive() {
		return models.SavingsPlan{
			SuggestedMonthlyAmount: decimal.Zero,
			Rationale:              "There is no surplus this period, so no savings contribution is suggested. Free up room by reducing the largest expense categories first.",
		}
	}

	amount := s.NetBalance.Mul(p.rate).Round(2)
	return models.SavingsPlan{
		SuggestedMonthlyAmount: amount,
		Rationale: fmt.Sprintf(
			"Setting aside %s%% of your %s surplus keeps a buffer for unplanned expenses while building savings steadily.",
			p.rate.Mul(hundred).StringFixed(0),
			s.NetBalance.StringFixed(2)),
	}
}
