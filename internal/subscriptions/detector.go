// Package subscriptions detects recurring charges in a classified
// transaction sequence. Only providers matched by the subscriptions rule
// keywords are considered, and a charge series must repeat with a stable
// amount and a monthly, quarterly or annual cadence to be reported.
package subscriptions

import (
	"sort"
	"strings"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"

	"github.com/shopspring/decimal"
)

// Detector groups candidate charges and checks their periodicity.
type Detector struct {
	keywords       []string
	tolerance      decimal.Decimal
	minOccurrences int
	logger         logging.Logger
}

// NewDetector creates a Detector. tolerance is the maximum spread allowed
// between the charge amounts of one series; minOccurrences is the minimum
// number of charges before a series is considered.
func NewDetector(keywords []string, tolerance float64, minOccurrences int, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if minOccurrences < 2 {
		minOccurrences = 2
	}
	return &Detector{
		keywords:       keywords,
		tolerance:      decimal.NewFromFloat(tolerance),
		minOccurrences: minOccurrences,
		logger:         logger,
	}
}

// Detect returns the recurring charges found, sorted by description.
// Series whose payment gaps have a median outside the monthly (25-35d),
// quarterly (85-95d) or annual (355-375d) windows are discarded.
func (d *Detector) Detect(txs []models.Transaction) []models.Subscription {
	groups := make(map[string][]models.Transaction)
	for _, tx := range txs {
		if !tx.Amount.IsNegative() {
			continue
		}
		description := strings.ToLower(strings.TrimSpace(tx.Description))
		if !d.matchesKeyword(description) {
			continue
		}
		groups[description] = append(groups[description], tx)
	}

	var subs []models.Subscription
	for description, group := range groups {
		sub, ok := d.analyzeSeries(description, group)
		if ok {
			subs = append(subs, sub)
		}
	}

	sort.Slice(subs, func(i, j int) bool { return subs[i].Description < subs[j].Description })
	return subs
}

func (d *Detector) matchesKeyword(description string) bool {
	for _, keyword := range d.keywords {
		if strings.Contains(description, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (d *Detector) analyzeSeries(description string, group []models.Transaction) (models.Subscription, bool) {
	if len(group) < d.minOccurrences {
		return models.Subscription{}, false
	}

	amounts := make([]decimal.Decimal, 0, len(group))
	for _, tx := range group {
		amounts = append(amounts, tx.Amount.Abs())
	}
	if amountSpread(amounts).GreaterThan(d.tolerance) {
		return models.Subscription{}, false
	}

	dates := make([]models.Transaction, len(group))
	copy(dates, group)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

	gaps := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, int(dates[i].Date.Sub(dates[i-1].Date).Hours()/24))
	}
	if len(gaps) < 2 {
		return models.Subscription{}, false
	}

	frequency, ok := classifyGap(medianInt(gaps))
	if !ok {
		return models.Subscription{}, false
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	average := total.Div(decimal.NewFromInt(int64(len(amounts)))).Round(2)

	d.logger.WithFields(
		logging.Field{Key: "description", Value: description},
		logging.Field{Key: "frequency", Value: string(frequency)},
		logging.Field{Key: "occurrences", Value: len(group)},
	).Debug("Recurring charge detected")

	return models.Subscription{
		Description:   description,
		AverageAmount: average,
		Frequency:     frequency,
		Occurrences:   len(group),
		FirstPayment:  dates[0].Date,
		LastPayment:   dates[len(dates)-1].Date,
	}, true
}

func classifyGap(medianDays int) (models.SubscriptionFrequency, bool) {
	switch {
	case medianDays >= 25 && medianDays <= 35:
		return models.FrequencyMonthly, true
	case medianDays >= 85 && medianDays <= 95:
		return models.FrequencyQuarterly, true
	case medianDays >= 355 && medianDays <= 375:
		return models.FrequencyAnnual, true
	default:
		return "", false
	}
}

func amountSpread(amounts []decimal.Decimal) decimal.Decimal {
	min, max := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		if a.LessThan(min) {
			min = a
		}
		if a.GreaterThan(max) {
			max = a
		}
	}
	return max.Sub(min)
}

func medianInt(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
