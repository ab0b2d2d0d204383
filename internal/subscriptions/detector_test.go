package subscriptions_test

import (
	"testing"
	"time"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/store"
	"finadvisor/internal/subscriptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector() *subscriptions.Detector {
	return subscriptions.NewDetector(store.DefaultRules().SubscriptionKeywords(), 2.0, 2, logging.NewMockLogger())
}

func charge(description string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Date:        date,
	}
}

func monthlySeries(description string, amount float64, months int) []models.Transaction {
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	txs := make([]models.Transaction, 0, months)
	for i := 0; i < months; i++ {
		txs = append(txs, charge(description, amount, start.AddDate(0, i, 0)))
	}
	return txs
}

func TestDetect_MonthlySubscription(t *testing.T) {
	subs := newDetector().Detect(monthlySeries("NETFLIX.COM", -12.99, 6))

	require.Len(t, subs, 1)
	assert.Equal(t, "netflix.com", subs[0].Description)
	assert.Equal(t, models.FrequencyMonthly, subs[0].Frequency)
	assert.Equal(t, 6, subs[0].Occurrences)
	assert.Equal(t, "12.99", subs[0].AverageAmount.StringFixed(2))
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), subs[0].FirstPayment)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), subs[0].LastPayment)
}

func TestDetect_QuarterlyAndAnnual(t *testing.T) {
	start := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	for i := 0; i < 4; i++ {
		txs = append(txs, charge("SPOTIFY FAMILY", -17.99, start.AddDate(0, 3*i, 0)))
	}
	for i := 0; i < 3; i++ {
		txs = append(txs, charge("DISNEY PLUS ANUAL", -89.90, start.AddDate(i, 0, 0)))
	}

	subs := newDetector().Detect(txs)

	require.Len(t, subs, 2)
	assert.Equal(t, models.FrequencyAnnual, subs[0].Frequency)
	assert.Equal(t, models.FrequencyQuarterly, subs[1].Frequency)
}

func TestDetect_IgnoresNonSubscriptionKeywords(t *testing.T) {
	subs := newDetector().Detect(monthlySeries("SUPERMERCADO DIA", -45.00, 6))

	assert.Empty(t, subs)
}

func TestDetect_IgnoresCredits(t *testing.T) {
	subs := newDetector().Detect(monthlySeries("NETFLIX REFUND", 12.99, 6))

	assert.Empty(t, subs)
}

func TestDetect_AmountSpreadTooWide(t *testing.T) {
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		charge("NETFLIX.COM", -12.99, start),
		charge("NETFLIX.COM", -19.99, start.AddDate(0, 1, 0)),
		charge("NETFLIX.COM", -12.99, start.AddDate(0, 2, 0)),
	}

	subs := newDetector().Detect(txs)

	assert.Empty(t, subs)
}

func TestDetect_IrregularGapsDiscarded(t *testing.T) {
	txs := []models.Transaction{
		charge("NETFLIX.COM", -12.99, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		charge("NETFLIX.COM", -12.99, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)),
		charge("NETFLIX.COM", -12.99, time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)),
	}

	subs := newDetector().Detect(txs)

	assert.Empty(t, subs)
}

func TestDetect_TwoChargesNotEnoughGaps(t *testing.T) {
	// Two charges give a single gap, too little evidence of a cadence.
	subs := newDetector().Detect(monthlySeries("NETFLIX.COM", -12.99, 2))

	assert.Empty(t, subs)
}

func TestDetect_SortedByDescription(t *testing.T) {
	var txs []models.Transaction
	txs = append(txs, monthlySeries("SPOTIFY", -9.99, 4)...)
	txs = append(txs, monthlySeries("NETFLIX.COM", -12.99, 4)...)

	subs := newDetector().Detect(txs)

	require.Len(t, subs, 2)
	assert.Equal(t, "netflix.com", subs[0].Description)
	assert.Equal(t, "spotify", subs[1].Description)
}
