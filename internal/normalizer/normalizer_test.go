package normalizer_test

import (
	"testing"
	"time"

	"finadvisor/internal/models"
	"finadvisor/internal/normalizer"
	"finadvisor/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SignedAmountColumn(t *testing.T) {
	row := models.RawRow{
		Date:        "15/03/2024",
		Description: "SUPERMERCADO DIA",
		Amount:      "-45,90",
		Currency:    "EUR",
	}

	tx, err := normalizer.Normalize(row, 1)
	require.NoError(t, err)

	assert.Equal(t, "SUPERMERCADO DIA", tx.Description)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "-45.9", tx.Amount.String())
	assert.Equal(t, "EUR", tx.Currency)
	assert.Empty(t, tx.Category)
	assert.False(t, tx.IsRefund)
}

func TestNormalize_DebitCreditColumns(t *testing.T) {
	tests := []struct {
		name     string
		debit    string
		credit   string
		expected string
	}{
		{name: "debit only", debit: "45.90", credit: "", expected: "-45.9"},
		{name: "credit only", debit: "", credit: "2000.00", expected: "2000"},
		{name: "debit already negative", debit: "-45.90", credit: "", expected: "-45.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := models.RawRow{
				Date:        "2024-03-15",
				Description: "some movement",
				Debit:       tt.debit,
				Credit:      tt.credit,
			}
			tx, err := normalizer.Normalize(row, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tx.Amount.String())
		})
	}
}

func TestNormalize_AmountColumnWins(t *testing.T) {
	row := models.RawRow{
		Date:        "2024-03-15",
		Description: "mixed columns",
		Amount:      "-10.00",
		Debit:       "99.00",
	}

	tx, err := normalizer.Normalize(row, 1)
	require.NoError(t, err)
	assert.Equal(t, "-10", tx.Amount.String())
}

func TestNormalize_MalformedRows(t *testing.T) {
	tests := []struct {
		name  string
		row   models.RawRow
		field string
	}{
		{
			name:  "empty description",
			row:   models.RawRow{Date: "2024-03-15", Description: "  ", Amount: "10.00"},
			field: "description",
		},
		{
			name:  "unparseable date",
			row:   models.RawRow{Date: "not-a-date", Description: "coffee", Amount: "10.00"},
			field: "date",
		},
		{
			name:  "unparseable amount",
			row:   models.RawRow{Date: "2024-03-15", Description: "coffee", Amount: "N/A"},
			field: "amount",
		},
		{
			name:  "no amount at all",
			row:   models.RawRow{Date: "2024-03-15", Description: "coffee"},
			field: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.Normalize(tt.row, 7)
			require.Error(t, err)

			var rowErr *parsererror.RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 7, rowErr.Line)
			assert.Equal(t, tt.field, rowErr.Field)
		})
	}
}
