// Package normalizer converts raw statement rows into validated
// transactions. It is a pure function over one row: a malformed row
// yields a RowError and is meant to be skipped, never to abort the run.
package normalizer

import (
	"errors"
	"strings"

	"finadvisor/internal/dateutils"
	"finadvisor/internal/models"
	"finadvisor/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Normalize validates one raw row and produces a Transaction. line is the
// 1-based data row number, used only for error context.
//
// Amount resolution: a non-empty Amount column wins; otherwise separate
// Debit/Credit columns are folded into one signed value (debit negative,
// credit positive).
func Normalize(row models.RawRow, line int) (models.Transaction, error) {
	description := strings.TrimSpace(row.Description)
	if description == "" {
		return models.Transaction{}, &parsererror.RowError{
			Line:  line,
			Field: "description",
			Value: row.Description,
			Err:   errors.New("empty description"),
		}
	}

	date, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.Transaction{}, &parsererror.RowError{
			Line:  line,
			Field: "date",
			Value: row.Date,
			Err:   err,
		}
	}

	amount, err := resolveAmount(row, line)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    strings.TrimSpace(row.Currency),
	}, nil
}

func resolveAmount(row models.RawRow, line int) (decimal.Decimal, error) {
	if strings.TrimSpace(row.Amount) != "" {
		amount, err := models.ParseAmount(row.Amount)
		if err != nil {
			return decimal.Zero, &parsererror.RowError{
				Line:  line,
				Field: "amount",
				Value: row.Amount,
				Err:   err,
			}
		}
		return amount, nil
	}

	debit := strings.TrimSpace(row.Debit)
	credit := strings.TrimSpace(row.Credit)
	if debit == "" && credit == "" {
		return decimal.Zero, &parsererror.RowError{
			Line:  line,
			Field: "amount",
			Value: "",
			Err:   errors.New("no amount, debit or credit value"),
		}
	}

	amount := decimal.Zero
	if credit != "" {
		c, err := models.ParseAmount(credit)
		if err != nil {
			return decimal.Zero, &parsererror.RowError{
				Line:  line,
				Field: "credit",
				Value: credit,
				Err:   err,
			}
		}
		amount = amount.Add(c.Abs())
	}
	if debit != "" {
		d, err := models.ParseAmount(debit)
		if err != nil {
			return decimal.Zero, &parsererror.RowError{
				Line:  line,
				Field: "debit",
				Value: debit,
				Err:   err,
			}
		}
		amount = amount.Sub(d.Abs())
	}

	return amount, nil
}
