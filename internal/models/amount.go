package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyRunes = regexp.MustCompile(`[€$£¥\s]|EUR|USD|GBP|CHF`)

// ParseAmount parses a string amount into a decimal value. It accepts both
// European ("1.234,56") and Anglo ("1,234.56") separators, plain values
// with a comma decimal separator ("150,00"), and tolerates currency
// symbols or codes around the number.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts the various separator conventions found in
// bank exports into a form decimal.NewFromString understands.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyRunes.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Anglo format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma used as thousand separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Apostrophes as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// FormatAmount renders a decimal with two places and an optional currency
// code, e.g. "1234.56 EUR".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}
