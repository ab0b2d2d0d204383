// Package dateutils provides date parsing for the formats commonly found
// in bank statement exports.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout constants used throughout the application.
const (
	LayoutISO      = "2006-01-02"
	LayoutEuropean = "02/01/2006"
	LayoutMonth    = "2006-01"
)

// commonFormats lists the layouts tried when parsing statement dates.
// Day-first layouts come before month-first ones: European bank exports
// are the primary input, so "03/04/2024" reads as 3 April.
var commonFormats = []string{
	LayoutISO,
	LayoutEuropean,
	"02-01-2006",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"01/02/2006",
}

var spaceRun = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using the common statement
// formats, trying each until one works.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range commonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// MonthKey formats a date as YYYY-MM for monthly grouping.
func MonthKey(date time.Time) string {
	return date.Format(LayoutMonth)
}
