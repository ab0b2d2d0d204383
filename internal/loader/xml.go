package loader

import (
	"fmt"
	"os"
	"strings"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/parsererror"

	"gopkg.in/xmlpath.v2"
)

var (
	stmtPath      = xmlpath.MustCompile("//BkToCstmrStmt/Stmt")
	entryPath     = xmlpath.MustCompile("//Ntry")
	amountPath    = xmlpath.MustCompile("Amt")
	currencyPath  = xmlpath.MustCompile("Amt/@Ccy")
	directionPath = xmlpath.MustCompile("CdtDbtInd")
	bookingPath   = xmlpath.MustCompile("BookgDt/Dt")
	valuePath     = xmlpath.MustCompile("ValDt/Dt")
	infoPath      = xmlpath.MustCompile("AddtlNtryInf")
	remitPath     = xmlpath.MustCompile("NtryDtls/TxDtls/RmtInf/Ustrd")
)

// XMLLoader reads CAMT.053-style bank statement XML files, extracting one
// raw row per Ntry element.
type XMLLoader struct {
	logger logging.Logger
}

// NewXMLLoader creates a loader for XML statements.
func NewXMLLoader(logger logging.Logger) *XMLLoader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &XMLLoader{logger: logger}
}

// Load parses the XML statement and returns its entries as raw rows.
// Debit entries come out with a negative amount string so the normalizer
// sees the same signed convention as CSV input.
func (l *XMLLoader) Load(path string) ([]models.RawRow, error) {
	l.logger.WithField("file", path).Info("Reading XML statement")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{Path: path, Msg: "not a well-formed XML document"}
	}

	if !stmtPath.Exists(root) {
		return nil, &parsererror.InvalidFormatError{Path: path, Msg: "no bank statement element found"}
	}

	var rows []models.RawRow
	iter := entryPath.Iter(root)
	for iter.Next() {
		entry := iter.Node()

		amount, _ := amountPath.String(entry)
		currency, _ := currencyPath.String(entry)
		direction, _ := directionPath.String(entry)

		date, ok := bookingPath.String(entry)
		if !ok {
			date, _ = valuePath.String(entry)
		}

		description, ok := infoPath.String(entry)
		if !ok || strings.TrimSpace(description) == "" {
			description, _ = remitPath.String(entry)
		}

		amount = strings.TrimSpace(amount)
		if strings.TrimSpace(direction) == "DBIT" && !strings.HasPrefix(amount, "-") {
			amount = "-" + amount
		}

		rows = append(rows, models.RawRow{
			Date:        strings.TrimSpace(date),
			Description: strings.TrimSpace(description),
			Amount:      amount,
			Currency:    strings.TrimSpace(currency),
		})
	}

	l.logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(rows)},
	).Info("Read XML statement")

	return rows, nil
}
