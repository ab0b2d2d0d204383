package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/net/html/charset"
)

func init() {
	// Bank exports are inconsistent about header casing and padding.
	gocsv.SetHeaderNormalizer(func(h string) string {
		return strings.ToUpper(strings.TrimSpace(h))
	})
}

// spanishBankRow maps the column layout of the Spanish bank export the
// tool was originally built for.
type spanishBankRow struct {
	Date        string `csv:"FECHA OPERACIÓN"`
	ValueDate   string `csv:"FECHA VALOR"`
	Description string `csv:"CONCEPTO"`
	Amount      string `csv:"IMPORTE EUR"`
}

// genericRow maps the plain Date/Description/Amount layout, optionally
// with split Debit/Credit columns. Missing columns stay empty.
type genericRow struct {
	Date        string `csv:"DATE"`
	Description string `csv:"DESCRIPTION"`
	Amount      string `csv:"AMOUNT"`
	Debit       string `csv:"DEBIT"`
	Credit      string `csv:"CREDIT"`
	Currency    string `csv:"CURRENCY"`
}

// CSVLoader reads delimited statement exports. The input is decoded
// through charset detection first: Spanish bank exports regularly arrive
// as ISO-8859-1 rather than UTF-8.
type CSVLoader struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVLoader creates a loader using the given field delimiter.
func NewCSVLoader(delimiter rune, logger logging.Logger) *CSVLoader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVLoader{delimiter: delimiter, logger: logger}
}

// Load reads the file and returns its data rows. Preamble lines before
// the header (the original export carries seven of them) are skipped by
// scanning for a recognizable header line.
func (l *CSVLoader) Load(path string) ([]models.RawRow, error) {
	l.logger.WithField("file", path).Info("Reading CSV statement")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	decoded, err := charset.NewReader(bufio.NewReader(file), "text/plain")
	if err != nil {
		return nil, fmt.Errorf("error detecting file encoding: %w", err)
	}

	content, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("error reading statement file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	headerIdx := findHeaderLine(lines)
	if headerIdx < 0 {
		return nil, &parsererror.InvalidFormatError{
			Path: path,
			Msg:  "no header row with date and amount columns found",
		}
	}

	header := lines[headerIdx]
	delimiter := l.delimiter
	if !strings.ContainsRune(header, delimiter) && strings.ContainsRune(header, ',') {
		delimiter = ','
	}

	data := strings.Join(lines[headerIdx:], "\n")
	rows, err := l.unmarshal(data, header, delimiter)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{Path: path, Msg: err.Error()}
	}

	l.logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(rows)},
	).Info("Read CSV statement")

	return rows, nil
}

func (l *CSVLoader) unmarshal(data, header string, delimiter rune) ([]models.RawRow, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if strings.Contains(strings.ToUpper(header), "FECHA") {
		var rows []spanishBankRow
		if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
			return nil, fmt.Errorf("error parsing CSV data: %w", err)
		}
		out := make([]models.RawRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.RawRow{
				Date:        r.Date,
				Description: r.Description,
				Amount:      r.Amount,
				Currency:    "EUR",
			})
		}
		return out, nil
	}

	var rows []genericRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	out := make([]models.RawRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.RawRow{
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Currency:    r.Currency,
		})
	}
	return out, nil
}

// findHeaderLine returns the index of the first line that looks like a
// statement header, or -1 when there is none.
func findHeaderLine(lines []string) int {
	for i, line := range lines {
		upper := strings.ToUpper(line)
		hasDate := strings.Contains(upper, "FECHA") || strings.Contains(upper, "DATE")
		hasAmount := strings.Contains(upper, "IMPORTE") ||
			strings.Contains(upper, "AMOUNT") ||
			strings.Contains(upper, "DEBIT") ||
			strings.Contains(upper, "DEBE")
		if hasDate && hasAmount {
			return i
		}
	}
	return -1
}
