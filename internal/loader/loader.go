// Package loader reads statement files into raw rows. It understands
// delimited text exports (including the Spanish bank layout with a
// preamble before the header) and CAMT.053-style XML statements. The
// loader performs no validation beyond container parsing; rows come out
// as untyped strings for the normalizer to deal with.
package loader

import (
	"path/filepath"
	"strings"

	"finadvisor/internal/logging"
	"finadvisor/internal/models"
	"finadvisor/internal/parsererror"
)

// Loader yields the ordered sequence of raw rows found in a statement file.
type Loader interface {
	Load(path string) ([]models.RawRow, error)
}

// ForFile picks a loader based on the file extension.
func ForFile(path string, delimiter rune, logger logging.Logger) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		return NewCSVLoader(delimiter, logger), nil
	case ".xml", ".camt":
		return NewXMLLoader(logger), nil
	default:
		return nil, &parsererror.UnsupportedFormatError{Path: path, Extension: ext}
	}
}
