// Package parsererror defines the typed errors raised while loading and
// normalizing statement files. File-level errors are fatal for the run;
// RowError is recovered by skipping the offending row.
package parsererror

import "fmt"

// UnsupportedFormatError indicates that the file extension is not handled
// by any loader.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported statement format '%s' for file %s", e.Extension, e.Path)
}

// InvalidFormatError indicates that a file with a recognized extension does
// not contain the expected structure (e.g. no header row, not a bank
// statement XML).
type InvalidFormatError struct {
	Path string
	Msg  string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s", e.Path, e.Msg)
}

// RowError indicates that a single row could not be normalized. Callers
// skip the row and continue.
type RowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
