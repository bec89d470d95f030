// Package sheetjson converts a worksheet into a JSON array of records.
package sheetjson

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/parser"
)

const (
	// DefaultInputPath is the workbook read when no input is configured.
	DefaultInputPath = "Dataset.xlsx"
	// DefaultSheetName is the sheet read when no sheet is configured.
	DefaultSheetName = "Reservations"
	// DefaultOutputPath is the JSON file written when no output is configured.
	DefaultOutputPath = "reservations.json"
)

// DateFormat selects how date cells are encoded in JSON.
type DateFormat string

const (
	// DateEpoch encodes dates as integer milliseconds since the Unix epoch.
	DateEpoch DateFormat = "epoch"
	// DateISO encodes dates as ISO 8601 strings with millisecond precision.
	DateISO DateFormat = "iso"
)

// ParseDateFormat validates a date format name. An empty name selects DateEpoch.
func ParseDateFormat(s string) (DateFormat, error) {
	switch DateFormat(s) {
	case "", DateEpoch:
		return DateEpoch, nil
	case DateISO:
		return DateISO, nil
	}
	return "", fmt.Errorf("invalid date format: %s (must be epoch or iso)", s)
}

// Options configures a conversion.
type Options struct {
	// InputPath is the workbook to read.
	InputPath string
	// SheetName is the exact name of the sheet to convert.
	SheetName string
	// OutputPath is the JSON file to create or overwrite.
	OutputPath string
	// DateFormat selects the JSON encoding of date cells.
	DateFormat DateFormat
	// Pretty indents the JSON output.
	Pretty bool
	// Range optionally limits reading to a cell range such as "A1:P200" or "A:P".
	Range string
	// NAValues lists extra string cell values read as null.
	NAValues []string
	// KeepDefaultNA keeps the default NA markers ("NA", "N/A", "#N/A", ...).
	KeepDefaultNA bool
	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options reproducing the fixed-path conversion:
// sheet Reservations of Dataset.xlsx into reservations.json.
func DefaultOptions() Options {
	return Options{
		InputPath:     DefaultInputPath,
		SheetName:     DefaultSheetName,
		OutputPath:    DefaultOutputPath,
		DateFormat:    DateEpoch,
		KeepDefaultNA: true,
	}
}

// tableParams builds the reader parameters for the options.
func (o Options) tableParams() (parser.TableParams, error) {
	params := parser.TableParams{
		NAValues: parser.NASet(o.KeepDefaultNA, o.NAValues),
	}
	if o.Range != "" {
		area, err := parser.ParseRange(o.Range)
		if err != nil {
			return params, err
		}
		params.Area = area
	}
	return params, nil
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if o.InputPath == "" {
		return newError(ErrInvalidOptions, "", "", fmt.Errorf("input path is empty"))
	}
	if o.SheetName == "" {
		return newError(ErrInvalidOptions, o.InputPath, "", fmt.Errorf("sheet name is empty"))
	}
	if o.OutputPath == "" {
		return newError(ErrInvalidOptions, "", o.SheetName, fmt.Errorf("output path is empty"))
	}
	if _, err := ParseDateFormat(string(o.DateFormat)); err != nil {
		return newError(ErrInvalidOptions, "", "", err)
	}
	if _, err := o.tableParams(); err != nil {
		return newError(ErrInvalidOptions, o.InputPath, o.SheetName, err)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
