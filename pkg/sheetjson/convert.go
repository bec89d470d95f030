package sheetjson

import (
	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
)

// Result summarizes a completed conversion.
type Result struct {
	// SheetName is the converted sheet.
	SheetName string
	// OutputPath is the file written.
	OutputPath string
	// Columns holds the column names in output key order.
	Columns []string
	// Rows is the number of records written.
	Rows int
}

// Convert reads the configured sheet, transforms its rows into records and
// writes them as JSON. It stops at the first failing step; nothing is
// written unless loading and encoding succeed.
func Convert(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	sheet, err := Load(opts)
	if err != nil {
		return nil, err
	}

	records := Transform(sheet, opts.DateFormat)

	if err := Write(records, opts.OutputPath, opts.Pretty); err != nil {
		return nil, err
	}
	log.Debug("wrote records", "path", opts.OutputPath, "records", len(records))

	return newResult(sheet, opts.OutputPath), nil
}

func newResult(sheet *models.Sheet, path string) *Result {
	return &Result{
		SheetName:  sheet.Name,
		OutputPath: path,
		Columns:    sheet.Columns,
		Rows:       len(sheet.Rows),
	}
}
