// Package parser reads worksheets into typed tables.
package parser

import (
	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
	"github.com/xuri/excelize/v2"
)

// TableParams controls how a worksheet is read.
type TableParams struct {
	// Area limits reading to a cell range. Nil reads the whole sheet.
	Area *models.Area
	// NAValues holds string cell values read as null. Nil disables NA markers.
	NAValues map[string]struct{}
}

// DefaultTableParams returns params reading the whole sheet with the
// default NA markers.
func DefaultTableParams() TableParams {
	return TableParams{
		NAValues: NASet(true, nil),
	}
}

// ReadTable reads a worksheet as a table. The first non-blank row is the
// header; every following non-blank row becomes a data row padded with
// nulls to the table width. Blank rows are skipped.
func ReadTable(f *excelize.File, sheetName string, params TableParams) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	cr, err := newCellReader(f, sheetName, params.NAValues)
	if err != nil {
		return nil, err
	}

	area := models.Area{R1: 1, C1: 1}
	if params.Area != nil {
		area = *params.Area
	}

	var (
		header  []models.Value
		data    [][]models.Value
		started bool
	)
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		if !area.ContainsRow(rowNum) {
			continue
		}

		from, to := area.ColumnSpan(len(row))
		if isBlankRow(row, from, to) {
			continue
		}

		// Header cells keep NA-looking text as names
		values := make([]models.Value, 0, to-from)
		for colIdx := from; colIdx < to; colIdx++ {
			v, err := cr.value(colIdx+1, rowNum, row[colIdx], started)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		values = trimTrailingEmpty(values, row[from:to])

		if !started {
			header = values
			started = true
			continue
		}
		data = append(data, values)
	}

	width := max(len(header), maxWidth(data))
	for i := range data {
		data[i] = padRow(data[i], width)
	}
	if data == nil {
		data = [][]models.Value{}
	}

	return &models.Sheet{
		Name:    sheetName,
		Columns: columnNames(header, width),
		Rows:    data,
	}, nil
}
