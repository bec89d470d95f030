package parser

import "github.com/ukaji3/sheetjson/pkg/sheetjson/models"

// isBlankRow reports whether every cell of row in [from, to) is empty.
func isBlankRow(row []string, from, to int) bool {
	for colIdx := from; colIdx < to && colIdx < len(row); colIdx++ {
		if row[colIdx] != "" {
			return false
		}
	}
	return true
}

// maxWidth returns the widest row length.
func maxWidth(rows [][]models.Value) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// padRow extends row with nulls up to width.
func padRow(row []models.Value, width int) []models.Value {
	for len(row) < width {
		row = append(row, models.Null())
	}
	return row
}

// trimTrailingEmpty drops cells at the end of row whose raw text is
// empty, so styled but empty cells do not widen the table. raw is aligned
// with row.
func trimTrailingEmpty(row []models.Value, raw []string) []models.Value {
	n := len(row)
	for n > 0 && raw[n-1] == "" {
		n--
	}
	return row[:n]
}
