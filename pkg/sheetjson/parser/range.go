package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference into an Area.
// Accepted forms: A1:D10, $A$1:$D$10, a single cell A1, and column
// ranges A:D. An optional sheet prefix ('Name'!A1:D10) is ignored.
func ParseRange(ref string) (*models.Area, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")
	if rangeStr == "" {
		return nil, fmt.Errorf("empty range %q", ref)
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q", ref)
	}

	if isColumnName(parts[0]) && isColumnName(parts[1]) {
		c1, err := excelize.ColumnNameToNumber(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", ref, err)
		}
		c2, err := excelize.ColumnNameToNumber(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", ref, err)
		}
		if c2 < c1 {
			c1, c2 = c2, c1
		}
		return &models.Area{R1: 1, C1: c1, C2: c2}, nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	// Normalize reversed corners (D10:A1)
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}

func isColumnName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
