package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
	"github.com/xuri/excelize/v2"
)

// DefaultNAValues lists the string cell values read as missing unless
// disabled.
var DefaultNAValues = []string{
	"",
	"#N/A",
	"#N/A N/A",
	"#NA",
	"-1.#IND",
	"-1.#QNAN",
	"-NaN",
	"-nan",
	"1.#IND",
	"1.#QNAN",
	"<NA>",
	"N/A",
	"NA",
	"NULL",
	"NaN",
	"None",
	"n/a",
	"nan",
	"null",
}

// NASet builds the set of NA markers from the defaults (if keepDefault)
// and extra values.
func NASet(keepDefault bool, extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultNAValues)+len(extra))
	if keepDefault {
		for _, s := range DefaultNAValues {
			set[s] = struct{}{}
		}
	}
	for _, s := range extra {
		set[s] = struct{}{}
	}
	return set
}

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

// cellReader converts raw cell text into typed values using the cell's
// type and number format.
type cellReader struct {
	f         *excelize.File
	sheetName string
	date1904  bool
	na        map[string]struct{}
	numFmts   map[int]numFmtKind
}

func newCellReader(f *excelize.File, sheetName string, na map[string]struct{}) (*cellReader, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	return &cellReader{
		f:         f,
		sheetName: sheetName,
		date1904:  date1904,
		na:        na,
		numFmts:   make(map[int]numFmtKind),
	}, nil
}

// value types the raw text of the cell at (col, row), both 1-based.
// NA markers and error cells read as null only when applyNA is set.
// Date-formatted serials below one day read as a time of day, and
// elapsed-time formats read as milliseconds.
func (r *cellReader) value(col, row int, raw string, applyNA bool) (models.Value, error) {
	if raw == "" {
		return models.Null(), nil
	}

	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Null(), err
	}
	cellType, err := r.f.GetCellType(r.sheetName, cellName)
	if err != nil {
		return models.Null(), err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil

	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula:
		return r.text(raw, applyNA), nil

	case excelize.CellTypeError:
		// #DIV/0!, #REF! and friends carry no data
		if applyNA {
			return models.Null(), nil
		}
		return models.String(raw), nil

	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.Date(t), nil
		}
		return r.text(raw, applyNA), nil
	}

	// Numeric cells carry no type attribute
	n, ok := parseNumber(raw)
	if !ok {
		return r.text(raw, applyNA), nil
	}

	kind, err := r.numFmtKind(cellName)
	if err != nil {
		return models.Null(), err
	}
	if kind == numFmtNumber {
		return n, nil
	}

	serial, _ := strconv.ParseFloat(raw, 64)
	if kind == numFmtDuration {
		return models.Int(int64(math.Round(serial * msPerDay))), nil
	}
	if ms, ok := timeOfDay(serial); ok {
		return models.String(formatTimeOfDay(ms)), nil
	}
	if t, err := excelize.ExcelDateToTime(serial, r.date1904); err == nil {
		return models.Date(t.UTC()), nil
	}
	return n, nil
}

func (r *cellReader) text(s string, applyNA bool) models.Value {
	if applyNA {
		if _, ok := r.na[s]; ok {
			return models.Null()
		}
	}
	return models.String(s)
}

// numFmtKind classifies the cell's number format.
// Results are cached per style index.
func (r *cellReader) numFmtKind(cellName string) (numFmtKind, error) {
	styleID, err := r.f.GetCellStyle(r.sheetName, cellName)
	if err != nil {
		return numFmtNumber, err
	}
	if kind, ok := r.numFmts[styleID]; ok {
		return kind, nil
	}

	style, err := r.f.GetStyle(styleID)
	if err != nil {
		return numFmtNumber, err
	}
	var custom string
	if style.CustomNumFmt != nil {
		custom = *style.CustomNumFmt
	}
	kind := classifyNumFmt(style.NumFmt, custom)
	r.numFmts[styleID] = kind
	return kind, nil
}

// msPerDay is the length of one serial day in milliseconds.
const msPerDay = 24 * 60 * 60 * 1000

// timeOfDay returns the milliseconds past midnight of a serial below one
// day. Serials that round up to a full day are dates.
func timeOfDay(serial float64) (int64, bool) {
	if serial < 0 || serial >= 1 {
		return 0, false
	}
	ms := int64(math.Round(serial * msPerDay))
	return ms, ms < msPerDay
}

// formatTimeOfDay renders HH:MM:SS, with microseconds when the time has a
// fractional second.
func formatTimeOfDay(ms int64) string {
	t := time.UnixMilli(ms).UTC()
	if ms%1000 != 0 {
		return t.Format("15:04:05.000000")
	}
	return t.Format("15:04:05")
}

// parseNumber parses s as a number.
// Integral values within float64's exact range become integers.
func parseNumber(s string) (models.Value, bool) {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Int(i), true
	}
	// Try float
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return models.Null(), false
	}
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return models.Int(int64(f)), true
	}
	return models.Float(f), true
}
