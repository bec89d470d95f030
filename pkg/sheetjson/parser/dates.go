package parser

import (
	"strings"
	"time"

	"github.com/xuri/nfp"
)

// numFmtKind classifies how a number format renders a numeric cell.
type numFmtKind uint8

const (
	numFmtNumber numFmtKind = iota
	numFmtDate
	numFmtDuration
)

// classifyNumFmt reports whether a number format renders a plain number,
// a date or time of day, or an elapsed duration.
func classifyNumFmt(id int, format string) numFmtKind {
	if isDurationFormat(id, format) {
		return numFmtDuration
	}
	if isDateFormat(id, format) {
		return numFmtDate
	}
	return numFmtNumber
}

// builtinDurationFormat is the built-in [h]:mm:ss format.
const builtinDurationFormat = 46

// isDurationFormat reports whether a number format renders elapsed time:
// its first section opens with an elapsed code such as [h], [mm] or [s].
func isDurationFormat(id int, format string) bool {
	if id == builtinDurationFormat && format == "" {
		return true
	}
	if format == "" {
		return false
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(format)
	if len(sections) == 0 || len(sections[0].Items) == 0 {
		return false
	}
	first := sections[0].Items[0]
	if first.TType != nfp.TokenTypeElapsedDateTimes {
		return false
	}
	switch strings.ToLower(first.TValue) {
	case "h", "hh", "m", "mm", "s", "ss":
		return true
	}
	return false
}

// builtinDateFormats holds the built-in number format IDs that render
// dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a number format renders a date or time.
// Built-in IDs are looked up directly; custom format codes are scanned for
// date/time tokens outside quoted literals, bracketed sections and
// escaped characters.
func isDateFormat(id int, format string) bool {
	if builtinDateFormats[id] {
		return true
	}
	if format == "" {
		return false
	}

	// Only the first section describes positive numbers
	if idx := strings.IndexByte(format, ';'); idx >= 0 {
		format = format[:idx]
	}

	inQuote, inBracket := false, false
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++ // next character is literal or padding
		default:
			switch c | 0x20 { // lower-case ASCII letters
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// isoLayouts are the layouts written into t="d" cells.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate parses the value of an ISO 8601 date cell.
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
