package parser

import (
	"strconv"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
)

// headerTimeLayout formats date cells used as column names.
const headerTimeLayout = "2006-01-02 15:04:05"

// columnNames derives width column names from the header row. Empty or
// missing header cells become "Unnamed: <index>" and duplicates are made
// unique with ".1", ".2", ... suffixes.
func columnNames(header []models.Value, width int) []string {
	names := make([]string, width)
	for i := range names {
		var v models.Value
		if i < len(header) {
			v = header[i]
		}
		names[i] = headerName(v, i)
	}
	return dedupe(names)
}

// headerName renders a header cell as a column name.
func headerName(v models.Value, index int) string {
	switch v.Kind() {
	case models.KindString:
		if s := v.Str(); s != "" {
			return s
		}
	case models.KindNumber:
		if v.IsInt() {
			return strconv.FormatInt(v.Interface().(int64), 10)
		}
		return strconv.FormatFloat(v.Interface().(float64), 'g', -1, 64)
	case models.KindBool:
		if v.Interface() == true {
			return "True"
		}
		return "False"
	case models.KindDate:
		return v.Time().Format(headerTimeLayout)
	}
	return "Unnamed: " + strconv.Itoa(index)
}

// dedupe renames repeated names in place. A later "X" becomes "X.1",
// then "X.2", skipping any suffixed name already taken.
func dedupe(names []string) []string {
	counts := make(map[string]int, len(names))
	for i, base := range names {
		name := base
		for counts[name] > 0 {
			n := counts[base]
			counts[base] = n + 1
			name = base + "." + strconv.Itoa(n)
		}
		names[i] = name
		counts[name]++
	}
	return names
}
