package sheetjson

import (
	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
)

// isoLayout is the DateISO encoding.
const isoLayout = "2006-01-02T15:04:05.000"

// Transform converts sheet rows into records, one per row, keyed by
// column name in column order. Date values are mapped according to
// format; all other values pass through unchanged.
func Transform(sheet *models.Sheet, format DateFormat) []*models.Record {
	records := make([]*models.Record, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		record := models.NewRecord()
		for i, column := range sheet.Columns {
			v := models.Null()
			if i < len(row) {
				v = row[i]
			}
			record.Set(column, encodeDate(v, format))
		}
		records = append(records, record)
	}
	return records
}

// encodeDate maps a date value to its JSON-compatible form.
func encodeDate(v models.Value, format DateFormat) models.Value {
	if v.Kind() != models.KindDate {
		return v
	}
	t := v.Time().UTC()
	if format == DateISO {
		return models.String(t.Format(isoLayout))
	}
	return models.Int(t.UnixMilli())
}
