package models

// Workbook describes a workbook's sheets.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists sheet names in workbook order.
	Sheets []string `json:"sheets"`
}

// HasSheet reports whether the workbook has a sheet with exactly this name.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
