package models

// Sheet is a worksheet read as a table.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// Columns holds the column names in sheet order.
	Columns []string
	// Rows holds one value per column for each data row, in sheet order.
	Rows [][]Value
}

// Width returns the number of columns.
func (s *Sheet) Width() int {
	return len(s.Columns)
}
