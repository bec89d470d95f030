package models

// Area is a rectangular cell range with 1-based inclusive bounds.
// A zero R2 or C2 leaves that side open.
type Area struct {
	R1 int
	C1 int
	R2 int
	C2 int
}

// ContainsRow reports whether row r lies within the area.
func (a Area) ContainsRow(r int) bool {
	return r >= a.R1 && (a.R2 == 0 || r <= a.R2)
}

// ColumnSpan clips a row of width n to the area and returns the 0-based
// half-open column interval to read.
func (a Area) ColumnSpan(n int) (from, to int) {
	from, to = a.C1-1, n
	if from < 0 {
		from = 0
	}
	if a.C2 != 0 && a.C2 < to {
		to = a.C2
	}
	if to < from {
		to = from
	}
	return from, to
}
