// Package xlsxtest builds small workbooks for tests.
package xlsxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateNumFmt is the number format applied to time.Time cells (m/d/yy).
const DateNumFmt = 14

// Sheet is a named grid of cell values. Nil cells are left empty;
// time.Time cells are written as serial dates with DateNumFmt.
type Sheet struct {
	Name string
	Rows [][]any
}

// Styled is a numeric cell written with a built-in number format.
type Styled struct {
	Value  float64
	NumFmt int
}

// Error is an error cell (t="e") such as "#DIV/0!".
type Error string

// Write saves a workbook with the given sheets, in order, to name inside
// a fresh temporary directory and returns its path.
func Write(t *testing.T, name string, sheets ...Sheet) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	WriteTo(t, path, sheets...)
	return path
}

// WriteDate1904 is Write for a workbook using the 1904 date system.
// Serials must be given as Styled cells.
func WriteDate1904(t *testing.T, name string, sheets ...Sheet) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	write(t, path, true, sheets)
	return path
}

// WriteTo saves a workbook with the given sheets to path.
func WriteTo(t *testing.T, path string, sheets ...Sheet) {
	t.Helper()
	write(t, path, false, sheets)
}

func write(t *testing.T, path string, date1904 bool, sheets []Sheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if date1904 {
		if err := f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}); err != nil {
			t.Fatalf("Failed to set 1904 date system: %v", err)
		}
	}

	styles := make(map[int]int)
	styleFor := func(numFmt int) int {
		if id, ok := styles[numFmt]; ok {
			return id
		}
		id, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
		if err != nil {
			t.Fatalf("Failed to create style %d: %v", numFmt, err)
		}
		styles[numFmt] = id
		return id
	}

	// errCells maps worksheet part names to error cells patched in after save
	errCells := make(map[string]map[string]Error)

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("Failed to rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("Failed to create sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("Invalid cell (%d, %d): %v", c+1, r+1, err)
				}

				style := 0
				switch v := v.(type) {
				case time.Time:
					err = f.SetCellValue(sheet.Name, cell, v)
					style = styleFor(DateNumFmt)
				case Styled:
					err = f.SetCellFloat(sheet.Name, cell, v.Value, -1, 64)
					style = styleFor(v.NumFmt)
				case Error:
					part := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
					if errCells[part] == nil {
						errCells[part] = make(map[string]Error)
					}
					errCells[part][cell] = v
					err = f.SetCellInt(sheet.Name, cell, 0)
				default:
					err = f.SetCellValue(sheet.Name, cell, v)
				}
				if err != nil {
					t.Fatalf("Failed to set %s: %v", cell, err)
				}
				if style != 0 {
					if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
						t.Fatalf("Failed to style %s: %v", cell, err)
					}
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	if len(errCells) > 0 {
		if err := patchErrorCells(path, errCells); err != nil {
			t.Fatalf("Failed to write error cells: %v", err)
		}
	}
}

// patchErrorCells rewrites placeholder cells of the saved workbook as
// error cells. excelize has no setter for t="e".
func patchErrorCells(path string, cells map[string]map[string]Error) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range zr.File {
		data, err := readPart(file)
		if err != nil {
			return err
		}
		for cell, text := range cells[file.Name] {
			re := regexp.MustCompile(`(?s)<c r="` + cell + `"[^>]*?(?:/>|>.*?</c>)`)
			repl := fmt.Sprintf(`<c r="%s" t="e"><v>%s</v></c>`, cell, text)
			if !re.Match(data) {
				return fmt.Errorf("cell %s not found in %s", cell, file.Name)
			}
			data = re.ReplaceAllLiteral(data, []byte(repl))
		}
		w, err := zw.Create(file.Name)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func readPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
