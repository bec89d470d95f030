package sheetjson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
	"github.com/ukaji3/sheetjson/pkg/sheetjson/parser"
	"github.com/xuri/excelize/v2"
)

// Load reads the configured sheet of the input workbook. The workbook is
// opened read-only and closed before Load returns.
func Load(opts Options) (*models.Sheet, error) {
	params, err := opts.tableParams()
	if err != nil {
		return nil, newError(ErrInvalidOptions, opts.InputPath, opts.SheetName, err)
	}

	f, err := openWorkbook(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := workbookOf(f, opts.InputPath)
	if !book.HasSheet(opts.SheetName) {
		return nil, newError(ErrSheetNotFound, opts.InputPath, opts.SheetName,
			fmt.Errorf("workbook has sheets %q", book.Sheets))
	}

	sheet, err := parser.ReadTable(f, opts.SheetName, params)
	if err != nil {
		return nil, newError(ErrInvalidFormat, opts.InputPath, opts.SheetName, err)
	}

	opts.logger().Debug("loaded sheet",
		"path", opts.InputPath,
		"sheet", sheet.Name,
		"columns", sheet.Width(),
		"rows", len(sheet.Rows))
	return sheet, nil
}

// ListSheets returns the sheet names of the workbook at path.
func ListSheets(path string) (*models.Workbook, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return workbookOf(f, path), nil
}

// openWorkbook opens an xlsx file, classifying failures as
// ErrFileNotFound or ErrInvalidFormat.
func openWorkbook(path string) (*excelize.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrFileNotFound, path, "", err)
		}
		return nil, newError(ErrInvalidFormat, path, "", err)
	}
	if info.IsDir() {
		return nil, newError(ErrInvalidFormat, path, "", fmt.Errorf("is a directory"))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newError(ErrInvalidFormat, path, "", err)
	}
	return f, nil
}

func workbookOf(f *excelize.File, path string) *models.Workbook {
	return &models.Workbook{
		BookName: filepath.Base(path),
		Sheets:   f.GetSheetList(),
	}
}
