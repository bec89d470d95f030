package sheetjson

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrSerialization indicates a value could not be encoded as JSON.
var ErrSerialization = errors.New("serialization failed")

// ErrWrite indicates the output file could not be written.
var ErrWrite = errors.New("failed to write output")

// ErrInvalidOptions indicates a conversion was configured incorrectly.
var ErrInvalidOptions = errors.New("invalid options")

// ConvertError represents a failed conversion step.
type ConvertError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Path is the file involved, when known.
	Path string
	// SheetName is the sheet involved, when known.
	SheetName string
	// Err is the underlying cause. May be nil.
	Err error
}

func (e *ConvertError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.SheetName != "" {
		fmt.Fprintf(&b, " (sheet %q)", e.SheetName)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ConvertError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// newError creates a new ConvertError.
func newError(kind error, path, sheetName string, err error) *ConvertError {
	return &ConvertError{
		Kind:      kind,
		Path:      path,
		SheetName: sheetName,
		Err:       err,
	}
}
