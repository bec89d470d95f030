// Package output serializes records to JSON.
package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
)

// ToJSON encodes records as a JSON array of objects. Output is compact
// unless pretty is set, and carries no trailing newline.
func ToJSON(records []*models.Record, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records, pretty); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode writes records to w as a JSON array followed by a newline.
// A nil slice encodes as an empty array.
func Encode(w io.Writer, records []*models.Record, pretty bool) error {
	if records == nil {
		records = []*models.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}
