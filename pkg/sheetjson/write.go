package sheetjson

import (
	"os"

	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
	"github.com/ukaji3/sheetjson/pkg/sheetjson/output"
)

// Write encodes records as a JSON array and writes it to path, creating
// the file or truncating an existing one. Records are encoded before the
// file is opened, so a serialization failure leaves path untouched.
func Write(records []*models.Record, path string, pretty bool) error {
	data, err := output.ToJSON(records, pretty)
	if err != nil {
		return newError(ErrSerialization, path, "", err)
	}
	if err := writeFile(path, data); err != nil {
		return newError(ErrWrite, path, "", err)
	}
	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(data)
	return err
}
