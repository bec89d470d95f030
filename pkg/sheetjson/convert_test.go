package sheetjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetjson/internal/xlsxtest"
	"github.com/ukaji3/sheetjson/pkg/sheetjson/models"
)

// testOptions returns default options reading input and writing into a
// fresh temporary directory.
func testOptions(t *testing.T, input string) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = filepath.Join(t.TempDir(), DefaultOutputPath)
	return opts
}

func reservations(rows ...[]any) xlsxtest.Sheet {
	return xlsxtest.Sheet{Name: DefaultSheetName, Rows: rows}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConvert(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"Name", "Nights"},
		[]any{"Alice", 2},
		[]any{"Bob", 5},
	))
	opts := testOptions(t, input)

	res, err := Convert(opts)
	require.NoError(t, err)

	assert.Equal(t, `[{"Name":"Alice","Nights":2},{"Name":"Bob","Nights":5}]`, readOutput(t, opts.OutputPath))
	assert.Equal(t, &Result{
		SheetName:  DefaultSheetName,
		OutputPath: opts.OutputPath,
		Columns:    []string{"Name", "Nights"},
		Rows:       2,
	}, res)
}

func TestConvertHeaderOnly(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name", "Nights"}))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, "[]", readOutput(t, opts.OutputPath))
}

func TestConvertSheetNotFound(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath,
		xlsxtest.Sheet{Name: "Cottages", Rows: [][]any{{"ID"}, {1}}},
		xlsxtest.Sheet{Name: "reservations", Rows: [][]any{{"ID"}, {1}}},
	)
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), "Cottages")

	var convErr *ConvertError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, DefaultSheetName, convErr.SheetName)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "output must not be created")
}

func TestConvertFileNotFound(t *testing.T) {
	opts := testOptions(t, filepath.Join(t.TempDir(), "missing.xlsx"))
	require.NoError(t, os.WriteFile(opts.OutputPath, []byte("previous"), 0o644))

	_, err := Convert(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "previous", readOutput(t, opts.OutputPath), "output must not be modified")
}

func TestConvertInvalidFormat(t *testing.T) {
	input := filepath.Join(t.TempDir(), DefaultInputPath)
	require.NoError(t, os.WriteFile(input, []byte("not a workbook"), 0o644))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestConvertInputIsDirectory(t *testing.T) {
	opts := testOptions(t, t.TempDir())

	_, err := Convert(opts)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConvertWriteError(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name"}, []any{"Alice"}))
	opts := testOptions(t, input)
	opts.OutputPath = filepath.Join(t.TempDir(), "missing-dir", DefaultOutputPath)

	_, err := Convert(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.NotErrorIs(t, err, ErrFileNotFound)
}

func TestWriteSerializationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutputPath)
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	record := models.NewRecord()
	record.Set("Rate", models.Float(math.NaN()))

	err := Write([]*models.Record{record}, path, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, models.ErrUnrepresentable)
	assert.NotErrorIs(t, err, ErrWrite)
	assert.Equal(t, "previous", readOutput(t, path), "output must not be modified")
}

func TestConvertDate1904(t *testing.T) {
	input := xlsxtest.WriteDate1904(t, DefaultInputPath, reservations(
		[]any{"Arrival"},
		[]any{xlsxtest.Styled{Value: 42735, NumFmt: xlsxtest.DateNumFmt}},
	))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, `[{"Arrival":1609459200000}]`, readOutput(t, opts.OutputPath))
}

func TestConvertErrorAndTimeCells(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"Rate", "Checkin", "Elapsed"},
		[]any{xlsxtest.Error("#DIV/0!"), xlsxtest.Styled{Value: 0.5, NumFmt: 20}, xlsxtest.Styled{Value: 1.5, NumFmt: 46}},
		[]any{1, nil, nil},
	))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"Rate":null,"Checkin":"12:00:00","Elapsed":129600000},{"Rate":1,"Checkin":null,"Elapsed":null}]`,
		readOutput(t, opts.OutputPath))
}

func TestConvertOverwrites(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name"}, []any{"Alice"}))
	opts := testOptions(t, input)
	require.NoError(t, os.WriteFile(opts.OutputPath, bytes.Repeat([]byte("x"), 4096), 0o644))

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, `[{"Name":"Alice"}]`, readOutput(t, opts.OutputPath))
}

func TestConvertIdempotent(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"ID", "Arrival Date", "Length of Stay", "Rate", "Note"},
		[]any{1, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 3, 99.5, "late"},
		[]any{2, time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), 7, nil, nil},
	))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.NoError(t, err)
	first := readOutput(t, opts.OutputPath)

	_, err = Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, first, readOutput(t, opts.OutputPath))
}

func TestConvertRoundTrip(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"ID", "Guest", "# Persons", "Rate", "Paid", "Near Lake ", "Cottage (Fixed)"},
		[]any{1, "Alice", 2, 120.25, true, 1, 0},
		[]any{2, "Bob", 4, 80, false, 0, 12},
		[]any{3, "Carol", nil, 95.5, true, nil, 3},
	))
	opts := testOptions(t, input)

	_, err := Convert(opts)
	require.NoError(t, err)

	sheet, err := Load(opts)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader([]byte(readOutput(t, opts.OutputPath))))
	dec.UseNumber()
	var decoded []map[string]any
	require.NoError(t, dec.Decode(&decoded))

	require.Len(t, decoded, len(sheet.Rows))
	for i, row := range sheet.Rows {
		require.Len(t, decoded[i], len(sheet.Columns), "row %d", i)
		for c, column := range sheet.Columns {
			got, ok := decoded[i][column]
			require.True(t, ok, "row %d missing column %q", i, column)
			assert.Equal(t, jsonValue(row[c]), got, "row %d column %q", i, column)
		}
	}
}

// jsonValue returns the value encoding/json decodes (with UseNumber) for v.
func jsonValue(v models.Value) any {
	switch x := v.Interface().(type) {
	case int64, float64:
		data, _ := v.MarshalJSON()
		return json.Number(data)
	default:
		return x
	}
}

func TestConvertDates(t *testing.T) {
	arrival := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"ID", "Arrival Date"},
		[]any{1, arrival},
	))

	tests := []struct {
		format DateFormat
		want   string
	}{
		{DateEpoch, `[{"ID":1,"Arrival Date":1609459200000}]`},
		{DateISO, `[{"ID":1,"Arrival Date":"2021-01-01T00:00:00.000"}]`},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			opts := testOptions(t, input)
			opts.DateFormat = tt.format

			_, err := Convert(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readOutput(t, opts.OutputPath))
		})
	}
}

func TestConvertRange(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations(
		[]any{"Report"},
		[]any{"Name", "Nights", "Internal"},
		[]any{"Alice", 2, "x"},
	))
	opts := testOptions(t, input)
	opts.Range = "A2:B3"

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, `[{"Name":"Alice","Nights":2}]`, readOutput(t, opts.OutputPath))
}

func TestConvertPretty(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name"}, []any{"Alice"}))
	opts := testOptions(t, input)
	opts.Pretty = true

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"Name\": \"Alice\"\n  }\n]", readOutput(t, opts.OutputPath))
}

func TestConvertInvalidOptions(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name"}))

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty input", func(o *Options) { o.InputPath = "" }},
		{"empty sheet", func(o *Options) { o.SheetName = "" }},
		{"empty output", func(o *Options) { o.OutputPath = "" }},
		{"bad date format", func(o *Options) { o.DateFormat = "unix" }},
		{"bad range", func(o *Options) { o.Range = "A1:B2:C3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, input)
			tt.mutate(&opts)

			_, err := Convert(opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestConvertLogs(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath, reservations([]any{"Name"}, []any{"Alice"}))
	opts := testOptions(t, input)

	var buf bytes.Buffer
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Convert(opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "loaded sheet")
	assert.Contains(t, buf.String(), "columns=1")
	assert.Contains(t, buf.String(), "rows=1")
	assert.Contains(t, buf.String(), "wrote records")
}

func TestListSheets(t *testing.T) {
	input := xlsxtest.Write(t, DefaultInputPath,
		xlsxtest.Sheet{Name: "Cottages"},
		xlsxtest.Sheet{Name: DefaultSheetName},
	)

	book, err := ListSheets(input)
	require.NoError(t, err)
	assert.Equal(t, DefaultInputPath, book.BookName)
	assert.Equal(t, []string{"Cottages", DefaultSheetName}, book.Sheets)

	_, err = ListSheets(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestTransform(t *testing.T) {
	sheet := &models.Sheet{
		Name:    DefaultSheetName,
		Columns: []string{"B", "A"},
		Rows: [][]models.Value{
			{models.String("x"), models.Date(time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC))},
			{models.Null()},
		},
	}

	records := Transform(sheet, DateEpoch)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"B", "A"}, keys(records[0]))
	v, _ := records[0].Get("A")
	assert.Equal(t, int64(1000), v.Interface())

	// Short rows are completed with nulls
	assert.Equal(t, []string{"B", "A"}, keys(records[1]))
	v, _ = records[1].Get("A")
	assert.True(t, v.IsNull())

	empty := Transform(&models.Sheet{Columns: []string{"A"}}, DateEpoch)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func keys(r *models.Record) []string {
	var out []string
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestConvertErrorMessage(t *testing.T) {
	err := newError(ErrSheetNotFound, "Dataset.xlsx", "Reservations", errors.New(`workbook has sheets ["Sheet1"]`))
	assert.Equal(t, `sheet not found: Dataset.xlsx (sheet "Reservations"): workbook has sheets ["Sheet1"]`, err.Error())

	err = newError(ErrWrite, "out.json", "", nil)
	assert.Equal(t, "failed to write output: out.json", err.Error())
	assert.ErrorIs(t, err, ErrWrite)
}
