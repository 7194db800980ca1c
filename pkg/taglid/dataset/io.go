package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// ReadOptions selects what part of an input file becomes the table.
type ReadOptions struct {
	Sheet       string // spreadsheet sheet; empty means the first one
	IndexColumn string // header of the column holding row labels
}

// WriteOptions controls output files.
type WriteOptions struct {
	Sheet string // spreadsheet sheet name; empty means "Sheet1"
}

const defaultSheet = "Sheet1"

// ReadTable reads a .xlsx or .csv file whose first row is the header.
func ReadTable(path string, opts ReadOptions) (*Table, error) {
	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readSheet(path, opts.Sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: unsupported input format %q", internalerr.ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(rows, opts.IndexColumn)
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", internalerr.ErrInvalidInput, path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", internalerr.ErrInvalidInput, sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidInput, path, err)
	}
	return rows, nil
}

// buildTable turns header + data rows into a Table. Short rows are padded
// since spreadsheets drop trailing empty cells; a row with non-empty cells
// past the header is rejected.
func buildTable(rows [][]string, indexColumn string) (*Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: missing header row", internalerr.ErrInvalidInput)
	}
	header := rows[0]
	data := rows[1:]

	idx := -1
	if indexColumn != "" {
		for i, h := range header {
			if h == indexColumn {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: index column %q not found", internalerr.ErrInvalidInput, indexColumn)
		}
	}

	t := &Table{}
	for i, h := range header {
		if i != idx {
			t.Columns = append(t.Columns, h)
		}
	}
	for n, row := range data {
		for i := len(header); i < len(row); i++ {
			if strings.TrimSpace(row[i]) != "" {
				return nil, fmt.Errorf("%w: row %d has %d cells but the header has %d columns",
					internalerr.ErrInvalidInput, n+2, len(row), len(header))
			}
		}
		cells := make([]string, 0, len(t.Columns))
		label := ""
		for i := range header {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if i == idx {
				label = v
				continue
			}
			cells = append(cells, v)
		}
		t.Rows = append(t.Rows, cells)
		if idx >= 0 {
			t.Index = append(t.Index, label)
		}
	}
	return t, t.Validate()
}

// WriteRecords writes records as .xlsx, .csv, .json or .msgpack depending
// on the extension of path. The file is replaced atomically.
func WriteRecords(path string, records []Record, opts WriteOptions) error {
	var write func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		write = func(w io.Writer) error { return writeSheet(w, records, opts.Sheet) }
	case ".csv":
		write = func(w io.Writer) error { return writeCSV(w, records) }
	case ".json":
		write = func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(nonNil(records))
		}
	case ".msgpack", ".mpk":
		write = func(w io.Writer) error { return msgpack.NewEncoder(w).Encode(nonNil(records)) }
	default:
		return fmt.Errorf("%w: unsupported output format %q", internalerr.ErrInvalidInput, ext)
	}
	return writeAtomic(path, write)
}

func nonNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSheet(w io.Writer, records []Record, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("%w: sheet name %q: %v", internalerr.ErrInvalidInput, sheet, err)
		}
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Row, r.Col, r.TokenIndex, r.Word, r.Eng, r.Tgl, r.Flag.String(), r.Correction}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".taglid-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ErrOutputExists is returned by CheckOutput when path already exists.
var ErrOutputExists = errors.New("output file exists")

// CheckOutput fails with ErrOutputExists when path exists and overwrite
// is false.
func CheckOutput(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
