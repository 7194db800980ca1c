// Package dataset labels every word of every cell of a table and flattens
// the result into one record per word.
package dataset

import (
	"fmt"
	"strconv"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// Table is a rectangular grid of text cells with named columns and
// optional row labels.
type Table struct {
	Columns []string
	Index   []string // row labels; empty means 1-based row numbers
	Rows    [][]string
}

// Validate checks that every row has one cell per column and that the
// index, when present, labels every row.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: table has no columns", internalerr.ErrInvalidInput)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				internalerr.ErrInvalidInput, i+1, len(row), len(t.Columns))
		}
	}
	if len(t.Index) != 0 && len(t.Index) != len(t.Rows) {
		return fmt.Errorf("%w: index has %d labels for %d rows",
			internalerr.ErrInvalidInput, len(t.Index), len(t.Rows))
	}
	return nil
}

// RowLabel returns the label of row i.
func (t *Table) RowLabel(i int) string {
	if len(t.Index) > i {
		return t.Index[i]
	}
	return strconv.Itoa(i + 1)
}

// Record is one labeled word of a cell. TokenIndex is 1-based within the
// cell; RowPos and ColPos are the 0-based cell coordinates.
type Record struct {
	Row        string `json:"row" msgpack:"row"`
	Col        string `json:"col" msgpack:"col"`
	TokenIndex int    `json:"token_index" msgpack:"token_index"`
	RowPos     int    `json:"-" msgpack:"-"`
	ColPos     int    `json:"-" msgpack:"-"`
	classify.LabeledWord
}

// Header is the column order of tabular output.
var Header = []string{"row", "col", "token_index", "word", "eng", "tgl", "flag", "correction"}

// Fields returns the record as strings in Header order.
func (r Record) Fields() []string {
	return []string{
		r.Row,
		r.Col,
		strconv.Itoa(r.TokenIndex),
		r.Word,
		strconv.FormatFloat(r.Eng, 'f', -1, 64),
		strconv.FormatFloat(r.Tgl, 'f', -1, 64),
		r.Flag.String(),
		r.Correction,
	}
}

// CellError describes a cell that was skipped.
type CellError struct {
	Row    string
	Col    string
	RowPos int
	ColPos int
	Err    error
}

func (e CellError) Error() string {
	return fmt.Sprintf("cell (%s, %s): %v", e.Row, e.Col, e.Err)
}

func (e CellError) Unwrap() error { return e.Err }
