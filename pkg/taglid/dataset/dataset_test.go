package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/ingest"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

func testPipeline(workers int) *Pipeline {
	res := lexicon.NewBuilder().
		AddWords(lexicon.English, "hello", "world", "ask").
		AddWords(lexicon.Tagalog, "mundo", "po", "mag", "salamat").
		AddFrequency(lexicon.Tagalog, "lang", 7000).
		Build()
	text := ingest.NewPipeline(ingest.NewTokenizer(), classify.New(res))
	p := NewPipeline(text, nil)
	p.Workers = workers
	return p
}

type coord struct {
	row, col string
	idx      int
	word     string
}

func coords(records []Record) []coord {
	out := make([]coord, len(records))
	for i, r := range records {
		out[i] = coord{r.Row, r.Col, r.TokenIndex, r.Word}
	}
	return out
}

func TestRunFlattensInOrder(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows: [][]string{
			{"hello mundo", "po"},
			{"mag-aask lang po", "salamat world"},
		},
	}
	for _, workers := range []int{1, 4, 16} {
		res, err := testPipeline(workers).Run(context.Background(), table)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Cells)
		assert.Empty(t, res.Skipped)
		assert.Equal(t, []coord{
			{"1", "a", 1, "hello"},
			{"1", "a", 2, "mundo"},
			{"1", "b", 1, "po"},
			{"2", "a", 1, "mag-aask"},
			{"2", "a", 2, "lang"},
			{"2", "a", 3, "po"},
			{"2", "b", 1, "salamat"},
			{"2", "b", 2, "world"},
		}, coords(res.Records), "workers=%d", workers)
		assert.Equal(t, classify.FlagIntraword, res.Records[3].Flag)
		assert.Equal(t, 1, res.Records[3].RowPos)
		assert.Equal(t, 0, res.Records[3].ColPos)
	}
}

func TestRunSkipsBadCells(t *testing.T) {
	table := &Table{
		Columns: []string{"text", "note"},
		Index:   []string{"r1", "r2"},
		Rows: [][]string{
			{"", "hello"},
			{"po \xff", "?!"},
		},
	}
	res, err := testPipeline(2).Run(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, []coord{{"r1", "note", 1, "hello"}}, coords(res.Records))
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "r1", res.Skipped[0].Row)
	assert.Equal(t, "text", res.Skipped[0].Col)
	assert.True(t, errors.Is(res.Skipped[0], ingest.ErrEmptyText))
	assert.Equal(t, "r2", res.Skipped[1].Row)
	assert.True(t, errors.Is(res.Skipped[1], internalerr.ErrInvalidInput))
}

func TestRunProgress(t *testing.T) {
	table := &Table{Columns: []string{"a", "b", "c"}, Rows: [][]string{{"hello", "po", "mundo"}, {"a", "b", "c"}}}
	p := testPipeline(3)
	var seen []int
	p.Progress = func(done, total int) {
		assert.Equal(t, 6, total)
		seen = append(seen, done)
	}
	_, err := p.Run(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, seen)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	table := &Table{Columns: []string{"a"}, Rows: [][]string{{"hello"}, {"po"}}}
	_, err := testPipeline(1).Run(ctx, table)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	bad := []*Table{
		{},
		{Columns: []string{"a", "b"}, Rows: [][]string{{"x"}}},
		{Columns: []string{"a"}, Index: []string{"1", "2"}, Rows: [][]string{{"x"}}},
	}
	for i, tbl := range bad {
		assert.ErrorIs(t, tbl.Validate(), internalerr.ErrInvalidInput, "table %d", i)
		_, err := testPipeline(1).Run(context.Background(), tbl)
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "table %d", i)
	}

	empty := &Table{Columns: []string{"a"}}
	res, err := testPipeline(1).Run(context.Background(), empty)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func sampleRecords() []Record {
	return []Record{
		{Row: "1", Col: "a", TokenIndex: 1, LabeledWord: classify.LabeledWord{Word: "hello", Eng: 1, Flag: classify.FlagDictionary}},
		{Row: "1", Col: "a", TokenIndex: 2, LabeledWord: classify.LabeledWord{Word: "mistkae", Eng: 1, Flag: classify.FlagCorrection, Correction: "mistake"}},
		{Row: "2", Col: "b", TokenIndex: 1, LabeledWord: classify.LabeledWord{Word: "na", Eng: 0.5, Tgl: 0.5, Flag: classify.FlagDictionary}},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteRecords(path, sampleRecords(), WriteOptions{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"1", "a", "2", "mistkae", "1", "0", "CORR", "mistake"}, rows[2])
	assert.Equal(t, []string{"2", "b", "1", "na", "0.5", "0.5", "DICT", ""}, rows[3])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteRecords(path, sampleRecords(), WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "hello", got[0]["word"])
	assert.Equal(t, float64(1), got[0]["token_index"])
	assert.Equal(t, "DICT", got[0]["flag"])
	assert.NotContains(t, got[0], "correction")
	assert.NotContains(t, got[0], "RowPos")
	assert.Equal(t, "mistake", got[1]["correction"])
}

func TestWriteMsgpack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.msgpack")
	want := sampleRecords()
	require.NoError(t, WriteRecords(path, want, WriteOptions{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var got []Record
	require.NoError(t, msgpack.NewDecoder(f).Decode(&got))
	assert.Equal(t, want, got)
}

func TestSpreadsheetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.xlsx")
	require.NoError(t, WriteRecords(out, sampleRecords(), WriteOptions{Sheet: "labels"}))

	tbl, err := ReadTable(out, ReadOptions{Sheet: "labels", IndexColumn: "row"})
	require.NoError(t, err)
	assert.Equal(t, Header[1:], tbl.Columns)
	assert.Equal(t, []string{"1", "1", "2"}, tbl.Index)
	assert.Equal(t, "mistkae", tbl.Rows[1][2])
	assert.Equal(t, "", tbl.Rows[0][6], "empty trailing cell is padded")

	_, err = ReadTable(out, ReadOptions{Sheet: "missing"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestReadCSVTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,text,reply\nu1,hello mundo,po\nu2,salamat\n"), 0644))

	tbl, err := ReadTable(path, ReadOptions{IndexColumn: "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "reply"}, tbl.Columns)
	assert.Equal(t, []string{"u1", "u2"}, tbl.Index)
	assert.Equal(t, [][]string{{"hello mundo", "po"}, {"salamat", ""}}, tbl.Rows)

	_, err = ReadTable(path, ReadOptions{IndexColumn: "nope"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = ReadTable(filepath.Join(t.TempDir(), "in.txt"), ReadOptions{})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestReadTableRejectsRowsWiderThanHeader(t *testing.T) {
	dir := t.TempDir()
	wide := filepath.Join(dir, "wide.csv")
	require.NoError(t, os.WriteFile(wide, []byte("text,reply\nhello,po\nsalamat,mundo,extra cell\n"), 0644))

	_, err := ReadTable(wide, ReadOptions{})
	require.ErrorIs(t, err, internalerr.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 3")

	trailing := filepath.Join(dir, "trailing.csv")
	require.NoError(t, os.WriteFile(trailing, []byte("text,reply\nhello,po,,\n"), 0644))
	tbl, err := ReadTable(trailing, ReadOptions{})
	require.NoError(t, err, "empty cells past the header are ignored")
	assert.Equal(t, [][]string{{"hello", "po"}}, tbl.Rows)
}

func TestCheckOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	assert.NoError(t, CheckOutput(path, false))
	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.ErrorIs(t, CheckOutput(path, false), ErrOutputExists)
	assert.NoError(t, CheckOutput(path, true))
}
