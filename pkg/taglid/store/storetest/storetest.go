// Package storetest holds behavior checks shared by Store implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/store"
)

// Records returns a small labeled sample spanning several flags.
func Records() []dataset.Record {
	return []dataset.Record{
		{Row: "1", Col: "text", TokenIndex: 1, LabeledWord: classify.LabeledWord{Word: "hello", Eng: 1, Flag: classify.FlagDictionary}},
		{Row: "1", Col: "text", TokenIndex: 2, LabeledWord: classify.LabeledWord{Word: "mundo", Tgl: 1, Flag: classify.FlagDictionary}},
		{Row: "2", Col: "text", TokenIndex: 1, RowPos: 1, LabeledWord: classify.LabeledWord{Word: "mag-aask", Eng: 0.5, Tgl: 0.5, Flag: classify.FlagIntraword}},
		{Row: "2", Col: "reply", TokenIndex: 1, RowPos: 1, ColPos: 1, LabeledWord: classify.LabeledWord{Word: "salamt", Tgl: 1, Flag: classify.FlagCorrection, Correction: "salamat"}},
		{Row: "2", Col: "reply", TokenIndex: 2, RowPos: 1, ColPos: 1, LabeledWord: classify.LabeledWord{Word: "2024", Flag: classify.FlagNumeral}},
	}
}

// Run exercises a fresh store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("SaveAndGet", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		saved, err := st.SaveRun(ctx, store.Run{Source: "in.xlsx", Output: "out.xlsx", Cells: 4, Skipped: 1}, Records())
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.Equal(t, 5, saved.Records)

		got, err := st.GetRun(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, "in.xlsx", got.Source)
		assert.Equal(t, "out.xlsx", got.Output)
		assert.Equal(t, 4, got.Cells)
		assert.Equal(t, 5, got.Records)
		assert.Equal(t, 1, got.Skipped)
		assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("RecordsKeepOrder", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		run, err := st.SaveRun(ctx, store.Run{}, Records())
		require.NoError(t, err)
		got, err := st.Records(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, Records(), got)
	})

	t.Run("ManyRecords", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		var many []dataset.Record
		for i := 0; i < 250; i++ {
			many = append(many, dataset.Record{
				Row: "1", Col: "c", TokenIndex: i + 1,
				LabeledWord: classify.LabeledWord{Word: "po", Tgl: 1, Flag: classify.FlagDictionary},
			})
		}
		run, err := st.SaveRun(ctx, store.Run{}, many)
		require.NoError(t, err)
		got, err := st.Records(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 250)
		assert.Equal(t, 250, got[249].TokenIndex)
	})

	t.Run("FlagCounts", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		run, err := st.SaveRun(ctx, store.Run{}, Records())
		require.NoError(t, err)
		counts, err := st.FlagCounts(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, map[classify.Flag]int{
			classify.FlagDictionary: 2,
			classify.FlagIntraword:  1,
			classify.FlagCorrection: 1,
			classify.FlagNumeral:    1,
		}, counts)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		var ids []string
		for i := 0; i < 3; i++ {
			run, err := st.SaveRun(ctx, store.Run{Source: "in.csv"}, nil)
			require.NoError(t, err)
			ids = append(ids, run.ID)
		}

		runs, err := st.ListRuns(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[0], runs[2].ID)

		runs, err = st.ListRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, ids[1], runs[1].ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctx := context.Background()
		st := open(t)
		defer st.Close()

		_, err := st.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, internalerr.ErrNotFound)
		_, err = st.Records(ctx, "missing")
		assert.ErrorIs(t, err, internalerr.ErrNotFound)
		_, err = st.FlagCounts(ctx, "missing")
		assert.ErrorIs(t, err, internalerr.ErrNotFound)
	})
}
