package dataset

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/ingest"
)

// Result is the flattened output of a run.
type Result struct {
	Records []Record
	Skipped []CellError
	Cells   int
}

// Pipeline applies the text pipeline to every cell of a table.
type Pipeline struct {
	text *ingest.Pipeline
	log  *slog.Logger

	// Workers bounds concurrent cells; zero or less means GOMAXPROCS.
	Workers int
	// Progress, when set, is called once per finished cell with a
	// monotonically increasing done count.
	Progress func(done, total int)
}

// NewPipeline creates a dataset pipeline around a text pipeline.
func NewPipeline(text *ingest.Pipeline, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{text: text, log: log}
}

type cellResult struct {
	words []classify.LabeledWord
	err   error
}

// Run labels every cell concurrently and returns records in row, column,
// token order regardless of completion order. Cells the text pipeline
// rejects are logged and reported in Result.Skipped; only cancellation or
// an invalid table aborts the run.
func (p *Pipeline) Run(ctx context.Context, t *Table) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	ncols := len(t.Columns)
	total := len(t.Rows) * ncols
	if total == 0 {
		return Result{}, nil
	}

	jobs := p.Workers
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]cellResult, total)

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, total))
	for i := 0; i < total; i++ {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			words, err := p.text.Process(t.Rows[i/ncols][i%ncols])
			results[i] = cellResult{words: words, err: err}

			if p.Progress != nil {
				mu.Lock()
				done++
				p.Progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Cells: total}
	for i, cr := range results {
		r, c := i/ncols, i%ncols
		if cr.err != nil {
			ce := CellError{Row: t.RowLabel(r), Col: t.Columns[c], RowPos: r, ColPos: c, Err: cr.err}
			p.log.Warn("skipping cell",
				slog.String("row", ce.Row),
				slog.String("col", ce.Col),
				slog.String("error", cr.err.Error()),
			)
			res.Skipped = append(res.Skipped, ce)
			continue
		}
		for k, lw := range cr.words {
			res.Records = append(res.Records, Record{
				Row:         t.RowLabel(r),
				Col:         t.Columns[c],
				TokenIndex:  k + 1,
				RowPos:      r,
				ColPos:      c,
				LabeledWord: lw,
			})
		}
	}

	p.log.Info("dataset labeled",
		slog.Int("cells", total),
		slog.Int("records", len(res.Records)),
		slog.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}
