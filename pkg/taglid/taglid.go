package taglid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cognicore/taglid/internal/logging"
	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/config"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/ingest"
	"github.com/cognicore/taglid/pkg/taglid/store"
)

// Taglid is the word-level language identification facade
type Taglid struct {
	text    *ingest.Pipeline
	dataset *dataset.Pipeline
	store   store.Store
	log     *slog.Logger
	closers []func() error
}

// Options configures a Taglid instance
type Options struct {
	Text    *ingest.Pipeline
	Dataset *dataset.Pipeline // built from Text when nil
	Store   store.Store       // optional; runs are not recorded without it
	Logger  *slog.Logger
}

// New creates a Taglid instance with the given dependencies
func New(opts Options) *Taglid {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	ds := opts.Dataset
	if ds == nil {
		ds = dataset.NewPipeline(opts.Text, log)
	}
	return &Taglid{text: opts.Text, dataset: ds, store: opts.Store, log: log}
}

// Open loads resources and the run store described by cfg.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Taglid, error) {
	comp, err := (&config.Loader{Config: cfg, Logger: log}).Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	st, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		comp.Close()
		return nil, err
	}
	t := New(Options{Text: comp.Text, Dataset: comp.Dataset, Store: st, Logger: log})
	t.closers = append(t.closers, comp.Close)
	return t, nil
}

// Close releases the store and any connections opened by Open.
func (t *Taglid) Close() error {
	var errs []error
	if t.store != nil {
		errs = append(errs, t.store.Close())
	}
	for _, c := range t.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Store returns the run store, which may be nil.
func (t *Taglid) Store() store.Store { return t.store }

// LangIdentify labels every word of text in order.
func (t *Taglid) LangIdentify(text string) ([]classify.LabeledWord, error) {
	return t.text.Process(text)
}

// Simplify collapses labeled words to eng, tgl, eng-tgl or na.
func Simplify(words []classify.LabeledWord) []ingest.Simplified {
	return ingest.Simplify(words)
}

// LangIdentifyTable labels every cell of table.
func (t *Taglid) LangIdentifyTable(ctx context.Context, table *dataset.Table) (dataset.Result, error) {
	return t.dataset.Run(ctx, table)
}

// FileOptions controls LabelFile.
type FileOptions struct {
	Read      dataset.ReadOptions
	Write     dataset.WriteOptions
	Overwrite bool
	// Progress is forwarded to the dataset pipeline for this run.
	Progress func(done, total int)
}

// LabelFile reads a table from in, labels it, writes the records to out and
// records the run in the store when one is configured.
func (t *Taglid) LabelFile(ctx context.Context, in, out string, opts FileOptions) (store.Run, dataset.Result, error) {
	if err := dataset.CheckOutput(out, opts.Overwrite); err != nil {
		return store.Run{}, dataset.Result{}, err
	}
	table, err := dataset.ReadTable(in, opts.Read)
	if err != nil {
		return store.Run{}, dataset.Result{}, err
	}

	p := *t.dataset
	p.Progress = opts.Progress
	res, err := p.Run(ctx, table)
	if err != nil {
		return store.Run{}, dataset.Result{}, err
	}

	if err := dataset.WriteRecords(out, res.Records, opts.Write); err != nil {
		return store.Run{}, res, fmt.Errorf("write %s: %w", out, err)
	}

	run := store.Run{Source: in, Output: out, Cells: res.Cells, Skipped: len(res.Skipped)}
	if t.store == nil {
		run.Records = len(res.Records)
		return run, res, nil
	}
	run, err = t.store.SaveRun(ctx, run, res.Records)
	if err != nil {
		return store.Run{}, res, fmt.Errorf("save run: %w", err)
	}
	t.log.Info("run saved", slog.String("id", run.ID), slog.Int("records", run.Records))
	return run, res, nil
}
