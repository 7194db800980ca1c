package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
)

// Store persists labeled dataset runs.
type Store interface {
	Close() error

	// SaveRun stores a run and its records. An empty run ID is filled in.
	SaveRun(ctx context.Context, run Run, records []dataset.Record) (Run, error)
	// GetRun returns internalerr.ErrNotFound for unknown IDs.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// Records returns the records of a run in their original order.
	Records(ctx context.Context, id string) ([]dataset.Record, error)
	// FlagCounts tallies the records of a run by flag.
	FlagCounts(ctx context.Context, id string) (map[classify.Flag]int, error)
}

// Run describes one dataset labeling run.
type Run struct {
	ID        string
	Source    string // input path
	Output    string // output path
	CreatedAt time.Time
	Cells     int
	Records   int
	Skipped   int
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a new lexically sortable run identifier.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
