package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"fortio.org/safecast"
	_ "modernc.org/sqlite"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/store"
)

// recordsPerInsert keeps multi-row inserts under SQLite's bound-variable limit.
const recordsPerInsert = 80

var recordColumns = []string{
	"run_id", "seq", "row_label", "col", "row_pos", "col_pos",
	"token_index", "word", "eng", "tgl", "flag", "correction",
}

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(db),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT,
	output TEXT,
	created_at TEXT NOT NULL,
	cells INTEGER NOT NULL DEFAULT 0,
	records INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	row_label TEXT NOT NULL,
	col TEXT NOT NULL,
	row_pos INTEGER NOT NULL,
	col_pos INTEGER NOT NULL,
	token_index INTEGER NOT NULL,
	word TEXT NOT NULL,
	eng REAL NOT NULL,
	tgl REAL NOT NULL,
	flag TEXT NOT NULL,
	correction TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_flag ON records(run_id, flag);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes the run row and all records in one transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run, records []dataset.Record) (store.Run, error) {
	if run.ID == "" {
		run.ID = store.NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Records = len(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Run{}, err
	}
	defer tx.Rollback()

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(tx)

	_, err = builder.Insert("runs").
		Columns("id", "source", "output", "created_at", "cells", "records", "skipped").
		Values(run.ID, run.Source, run.Output, run.CreatedAt.Format(time.RFC3339Nano), run.Cells, run.Records, run.Skipped).
		ExecContext(ctx)
	if err != nil {
		return store.Run{}, fmt.Errorf("insert run: %w", err)
	}

	for start := 0; start < len(records); start += recordsPerInsert {
		end := min(start+recordsPerInsert, len(records))
		insert := builder.Insert("records").Columns(recordColumns...)
		for i, r := range records[start:end] {
			insert = insert.Values(run.ID, start+i, r.Row, r.Col, r.RowPos, r.ColPos,
				r.TokenIndex, r.Word, r.Eng, r.Tgl, r.Flag.String(), r.Correction)
		}
		if _, err := insert.ExecContext(ctx); err != nil {
			return store.Run{}, fmt.Errorf("insert records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.Run{}, err
	}
	return run, nil
}

func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.sb.Select("id", "source", "output", "created_at", "cells", "records", "skipped").
		From("runs").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return run, err
}

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	q := s.sb.Select("id", "source", "output", "created_at", "cells", "records", "skipped").
		From("runs").
		OrderBy("id DESC")
	if limit > 0 {
		n, err := safecast.Conv[uint64](limit)
		if err != nil {
			return nil, err
		}
		q = q.Limit(n)
	}
	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *sqliteStore) Records(ctx context.Context, id string) ([]dataset.Record, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.sb.Select("row_label", "col", "row_pos", "col_pos", "token_index", "word", "eng", "tgl", "flag", "correction").
		From("records").
		Where(sq.Eq{"run_id": id}).
		OrderBy("seq").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dataset.Record
	for rows.Next() {
		var (
			r                          dataset.Record
			rowPos, colPos, tokenIndex int64
			flag                       string
			correction                 sql.NullString
		)
		if err := rows.Scan(&r.Row, &r.Col, &rowPos, &colPos, &tokenIndex, &r.Word, &r.Eng, &r.Tgl, &flag, &correction); err != nil {
			return nil, err
		}
		if r.RowPos, err = safecast.Conv[int](rowPos); err != nil {
			return nil, err
		}
		if r.ColPos, err = safecast.Conv[int](colPos); err != nil {
			return nil, err
		}
		if r.TokenIndex, err = safecast.Conv[int](tokenIndex); err != nil {
			return nil, err
		}
		if r.Flag, err = classify.ParseFlag(flag); err != nil {
			return nil, err
		}
		r.Correction = correction.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) FlagCounts(ctx context.Context, id string) (map[classify.Flag]int, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.sb.Select("flag", "COUNT(*)").
		From("records").
		Where(sq.Eq{"run_id": id}).
		GroupBy("flag").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[classify.Flag]int)
	for rows.Next() {
		var flag string
		var n int64
		if err := rows.Scan(&flag, &n); err != nil {
			return nil, err
		}
		f, err := classify.ParseFlag(flag)
		if err != nil {
			return nil, err
		}
		if counts[f], err = safecast.Conv[int](n); err != nil {
			return nil, err
		}
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		run                     store.Run
		source, output          sql.NullString
		created                 string
		cells, records, skipped int64
	)
	if err := sc.Scan(&run.ID, &source, &output, &created, &cells, &records, &skipped); err != nil {
		return store.Run{}, err
	}
	run.Source = source.String
	run.Output = output.String

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s: created_at: %w", run.ID, err)
	}
	run.CreatedAt = t

	if run.Cells, err = safecast.Conv[int](cells); err != nil {
		return store.Run{}, err
	}
	if run.Records, err = safecast.Conv[int](records); err != nil {
		return store.Run{}, err
	}
	if run.Skipped, err = safecast.Conv[int](skipped); err != nil {
		return store.Run{}, err
	}
	return run, nil
}
