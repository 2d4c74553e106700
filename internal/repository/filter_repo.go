package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"potarig/internal/models"
)

type FilterSQLite struct {
	db *sql.DB
}

func NewFilterSQLite(db *sql.DB) *FilterSQLite {
	return &FilterSQLite{db: db}
}

const (
	filterStateRowID = 1

	insertOrUpdateFilterSQL = `
		INSERT INTO filter_state (id, band, mode, program, sort_by, exclude_qrt, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			band=excluded.band,
			mode=excluded.mode,
			program=excluded.program,
			sort_by=excluded.sort_by,
			exclude_qrt=excluded.exclude_qrt,
			updated_at=excluded.updated_at
	`

	selectFilterSQL = `
		SELECT band, mode, program, sort_by, exclude_qrt, updated_at
		FROM filter_state WHERE id=?
	`
)

// Save upserts the single filter_state row.
func (r *FilterSQLite) Save(ctx context.Context, f models.FilterCriteria) error {
	ts := f.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateFilterSQL,
		filterStateRowID,
		f.Band,
		f.Mode,
		f.Program,
		f.SortBy,
		f.ExcludeTerminated,
		ts.UTC().Format(sqliteTimeLayout),
	)
	return err
}

// Load returns the saved filter, or the zero value when nothing was saved yet.
func (r *FilterSQLite) Load(ctx context.Context) (models.FilterCriteria, error) {
	row := r.db.QueryRowContext(ctx, selectFilterSQL, filterStateRowID)

	var f models.FilterCriteria
	if err := row.Scan(
		&f.Band,
		&f.Mode,
		&f.Program,
		&f.SortBy,
		&f.ExcludeTerminated,
		&f.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FilterCriteria{}, nil
		}
		return models.FilterCriteria{}, err
	}
	f.UpdatedAt = f.UpdatedAt.UTC()
	return f, nil
}
