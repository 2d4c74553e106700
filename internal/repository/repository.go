package repository

import (
	"context"
	"database/sql"
	"time"

	"potarig/internal/models"
)

// sqliteTimeLayout is how timestamps are written and compared in SQLite TIMESTAMP columns.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type FilterRepo interface {
	Save(ctx context.Context, f models.FilterCriteria) error
	Load(ctx context.Context) (models.FilterCriteria, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.StationEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.StationEvent, error)
}

type ContactRepo interface {
	Append(ctx context.Context, c models.Contact) error
	List(ctx context.Context, from, to time.Time, band string) ([]models.Contact, error)
}

type Repository struct {
	FilterRepo  FilterRepo
	EventRepo   EventRepo
	ContactRepo ContactRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		FilterRepo:  NewFilterSQLite(db),
		EventRepo:   NewEventSQLite(db),
		ContactRepo: NewContactSQLite(db),
	}
}
