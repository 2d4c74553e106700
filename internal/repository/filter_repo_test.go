package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"potarig/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFilterSave_Upserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilterSQLite(db)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO filter_state")).
		WithArgs(1, "40M", "CW", "US", "frequency", true, "2025-06-01 12:00:00").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(ctx(t), models.FilterCriteria{
		Band: "40M", Mode: "CW", Program: "US", SortBy: "frequency",
		ExcludeTerminated: true, UpdatedAt: at,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFilterSave_ZeroTimeUsesNow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilterSQLite(db)

	mock.ExpectExec("INSERT INTO filter_state").
		WithArgs(1, "ALL", "ALL", "ALL", "activator", false, sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(ctx(t), models.DefaultFilter()); err == nil {
		t.Fatal("Save() expected error, got nil")
	}
}

func TestFilterLoad_NoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilterSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT band, mode, program, sort_by, exclude_qrt, updated_at")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"band", "mode", "program", "sort_by", "exclude_qrt", "updated_at"}))

	f, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !f.UpdatedAt.IsZero() || f.Band != "" {
		t.Fatalf("expected zero value, got %+v", f)
	}
}

func TestFilterLoad_Row(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilterSQLite(db)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	mock.ExpectQuery("SELECT band, mode").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"band", "mode", "program", "sort_by", "exclude_qrt", "updated_at"}).
			AddRow("20M", "SSB", "K-", "time", true, at))

	f, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := models.FilterCriteria{Band: "20M", Mode: "SSB", Program: "K-", SortBy: "time", ExcludeTerminated: true}
	if f.Band != want.Band || f.Mode != want.Mode || f.Program != want.Program || f.SortBy != want.SortBy || !f.ExcludeTerminated {
		t.Fatalf("Load() = %+v", f)
	}
	if f.UpdatedAt.Location() != time.UTC || !f.UpdatedAt.Equal(at) {
		t.Fatalf("UpdatedAt = %v", f.UpdatedAt)
	}
}

func TestFilterLoad_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilterSQLite(db)

	mock.ExpectQuery("SELECT band, mode").WithArgs(1).WillReturnError(errors.New("boom"))
	if _, err := repo.Load(ctx(t)); err == nil {
		t.Fatal("expected error")
	}
}
