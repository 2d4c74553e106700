package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"potarig/internal/models"

	"github.com/google/uuid"
)

type ContactSQLite struct {
	db *sql.DB
}

func NewContactSQLite(db *sql.DB) *ContactSQLite { return &ContactSQLite{db: db} }

const (
	insertContactSQL = `
		INSERT INTO contacts (id, logged_at, call, freq_khz, freq_mhz, band, mode, reference, park_name, comment, qso_date, time_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectContactsSQL = `SELECT id, logged_at, call, freq_khz, freq_mhz, band, mode, reference, park_name, comment, qso_date, time_on FROM contacts`
)

// Append stores one contact. ID and LoggedAt are filled in when empty.
func (r *ContactSQLite) Append(ctx context.Context, c models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.LoggedAt.IsZero() {
		c.LoggedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertContactSQL,
		c.ID,
		c.LoggedAt.UTC().Format(sqliteTimeLayout),
		c.Call,
		c.FrequencyKHz,
		c.FrequencyMHz,
		c.Band,
		c.Mode,
		c.Reference,
		c.ParkName,
		c.Comment,
		c.QSODate,
		c.TimeOn,
	)
	return err
}

// List returns contacts logged within [from, to] on band, oldest first.
// Zero times and an empty band do not filter.
func (r *ContactSQLite) List(ctx context.Context, from, to time.Time, band string) ([]models.Contact, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "logged_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "logged_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if band = strings.ToLower(strings.TrimSpace(band)); band != "" {
		conds = append(conds, "band = ?")
		args = append(args, band)
	}

	q := selectContactsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY logged_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(
			&c.ID, &c.LoggedAt, &c.Call, &c.FrequencyKHz, &c.FrequencyMHz, &c.Band,
			&c.Mode, &c.Reference, &c.ParkName, &c.Comment, &c.QSODate, &c.TimeOn,
		); err != nil {
			return nil, err
		}
		c.LoggedAt = c.LoggedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
