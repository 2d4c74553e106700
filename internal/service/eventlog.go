package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"potarig/internal/models"
	"potarig/internal/repository"
)

var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// EventLogService reads the station log written by the rig and contact services.
type EventLogService struct {
	repo repository.EventRepo
}

func NewEventLogService(repo repository.EventRepo) *EventLogService {
	return &EventLogService{repo: repo}
}

// utcRange moves both bounds to UTC. A zero bound stays zero and leaves that side open.
func utcRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = from.UTC(), to.UTC()
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}

// List returns the events of f.Type (any type when empty) inside the range, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.StationEvent, error) {
	from, to, err := utcRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, strings.ToUpper(strings.TrimSpace(f.Type)))
}
