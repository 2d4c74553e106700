package service

import (
	"context"
	"sync"
	"time"

	"potarig/internal/adif"
	"potarig/internal/models"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	gotFrom time.Time
	gotTo   time.Time
	gotType string

	appended  []models.StationEvent
	events    []models.StationEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.StationEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.StationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

type fakeFilterRepo struct {
	saved   models.FilterCriteria
	saves   int
	loads   int
	loadErr error
	saveErr error
}

func (f *fakeFilterRepo) Save(_ context.Context, c models.FilterCriteria) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = c
	return nil
}

func (f *fakeFilterRepo) Load(context.Context) (models.FilterCriteria, error) {
	f.loads++
	return f.saved, f.loadErr
}

type fakeContactRepo struct {
	appended []models.Contact
	list     []models.Contact
	err      error

	gotFrom, gotTo time.Time
	gotBand        string
	calls          int
}

func (f *fakeContactRepo) Append(_ context.Context, c models.Contact) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, c)
	return nil
}

func (f *fakeContactRepo) List(_ context.Context, from, to time.Time, band string) ([]models.Contact, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotBand = from, to, band
	return f.list, f.err
}

type fakeSink struct {
	records []adif.Record
	err     error
}

func (f *fakeSink) Append(r adif.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

type fakeSource struct {
	spots []models.Spot
	err   error
}

func (f *fakeSource) Spots(context.Context) ([]models.Spot, error) {
	return f.spots, f.err
}
