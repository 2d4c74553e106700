package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"potarig/internal/logger"
	"potarig/internal/models"
	"potarig/internal/repository"
)

func newContactService(sink RecordSink, repo repository.ContactRepo, events repository.EventRepo) *ContactService {
	svc := NewContactService(sink, repo, events, logger.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 23, 59, 30, 0, time.FixedZone("EDT", -4*3600)) }
	return svc
}

func TestContactService_Log(t *testing.T) {
	t.Parallel()
	sink, repo, events := &fakeSink{}, &fakeContactRepo{}, &fakeEventRepo{}
	svc := newContactService(sink, repo, events)

	c, err := svc.Log(context.Background(), ContactInput{
		Call: " K1ABC ", FrequencyKHz: "7200", Mode: "SSB", Reference: "US-0001", ParkName: "Acadia National Park",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	// 23:59 EDT is 03:59 UTC the next day.
	if c.QSODate != "20250602" || c.TimeOn != "0359" {
		t.Errorf("date/time = %s %s", c.QSODate, c.TimeOn)
	}
	if c.Call != "K1ABC" || c.Band != "40m" || c.FrequencyMHz != "7.2" {
		t.Errorf("contact = %+v", c)
	}
	if c.Comment != "US-0001 Acadia National Park" {
		t.Errorf("comment = %q", c.Comment)
	}
	if c.ID == "" || c.LoggedAt.Location() != time.UTC {
		t.Errorf("id/logged_at = %q %v", c.ID, c.LoggedAt)
	}

	if len(sink.records) != 1 {
		t.Fatalf("records = %d", len(sink.records))
	}
	want := "<CALL:5>K1ABC <BAND:3>40m <FREQ:3>7.2 <MODE:3>SSB <QSO_DATE:8>20250602 <TIME_ON:4>0359 <COMMENT:28>US-0001 Acadia National Park <EOR>"
	if got := sink.records[0].String(); got != want {
		t.Errorf("record = %q\nwant     %q", got, want)
	}
	if len(repo.appended) != 1 || repo.appended[0].ID != c.ID {
		t.Errorf("stored = %+v", repo.appended)
	}
	if got := events.types(); len(got) != 1 || got[0] != models.EventContact {
		t.Errorf("events = %v", got)
	}
}

func TestContactService_Log_NoFrequency(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	svc := newContactService(sink, &fakeContactRepo{}, nil)

	c, err := svc.Log(context.Background(), ContactInput{Call: "W1AW", Mode: "CW"})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if c.Band != "" || c.FrequencyMHz != "" || c.Comment != "" {
		t.Errorf("contact = %+v", c)
	}
	if _, ok := sink.records[0].Get("BAND"); !ok {
		t.Error("BAND field should be present in the record even when empty")
	}
	if got := sink.records[0].String(); got != "<CALL:4>W1AW <MODE:2>CW <QSO_DATE:8>20250602 <TIME_ON:4>0359 <EOR>" {
		t.Errorf("record = %q", got)
	}
}

func TestContactService_Log_OutOfBandFrequency(t *testing.T) {
	t.Parallel()
	svc := newContactService(&fakeSink{}, nil, nil)
	c, err := svc.Log(context.Background(), ContactInput{Call: "W1AW", FrequencyKHz: "6000"})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if c.Band != "" || c.FrequencyMHz != "6" {
		t.Errorf("contact = %+v", c)
	}
}

func TestContactService_Log_Validation(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	svc := newContactService(sink, &fakeContactRepo{}, nil)

	if _, err := svc.Log(context.Background(), ContactInput{Call: "  "}); !errors.Is(err, ErrMissingCall) {
		t.Errorf("err = %v; want ErrMissingCall", err)
	}
	if _, err := svc.Log(context.Background(), ContactInput{Call: "K1ABC", FrequencyKHz: "7.2MHz"}); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("err = %v; want ErrInvalidFrequency", err)
	}
	if len(sink.records) != 0 {
		t.Errorf("invalid contacts reached the log: %v", sink.records)
	}
}

func TestContactService_Log_SinkErrorSkipsStore(t *testing.T) {
	t.Parallel()
	boom := errors.New("read-only file system")
	repo := &fakeContactRepo{}
	svc := newContactService(&fakeSink{err: boom}, repo, nil)

	if _, err := svc.Log(context.Background(), ContactInput{Call: "K1ABC"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.appended) != 0 {
		t.Fatal("contact stored despite ADIF failure")
	}
}

func TestContactService_Log_StoreError(t *testing.T) {
	t.Parallel()
	boom := errors.New("db down")
	svc := newContactService(&fakeSink{}, &fakeContactRepo{err: boom}, nil)
	if _, err := svc.Log(context.Background(), ContactInput{Call: "K1ABC"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestContactService_List(t *testing.T) {
	t.Parallel()
	repo := &fakeContactRepo{list: []models.Contact{{Call: "K1ABC"}}}
	svc := newContactService(&fakeSink{}, repo, nil)

	from := time.Date(2025, 6, 1, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	got, err := svc.List(context.Background(), ContactFilter{From: from, Band: "40M"})
	if err != nil || len(got) != 1 {
		t.Fatalf("List() = %v, %v", got, err)
	}
	if !repo.gotFrom.Equal(from) || repo.gotFrom.Location() != time.UTC || repo.gotBand != "40M" {
		t.Fatalf("repo got from=%v band=%q", repo.gotFrom, repo.gotBand)
	}

	_, err = svc.List(context.Background(), ContactFilter{From: from, To: from.Add(-time.Hour)})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("err = %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("repo called %d times", repo.calls)
	}
}

func TestContactService_ListWithoutRepo(t *testing.T) {
	t.Parallel()
	svc := NewContactService(&fakeSink{}, nil, nil, logger.Nop())
	got, err := svc.List(context.Background(), ContactFilter{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("List() = %#v, %v", got, err)
	}
}
