package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"potarig/internal/adif"
	"potarig/internal/band"
	"potarig/internal/logger"
	"potarig/internal/metrics"
	"potarig/internal/models"
	"potarig/internal/repository"

	"github.com/google/uuid"
)

const (
	qsoDateLayout = "20060102"
	timeOnLayout  = "1504"
)

var (
	ErrMissingCall      = errors.New("contact: call sign is required")
	ErrInvalidFrequency = errors.New("contact: frequency must be a number of kHz")
)

// RecordSink receives ADIF records.
type RecordSink interface {
	Append(r adif.Record) error
}

// ContactService logs completed contacts to the ADIF file and the database.
type ContactService struct {
	sink   RecordSink
	repo   repository.ContactRepo
	events repository.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

// NewContactService wires the contact logger. repo and events may be nil.
func NewContactService(sink RecordSink, repo repository.ContactRepo, events repository.EventRepo, log *logger.Logger) *ContactService {
	return &ContactService{sink: sink, repo: repo, events: events, log: log, now: time.Now}
}

// Log records one contact. The ADIF file is written first; the contact is
// only stored when the file write succeeded.
func (s *ContactService) Log(ctx context.Context, in ContactInput) (models.Contact, error) {
	c, err := s.build(in)
	if err != nil {
		return models.Contact{}, err
	}

	if err := s.sink.Append(ToRecord(c)); err != nil {
		s.log.Errorw("adif_write_failed", "call", c.Call, "err", err)
		return models.Contact{}, err
	}
	if s.repo != nil {
		if err := s.repo.Append(ctx, c); err != nil {
			s.log.Errorw("contact_store_failed", "call", c.Call, "err", err)
			return models.Contact{}, err
		}
	}

	metrics.ContactsLogged.WithLabelValues(c.Band).Inc()
	s.log.Infow("contact_logged", "call", c.Call, "band", c.Band, "mode", c.Mode, "reference", c.Reference)

	if s.events != nil {
		err := s.events.Append(ctx, models.StationEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  c.LoggedAt,
			Type:        models.EventContact,
			Description: fmt.Sprintf("Logged %s", c.Call),
			Metadata:    map[string]any{"contact_id": c.ID, "call": c.Call, "band": c.Band, "reference": c.Reference},
		})
		if err != nil {
			s.log.Errorw("event_append_failed", "type", models.EventContact, "err", err)
		}
	}
	return c, nil
}

func (s *ContactService) build(in ContactInput) (models.Contact, error) {
	call := strings.TrimSpace(in.Call)
	if call == "" {
		return models.Contact{}, ErrMissingCall
	}

	now := s.now().UTC()
	c := models.Contact{
		ID:           uuid.NewString(),
		Call:         call,
		FrequencyKHz: strings.TrimSpace(in.FrequencyKHz),
		Mode:         strings.TrimSpace(in.Mode),
		Reference:    strings.TrimSpace(in.Reference),
		ParkName:     strings.TrimSpace(in.ParkName),
		QSODate:      now.Format(qsoDateLayout),
		TimeOn:       now.Format(timeOnLayout),
		LoggedAt:     now,
	}
	c.Comment = strings.TrimSpace(c.Reference + " " + c.ParkName)

	if c.FrequencyKHz != "" {
		kHz, err := strconv.ParseFloat(c.FrequencyKHz, 64)
		if err != nil {
			return models.Contact{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, c.FrequencyKHz)
		}
		c.FrequencyMHz = adif.FormatMHz(kHz / 1000)
		c.Band = strings.ToLower(band.Classify(kHz))
	}
	return c, nil
}

// ToRecord renders a contact as an ADIF record.
func ToRecord(c models.Contact) adif.Record {
	var r adif.Record
	r.Set("CALL", c.Call)
	r.Set("BAND", c.Band)
	r.Set("FREQ", c.FrequencyMHz)
	r.Set("MODE", c.Mode)
	r.Set("QSO_DATE", c.QSODate)
	r.Set("TIME_ON", c.TimeOn)
	r.Set("COMMENT", c.Comment)
	return r
}

// List returns stored contacts matching f, oldest first.
func (s *ContactService) List(ctx context.Context, f ContactFilter) ([]models.Contact, error) {
	if s.repo == nil {
		return []models.Contact{}, nil
	}
	from, to, err := utcRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, f.Band)
}
