package service

import (
	"context"

	"potarig/internal/logger"
	"potarig/internal/models"
	"potarig/internal/repository"
)

// Spots is the spot aggregator.
type Spots interface {
	FetchAll(ctx context.Context) []models.Spot
	FetchLatest(ctx context.Context) []models.Spot
}

// Filters holds the operator's spot filter session.
type Filters interface {
	Get(ctx context.Context) models.FilterCriteria
	Update(ctx context.Context, u FilterUpdate) models.FilterCriteria
}

// Rig is the transceiver synchronizer.
type Rig interface {
	Tune(ctx context.Context, mode, frequencyKHz string) TuneReport
	State(ctx context.Context) RigState
}

// Contacts logs completed contacts.
type Contacts interface {
	Log(ctx context.Context, in ContactInput) (models.Contact, error)
	List(ctx context.Context, f ContactFilter) ([]models.Contact, error)
}

// EventLog exposes the append-only station log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StationEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Spots
	Filters
	Rig
	Contacts
	EventLog
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Repos       *repository.Repository
	Source      SpotSource
	Transceiver Transceiver
	ModeAliases ModeAliases
	ADIF        RecordSink
	Log         *logger.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		Spots:    NewSpotService(d.Source, d.Log),
		Filters:  NewFilterService(d.Repos.FilterRepo, d.Log),
		Rig:      NewRigService(d.Transceiver, d.ModeAliases, d.Repos.EventRepo, d.Log),
		Contacts: NewContactService(d.ADIF, d.Repos.ContactRepo, d.Repos.EventRepo, d.Log),
		EventLog: NewEventLogService(d.Repos.EventRepo),
	}
}
