package handlers

import (
	"context"

	"potarig/internal/models"
	"potarig/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSpots struct {
	latest []models.Spot
	calls  int
}

func (m *mockSpots) FetchAll(context.Context) []models.Spot { return m.latest }
func (m *mockSpots) FetchLatest(context.Context) []models.Spot {
	m.calls++
	return m.latest
}

type mockFilters struct {
	current    models.FilterCriteria
	lastUpdate *service.FilterUpdate
	updates    int
}

func (m *mockFilters) Get(context.Context) models.FilterCriteria { return m.current }
func (m *mockFilters) Update(_ context.Context, u service.FilterUpdate) models.FilterCriteria {
	m.updates++
	m.lastUpdate = &u
	if u.Band != nil {
		m.current.Band = *u.Band
	}
	if u.Mode != nil {
		m.current.Mode = *u.Mode
	}
	if u.Program != nil {
		m.current.Program = *u.Program
	}
	if u.SortBy != nil {
		m.current.SortBy = *u.SortBy
	}
	m.current.ExcludeTerminated = u.ExcludeTerminated
	return m.current
}

type mockRig struct {
	report   service.TuneReport
	state    service.RigState
	lastMode string
	lastFreq string
	tunes    int
}

func (m *mockRig) Tune(_ context.Context, mode, freq string) service.TuneReport {
	m.tunes++
	m.lastMode = mode
	m.lastFreq = freq
	return m.report
}

func (m *mockRig) State(context.Context) service.RigState { return m.state }

type mockContacts struct {
	contact    models.Contact
	logErr     error
	lastInput  service.ContactInput
	logs       int
	list       []models.Contact
	listErr    error
	lastFilter service.ContactFilter
}

func (m *mockContacts) Log(_ context.Context, in service.ContactInput) (models.Contact, error) {
	m.logs++
	m.lastInput = in
	return m.contact, m.logErr
}

func (m *mockContacts) List(_ context.Context, f service.ContactFilter) ([]models.Contact, error) {
	m.lastFilter = f
	return m.list, m.listErr
}

type mockEventLog struct {
	resp       []models.StationEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.StationEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
