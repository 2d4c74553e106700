package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"potarig/internal/logger"
	"potarig/internal/models"
	"potarig/internal/repository"
)

// FilterService owns the operator's spot filter. It is loaded from the
// repository on first use and written back on every update.
type FilterService struct {
	repo repository.FilterRepo
	log  *logger.Logger

	mu      sync.RWMutex
	current models.FilterCriteria
	loaded  bool
}

// NewFilterService returns a filter session. repo may be nil for an in-memory session.
func NewFilterService(repo repository.FilterRepo, log *logger.Logger) *FilterService {
	return &FilterService{repo: repo, log: log, current: models.DefaultFilter()}
}

// Get returns the current filter.
func (s *FilterService) Get(ctx context.Context) models.FilterCriteria {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.current
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return s.current
}

// load reads the saved filter until a read succeeds. Caller holds the write lock.
func (s *FilterService) load(ctx context.Context) {
	if s.loaded {
		return
	}
	if s.repo == nil {
		s.loaded = true
		return
	}
	saved, err := s.repo.Load(ctx)
	if err != nil {
		// Retried on the next call; the default applies meanwhile.
		s.log.Errorw("filter_load_failed", "err", err)
		return
	}
	s.loaded = true
	if !saved.UpdatedAt.IsZero() {
		s.current = saved
	}
}

// Update applies u and returns the new filter. Band, mode and program are
// upper-cased; the sort key is kept as given. A failed save is logged and the
// change still applies to this session.
func (s *FilterService) Update(ctx context.Context, u FilterUpdate) models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	next := s.current
	if u.Band != nil {
		next.Band = strings.ToUpper(*u.Band)
	}
	if u.Mode != nil {
		next.Mode = strings.ToUpper(*u.Mode)
	}
	if u.Program != nil {
		next.Program = strings.ToUpper(*u.Program)
	}
	if u.SortBy != nil {
		next.SortBy = *u.SortBy
	}
	next.ExcludeTerminated = u.ExcludeTerminated
	next.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	s.current = next

	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			s.log.Errorw("filter_save_failed", "err", err)
		}
	}
	s.log.Infow("filter_updated", "band", next.Band, "mode", next.Mode, "program", next.Program,
		"sort_by", next.SortBy, "exclude_terminated", next.ExcludeTerminated)
	return next
}
