package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"potarig/internal/band"
	"potarig/internal/logger"
	"potarig/internal/metrics"
	"potarig/internal/models"
	"potarig/internal/pota"
)

// terminatedMarker in a spot comment means the activator has gone off the air.
const terminatedMarker = "QRT"

// Sort keys with special handling. Any other key sorts on the spot field of that name.
const (
	SortFrequency = "frequency"
	SortLocation  = "location"
	SortTime      = "time"
)

// SpotSource returns the raw spot feed.
type SpotSource interface {
	Spots(ctx context.Context) ([]models.Spot, error)
}

// SpotService is the spot aggregator.
type SpotService struct {
	source SpotSource
	log    *logger.Logger
}

func NewSpotService(source SpotSource, log *logger.Logger) *SpotService {
	return &SpotService{source: source, log: log}
}

// FetchAll returns every spot currently published, sorted by activator.
// Fetch failures are logged and yield an empty list.
func (s *SpotService) FetchAll(ctx context.Context) []models.Spot {
	spots, err := s.source.Spots(ctx)
	if err != nil {
		result := metrics.ResultError
		switch {
		case errors.Is(err, pota.ErrTransport):
			result = metrics.ResultTransportError
		case errors.Is(err, pota.ErrDecode):
			result = metrics.ResultDecodeError
		}
		metrics.SpotFetches.WithLabelValues(result).Inc()
		s.log.Errorw("spots_fetch_failed", "result", result, "err", err)
		return []models.Spot{}
	}
	metrics.SpotFetches.WithLabelValues(metrics.ResultOK).Inc()
	s.log.Debugw("spots_fetched", "count", len(spots))
	return spots
}

// FetchLatest returns one spot per activation: the most recent report.
func (s *SpotService) FetchLatest(ctx context.Context) []models.Spot {
	latest := Latest(s.FetchAll(ctx))
	metrics.SpotsLatest.Set(float64(len(latest)))
	return latest
}

// Latest collapses each run of adjacent spots sharing activator and reference
// into the spot with the greatest SpotTime. On equal times the earlier record wins.
func Latest(spots []models.Spot) []models.Spot {
	out := make([]models.Spot, 0, len(spots))
	if len(spots) == 0 {
		return out
	}

	current := spots[0]
	for _, next := range spots[1:] {
		if next.Activator == current.Activator && next.Reference == current.Reference {
			if next.SpotTime > current.SpotTime {
				current = next
			}
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

// Filter returns the spots matching c, ordered by c.SortBy. spots is not modified.
func Filter(spots []models.Spot, c models.FilterCriteria) []models.Spot {
	out := make([]models.Spot, 0, len(spots))
	for _, sp := range spots {
		if matches(sp, c) {
			out = append(out, sp)
		}
	}
	sortSpots(out, c.SortBy)
	return out
}

func matches(sp models.Spot, c models.FilterCriteria) bool {
	if c.Band != models.FilterAll && band.Classify(sp.FrequencyKHz) != c.Band {
		return false
	}
	if c.Mode != models.FilterAll && sp.Mode != c.Mode {
		return false
	}
	if c.Program != models.FilterAll && sp.Program() != c.Program {
		return false
	}
	if c.ExcludeTerminated && strings.Contains(strings.ToUpper(sp.Comments), terminatedMarker) {
		return false
	}
	return true
}

// sortSpots stable-sorts spots in place. Empty and unknown keys leave the order unchanged.
func sortSpots(spots []models.Spot, key string) {
	switch key {
	case "":
		return
	case SortFrequency:
		slices.SortStableFunc(spots, func(a, b models.Spot) int {
			return cmp.Compare(a.FrequencyKHz, b.FrequencyKHz)
		})
	case SortLocation:
		slices.SortStableFunc(spots, func(a, b models.Spot) int {
			return cmp.Compare(a.LocationDesc, b.LocationDesc)
		})
	case SortTime:
		slices.SortStableFunc(spots, func(a, b models.Spot) int {
			return cmp.Compare(b.SpotTime, a.SpotTime)
		})
	default:
		field, ok := spotFields[key]
		if !ok {
			return
		}
		slices.SortStableFunc(spots, field)
	}
}

// spotFields compares spots on a single wire field, keyed by its JSON name.
var spotFields = map[string]func(a, b models.Spot) int{
	"spotId":        func(a, b models.Spot) int { return cmp.Compare(a.SpotID, b.SpotID) },
	"activator":     func(a, b models.Spot) int { return cmp.Compare(a.Activator, b.Activator) },
	"reference":     func(a, b models.Spot) int { return cmp.Compare(a.Reference, b.Reference) },
	"mode":          func(a, b models.Spot) int { return cmp.Compare(a.Mode, b.Mode) },
	"spotTime":      func(a, b models.Spot) int { return cmp.Compare(a.SpotTime, b.SpotTime) },
	"spotTimeShort": func(a, b models.Spot) int { return cmp.Compare(a.SpotTimeShort, b.SpotTimeShort) },
	"spotter":       func(a, b models.Spot) int { return cmp.Compare(a.Spotter, b.Spotter) },
	"comments":      func(a, b models.Spot) int { return cmp.Compare(a.Comments, b.Comments) },
	"source":        func(a, b models.Spot) int { return cmp.Compare(a.Source, b.Source) },
	"name":          func(a, b models.Spot) int { return cmp.Compare(a.Name, b.Name) },
	"locationDesc":  func(a, b models.Spot) int { return cmp.Compare(a.LocationDesc, b.LocationDesc) },
	"grid4":         func(a, b models.Spot) int { return cmp.Compare(a.Grid4, b.Grid4) },
	"grid6":         func(a, b models.Spot) int { return cmp.Compare(a.Grid6, b.Grid6) },
	"latitude":      func(a, b models.Spot) int { return cmp.Compare(a.Latitude, b.Latitude) },
	"longitude":     func(a, b models.Spot) int { return cmp.Compare(a.Longitude, b.Longitude) },
	"count":         func(a, b models.Spot) int { return cmp.Compare(a.Count, b.Count) },
	"expire":        func(a, b models.Spot) int { return cmp.Compare(a.Expire, b.Expire) },
}

// Facets lists the distinct bands, modes and programs present in spots, each
// sorted ascending. Spots outside every band and spots without a mode add
// nothing to their list; programs are always recorded, even when empty.
func Facets(spots []models.Spot) (bands, modes, programs []string) {
	bandSet := map[string]struct{}{}
	modeSet := map[string]struct{}{}
	programSet := map[string]struct{}{}

	for _, sp := range spots {
		if b := band.Classify(sp.FrequencyKHz); b != "" {
			bandSet[b] = struct{}{}
		}
		if sp.Mode != "" {
			modeSet[sp.Mode] = struct{}{}
		}
		programSet[sp.Program()] = struct{}{}
	}
	return sortedKeys(bandSet), sortedKeys(modeSet), sortedKeys(programSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
