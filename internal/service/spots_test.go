package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"potarig/internal/logger"
	"potarig/internal/models"
	"potarig/internal/pota"
)

func spot(activator, ref string, t int64) models.Spot {
	return models.Spot{Activator: activator, Reference: ref, SpotTime: t}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []models.Spot
		want []models.Spot
	}{
		{name: "empty", in: nil, want: []models.Spot{}},
		{name: "single", in: []models.Spot{spot("K1", "US-1", 100)}, want: []models.Spot{spot("K1", "US-1", 100)}},
		{
			name: "adjacent run keeps newest",
			in:   []models.Spot{spot("K1", "US-1", 100), spot("K1", "US-1", 200), spot("K2", "US-2", 50)},
			want: []models.Spot{spot("K1", "US-1", 200), spot("K2", "US-2", 50)},
		},
		{
			name: "newest first in run",
			in:   []models.Spot{spot("K1", "US-1", 300), spot("K1", "US-1", 200)},
			want: []models.Spot{spot("K1", "US-1", 300)},
		},
		{
			name: "same activator different park",
			in:   []models.Spot{spot("K1", "US-1", 100), spot("K1", "US-2", 90)},
			want: []models.Spot{spot("K1", "US-1", 100), spot("K1", "US-2", 90)},
		},
		{
			name: "non-adjacent duplicates are kept",
			in:   []models.Spot{spot("K1", "US-1", 100), spot("K2", "US-2", 50), spot("K1", "US-1", 200)},
			want: []models.Spot{spot("K1", "US-1", 100), spot("K2", "US-2", 50), spot("K1", "US-1", 200)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Latest(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Latest() = %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestLatest_TieKeepsFirst(t *testing.T) {
	t.Parallel()
	first := spot("K1", "US-1", 100)
	first.SpotID = 1
	second := spot("K1", "US-1", 100)
	second.SpotID = 2

	got := Latest([]models.Spot{first, second})
	if len(got) != 1 || got[0].SpotID != 1 {
		t.Fatalf("Latest() = %+v; want first record", got)
	}
}

func TestSpotService_FetchLatest(t *testing.T) {
	t.Parallel()
	src := &fakeSource{spots: []models.Spot{spot("K1", "US-1", 100), spot("K1", "US-1", 200), spot("K2", "US-2", 50)}}
	svc := NewSpotService(src, logger.Nop())

	got := svc.FetchLatest(context.Background())
	want := []models.Spot{spot("K1", "US-1", 200), spot("K2", "US-2", 50)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FetchLatest() = %+v; want %+v", got, want)
	}
}

func TestSpotService_FetchErrorsYieldEmpty(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		fmt.Errorf("%w: connection refused", pota.ErrTransport),
		fmt.Errorf("%w: bad json", pota.ErrDecode),
		errors.New("other"),
	} {
		svc := NewSpotService(&fakeSource{err: err}, logger.Nop())
		all := svc.FetchAll(context.Background())
		if all == nil || len(all) != 0 {
			t.Errorf("FetchAll() with %v = %#v; want empty non-nil", err, all)
		}
		if latest := svc.FetchLatest(context.Background()); len(latest) != 0 {
			t.Errorf("FetchLatest() with %v = %#v", err, latest)
		}
	}
}

func filterFixture() []models.Spot {
	return []models.Spot{
		{Activator: "AA1A", Reference: "US-0001", Frequency: "14250", FrequencyKHz: 14250, Mode: "SSB", SpotTime: 300, LocationDesc: "US-ME", Comments: "qrt thanks"},
		{Activator: "BB2B", Reference: "VE-0002", Frequency: "7032", FrequencyKHz: 7032, Mode: "CW", SpotTime: 100, LocationDesc: "CA-ON", Comments: ""},
		{Activator: "CC3C", Reference: "US-0003", Frequency: "7200", FrequencyKHz: 7200, Mode: "SSB", SpotTime: 200, LocationDesc: "US-CA", Comments: "loud"},
		{Activator: "DD4D", Reference: "K", Frequency: "6000", FrequencyKHz: 6000, Mode: "", SpotTime: 50, LocationDesc: "AA-AA", Comments: "QRT"},
	}
}

func activators(spots []models.Spot) []string {
	out := make([]string, 0, len(spots))
	for _, s := range spots {
		out = append(out, s.Activator)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	all := models.DefaultFilter()
	with := func(f func(*models.FilterCriteria)) models.FilterCriteria {
		c := all
		f(&c)
		return c
	}

	tests := []struct {
		name string
		c    models.FilterCriteria
		want []string
	}{
		{name: "all", c: all, want: []string{"AA1A", "BB2B", "CC3C", "DD4D"}},
		{name: "band 40M", c: with(func(c *models.FilterCriteria) { c.Band = "40M" }), want: []string{"BB2B", "CC3C"}},
		{name: "out of band spot never matches a band", c: with(func(c *models.FilterCriteria) { c.Band = "" }), want: []string{"DD4D"}},
		{name: "mode", c: with(func(c *models.FilterCriteria) { c.Mode = "SSB" }), want: []string{"AA1A", "CC3C"}},
		{name: "program", c: with(func(c *models.FilterCriteria) { c.Program = "US" }), want: []string{"AA1A", "CC3C"}},
		{name: "short reference program", c: with(func(c *models.FilterCriteria) { c.Program = "K" }), want: []string{"DD4D"}},
		{name: "exclude terminated", c: with(func(c *models.FilterCriteria) { c.ExcludeTerminated = true }), want: []string{"BB2B", "CC3C"}},
		{name: "combined", c: with(func(c *models.FilterCriteria) { c.Band = "40M"; c.Mode = "SSB"; c.Program = "US" }), want: []string{"CC3C"}},
		{name: "sort frequency", c: with(func(c *models.FilterCriteria) { c.SortBy = SortFrequency }), want: []string{"DD4D", "BB2B", "CC3C", "AA1A"}},
		{name: "sort location", c: with(func(c *models.FilterCriteria) { c.SortBy = SortLocation }), want: []string{"DD4D", "BB2B", "CC3C", "AA1A"}},
		{name: "sort time descending", c: with(func(c *models.FilterCriteria) { c.SortBy = SortTime }), want: []string{"AA1A", "CC3C", "BB2B", "DD4D"}},
		{name: "sort raw field", c: with(func(c *models.FilterCriteria) { c.SortBy = "reference" }), want: []string{"DD4D", "AA1A", "CC3C", "BB2B"}},
		{name: "sort raw numeric field", c: with(func(c *models.FilterCriteria) { c.SortBy = "spotTime" }), want: []string{"DD4D", "BB2B", "CC3C", "AA1A"}},
		{name: "sort raw string field", c: with(func(c *models.FilterCriteria) { c.SortBy = "mode" }), want: []string{"DD4D", "BB2B", "AA1A", "CC3C"}},
		{name: "unknown sort key keeps order", c: with(func(c *models.FilterCriteria) { c.SortBy = "bogus" }), want: []string{"AA1A", "BB2B", "CC3C", "DD4D"}},
		{name: "empty sort key keeps order", c: with(func(c *models.FilterCriteria) { c.SortBy = "" }), want: []string{"AA1A", "BB2B", "CC3C", "DD4D"}},
		{name: "no match", c: with(func(c *models.FilterCriteria) { c.Band = "2M" }), want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := activators(Filter(filterFixture(), tc.c))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Filter() = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_DoesNotMutateInputAndIsIdempotent(t *testing.T) {
	t.Parallel()
	in := filterFixture()
	before := activators(in)
	c := models.DefaultFilter()
	c.SortBy = SortTime

	first := Filter(in, c)
	second := Filter(in, c)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Filter not idempotent: %v vs %v", activators(first), activators(second))
	}
	if !reflect.DeepEqual(activators(in), before) {
		t.Fatalf("input reordered: %v", activators(in))
	}
	again := Filter(first, c)
	if !reflect.DeepEqual(again, first) {
		t.Fatalf("Filter(Filter(x)) != Filter(x)")
	}
}

func TestFilter_StableOnEqualKeys(t *testing.T) {
	t.Parallel()
	in := []models.Spot{
		{Activator: "A", FrequencyKHz: 7000},
		{Activator: "B", FrequencyKHz: 7000},
		{Activator: "C", FrequencyKHz: 3500},
	}
	c := models.DefaultFilter()
	c.SortBy = SortFrequency
	got := activators(Filter(in, c))
	if !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFacets(t *testing.T) {
	t.Parallel()
	bands, modes, programs := Facets(filterFixture())

	if !reflect.DeepEqual(bands, []string{"20M", "40M"}) {
		t.Errorf("bands = %v", bands)
	}
	if !reflect.DeepEqual(modes, []string{"CW", "SSB"}) {
		t.Errorf("modes = %v", modes)
	}
	if !reflect.DeepEqual(programs, []string{"K", "US", "VE"}) {
		t.Errorf("programs = %v", programs)
	}

	// An empty reference still contributes its (empty) program.
	_, _, programs = Facets([]models.Spot{{Reference: ""}})
	if !reflect.DeepEqual(programs, []string{""}) {
		t.Errorf("programs for empty reference = %q", programs)
	}

	b, m, p := Facets(nil)
	if len(b) != 0 || len(m) != 0 || len(p) != 0 {
		t.Errorf("Facets(nil) = %v %v %v", b, m, p)
	}
}
