// Package rig provides an in-memory transceiver that speaks the same command set as flrig.
package rig

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"potarig/internal/band"
	"potarig/internal/flrig"
)

// Simulation defaults.
const (
	DefaultName  = "Simulator"
	DefaultVFOHz = 14074000
	DefaultMode  = "USB"

	// bandDefaultOffsetKHz is where a band-stack reset lands, above the band's low edge.
	bandDefaultOffsetKHz = 100.0
)

var DefaultModes = []string{"LSB", "USB", "CW", "CW-R", "AM", "FM", "RTTY", "RTTY-R", "DATA-L", "DATA-U"}

var errUnknownMode = errors.New("mode not supported by rig")

// SimulatorConfig seeds a Simulator.
type SimulatorConfig struct {
	Name  string
	VFOHz float64
	Mode  string
	Modes []string
	// BandReset makes a mode change jump the VFO to the band's default
	// frequency, like rigs that recall a band stack register.
	BandReset bool
}

// Simulator is a goroutine-safe fake transceiver.
type Simulator struct {
	mu        sync.Mutex
	name      string
	vfo       float64
	mode      string
	modes     []string
	bandReset bool

	calls    []string
	failures map[string]error
}

// NewSimulator returns a simulator with defaults for every zero field.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.VFOHz == 0 {
		cfg.VFOHz = DefaultVFOHz
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = DefaultModes
	}
	return &Simulator{
		name:      cfg.Name,
		vfo:       cfg.VFOHz,
		mode:      cfg.Mode,
		modes:     slices.Clone(cfg.Modes),
		bandReset: cfg.BandReset,
		failures:  map[string]error{},
	}
}

// Fail makes every later call of command return err. A nil err clears it.
func (s *Simulator) Fail(command string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, command)
		return
	}
	s.failures[command] = err
}

// Calls returns the commands received so far, in order.
func (s *Simulator) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// record logs the command and returns the injected failure, if any. Caller holds mu.
func (s *Simulator) record(ctx context.Context, command string) error {
	s.calls = append(s.calls, command)
	if err := ctx.Err(); err != nil {
		return &flrig.CommandError{Command: command, Kind: flrig.KindTransport, Err: err}
	}
	if err, ok := s.failures[command]; ok {
		var ce *flrig.CommandError
		if errors.As(err, &ce) {
			return err
		}
		return &flrig.CommandError{Command: command, Kind: flrig.KindTransport, Err: err}
	}
	return nil
}

func (s *Simulator) VFO(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.get_vfo"); err != nil {
		return 0, err
	}
	return s.vfo, nil
}

func (s *Simulator) SetVFO(ctx context.Context, hz float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.set_vfo"); err != nil {
		return err
	}
	s.vfo = hz
	return nil
}

func (s *Simulator) Mode(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.get_mode"); err != nil {
		return "", err
	}
	return s.mode, nil
}

func (s *Simulator) SetMode(ctx context.Context, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.set_mode"); err != nil {
		return err
	}
	if !slices.Contains(s.modes, mode) {
		return &flrig.CommandError{
			Command: "rig.set_mode",
			Kind:    flrig.KindFault,
			Err:     fmt.Errorf("%w: %q", errUnknownMode, mode),
		}
	}
	if s.bandReset && mode != s.mode {
		s.vfo = bandDefault(s.vfo)
	}
	s.mode = mode
	return nil
}

func (s *Simulator) Modes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.get_modes"); err != nil {
		return nil, err
	}
	return slices.Clone(s.modes), nil
}

func (s *Simulator) Transceiver(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, "rig.get_xcvr"); err != nil {
		return "", err
	}
	return s.name, nil
}

// bandDefault returns the band-stack frequency for the band containing hz,
// or hz itself outside any amateur band.
func bandDefault(hz float64) float64 {
	kHz := hz / 1000
	for _, r := range band.Standard {
		if r.Contains(kHz) {
			return min(r.LowKHz+bandDefaultOffsetKHz, r.HighKHz) * 1000
		}
	}
	return hz
}
