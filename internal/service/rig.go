package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"potarig/internal/flrig"
	"potarig/internal/logger"
	"potarig/internal/metrics"
	"potarig/internal/models"
	"potarig/internal/repository"

	"github.com/google/uuid"
)

// phoneSplitHz is where phone operation switches from lower to upper sideband.
const phoneSplitHz = 9_000_000

// Canonical mode names understood by Tune.
const (
	ModePhone = "PHONE"
	ModeSSB   = "SSB"
	ModeLSB   = "LSB"
	ModeUSB   = "USB"
)

// Transceiver is the command set of a rig controller.
type Transceiver interface {
	VFO(ctx context.Context) (float64, error)
	SetVFO(ctx context.Context, hz float64) error
	Mode(ctx context.Context) (string, error)
	SetMode(ctx context.Context, mode string) error
	Modes(ctx context.Context) ([]string, error)
	Transceiver(ctx context.Context) (string, error)
}

// ModeAliases maps a canonical mode name to the string the rig expects.
type ModeAliases map[string]string

// NewModeAliases upper-cases both sides of the configured table.
func NewModeAliases(table map[string]string) ModeAliases {
	m := make(ModeAliases, len(table))
	for k, v := range table {
		m[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	return m
}

// Resolve returns the rig's name for mode, or mode itself when there is no alias.
func (m ModeAliases) Resolve(mode string) string {
	if alias, ok := m[mode]; ok {
		return alias
	}
	return mode
}

// CommandResult records the outcome of one rig command.
type CommandResult struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TuneReport describes what a Tune call asked for and what the rig ended up on.
type TuneReport struct {
	RequestedMode string          `json:"requested_mode"`
	DeviceMode    string          `json:"device_mode,omitempty"`
	FrequencyHz   float64         `json:"frequency_hz,omitempty"`
	Corrected     bool            `json:"corrected"`
	Mode          string          `json:"mode,omitempty"`
	VFOHz         float64         `json:"vfo_hz,omitempty"`
	Commands      []CommandResult `json:"commands"`
}

// Failed reports whether any command in the report failed.
func (r TuneReport) Failed() bool {
	for _, c := range r.Commands {
		if !c.OK {
			return true
		}
	}
	return false
}

// RigState is a snapshot of the transceiver as reported by the rig controller.
type RigState struct {
	Transceiver string          `json:"transceiver"`
	Mode        string          `json:"mode"`
	VFOHz       float64         `json:"vfo_hz"`
	Modes       []string        `json:"modes"`
	Errors      []CommandResult `json:"errors,omitempty"`
}

// RigService keeps the transceiver on the operator's selection.
type RigService struct {
	rig     Transceiver
	aliases ModeAliases
	events  repository.EventRepo
	log     *logger.Logger

	mu sync.Mutex // one Tune or State at a time per rig
}

// NewRigService returns a synchronizer for rig. events may be nil.
func NewRigService(rig Transceiver, aliases ModeAliases, events repository.EventRepo, log *logger.Logger) *RigService {
	return &RigService{rig: rig, aliases: aliases, events: events, log: log}
}

// Tune sets the rig to frequencyKHz and mode. Command failures are logged and
// reported, never returned: a failed command does not stop the ones after it.
func (s *RigService) Tune(ctx context.Context, mode, frequencyKHz string) TuneReport {
	report := TuneReport{RequestedMode: mode}

	hz := s.parseFrequency(frequencyKHz)
	report.FrequencyHz = hz
	report.DeviceMode = s.DeviceMode(mode, hz)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Frequency first: a band change may reset the mode.
	if hz > 0 {
		s.record(&report, "rig.set_vfo", s.rig.SetVFO(ctx, hz))
	}
	if report.DeviceMode != "" {
		s.record(&report, "rig.set_mode", s.rig.SetMode(ctx, report.DeviceMode))
	}

	// Some rigs recall a band stack on mode change. Put the frequency back once.
	vfo, err := s.rig.VFO(ctx)
	s.record(&report, "rig.get_vfo", err)
	if err == nil && hz > 0 && vfo != hz {
		s.log.Infow("rig_frequency_corrected", "requested_hz", hz, "reported_hz", vfo)
		metrics.RigCorrections.Inc()
		report.Corrected = true
		s.record(&report, "rig.set_vfo", s.rig.SetVFO(ctx, hz))
	}

	report.Mode, err = s.rig.Mode(ctx)
	s.record(&report, "rig.get_mode", err)
	report.VFOHz, err = s.rig.VFO(ctx)
	s.record(&report, "rig.get_vfo", err)

	s.log.Infow("rig_tuned", "mode", report.Mode, "vfo_hz", report.VFOHz,
		"requested_mode", mode, "requested_khz", frequencyKHz)
	s.appendTuneEvents(ctx, report)
	return report
}

// DeviceMode returns the rig mode string Tune would send for mode at hz.
// PHONE and SSB pick a sideband by frequency; no frequency counts as below the split.
func (s *RigService) DeviceMode(mode string, hz float64) string {
	mode = strings.ToUpper(strings.TrimSpace(mode))
	if mode == ModePhone || mode == ModeSSB {
		if hz < phoneSplitHz {
			mode = ModeLSB
		} else {
			mode = ModeUSB
		}
	}
	return s.aliases.Resolve(mode)
}

// parseFrequency converts kHz text to Hz. Empty or unparsable input means no change.
func (s *RigService) parseFrequency(kHz string) float64 {
	kHz = strings.TrimSpace(kHz)
	if kHz == "" {
		return 0
	}
	f, err := strconv.ParseFloat(kHz, 64)
	if err != nil || f < 0 {
		s.log.Warnw("tune_frequency_invalid", "frequency_khz", kHz, "err", err)
		return 0
	}
	return f * 1000
}

// State queries the rig for its name, mode, VFO and supported modes.
func (s *RigService) State(ctx context.Context) RigState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		st  RigState
		err error
		rep TuneReport
	)
	st.Transceiver, err = s.rig.Transceiver(ctx)
	s.record(&rep, "rig.get_xcvr", err)
	st.Mode, err = s.rig.Mode(ctx)
	s.record(&rep, "rig.get_mode", err)
	st.VFOHz, err = s.rig.VFO(ctx)
	s.record(&rep, "rig.get_vfo", err)
	st.Modes, err = s.rig.Modes(ctx)
	s.record(&rep, "rig.get_modes", err)

	for _, c := range rep.Commands {
		if !c.OK {
			st.Errors = append(st.Errors, c)
		}
	}
	return st
}

// record appends the outcome of a command to the report, counting and logging failures.
func (s *RigService) record(r *TuneReport, command string, err error) {
	if err == nil {
		metrics.RigCommands.WithLabelValues(command, metrics.ResultOK).Inc()
		r.Commands = append(r.Commands, CommandResult{Command: command, OK: true})
		return
	}

	kind := string(flrig.KindOf(err))
	if kind == "" {
		kind = metrics.ResultError
	}
	metrics.RigCommands.WithLabelValues(command, kind).Inc()
	s.log.Errorw("rig_command_failed", "command", command, "kind", kind, "err", err)
	r.Commands = append(r.Commands, CommandResult{Command: command, Kind: kind, Error: err.Error()})
}

func (s *RigService) appendTuneEvents(ctx context.Context, r TuneReport) {
	if s.events == nil {
		return
	}
	now := time.Now().UTC()

	typ := models.EventTune
	if r.Corrected {
		typ = models.EventTuneCorrected
	}
	s.appendEvent(ctx, models.StationEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        typ,
		Description: fmt.Sprintf("Tuned to %s %.0f Hz", r.Mode, r.VFOHz),
		Metadata: map[string]any{
			"requested_mode": r.RequestedMode,
			"device_mode":    r.DeviceMode,
			"frequency_hz":   r.FrequencyHz,
			"vfo_hz":         r.VFOHz,
			"mode":           r.Mode,
		},
	})

	for _, c := range r.Commands {
		if c.OK {
			continue
		}
		s.appendEvent(ctx, models.StationEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        models.EventRigError,
			Description: fmt.Sprintf("%s failed", c.Command),
			Metadata:    map[string]any{"command": c.Command, "kind": c.Kind, "error": c.Error},
		})
	}
}

func (s *RigService) appendEvent(ctx context.Context, e models.StationEvent) {
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Errorw("event_append_failed", "type", e.Type, "err", err)
	}
}
