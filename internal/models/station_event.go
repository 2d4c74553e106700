package models

import "time"

// Station event types.
const (
	EventTune          = "TUNE"
	EventTuneCorrected = "TUNE_CORRECTED"
	EventRigError      = "RIG_ERROR"
	EventContact       = "CONTACT"
)

// StationEvent is a single entry of the station audit log.
type StationEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // TUNE | TUNE_CORRECTED | RIG_ERROR | CONTACT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
