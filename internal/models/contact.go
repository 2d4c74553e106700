package models

import "time"

// Contact is a completed QSO as written to the ADIF log.
type Contact struct {
	ID           string    `json:"id"`
	Call         string    `json:"call"`
	FrequencyKHz string    `json:"frequency_khz,omitempty"`
	FrequencyMHz string    `json:"frequency_mhz,omitempty"`
	Band         string    `json:"band,omitempty"`
	Mode         string    `json:"mode"`
	Reference    string    `json:"reference,omitempty"`
	ParkName     string    `json:"park_name,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	QSODate      string    `json:"qso_date"` // YYYYMMDD, UTC
	TimeOn       string    `json:"time_on"`  // HHMM, UTC
	LoggedAt     time.Time `json:"logged_at"`
}
