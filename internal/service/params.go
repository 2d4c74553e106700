package service

import "time"

// LogFilter selects station events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", TUNE, TUNE_CORRECTED, RIG_ERROR, CONTACT
}

// ContactFilter selects logged contacts by time range and band.
type ContactFilter struct {
	From time.Time
	To   time.Time
	Band string // band name in any case; "" for all bands
}

// FilterUpdate carries a change to the spot filter. Nil fields are left as they are.
// ExcludeTerminated is always applied: absent means false.
type FilterUpdate struct {
	Band              *string `json:"band"`
	Mode              *string `json:"mode"`
	Program           *string `json:"program"`
	SortBy            *string `json:"sort_by"`
	ExcludeTerminated bool    `json:"exclude_terminated"`
}

// ContactInput is a contact as submitted by the operator.
type ContactInput struct {
	Call         string `json:"call"`
	FrequencyKHz string `json:"freq"`
	Mode         string `json:"mode"`
	Reference    string `json:"ref"`
	ParkName     string `json:"name"`
}
