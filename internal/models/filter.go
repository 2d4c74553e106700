package models

import "time"

// FilterAll disables a single FilterCriteria test.
const FilterAll = "ALL"

// FilterCriteria selects and orders spots for display.
type FilterCriteria struct {
	Band              string    `json:"band"`    // band name or ALL
	Mode              string    `json:"mode"`    // mode name or ALL
	Program           string    `json:"program"` // 2-letter prefix or ALL
	SortBy            string    `json:"sort_by"` // frequency | location | time | <field>
	ExcludeTerminated bool      `json:"exclude_terminated"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// DefaultFilter shows every spot ordered by activator.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		Band:    FilterAll,
		Mode:    FilterAll,
		Program: FilterAll,
		SortBy:  "activator",
	}
}
