package models

import "time"

// StatsAggregate is the singleton running tally of live documents per
// status. It is only ever patched inside the same transaction as the
// status write it mirrors, so the sum of the three counts always equals
// the number of live documents.
type StatsAggregate struct {
	BuildingCount  int       `json:"building_count" db:"building_count"`
	PendingCount   int       `json:"pending_count" db:"pending_count"`
	PublishedCount int       `json:"published_count" db:"published_count"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Total returns the number of live documents the aggregate accounts for.
func (s *StatsAggregate) Total() int {
	return s.BuildingCount + s.PendingCount + s.PublishedCount
}

// CountFor returns the counter matching a status.
func (s *StatsAggregate) CountFor(status DocumentStatus) int {
	switch status {
	case StatusBuilding:
		return s.BuildingCount
	case StatusPending:
		return s.PendingCount
	case StatusPublished:
		return s.PublishedCount
	default:
		return 0
	}
}
