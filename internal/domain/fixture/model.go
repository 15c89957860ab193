package fixture

import (
	"strings"
	"time"
)

const (
	StatusUpcoming    = "UPCOMING"
	StatusLive        = "LIVE"
	StatusFinished    = "FINISHED"
	StatusRescheduled = "RESCHEDULED"
)

// GraceInterval is the buffer after kickoff before a fixture goes LIVE,
// absorbing provider and kickoff clock skew.
const GraceInterval = 2 * time.Minute

// Fixture represents one scheduled match tracked by the platform.
// The scheduler mutates status and score fields only; rows are created
// and rescheduled by admin tooling.
type Fixture struct {
	ID             string
	HomeTeam       string
	AwayTeam       string
	ScheduledAt    time.Time
	Status         string
	FinalHomeScore *int
	FinalAwayScore *int
	LiveHomeScore  *int
	LiveAwayScore  *int
	ExternalID     *int64
	LastSyncedAt   *time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusUpcoming
	}
	return status
}

func IsValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusUpcoming, StatusLive, StatusFinished, StatusRescheduled:
		return true
	default:
		return false
	}
}

// DueForKickoff reports whether an UPCOMING fixture has passed its grace
// window and should flip to LIVE.
func (f Fixture) DueForKickoff(now time.Time) bool {
	if NormalizeStatus(f.Status) != StatusUpcoming {
		return false
	}
	return !f.ScheduledAt.After(now.Add(-GraceInterval))
}

// HasFinalScore reports whether both final scores are reconciled.
func (f Fixture) HasFinalScore() bool {
	return f.FinalHomeScore != nil && f.FinalAwayScore != nil
}
