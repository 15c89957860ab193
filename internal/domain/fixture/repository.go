package fixture

import (
	"context"
	"time"
)

// Repository exposes the fixture store operations the scheduler and the
// external-sync path rely on. The two Flip operations must be executed as
// single atomic statements so concurrent callers cannot observe-then-write.
type Repository interface {
	// FlipUpcomingToLive moves every UPCOMING fixture whose kickoff is at
	// or before the threshold to LIVE, returning the affected count.
	FlipUpcomingToLive(ctx context.Context, threshold time.Time) (int64, error)

	// FlipLiveToFinished moves every LIVE fixture with both final scores
	// reconciled to FINISHED, returning the affected count.
	FlipLiveToFinished(ctx context.Context) (int64, error)

	// NextKickoff returns the earliest future kickoff among UPCOMING
	// fixtures; ok is false when none exists.
	NextKickoff(ctx context.Context, now time.Time) (time.Time, bool, error)

	// ListUnreconciled returns fixtures that are not FINISHED and not
	// RESCHEDULED, for correlation against provider snapshots.
	ListUnreconciled(ctx context.Context) ([]Fixture, error)

	// AttachExternalRef stamps a provider fixture reference onto a stored
	// fixture that does not have one yet.
	AttachExternalRef(ctx context.Context, id string, externalID int64, syncedAt time.Time) error

	// RecordLiveScore updates the in-play score of one fixture atomically.
	RecordLiveScore(ctx context.Context, id string, home, away int, syncedAt time.Time) error

	// RecordFinalScore reconciles the final score of one fixture atomically.
	RecordFinalScore(ctx context.Context, id string, home, away int, syncedAt time.Time) error
}
