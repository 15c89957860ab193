package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/footypool/footypool/internal/domain/fixture"
)

// FixtureRepository is a mutex-guarded store with the same transition
// semantics as the Postgres implementation, for tests and local runs.
type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	byID := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		byID[item.ID] = item
	}
	return &FixtureRepository{fixtures: byID}
}

func (r *FixtureRepository) FlipUpcomingToLive(_ context.Context, threshold time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, item := range r.fixtures {
		if item.Status != fixture.StatusUpcoming {
			continue
		}
		if item.ScheduledAt.After(threshold) {
			continue
		}
		item.Status = fixture.StatusLive
		r.fixtures[id] = item
		count++
	}
	return count, nil
}

func (r *FixtureRepository) FlipLiveToFinished(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, item := range r.fixtures {
		if item.Status != fixture.StatusLive || !item.HasFinalScore() {
			continue
		}
		item.Status = fixture.StatusFinished
		r.fixtures[id] = item
		count++
	}
	return count, nil
}

func (r *FixtureRepository) NextKickoff(_ context.Context, now time.Time) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var next time.Time
	found := false
	for _, item := range r.fixtures {
		if item.Status != fixture.StatusUpcoming {
			continue
		}
		if !item.ScheduledAt.After(now) {
			continue
		}
		if !found || item.ScheduledAt.Before(next) {
			next = item.ScheduledAt
			found = true
		}
	}
	return next, found, nil
}

func (r *FixtureRepository) ListUnreconciled(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		if item.Status != fixture.StatusUpcoming && item.Status != fixture.StatusLive {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FixtureRepository) AttachExternalRef(_ context.Context, id string, externalID int64, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.fixtures[id]
	if !ok || item.ExternalID != nil {
		return nil
	}
	item.ExternalID = &externalID
	at := syncedAt.UTC()
	item.LastSyncedAt = &at
	r.fixtures[id] = item
	return nil
}

func (r *FixtureRepository) RecordLiveScore(_ context.Context, id string, home, away int, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.fixtures[id]
	if !ok || item.Status != fixture.StatusLive {
		return nil
	}
	item.LiveHomeScore = &home
	item.LiveAwayScore = &away
	at := syncedAt.UTC()
	item.LastSyncedAt = &at
	r.fixtures[id] = item
	return nil
}

func (r *FixtureRepository) RecordFinalScore(_ context.Context, id string, home, away int, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.fixtures[id]
	if !ok || item.Status != fixture.StatusLive {
		return nil
	}
	item.FinalHomeScore = &home
	item.FinalAwayScore = &away
	at := syncedAt.UTC()
	item.LastSyncedAt = &at
	r.fixtures[id] = item
	return nil
}

// Get returns a copy of one fixture for test assertions.
func (r *FixtureRepository) Get(id string) (fixture.Fixture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.fixtures[id]
	return item, ok
}
