package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/footypool/footypool/internal/domain/fixture"
	"github.com/footypool/footypool/internal/domain/matching"
	"github.com/footypool/footypool/internal/platform/logging"
)

// CorrelationResult summarizes one reconciliation pass over provider
// snapshots.
type CorrelationResult struct {
	Considered   int `json:"considered"`
	Correlated   int `json:"correlated"`
	LiveUpdates  int `json:"live_updates"`
	FinalUpdates int `json:"final_updates"`
	Ambiguous    int `json:"ambiguous"`
	Unmatched    int `json:"unmatched"`
}

// CorrelationService reconciles stored fixtures against provider-reported
// snapshots: it stamps external references via fuzzy team-name matching and
// applies live/final scores through single atomic updates. It never flips
// status; the lifecycle loop owns transitions.
type CorrelationService struct {
	fixtureRepo fixture.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewCorrelationService(fixtureRepo fixture.Repository, logger *logging.Logger) *CorrelationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CorrelationService{
		fixtureRepo: fixtureRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ApplySnapshots correlates every unreconciled fixture with the supplied
// snapshots. A fixture that matches nothing is left alone; a later pass
// retries once the provider publishes it.
func (s *CorrelationService) ApplySnapshots(ctx context.Context, snapshots []matching.ExternalFixture) (CorrelationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CorrelationService.ApplySnapshots")
	defer span.End()

	result := CorrelationResult{}
	if len(snapshots) == 0 {
		return result, nil
	}

	byExternalID := make(map[int64]matching.ExternalFixture, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot.ExternalID <= 0 {
			return CorrelationResult{}, fmt.Errorf("%w: snapshot external id must be positive, got %d", ErrInvalidInput, snapshot.ExternalID)
		}
		if _, exists := byExternalID[snapshot.ExternalID]; exists {
			continue
		}
		byExternalID[snapshot.ExternalID] = snapshot
	}

	fixtures, err := s.fixtureRepo.ListUnreconciled(ctx)
	if err != nil {
		return CorrelationResult{}, fmt.Errorf("list fixtures for correlation: %w", errors.Join(ErrDependencyUnavailable, err))
	}

	syncedAt := s.now().UTC()
	for _, item := range fixtures {
		result.Considered++

		snapshot, ok := s.resolveSnapshot(ctx, item, snapshots, byExternalID, &result, syncedAt)
		if !ok {
			continue
		}

		if err := s.applyScores(ctx, item, snapshot, syncedAt, &result); err != nil {
			return CorrelationResult{}, err
		}
	}

	s.logger.InfoContext(ctx, "correlation pass finished",
		"considered", result.Considered,
		"correlated", result.Correlated,
		"live_updates", result.LiveUpdates,
		"final_updates", result.FinalUpdates,
		"ambiguous", result.Ambiguous,
		"unmatched", result.Unmatched,
	)

	return result, nil
}

func (s *CorrelationService) resolveSnapshot(
	ctx context.Context,
	item fixture.Fixture,
	snapshots []matching.ExternalFixture,
	byExternalID map[int64]matching.ExternalFixture,
	result *CorrelationResult,
	syncedAt time.Time,
) (matching.ExternalFixture, bool) {
	if item.ExternalID != nil {
		snapshot, ok := byExternalID[*item.ExternalID]
		if !ok {
			result.Unmatched++
		}
		return snapshot, ok
	}

	match, ok := matching.Match(item.HomeTeam, item.AwayTeam, snapshots)
	if !ok {
		result.Unmatched++
		return matching.ExternalFixture{}, false
	}
	if match.Ambiguous {
		// Multiple provider fixtures share this team pair; picking one
		// silently risks cross-wiring legs, so leave it for manual review.
		result.Ambiguous++
		s.logger.WarnContext(ctx, "ambiguous fixture correlation, flagged for review",
			"fixture_id", item.ID,
			"home_team", item.HomeTeam,
			"away_team", item.AwayTeam,
		)
		return matching.ExternalFixture{}, false
	}

	if err := s.fixtureRepo.AttachExternalRef(ctx, item.ID, match.Candidate.ExternalID, syncedAt); err != nil {
		s.logger.WarnContext(ctx, "attach external ref failed",
			"fixture_id", item.ID,
			"external_id", match.Candidate.ExternalID,
			"error", err,
		)
		return matching.ExternalFixture{}, false
	}

	result.Correlated++
	if match.Swapped {
		s.logger.DebugContext(ctx, "provider lists fixture with swapped orientation",
			"fixture_id", item.ID,
			"external_id", match.Candidate.ExternalID,
		)
	}
	return match.Candidate, true
}

func (s *CorrelationService) applyScores(
	ctx context.Context,
	item fixture.Fixture,
	snapshot matching.ExternalFixture,
	syncedAt time.Time,
	result *CorrelationResult,
) error {
	if snapshot.HomeScore == nil || snapshot.AwayScore == nil {
		return nil
	}

	switch {
	case isProviderFinalStatus(snapshot.Status):
		if err := s.fixtureRepo.RecordFinalScore(ctx, item.ID, *snapshot.HomeScore, *snapshot.AwayScore, syncedAt); err != nil {
			return fmt.Errorf("record final score fixture=%s: %w", item.ID, err)
		}
		result.FinalUpdates++
	case isProviderLiveStatus(snapshot.Status):
		if err := s.fixtureRepo.RecordLiveScore(ctx, item.ID, *snapshot.HomeScore, *snapshot.AwayScore, syncedAt); err != nil {
			return fmt.Errorf("record live score fixture=%s: %w", item.ID, err)
		}
		result.LiveUpdates++
	}
	return nil
}

// Provider raw status codes pass through the snapshot untouched; only the
// in-play/full-time distinction matters here.
func isProviderLiveStatus(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LIVE", "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func isProviderFinalStatus(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "FT", "FINISHED", "AET", "PEN", "FT_PEN":
		return true
	default:
		return false
	}
}
