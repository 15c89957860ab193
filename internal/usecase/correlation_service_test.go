package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/footypool/footypool/internal/domain/fixture"
	"github.com/footypool/footypool/internal/domain/matching"
	"github.com/footypool/footypool/internal/infrastructure/repository/memory"
	"github.com/footypool/footypool/internal/platform/logging"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestApplySnapshots_CorrelatesByNameAndStampsRef(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusUpcoming, ScheduledAt: now, HomeTeam: "Manchester United", AwayTeam: "Arsenal FC"},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 901, HomeTeam: "Manchester Utd", AwayTeam: "Arsenal", Status: "NS"},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.Correlated != 1 {
		t.Fatalf("unexpected correlated count: got=%d want=1", result.Correlated)
	}

	got, _ := repo.Get("fx-1")
	if got.ExternalID == nil || *got.ExternalID != 901 {
		t.Fatalf("external ref not stamped: %+v", got.ExternalID)
	}
	if got.LastSyncedAt == nil || !got.LastSyncedAt.Equal(now) {
		t.Fatalf("sync timestamp not recorded: %+v", got.LastSyncedAt)
	}
}

func TestApplySnapshots_SwappedOrientationStillMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusLive, ScheduledAt: now, HomeTeam: "Real Madrid CF", AwayTeam: "FC Barcelona"},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 77, HomeTeam: "Barcelona", AwayTeam: "Real Madrid", Status: "2H", HomeScore: intPtr(1), AwayScore: intPtr(3)},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.Correlated != 1 || result.LiveUpdates != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, _ := repo.Get("fx-1")
	if got.LiveHomeScore == nil || *got.LiveHomeScore != 1 {
		t.Fatalf("live home score not applied: %+v", got.LiveHomeScore)
	}
	if got.Status != fixture.StatusLive {
		t.Fatalf("correlation must never flip status, got %s", got.Status)
	}
}

func TestApplySnapshots_FinalStatusRecordsFinalScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 17, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusLive, ScheduledAt: now.Add(-2 * time.Hour), HomeTeam: "AC Milan", AwayTeam: "Juventus", ExternalID: int64Ptr(42)},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 42, HomeTeam: "Milan", AwayTeam: "Juventus", Status: "FT", HomeScore: intPtr(0), AwayScore: intPtr(2)},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.FinalUpdates != 1 {
		t.Fatalf("unexpected final update count: got=%d want=1", result.FinalUpdates)
	}
	// Already carries a ref, so nothing new to correlate.
	if result.Correlated != 0 {
		t.Fatalf("referenced fixture must not re-correlate: %+v", result)
	}

	got, _ := repo.Get("fx-1")
	if !got.HasFinalScore() {
		t.Fatal("final score not recorded")
	}
	if got.Status != fixture.StatusLive {
		t.Fatalf("correlation must leave the flip to the lifecycle loop, got %s", got.Status)
	}
}

func TestApplySnapshots_AmbiguousPairIsSkipped(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusUpcoming, ScheduledAt: now, HomeTeam: "Celtic FC", AwayTeam: "Rangers FC"},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 1, HomeTeam: "Celtic", AwayTeam: "Rangers", Status: "NS"},
		{ExternalID: 2, HomeTeam: "Rangers", AwayTeam: "Celtic", Status: "NS"},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.Ambiguous != 1 || result.Correlated != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, _ := repo.Get("fx-1")
	if got.ExternalID != nil {
		t.Fatal("ambiguous fixture must not be stamped with a ref")
	}
}

func TestApplySnapshots_UnmatchedFixtureLeftAlone(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusUpcoming, ScheduledAt: now, HomeTeam: "Olympique Lyonnais", AwayTeam: "Pau FC"},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 9, HomeTeam: "Olympique de Marseille", AwayTeam: "Paris Saint-Germain", Status: "NS"},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.Unmatched != 1 {
		t.Fatalf("unexpected unmatched count: got=%d want=1", result.Unmatched)
	}

	got, _ := repo.Get("fx-1")
	if got.ExternalID != nil {
		t.Fatal("unmatched fixture must keep a nil ref")
	}
}

func TestApplySnapshots_RejectsNonPositiveExternalID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusUpcoming, ScheduledAt: now, HomeTeam: "Chelsea", AwayTeam: "Everton"},
	})
	svc := NewCorrelationService(repo, logging.NewNop())

	_, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 0, HomeTeam: "Chelsea", AwayTeam: "Everton", Status: "NS"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := repo.Get("fx-1")
	if got.ExternalID != nil {
		t.Fatal("rejected batch must not stamp any refs")
	}
}

func TestApplySnapshots_PartialScoresAreNotApplied(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	repo := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusLive, ScheduledAt: now, HomeTeam: "Chelsea", AwayTeam: "Everton", ExternalID: int64Ptr(5)},
	})
	svc := NewCorrelationService(repo, logging.NewNop())
	svc.now = func() time.Time { return now }

	result, err := svc.ApplySnapshots(context.Background(), []matching.ExternalFixture{
		{ExternalID: 5, HomeTeam: "Chelsea", AwayTeam: "Everton", Status: "LIVE", HomeScore: intPtr(1)},
	})
	if err != nil {
		t.Fatalf("apply snapshots: %v", err)
	}
	if result.LiveUpdates != 0 {
		t.Fatalf("a snapshot missing one score must not update: %+v", result)
	}
}
