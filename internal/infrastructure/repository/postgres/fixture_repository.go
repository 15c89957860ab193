package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/footypool/footypool/internal/domain/fixture"
	qb "github.com/footypool/footypool/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

// FlipUpcomingToLive runs as one conditional UPDATE so two writers can
// never both observe "qualifies" before either commits.
func (r *FixtureRepository) FlipUpcomingToLive(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := qb.Update("fixtures").
		Set("status", fixture.StatusLive).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("status", fixture.StatusUpcoming),
			qb.Lte("scheduled_at", threshold.UTC()),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build flip upcoming to live query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("flip upcoming fixtures to live: %w", err)
	}

	return rowsAffected(res)
}

func (r *FixtureRepository) FlipLiveToFinished(ctx context.Context) (int64, error) {
	query, args, err := qb.Update("fixtures").
		Set("status", fixture.StatusFinished).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("status", fixture.StatusLive),
			qb.NotNull("final_home_score"),
			qb.NotNull("final_away_score"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build flip live to finished query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("flip live fixtures to finished: %w", err)
	}

	return rowsAffected(res)
}

func (r *FixtureRepository) NextKickoff(ctx context.Context, now time.Time) (time.Time, bool, error) {
	query, args, err := qb.Select("scheduled_at").From("fixtures").
		Where(
			qb.Eq("status", fixture.StatusUpcoming),
			qb.Gt("scheduled_at", now.UTC()),
		).
		OrderBy("scheduled_at").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build next kickoff query: %w", err)
	}

	var kickoff time.Time
	if err := r.db.GetContext(ctx, &kickoff, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select next kickoff: %w", err)
	}

	return kickoff.UTC(), true, nil
}

func (r *FixtureRepository) ListUnreconciled(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Expr("status IN (?, ?)", fixture.StatusUpcoming, fixture.StatusLive)).
		OrderBy("scheduled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unreconciled fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list unreconciled fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:             row.PublicID,
			HomeTeam:       row.HomeTeam,
			AwayTeam:       row.AwayTeam,
			ScheduledAt:    row.ScheduledAt.UTC(),
			Status:         row.Status,
			FinalHomeScore: nullInt64ToIntPtr(row.FinalHomeScore),
			FinalAwayScore: nullInt64ToIntPtr(row.FinalAwayScore),
			LiveHomeScore:  nullInt64ToIntPtr(row.LiveHomeScore),
			LiveAwayScore:  nullInt64ToIntPtr(row.LiveAwayScore),
			ExternalID:     nullInt64ToInt64Ptr(row.ExternalID),
			LastSyncedAt:   nullTimeToTimePtr(row.LastSyncedAt),
		})
	}

	return out, nil
}

func (r *FixtureRepository) AttachExternalRef(ctx context.Context, id string, externalID int64, syncedAt time.Time) error {
	query, args, err := qb.Update("fixtures").
		Set("external_id", externalID).
		Set("last_synced_at", syncedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("external_id"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build attach external ref query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("attach external ref fixture=%s: %w", id, err)
	}
	return nil
}

func (r *FixtureRepository) RecordLiveScore(ctx context.Context, id string, home, away int, syncedAt time.Time) error {
	query, args, err := qb.Update("fixtures").
		Set("live_home_score", home).
		Set("live_away_score", away).
		Set("last_synced_at", syncedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("status", fixture.StatusLive),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record live score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record live score fixture=%s: %w", id, err)
	}
	return nil
}

func (r *FixtureRepository) RecordFinalScore(ctx context.Context, id string, home, away int, syncedAt time.Time) error {
	query, args, err := qb.Update("fixtures").
		Set("final_home_score", home).
		Set("final_away_score", away).
		Set("last_synced_at", syncedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			// Final scores attach to LIVE fixtures only: an UPCOMING row
			// must never carry a final score.
			qb.Eq("public_id", id),
			qb.Eq("status", fixture.StatusLive),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record final score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record final score fixture=%s: %w", id, err)
	}
	return nil
}

func rowsAffected(res sql.Result) (int64, error) {
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read affected row count: %w", err)
	}
	return count, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
