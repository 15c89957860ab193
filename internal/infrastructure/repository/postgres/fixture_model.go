package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	HomeTeam       string         `db:"home_team"`
	AwayTeam       string         `db:"away_team"`
	ScheduledAt    time.Time      `db:"scheduled_at"`
	Status         string         `db:"status"`
	FinalHomeScore sql.NullInt64  `db:"final_home_score"`
	FinalAwayScore sql.NullInt64  `db:"final_away_score"`
	LiveHomeScore  sql.NullInt64  `db:"live_home_score"`
	LiveAwayScore  sql.NullInt64  `db:"live_away_score"`
	ExternalID     sql.NullInt64  `db:"external_id"`
	LastSyncedAt   sql.NullTime   `db:"last_synced_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func nullInt64ToInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func nullTimeToTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time.UTC()
	return &v
}
