package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"esp-monitor/internal/models"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate creates the schema if it doesn't exist.
func (db *DB) Migrate(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS stage_changes (
		id             BIGSERIAL PRIMARY KEY,
		region         TEXT NOT NULL,
		name           TEXT NOT NULL DEFAULT '',
		stage          TEXT NOT NULL,
		previous_stage TEXT NOT NULL DEFAULT '',
		stage_updated  TIMESTAMPTZ NOT NULL,
		recorded_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_stage_changes_region_time
		ON stage_changes (region, recorded_at DESC);
	`
	_, err := db.Pool.Exec(ctx, sql)
	return err
}

// InsertStageChange stores a stage change and returns it with ID and RecordedAt set.
func (db *DB) InsertStageChange(ctx context.Context, c *models.StageChange) (*models.StageChange, error) {
	out := *c
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO stage_changes (region, name, stage, previous_stage, stage_updated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at
	`, c.Region, c.Name, c.Stage, c.PreviousStage, c.StageUpdated).Scan(&out.ID, &out.RecordedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStageHistory returns a region's stage changes within a time range, oldest first.
func (db *DB) GetStageHistory(ctx context.Context, region string, from, to time.Time) ([]*models.StageChange, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, region, name, stage, previous_stage, stage_updated, recorded_at
		FROM stage_changes
		WHERE region = $1 AND recorded_at >= $2 AND recorded_at <= $3
		ORDER BY recorded_at ASC
	`, region, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*models.StageChange
	for rows.Next() {
		var c models.StageChange
		if err := rows.Scan(
			&c.ID, &c.Region, &c.Name, &c.Stage,
			&c.PreviousStage, &c.StageUpdated, &c.RecordedAt,
		); err != nil {
			return nil, err
		}
		changes = append(changes, &c)
	}
	return changes, rows.Err()
}
