package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CheckpointRepository records completed rollover stages per season so an
// interrupted rollover can be rerun: stages already checkpointed are skipped.
type CheckpointRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCheckpointRepository(sqlDB *sql.DB, logger zerolog.Logger) *CheckpointRepository {
	return &CheckpointRepository{db: sqlDB, logger: logger}
}

func (r *CheckpointRepository) Completed(ctx context.Context, seasonID string) (map[string]bool, error) {
	const q = `SELECT stage FROM rollover_checkpoints WHERE season_id = ?`

	rows, err := r.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return nil, fmt.Errorf("scanning checkpoint row: %w", err)
		}
		done[stage] = true
	}
	return done, rows.Err()
}

func (r *CheckpointRepository) Mark(ctx context.Context, seasonID, stage string) error {
	const q = `
		INSERT INTO rollover_checkpoints (season_id, stage, completed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (season_id, stage) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, q, seasonID, stage, time.Now()); err != nil {
		return fmt.Errorf("marking checkpoint %s for season %s: %w", stage, seasonID, err)
	}

	r.logger.Debug().Str("season_id", seasonID).Str("stage", stage).Msg("rollover checkpoint recorded")
	return nil
}
