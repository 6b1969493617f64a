package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// PlanRepository persists the serialized cascade plan computed at rollover.
// Replaying a crashed rollover loads the saved plan instead of replanning
// from already-mutated division state.
type PlanRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlanRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlanRepository {
	return &PlanRepository{db: sqlDB, logger: logger}
}

// Get returns the saved plan for a season, or nil when none exists.
func (r *PlanRepository) Get(ctx context.Context, seasonID string) ([]byte, error) {
	const q = `SELECT plan FROM cascade_plans WHERE season_id = ?`

	var plan []byte
	err := r.db.QueryRowContext(ctx, q, seasonID).Scan(&plan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cascade plan for season %s: %w", seasonID, err)
	}
	return plan, nil
}

func (r *PlanRepository) Save(ctx context.Context, seasonID string, plan []byte) error {
	const q = `
		INSERT INTO cascade_plans (season_id, plan, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (season_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, q, seasonID, plan, time.Now()); err != nil {
		return fmt.Errorf("saving cascade plan for season %s: %w", seasonID, err)
	}

	r.logger.Debug().Str("season_id", seasonID).Int("bytes", len(plan)).Msg("cascade plan saved")
	return nil
}
