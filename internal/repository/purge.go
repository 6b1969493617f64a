package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// PurgeRepository removes an AI team and every dependent record at season
// rollover. Completed games are not deleted; the caller re-points them to
// the placeholder team first so match history stays intact.
type PurgeRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPurgeRepository(sqlDB *sql.DB, logger zerolog.Logger) *PurgeRepository {
	return &PurgeRepository{db: sqlDB, logger: logger}
}

// PurgeTeam deletes one team's dependent rows and then the team itself in a
// single transaction. Order matters: listings and contracts reference
// players, so they go first.
func (r *PurgeRepository) PurgeTeam(ctx context.Context, teamID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		table string
		query string
	}{
		{"marketplace_listings", `DELETE FROM marketplace_listings WHERE team_id = ?`},
		{"contracts", `DELETE FROM contracts WHERE team_id = ?`},
		{"tournament_entries", `DELETE FROM tournament_entries WHERE team_id = ?`},
		{"players", `DELETE FROM players WHERE team_id = ?`},
		{"team_finances", `DELETE FROM team_finances WHERE team_id = ?`},
		{"teams", `DELETE FROM teams WHERE id = ?`},
	}

	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, teamID); err != nil {
			return fmt.Errorf("purging %s for team %s: %w", step.table, teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Debug().Str("team_id", teamID).Msg("team and dependents purged")
	return nil
}

// SeedFinances creates the default finance row for a freshly minted AI team.
func (r *PurgeRepository) SeedFinances(ctx context.Context, teamID string, credits int64) error {
	const q = `
		INSERT INTO team_finances (team_id, credits, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (team_id) DO NOTHING`

	now := time.Now()
	if _, err := r.db.ExecContext(ctx, q, teamID, credits, now, now); err != nil {
		return fmt.Errorf("seeding finances for team %s: %w", teamID, err)
	}
	return nil
}
