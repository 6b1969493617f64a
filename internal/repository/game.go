package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type GameRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, logger zerolog.Logger) *GameRepository {
	return &GameRepository{db: sqlDB, logger: logger}
}

// CountLeague is the duplicate-generation guard: a non-zero count means the
// season already has a league schedule and generation is a no-op.
func (r *GameRepository) CountLeague(ctx context.Context, seasonID string) (int, error) {
	const q = `SELECT COUNT(*) FROM games WHERE season_id = ? AND game_type = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, q, seasonID, domain.GameLeague).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting league games for season %s: %w", seasonID, err)
	}
	return count, nil
}

func (r *GameRepository) InsertBatch(ctx context.Context, games []domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO games (id, season_id, home_team_id, away_team_id, day, scheduled_at,
			game_type, status, home_score, away_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	for i := 0; i < len(games); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(games) {
			end = len(games)
		}

		for _, g := range games[i:end] {
			id := g.ID
			if id == "" {
				id, err = gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate game id: %w", err)
				}
			}

			if _, err := tx.ExecContext(ctx, q,
				id, g.SeasonID, g.HomeTeamID, g.AwayTeamID, g.Day, g.ScheduledAt,
				g.Type, g.Status, g.HomeScore, g.AwayScore, now, now,
			); err != nil {
				return fmt.Errorf("failed to insert game %s: %w", id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info().Int("games", len(games)).Msg("games inserted")
	return nil
}

// BySeason returns every game of one type for a season, ordered by day then
// kickoff. Callers filter by subdivision membership.
func (r *GameRepository) BySeason(ctx context.Context, seasonID string, gameType domain.GameType) ([]domain.Game, error) {
	const q = `
		SELECT id, season_id, home_team_id, away_team_id, day, scheduled_at,
			game_type, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE season_id = ? AND game_type = ?
		ORDER BY day, scheduled_at, id`

	rows, err := r.db.QueryContext(ctx, q, seasonID, gameType)
	if err != nil {
		return nil, fmt.Errorf("querying games for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(
			&g.ID, &g.SeasonID, &g.HomeTeamID, &g.AwayTeamID, &g.Day, &g.ScheduledAt,
			&g.Type, &g.Status, &g.HomeScore, &g.AwayScore, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game row: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game rows: %w", err)
	}
	return games, nil
}

// RepointTeam rewrites home/away references from one team to another,
// preserving historical games when the original team is purged.
func (r *GameRepository) RepointTeam(ctx context.Context, fromTeamID, toTeamID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET home_team_id = ?, updated_at = ? WHERE home_team_id = ?`,
		toTeamID, now, fromTeamID,
	); err != nil {
		return fmt.Errorf("repointing home games of team %s: %w", fromTeamID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET away_team_id = ?, updated_at = ? WHERE away_team_id = ?`,
		toTeamID, now, fromTeamID,
	); err != nil {
		return fmt.Errorf("repointing away games of team %s: %w", fromTeamID, err)
	}

	return tx.Commit()
}
