package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{db: sqlDB, logger: logger}
}

// PlacementUpdate moves one team to a new (division, subdivision).
type PlacementUpdate struct {
	TeamID      string
	Division    int
	Subdivision string
}

const teamColumns = `id, name, division, subdivision, wins, losses, draws, points, is_ai, created_at, updated_at`

func scanTeam(row interface{ Scan(...any) error }) (domain.Team, error) {
	var t domain.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.Division, &t.Subdivision,
		&t.Wins, &t.Losses, &t.Draws, &t.Points, &t.IsAI,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TeamRepository) queryTeams(ctx context.Context, q string, args ...any) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams WHERE id = ?`

	t, err := scanTeam(r.db.QueryRowContext(ctx, q, teamID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying team %s: %w", teamID, err)
	}
	return &t, nil
}

func (r *TeamRepository) ByDivision(ctx context.Context, division int) ([]domain.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams WHERE division = ? ORDER BY subdivision, name`
	return r.queryTeams(ctx, q, division)
}

func (r *TeamRepository) BySubdivision(ctx context.Context, division int, subdivision string) ([]domain.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams WHERE division = ? AND subdivision = ? ORDER BY name`
	return r.queryTeams(ctx, q, division, subdivision)
}

// Subdivisions lists the distinct subdivision names of a division in
// creation order of their first member.
func (r *TeamRepository) Subdivisions(ctx context.Context, division int) ([]string, error) {
	const q = `
		SELECT subdivision
		FROM teams
		WHERE division = ?
		GROUP BY subdivision
		ORDER BY MIN(created_at), subdivision`

	rows, err := r.db.QueryContext(ctx, q, division)
	if err != nil {
		return nil, fmt.Errorf("querying subdivisions of division %d: %w", division, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning subdivision name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *TeamRepository) AITeams(ctx context.Context) ([]domain.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams WHERE is_ai = 1 AND id != ? ORDER BY created_at`
	return r.queryTeams(ctx, q, constants.PlaceholderTeamID)
}

func (r *TeamRepository) InsertBatch(ctx context.Context, teams []domain.Team) error {
	if len(teams) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO teams (id, name, division, subdivision, wins, losses, draws, points, is_ai, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := 0; i < len(teams); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(teams) {
			end = len(teams)
		}

		for _, t := range teams[i:end] {
			if _, err := tx.ExecContext(ctx, q,
				t.ID, t.Name, t.Division, t.Subdivision,
				t.Wins, t.Losses, t.Draws, t.Points, t.IsAI,
				t.CreatedAt, t.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert team %s: %w", t.ID, err)
			}
		}
	}

	return tx.Commit()
}

// UpdatePlacements applies one cascade stage's moves in a single
// transaction, so a crash between stages never leaves a half-applied stage.
func (r *TeamRepository) UpdatePlacements(ctx context.Context, updates []PlacementUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `UPDATE teams SET division = ?, subdivision = ?, updated_at = ? WHERE id = ?`

	now := time.Now()
	for _, u := range updates {
		res, err := tx.ExecContext(ctx, q, u.Division, u.Subdivision, now, u.TeamID)
		if err != nil {
			return fmt.Errorf("failed to move team %s: %w", u.TeamID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("failed to move team %s: %w", u.TeamID, domain.ErrTeamNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info().Int("moved", len(updates)).Msg("team placements updated")
	return nil
}

// ResetSeasonCounters zeroes every team's win/loss/draw/point counters for
// the new season.
func (r *TeamRepository) ResetSeasonCounters(ctx context.Context) error {
	const q = `UPDATE teams SET wins = 0, losses = 0, draws = 0, points = 0, updated_at = ?`

	res, err := r.db.ExecContext(ctx, q, time.Now())
	if err != nil {
		return fmt.Errorf("resetting season counters: %w", err)
	}

	n, _ := res.RowsAffected()
	r.logger.Info().Int64("teams", n).Msg("season counters reset")
	return nil
}
