package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type SeasonRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSeasonRepository(sqlDB *sql.DB, logger zerolog.Logger) *SeasonRepository {
	return &SeasonRepository{db: sqlDB, logger: logger}
}

// Current returns the active season: the record with the highest sequence
// number. A superseded record is never renumbered, so the latest one wins.
func (r *SeasonRepository) Current(ctx context.Context) (*domain.Season, error) {
	const q = `
		SELECT id, seq_no, start_date, current_day, phase, created_at, updated_at
		FROM seasons
		ORDER BY seq_no DESC
		LIMIT 1`

	var s domain.Season
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.ID, &s.SeqNo, &s.StartDate, &s.CurrentDay, &s.Phase, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying current season: %w", err)
	}
	return &s, nil
}

func (r *SeasonRepository) Insert(ctx context.Context, season *domain.Season) error {
	if season.ID == "" {
		season.ID = uuid.New().String()
	}
	now := time.Now()
	season.CreatedAt = now
	season.UpdatedAt = now

	const q = `
		INSERT INTO seasons (id, seq_no, start_date, current_day, phase, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, q,
		season.ID, season.SeqNo, season.StartDate, season.CurrentDay, season.Phase,
		season.CreatedAt, season.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting season %d: %w", season.SeqNo, err)
	}

	r.logger.Info().Int("seq_no", season.SeqNo).Str("season_id", season.ID).Msg("season created")
	return nil
}

// SetDayPhase advances the in-place mutable fields of the active season.
func (r *SeasonRepository) SetDayPhase(ctx context.Context, seasonID string, day int, phase domain.SeasonPhase) error {
	const q = `UPDATE seasons SET current_day = ?, phase = ?, updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, day, phase, time.Now(), seasonID)
	if err != nil {
		return fmt.Errorf("updating season %s day/phase: %w", seasonID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSeasonNotFound
	}

	r.logger.Debug().Str("season_id", seasonID).Int("day", day).Str("phase", string(phase)).Msg("season advanced")
	return nil
}
