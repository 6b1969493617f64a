package service

import (
	"context"

	"github.com/jimmy058910/replitballgame-sub004/internal/api"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/repository"
)

// Store interfaces consumed by the services. The repository package provides
// the SQLite-backed implementations; tests substitute func-field mocks.

type SeasonStore interface {
	Current(ctx context.Context) (*domain.Season, error)
	Insert(ctx context.Context, season *domain.Season) error
	SetDayPhase(ctx context.Context, seasonID string, day int, phase domain.SeasonPhase) error
}

type TeamStore interface {
	Get(ctx context.Context, teamID string) (*domain.Team, error)
	ByDivision(ctx context.Context, division int) ([]domain.Team, error)
	BySubdivision(ctx context.Context, division int, subdivision string) ([]domain.Team, error)
	Subdivisions(ctx context.Context, division int) ([]string, error)
	AITeams(ctx context.Context) ([]domain.Team, error)
	InsertBatch(ctx context.Context, teams []domain.Team) error
	UpdatePlacements(ctx context.Context, updates []repository.PlacementUpdate) error
	ResetSeasonCounters(ctx context.Context) error
}

type GameStore interface {
	CountLeague(ctx context.Context, seasonID string) (int, error)
	InsertBatch(ctx context.Context, games []domain.Game) error
	BySeason(ctx context.Context, seasonID string, gameType domain.GameType) ([]domain.Game, error)
	RepointTeam(ctx context.Context, fromTeamID, toTeamID string) error
}

type CheckpointStore interface {
	Completed(ctx context.Context, seasonID string) (map[string]bool, error)
	Mark(ctx context.Context, seasonID, stage string) error
}

type PlanStore interface {
	Get(ctx context.Context, seasonID string) ([]byte, error)
	Save(ctx context.Context, seasonID string, plan []byte) error
}

type PurgeStore interface {
	PurgeTeam(ctx context.Context, teamID string) error
	SeedFinances(ctx context.Context, teamID string, credits int64) error
}

// SlotSource supplies the ordered daily kickoff time slots.
type SlotSource interface {
	DailySlots(ctx context.Context, day int) ([]string, error)
}

// AwardsSource distributes end-of-season awards and prize money.
type AwardsSource interface {
	DistributeAwards(ctx context.Context, seasonID string) (*api.AwardsResponse, error)
}
