package service

import (
	"context"

	"github.com/jimmy058910/replitballgame-sub004/internal/api"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/repository"
)

// Func-field mocks for the store interfaces. A nil field answers with zero
// values so tests only wire the calls they care about.

type mockSeasonStore struct {
	CurrentFunc     func(ctx context.Context) (*domain.Season, error)
	InsertFunc      func(ctx context.Context, season *domain.Season) error
	SetDayPhaseFunc func(ctx context.Context, seasonID string, day int, phase domain.SeasonPhase) error
}

func (m *mockSeasonStore) Current(ctx context.Context) (*domain.Season, error) {
	if m.CurrentFunc == nil {
		return nil, domain.ErrSeasonNotFound
	}
	return m.CurrentFunc(ctx)
}

func (m *mockSeasonStore) Insert(ctx context.Context, season *domain.Season) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, season)
}

func (m *mockSeasonStore) SetDayPhase(ctx context.Context, seasonID string, day int, phase domain.SeasonPhase) error {
	if m.SetDayPhaseFunc == nil {
		return nil
	}
	return m.SetDayPhaseFunc(ctx, seasonID, day, phase)
}

type mockTeamStore struct {
	GetFunc                 func(ctx context.Context, teamID string) (*domain.Team, error)
	ByDivisionFunc          func(ctx context.Context, division int) ([]domain.Team, error)
	BySubdivisionFunc       func(ctx context.Context, division int, subdivision string) ([]domain.Team, error)
	SubdivisionsFunc        func(ctx context.Context, division int) ([]string, error)
	AITeamsFunc             func(ctx context.Context) ([]domain.Team, error)
	InsertBatchFunc         func(ctx context.Context, teams []domain.Team) error
	UpdatePlacementsFunc    func(ctx context.Context, updates []repository.PlacementUpdate) error
	ResetSeasonCountersFunc func(ctx context.Context) error
}

func (m *mockTeamStore) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	if m.GetFunc == nil {
		return nil, domain.ErrTeamNotFound
	}
	return m.GetFunc(ctx, teamID)
}

func (m *mockTeamStore) ByDivision(ctx context.Context, division int) ([]domain.Team, error) {
	if m.ByDivisionFunc == nil {
		return nil, nil
	}
	return m.ByDivisionFunc(ctx, division)
}

func (m *mockTeamStore) BySubdivision(ctx context.Context, division int, subdivision string) ([]domain.Team, error) {
	if m.BySubdivisionFunc == nil {
		return nil, nil
	}
	return m.BySubdivisionFunc(ctx, division, subdivision)
}

func (m *mockTeamStore) Subdivisions(ctx context.Context, division int) ([]string, error) {
	if m.SubdivisionsFunc == nil {
		return nil, nil
	}
	return m.SubdivisionsFunc(ctx, division)
}

func (m *mockTeamStore) AITeams(ctx context.Context) ([]domain.Team, error) {
	if m.AITeamsFunc == nil {
		return nil, nil
	}
	return m.AITeamsFunc(ctx)
}

func (m *mockTeamStore) InsertBatch(ctx context.Context, teams []domain.Team) error {
	if m.InsertBatchFunc == nil {
		return nil
	}
	return m.InsertBatchFunc(ctx, teams)
}

func (m *mockTeamStore) UpdatePlacements(ctx context.Context, updates []repository.PlacementUpdate) error {
	if m.UpdatePlacementsFunc == nil {
		return nil
	}
	return m.UpdatePlacementsFunc(ctx, updates)
}

func (m *mockTeamStore) ResetSeasonCounters(ctx context.Context) error {
	if m.ResetSeasonCountersFunc == nil {
		return nil
	}
	return m.ResetSeasonCountersFunc(ctx)
}

type mockGameStore struct {
	CountLeagueFunc func(ctx context.Context, seasonID string) (int, error)
	InsertBatchFunc func(ctx context.Context, games []domain.Game) error
	BySeasonFunc    func(ctx context.Context, seasonID string, gameType domain.GameType) ([]domain.Game, error)
	RepointTeamFunc func(ctx context.Context, fromTeamID, toTeamID string) error
}

func (m *mockGameStore) CountLeague(ctx context.Context, seasonID string) (int, error) {
	if m.CountLeagueFunc == nil {
		return 0, nil
	}
	return m.CountLeagueFunc(ctx, seasonID)
}

func (m *mockGameStore) InsertBatch(ctx context.Context, games []domain.Game) error {
	if m.InsertBatchFunc == nil {
		return nil
	}
	return m.InsertBatchFunc(ctx, games)
}

func (m *mockGameStore) BySeason(ctx context.Context, seasonID string, gameType domain.GameType) ([]domain.Game, error) {
	if m.BySeasonFunc == nil {
		return nil, nil
	}
	return m.BySeasonFunc(ctx, seasonID, gameType)
}

func (m *mockGameStore) RepointTeam(ctx context.Context, fromTeamID, toTeamID string) error {
	if m.RepointTeamFunc == nil {
		return nil
	}
	return m.RepointTeamFunc(ctx, fromTeamID, toTeamID)
}

type mockCheckpointStore struct {
	CompletedFunc func(ctx context.Context, seasonID string) (map[string]bool, error)
	MarkFunc      func(ctx context.Context, seasonID, stage string) error
}

func (m *mockCheckpointStore) Completed(ctx context.Context, seasonID string) (map[string]bool, error) {
	if m.CompletedFunc == nil {
		return map[string]bool{}, nil
	}
	return m.CompletedFunc(ctx, seasonID)
}

func (m *mockCheckpointStore) Mark(ctx context.Context, seasonID, stage string) error {
	if m.MarkFunc == nil {
		return nil
	}
	return m.MarkFunc(ctx, seasonID, stage)
}

type mockPlanStore struct {
	GetFunc  func(ctx context.Context, seasonID string) ([]byte, error)
	SaveFunc func(ctx context.Context, seasonID string, plan []byte) error
}

func (m *mockPlanStore) Get(ctx context.Context, seasonID string) ([]byte, error) {
	if m.GetFunc == nil {
		return nil, nil
	}
	return m.GetFunc(ctx, seasonID)
}

func (m *mockPlanStore) Save(ctx context.Context, seasonID string, plan []byte) error {
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, seasonID, plan)
}

type mockPurgeStore struct {
	PurgeTeamFunc    func(ctx context.Context, teamID string) error
	SeedFinancesFunc func(ctx context.Context, teamID string, credits int64) error
}

func (m *mockPurgeStore) PurgeTeam(ctx context.Context, teamID string) error {
	if m.PurgeTeamFunc == nil {
		return nil
	}
	return m.PurgeTeamFunc(ctx, teamID)
}

func (m *mockPurgeStore) SeedFinances(ctx context.Context, teamID string, credits int64) error {
	if m.SeedFinancesFunc == nil {
		return nil
	}
	return m.SeedFinancesFunc(ctx, teamID, credits)
}

type mockSlotSource struct {
	DailySlotsFunc func(ctx context.Context, day int) ([]string, error)
}

func (m *mockSlotSource) DailySlots(ctx context.Context, day int) ([]string, error) {
	if m.DailySlotsFunc == nil {
		return nil, nil
	}
	return m.DailySlotsFunc(ctx, day)
}

type mockAwardsSource struct {
	DistributeAwardsFunc func(ctx context.Context, seasonID string) (*api.AwardsResponse, error)
}

func (m *mockAwardsSource) DistributeAwards(ctx context.Context, seasonID string) (*api.AwardsResponse, error) {
	if m.DistributeAwardsFunc == nil {
		return &api.AwardsResponse{}, nil
	}
	return m.DistributeAwardsFunc(ctx, seasonID)
}
