package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/standings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StandingsService derives ranked tables from completed league games.
// Tables are never persisted; they are recomputed on demand.
type StandingsService struct {
	games  GameStore
	teams  TeamStore
	logger zerolog.Logger
}

func NewStandingsService(games GameStore, teams TeamStore, logger zerolog.Logger) *StandingsService {
	return &StandingsService{games: games, teams: teams, logger: logger}
}

// SubdivisionTable computes the table for one subdivision from the games
// whose both sides belong to it.
func (s *StandingsService) SubdivisionTable(ctx context.Context, season *domain.Season, division int, subdivision string) ([]standings.Entry, error) {
	games, err := s.games.BySeason(ctx, season.ID, domain.GameLeague)
	if err != nil {
		return nil, fmt.Errorf("loading league games: %w", err)
	}
	return s.tableFor(ctx, games, division, subdivision)
}

// DivisionTables computes every subdivision table of a division. The
// per-subdivision computations are independent reads, so they fan out
// concurrently; only cascade mutation must stay sequential.
func (s *StandingsService) DivisionTables(ctx context.Context, season *domain.Season, division int) (map[string][]standings.Entry, error) {
	subs, err := s.teams.Subdivisions(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("listing subdivisions of division %d: %w", division, err)
	}

	games, err := s.games.BySeason(ctx, season.ID, domain.GameLeague)
	if err != nil {
		return nil, fmt.Errorf("loading league games: %w", err)
	}

	var mu sync.Mutex
	tables := make(map[string][]standings.Entry, len(subs))

	g, gCtx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			table, err := s.tableFor(gCtx, games, division, sub)
			if err != nil {
				return err
			}
			mu.Lock()
			tables[sub] = table
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *StandingsService) tableFor(ctx context.Context, games []domain.Game, division int, subdivision string) ([]standings.Entry, error) {
	roster, err := s.teams.BySubdivision(ctx, division, subdivision)
	if err != nil {
		return nil, fmt.Errorf("loading roster of %d/%s: %w", division, subdivision, err)
	}

	members := make(map[string]bool, len(roster))
	for _, t := range roster {
		members[t.ID] = true
	}

	var own []domain.Game
	for _, g := range games {
		if members[g.HomeTeamID] && members[g.AwayTeamID] {
			own = append(own, g)
		}
	}
	return standings.Compute(own), nil
}
