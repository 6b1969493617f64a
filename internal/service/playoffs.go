package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/playoffs"
	"github.com/jimmy058910/replitballgame-sub004/internal/schedule"

	"github.com/rs/zerolog"
)

// playoffKickoff is the fixed slot for every first-round playoff game.
// Later rounds are scheduled dynamically by the match outcome collaborator.
const playoffKickoff = "20:00"

type PlayoffService struct {
	games     GameStore
	teams     TeamStore
	standings *StandingsService
	logger    zerolog.Logger
}

func NewPlayoffService(games GameStore, teams TeamStore, standingsSvc *StandingsService, logger zerolog.Logger) *PlayoffService {
	return &PlayoffService{games: games, teams: teams, standings: standingsSvc, logger: logger}
}

type BracketSummary struct {
	BracketsSeeded int
	GamesCreated   int
	LeaguesSkipped int
	Errors         []string
}

// SeedBrackets seeds the single-elimination first round for every
// subdivision from final regular-season standings and schedules it on the
// playoff day. Leagues with too few qualifiers are skipped, not failed.
func (s *PlayoffService) SeedBrackets(ctx context.Context, season *domain.Season) (*BracketSummary, error) {
	summary := &BracketSummary{}
	var all []domain.Game

	for div := constants.TopDivision; div <= constants.FloorDivision; div++ {
		tables, err := s.standings.DivisionTables(ctx, season, div)
		if err != nil {
			return nil, fmt.Errorf("computing division %d standings: %w", div, err)
		}

		subs := make([]string, 0, len(tables))
		for sub := range tables {
			subs = append(subs, sub)
		}
		sort.Strings(subs)

		size := playoffs.BracketSize(div)
		for _, sub := range subs {
			matchups, err := playoffs.Seed(tables[sub], size)
			if errors.Is(err, domain.ErrInsufficientTeams) {
				s.logger.Warn().Int("division", div).Str("subdivision", sub).Int("size", size).
					Msg("not enough qualifiers, skipping bracket")
				summary.LeaguesSkipped++
				continue
			}
			if err != nil {
				return nil, err
			}

			playoffDate := season.StartDate.AddDate(0, 0, constants.PlayoffDay-1)
			for _, m := range matchups {
				all = append(all, domain.Game{
					SeasonID:    season.ID,
					HomeTeamID:  m.HomeTeamID,
					AwayTeamID:  m.AwayTeamID,
					Day:         constants.PlayoffDay,
					ScheduledAt: schedule.KickoffFor(playoffDate, []string{playoffKickoff}, 0),
					Type:        domain.GamePlayoff,
					Status:      domain.GameScheduled,
				})
			}
			summary.BracketsSeeded++
		}
	}

	if err := s.games.InsertBatch(ctx, all); err != nil {
		return nil, fmt.Errorf("persisting playoff round: %w", err)
	}

	summary.GamesCreated = len(all)
	s.logger.Info().
		Int("brackets", summary.BracketsSeeded).
		Int("games", summary.GamesCreated).
		Int("skipped", summary.LeaguesSkipped).
		Msg("playoff brackets seeded")
	return summary, nil
}
