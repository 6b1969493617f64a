package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/schedule"

	"github.com/rs/zerolog"
)

type FixtureService struct {
	games  GameStore
	teams  TeamStore
	slots  SlotSource
	rng    *rand.Rand
	logger zerolog.Logger
}

func NewFixtureService(games GameStore, teams TeamStore, slots SlotSource, logger zerolog.Logger) *FixtureService {
	return &FixtureService{
		games:  games,
		teams:  teams,
		slots:  slots,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

// WithRand swaps the pairing random source, letting tests pin the top-tier
// randomized schedule.
func (s *FixtureService) WithRand(rng *rand.Rand) *FixtureService {
	s.rng = rng
	return s
}

type ScheduleSummary struct {
	GamesCreated   int
	LeaguesSkipped int
	// Skipped reports the duplicate-generation no-op: the season already
	// had a league schedule and nothing was created.
	Skipped bool
	Errors  []string
}

// GenerateSeasonSchedule bulk-creates the regular-season fixture list for
// every division and subdivision. A season that already has league games is
// left untouched and reported as a successful no-op.
func (s *FixtureService) GenerateSeasonSchedule(ctx context.Context, season *domain.Season) (*ScheduleSummary, error) {
	existing, err := s.games.CountLeague(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing schedule: %w", err)
	}
	if existing > 0 {
		s.logger.Info().Str("season_id", season.ID).Int("existing_games", existing).
			Msg("league schedule already exists, skipping generation")
		return &ScheduleSummary{Skipped: true}, nil
	}

	slotsByDay := s.fetchSlots(ctx)
	summary := &ScheduleSummary{}
	var all []domain.Game

	// division 1 is a single 16-team cohort on the randomized path
	topCohort, err := s.teams.ByDivision(ctx, constants.TopDivision)
	if err != nil {
		return nil, fmt.Errorf("loading division 1 roster: %w", err)
	}
	games, err := s.topDivisionGames(season, topCohort, slotsByDay)
	if err != nil {
		s.logger.Warn().Err(err).Msg("skipping division 1 schedule")
		summary.LeaguesSkipped++
		summary.Errors = append(summary.Errors, fmt.Sprintf("division 1: %v", err))
	} else {
		all = append(all, games...)
	}

	for div := 2; div <= constants.FloorDivision; div++ {
		subs, err := s.teams.Subdivisions(ctx, div)
		if err != nil {
			return nil, fmt.Errorf("listing subdivisions of division %d: %w", div, err)
		}

		for _, sub := range subs {
			roster, err := s.teams.BySubdivision(ctx, div, sub)
			if err != nil {
				return nil, fmt.Errorf("loading roster of %d/%s: %w", div, sub, err)
			}

			games, err := s.subdivisionGames(season, div, sub, roster, slotsByDay)
			if err != nil {
				s.logger.Warn().Err(err).Int("division", div).Str("subdivision", sub).
					Msg("skipping subdivision schedule")
				summary.LeaguesSkipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("%d/%s: %v", div, sub, err))
				continue
			}
			all = append(all, games...)
		}
	}

	if err := s.games.InsertBatch(ctx, all); err != nil {
		return nil, fmt.Errorf("persisting schedule: %w", err)
	}

	summary.GamesCreated = len(all)
	s.logger.Info().
		Str("season_id", season.ID).
		Int("games", summary.GamesCreated).
		Int("leagues_skipped", summary.LeaguesSkipped).
		Msg("season schedule generated")
	return summary, nil
}

// ScheduleRemainder builds best-effort fixtures for the rest of the regular
// season after a subdivision changes mid-season, e.g. a late joiner. It uses
// the rotation fallback and never the canonical table, since the remaining
// day range cannot complete a round-robin anyway.
func (s *FixtureService) ScheduleRemainder(ctx context.Context, season *domain.Season, division int, subdivision string, fromDay int) (*ScheduleSummary, error) {
	if fromDay < 1 || fromDay > constants.RegularSeasonDays {
		return nil, fmt.Errorf("day %d outside regular season range", fromDay)
	}

	roster, err := s.teams.BySubdivision(ctx, division, subdivision)
	if err != nil {
		return nil, fmt.Errorf("loading roster of %d/%s: %w", division, subdivision, err)
	}
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: %d/%s has %d teams", domain.ErrInsufficientTeams, division, subdivision, len(roster))
	}

	slotsByDay := s.fetchSlots(ctx)
	var all []domain.Game
	for day := fromDay; day <= constants.RegularSeasonDays; day++ {
		pairings := schedule.RotationDay(len(roster), day)
		all = append(all, s.buildGames(season, roster, pairings, day, slotsByDay[day])...)
	}

	if err := s.games.InsertBatch(ctx, all); err != nil {
		return nil, fmt.Errorf("persisting remainder schedule: %w", err)
	}

	s.logger.Info().Int("division", division).Str("subdivision", subdivision).
		Int("from_day", fromDay).Int("games", len(all)).
		Msg("best-effort remainder schedule generated")
	return &ScheduleSummary{GamesCreated: len(all)}, nil
}

func (s *FixtureService) subdivisionGames(season *domain.Season, division int, subdivision string, roster []domain.Team, slotsByDay map[int][]string) ([]domain.Game, error) {
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: %d teams", domain.ErrInsufficientTeams, len(roster))
	}

	var all []domain.Game
	if len(roster) == constants.SubdivisionSize {
		for day := 1; day <= constants.RegularSeasonDays; day++ {
			pairings, err := schedule.RoundRobinDay(day)
			if err != nil {
				return nil, err
			}
			all = append(all, s.buildGames(season, roster, pairings, day, slotsByDay[day])...)
		}
		return all, nil
	}

	s.logger.Warn().Int("division", division).Str("subdivision", subdivision).Int("teams", len(roster)).
		Msg("subdivision is not full, using best-effort rotation pairing")
	for day := 1; day <= constants.RegularSeasonDays; day++ {
		pairings := schedule.RotationDay(len(roster), day)
		all = append(all, s.buildGames(season, roster, pairings, day, slotsByDay[day])...)
	}
	return all, nil
}

// topDivisionGames draws the 16-team division 1 schedule: 8 matches per day
// for 14 days via randomized pairing without replacement. An approximation
// of a round-robin, not the real thing.
func (s *FixtureService) topDivisionGames(season *domain.Season, roster []domain.Team, slotsByDay map[int][]string) ([]domain.Game, error) {
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: %d teams", domain.ErrInsufficientTeams, len(roster))
	}

	var all []domain.Game
	for day := 1; day <= constants.RegularSeasonDays; day++ {
		pairings, err := schedule.RandomDay(len(roster), s.rng)
		if err != nil {
			return nil, err
		}
		all = append(all, s.buildGames(season, roster, pairings, day, slotsByDay[day])...)
	}
	return all, nil
}

func (s *FixtureService) buildGames(season *domain.Season, roster []domain.Team, pairings []schedule.Pairing, day int, daySlots []string) []domain.Game {
	calendarDay := season.StartDate.AddDate(0, 0, day-1)

	games := make([]domain.Game, 0, len(pairings))
	for i, p := range pairings {
		games = append(games, domain.Game{
			SeasonID:    season.ID,
			HomeTeamID:  roster[p.Home].ID,
			AwayTeamID:  roster[p.Away].ID,
			Day:         day,
			ScheduledAt: schedule.KickoffFor(calendarDay, daySlots, i),
			Type:        domain.GameLeague,
			Status:      domain.GameScheduled,
		})
	}
	return games
}

// fetchSlots asks the gameday collaborator for each day's kickoff slots,
// falling back to the static defaults when it cannot answer.
func (s *FixtureService) fetchSlots(ctx context.Context) map[int][]string {
	slotsByDay := make(map[int][]string, constants.RegularSeasonDays)
	for day := 1; day <= constants.RegularSeasonDays; day++ {
		slots, err := s.slots.DailySlots(ctx, day)
		if err != nil || len(slots) == 0 {
			s.logger.Debug().Err(err).Int("day", day).Msg("using default kickoff slots")
			slots = schedule.DefaultKickoffs
		}
		slotsByDay[day] = slots
	}
	return slotsByDay
}
