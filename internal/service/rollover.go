package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"

	"github.com/rs/zerolog"
)

// StageAIPurge checkpoints the synthetic-team purge at rollover. The purge
// must run at most once per ending season: a retried rollover that already
// ran the balancer would otherwise delete the synthetic teams the persisted
// plan minted, and the checkpointed balance stage would never re-insert
// them.
const StageAIPurge = "ai_team_purge"

// RolloverService sequences the season lifecycle: daily advancement, the
// awards boundary after playoffs, and the full day 17 -> 1 rollover.
type RolloverService struct {
	seasons     SeasonStore
	teams       TeamStore
	games       GameStore
	purge       PurgeStore
	checkpoints CheckpointStore
	cascade     *CascadeService
	fixtures    *FixtureService
	playoffs    *PlayoffService
	awards      AwardsSource
	logger      zerolog.Logger
}

func NewRolloverService(
	seasons SeasonStore,
	teams TeamStore,
	games GameStore,
	purge PurgeStore,
	checkpoints CheckpointStore,
	cascade *CascadeService,
	fixtures *FixtureService,
	playoffsSvc *PlayoffService,
	awards AwardsSource,
	logger zerolog.Logger,
) *RolloverService {
	return &RolloverService{
		seasons:     seasons,
		teams:       teams,
		games:       games,
		purge:       purge,
		checkpoints: checkpoints,
		cascade:     cascade,
		fixtures:    fixtures,
		playoffs:    playoffsSvc,
		awards:      awards,
		logger:      logger,
	}
}

type RolloverSummary struct {
	AIPurged     int
	Cascade      *CascadeSummary
	GamesCreated int
	NewSeason    *domain.Season
	Errors       []string
}

type AdvanceSummary struct {
	FromDay  int
	ToDay    int
	Phase    domain.SeasonPhase
	Rollover *RolloverSummary
}

// AdvanceDay runs the transition pending for the active season's current
// day. The external day-boundary scheduler calls this once per day; the
// engine itself holds no clock.
func (s *RolloverService) AdvanceDay(ctx context.Context) (*AdvanceSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RolloverTimeout)
	defer cancel()

	season, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading active season: %w", err)
	}

	s.logger.Info().
		Int("seq_no", season.SeqNo).
		Int("day", season.CurrentDay).
		Str("phase", string(season.Phase)).
		Msg("advancing season day")

	switch season.CurrentDay {
	case constants.RegularSeasonDays:
		// into the playoff day: seed and schedule the first round
		if _, err := s.playoffs.SeedBrackets(ctx, season); err != nil {
			return nil, err
		}
		return s.setDay(ctx, season, constants.PlayoffDay, domain.PhasePlayoff)

	case constants.PlayoffDay:
		// awards boundary: the collaborator computes and pays out, the
		// engine only logs the outcome; no structural changes here
		s.distributeAwards(ctx, season)
		return s.setDay(ctx, season, constants.AwardsDay, domain.PhaseOffseason)

	case constants.SeasonLengthDays:
		summary, err := s.Rollover(ctx, season)
		if err != nil {
			return nil, err
		}
		return &AdvanceSummary{
			FromDay:  season.CurrentDay,
			ToDay:    1,
			Phase:    domain.PhaseRegular,
			Rollover: summary,
		}, nil

	default:
		phase := season.Phase
		if season.CurrentDay < constants.RegularSeasonDays {
			phase = domain.PhaseRegular
		}
		return s.setDay(ctx, season, season.CurrentDay+1, phase)
	}
}

func (s *RolloverService) setDay(ctx context.Context, season *domain.Season, day int, phase domain.SeasonPhase) (*AdvanceSummary, error) {
	if err := s.seasons.SetDayPhase(ctx, season.ID, day, phase); err != nil {
		return nil, err
	}
	return &AdvanceSummary{FromDay: season.CurrentDay, ToDay: day, Phase: phase}, nil
}

func (s *RolloverService) distributeAwards(ctx context.Context, season *domain.Season) {
	resp, err := s.awards.DistributeAwards(ctx, season.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("season_id", season.ID).Msg("award distribution failed")
		return
	}
	s.logger.Info().
		Int("awards_granted", resp.Data.AwardsGranted).
		Int("teams_paid", resp.Data.TeamsPaid).
		Int64("prize_total", resp.Data.PrizeTotal).
		Msg("end-of-season awards distributed")
}

// Rollover performs the day 17 -> 1 transition: purge synthetic teams, run
// the cascade and balancer, reset counters, create the next season, and
// generate its schedule. Per-team purge failures are isolated; only
// structural failures abort.
func (s *RolloverService) Rollover(ctx context.Context, season *domain.Season) (*RolloverSummary, error) {
	summary := &RolloverSummary{}

	done, err := s.checkpoints.Completed(ctx, season.ID)
	if err != nil {
		return summary, fmt.Errorf("loading rollover checkpoints: %w", err)
	}

	if done[StageAIPurge] {
		s.logger.Info().Str("stage", StageAIPurge).Msg("synthetic teams already purged, skipping")
	} else {
		if err := s.purgeAITeams(ctx, summary); err != nil {
			return summary, err
		}
		if err := s.checkpoints.Mark(ctx, season.ID, StageAIPurge); err != nil {
			return summary, err
		}
	}

	cascadeSummary, err := s.cascade.Run(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("running cascade: %w", err)
	}
	summary.Cascade = cascadeSummary
	summary.Errors = append(summary.Errors, cascadeSummary.Errors...)

	if err := s.teams.ResetSeasonCounters(ctx); err != nil {
		return summary, err
	}

	newSeason := &domain.Season{
		SeqNo:      season.SeqNo + 1,
		StartDate:  nextSeasonStart(time.Now()),
		CurrentDay: 1,
		Phase:      domain.PhaseRegular,
	}
	if err := s.seasons.Insert(ctx, newSeason); err != nil {
		return summary, fmt.Errorf("creating season %d: %w", newSeason.SeqNo, err)
	}
	summary.NewSeason = newSeason

	schedSummary, err := s.fixtures.GenerateSeasonSchedule(ctx, newSeason)
	if err != nil {
		return summary, fmt.Errorf("generating season %d schedule: %w", newSeason.SeqNo, err)
	}
	summary.GamesCreated = schedSummary.GamesCreated
	summary.Errors = append(summary.Errors, schedSummary.Errors...)

	s.logger.Info().
		Int("new_seq_no", newSeason.SeqNo).
		Int("ai_purged", summary.AIPurged).
		Int("games_created", summary.GamesCreated).
		Int("errors", len(summary.Errors)).
		Msg("season rollover complete")
	return summary, nil
}

// purgeAITeams removes every synthetic team and its dependent records.
// Completed games are re-pointed at the placeholder team first so match
// history keeps valid references. One team's failure never stops the loop.
func (s *RolloverService) purgeAITeams(ctx context.Context, summary *RolloverSummary) error {
	aiTeams, err := s.teams.AITeams(ctx)
	if err != nil {
		return fmt.Errorf("listing synthetic teams: %w", err)
	}

	for _, t := range aiTeams {
		if err := s.games.RepointTeam(ctx, t.ID, constants.PlaceholderTeamID); err != nil {
			s.logger.Error().Err(err).Str("team_id", t.ID).Str("team_name", t.Name).
				Msg("failed to re-point games of synthetic team")
			summary.Errors = append(summary.Errors, fmt.Sprintf("repoint %s: %v", t.ID, err))
			continue
		}
		if err := s.purge.PurgeTeam(ctx, t.ID); err != nil {
			s.logger.Error().Err(err).Str("team_id", t.ID).Str("team_name", t.Name).
				Msg("failed to purge synthetic team")
			summary.Errors = append(summary.Errors, fmt.Sprintf("purge %s: %v", t.ID, err))
			continue
		}
		summary.AIPurged++
	}

	s.logger.Info().Int("purged", summary.AIPurged).Int("total", len(aiTeams)).Msg("synthetic teams purged")
	return nil
}

// nextSeasonStart anchors the new season at the next midnight so day
// numbers map cleanly onto calendar days.
func nextSeasonStart(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
