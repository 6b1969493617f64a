package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
)

func roster(prefix string, division int, subdivision string, n int) []domain.Team {
	teams := make([]domain.Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, domain.Team{
			ID:          fmt.Sprintf("%s-%02d", prefix, i),
			Name:        fmt.Sprintf("%s-%02d", prefix, i),
			Division:    division,
			Subdivision: subdivision,
		})
	}
	return teams
}

func testSeason() *domain.Season {
	return &domain.Season{
		ID:         "season-1",
		SeqNo:      1,
		StartDate:  time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		CurrentDay: 1,
		Phase:      domain.PhaseRegular,
	}
}

func TestGenerateSeasonSchedule_NoOpWhenScheduleExists(t *testing.T) {
	inserted := false
	games := &mockGameStore{
		CountLeagueFunc: func(context.Context, string) (int, error) { return 112, nil },
		InsertBatchFunc: func(context.Context, []domain.Game) error {
			inserted = true
			return nil
		},
	}

	svc := NewFixtureService(games, &mockTeamStore{}, &mockSlotSource{}, zerolog.Nop())
	summary, err := svc.GenerateSeasonSchedule(context.Background(), testSeason())

	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Zero(t, summary.GamesCreated)
	assert.False(t, inserted)
}

func TestGenerateSeasonSchedule_FullSeason(t *testing.T) {
	topCohort := roster("d1", 1, "alpha", 16)
	subRoster := roster("d3a", 3, "alpha", 8)

	var created []domain.Game
	games := &mockGameStore{
		InsertBatchFunc: func(_ context.Context, batch []domain.Game) error {
			created = append(created, batch...)
			return nil
		},
	}
	teams := &mockTeamStore{
		ByDivisionFunc: func(_ context.Context, division int) ([]domain.Team, error) {
			if division == 1 {
				return topCohort, nil
			}
			return nil, nil
		},
		SubdivisionsFunc: func(_ context.Context, division int) ([]string, error) {
			if division == 3 {
				return []string{"alpha"}, nil
			}
			return nil, nil
		},
		BySubdivisionFunc: func(context.Context, int, string) ([]domain.Team, error) {
			return subRoster, nil
		},
	}
	slots := &mockSlotSource{
		DailySlotsFunc: func(context.Context, int) ([]string, error) {
			return nil, errors.New("gameday unavailable")
		},
	}

	svc := NewFixtureService(games, teams, slots, zerolog.Nop()).
		WithRand(rand.New(rand.NewSource(7)))
	summary, err := svc.GenerateSeasonSchedule(context.Background(), testSeason())

	require.NoError(t, err)
	assert.False(t, summary.Skipped)
	assert.Zero(t, summary.LeaguesSkipped)
	// 8 top-division matches plus 4 subdivision matches per day for 14 days
	assert.Equal(t, 168, summary.GamesCreated)
	require.Len(t, created, 168)

	perDay := make(map[int]int)
	subGamesPerTeam := make(map[string]int)
	pairMeetings := make(map[string]int)
	for _, g := range created {
		assert.Equal(t, "season-1", g.SeasonID)
		assert.Equal(t, domain.GameLeague, g.Type)
		assert.Equal(t, domain.GameScheduled, g.Status)
		assert.GreaterOrEqual(t, g.Day, 1)
		assert.LessOrEqual(t, g.Day, 14)
		perDay[g.Day]++

		wantDate := time.Date(2026, time.March, 1+g.Day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, wantDate.Year(), g.ScheduledAt.Year())
		assert.Equal(t, wantDate.YearDay(), g.ScheduledAt.YearDay())

		if g.HomeTeamID[:3] == "d3a" {
			subGamesPerTeam[g.HomeTeamID]++
			subGamesPerTeam[g.AwayTeamID]++
			pairMeetings[g.HomeTeamID+"|"+g.AwayTeamID]++
		}
	}

	for day := 1; day <= 14; day++ {
		assert.Equal(t, 12, perDay[day], "day %d", day)
	}
	// canonical table gives every subdivision team a full double round-robin
	for _, tm := range subRoster {
		assert.Equal(t, 14, subGamesPerTeam[tm.ID], "team %s", tm.ID)
	}
	for pair, count := range pairMeetings {
		assert.Equal(t, 1, count, "pair %s should host exactly once", pair)
	}
	assert.Len(t, pairMeetings, 56)
}

func TestGenerateSeasonSchedule_SkipsShortLeagues(t *testing.T) {
	var created []domain.Game
	games := &mockGameStore{
		InsertBatchFunc: func(_ context.Context, batch []domain.Game) error {
			created = append(created, batch...)
			return nil
		},
	}
	teams := &mockTeamStore{
		ByDivisionFunc: func(_ context.Context, division int) ([]domain.Team, error) {
			return roster("d1", 1, "alpha", 1), nil // too small to pair
		},
		SubdivisionsFunc: func(_ context.Context, division int) ([]string, error) {
			if division == 4 {
				return []string{"alpha"}, nil
			}
			return nil, nil
		},
		BySubdivisionFunc: func(context.Context, int, string) ([]domain.Team, error) {
			return roster("d4a", 4, "alpha", 1), nil
		},
	}

	svc := NewFixtureService(games, teams, &mockSlotSource{}, zerolog.Nop())
	summary, err := svc.GenerateSeasonSchedule(context.Background(), testSeason())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.LeaguesSkipped)
	assert.Len(t, summary.Errors, 2)
	assert.Empty(t, created)
}

func TestGenerateSeasonSchedule_FallbackForPartialSubdivision(t *testing.T) {
	var created []domain.Game
	games := &mockGameStore{
		InsertBatchFunc: func(_ context.Context, batch []domain.Game) error {
			created = append(created, batch...)
			return nil
		},
	}
	teams := &mockTeamStore{
		SubdivisionsFunc: func(_ context.Context, division int) ([]string, error) {
			if division == 5 {
				return []string{"beta"}, nil
			}
			return nil, nil
		},
		BySubdivisionFunc: func(context.Context, int, string) ([]domain.Team, error) {
			return roster("d5b", 5, "beta", 6), nil
		},
		ByDivisionFunc: func(context.Context, int) ([]domain.Team, error) {
			return roster("d1", 1, "alpha", 16), nil
		},
	}

	svc := NewFixtureService(games, teams, &mockSlotSource{}, zerolog.Nop()).
		WithRand(rand.New(rand.NewSource(7)))
	summary, err := svc.GenerateSeasonSchedule(context.Background(), testSeason())

	require.NoError(t, err)
	assert.Zero(t, summary.LeaguesSkipped)

	fallback := 0
	for _, g := range created {
		if g.HomeTeamID[:3] == "d5b" {
			fallback++
			assert.NotEqual(t, g.HomeTeamID, g.AwayTeamID)
		}
	}
	assert.NotZero(t, fallback, "partial subdivision still gets a best-effort schedule")
}

func TestScheduleRemainder_GeneratesFromGivenDay(t *testing.T) {
	var created []domain.Game
	games := &mockGameStore{
		InsertBatchFunc: func(_ context.Context, batch []domain.Game) error {
			created = append(created, batch...)
			return nil
		},
	}
	teams := &mockTeamStore{
		BySubdivisionFunc: func(context.Context, int, string) ([]domain.Team, error) {
			return roster("d6a", 6, "alpha", 3), nil
		},
	}

	svc := NewFixtureService(games, teams, &mockSlotSource{}, zerolog.Nop())
	summary, err := svc.ScheduleRemainder(context.Background(), testSeason(), 6, "alpha", 10)

	require.NoError(t, err)
	assert.Equal(t, len(created), summary.GamesCreated)
	for _, g := range created {
		assert.GreaterOrEqual(t, g.Day, 10)
		assert.LessOrEqual(t, g.Day, 14)
	}
}

func TestScheduleRemainder_Validation(t *testing.T) {
	teams := &mockTeamStore{
		BySubdivisionFunc: func(context.Context, int, string) ([]domain.Team, error) {
			return roster("d6a", 6, "alpha", 1), nil
		},
	}
	svc := NewFixtureService(&mockGameStore{}, teams, &mockSlotSource{}, zerolog.Nop())

	_, err := svc.ScheduleRemainder(context.Background(), testSeason(), 6, "alpha", 0)
	assert.Error(t, err)

	_, err = svc.ScheduleRemainder(context.Background(), testSeason(), 6, "alpha", 15)
	assert.Error(t, err)

	_, err = svc.ScheduleRemainder(context.Background(), testSeason(), 6, "alpha", 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientTeams)
}
