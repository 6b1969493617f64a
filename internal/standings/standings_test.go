package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
)

func completedLeagueGame(home, away string, homeScore, awayScore int) domain.Game {
	return domain.Game{
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Type:       domain.GameLeague,
		Status:     domain.GameCompleted,
	}
}

func TestCompute_PointsAndOrdering(t *testing.T) {
	games := []domain.Game{
		completedLeagueGame("alpha", "beta", 3, 1),
		completedLeagueGame("beta", "gamma", 2, 2),
		completedLeagueGame("gamma", "alpha", 0, 1),
	}

	table := Compute(games)

	require.Len(t, table, 3)
	assert.Equal(t, "alpha", table[0].TeamID)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 3, table[0].Diff)
	assert.Equal(t, "beta", table[1].TeamID)
	assert.Equal(t, 1, table[1].Points)
	assert.Equal(t, "gamma", table[2].TeamID)
	assert.Equal(t, 1, table[2].Points)
}

func TestCompute_TieBreakByDiffThenScoredFor(t *testing.T) {
	games := []domain.Game{
		// a and b both win once, a by a wider margin.
		completedLeagueGame("a", "x", 4, 0),
		completedLeagueGame("b", "y", 2, 0),
		// c and d draw with identical points and diff, c scored more.
		completedLeagueGame("c", "z", 3, 3),
		completedLeagueGame("d", "w", 1, 1),
	}

	table := Compute(games)

	require.Len(t, table, 8)
	assert.Equal(t, "a", table[0].TeamID)
	assert.Equal(t, "b", table[1].TeamID)
	assert.Equal(t, "c", table[2].TeamID)
	assert.Equal(t, "z", table[3].TeamID)
	assert.Equal(t, "d", table[4].TeamID)
	assert.Equal(t, "w", table[5].TeamID)
}

// TestCompute_IdenticalRecordsOrderByTeamID pins the deterministic fallback:
// fully tied teams sort by ID so repeated computations agree.
func TestCompute_IdenticalRecordsOrderByTeamID(t *testing.T) {
	games := []domain.Game{
		completedLeagueGame("m", "n", 1, 1),
	}

	for i := 0; i < 10; i++ {
		table := Compute(games)
		require.Len(t, table, 2)
		assert.Equal(t, "m", table[0].TeamID)
		assert.Equal(t, "n", table[1].TeamID)
	}
}

func TestCompute_IgnoresPlayoffAndUnfinishedGames(t *testing.T) {
	playoff := completedLeagueGame("alpha", "beta", 5, 0)
	playoff.Type = domain.GamePlayoff
	scheduled := completedLeagueGame("alpha", "beta", 0, 0)
	scheduled.Status = domain.GameScheduled

	table := Compute([]domain.Game{playoff, scheduled})

	assert.Empty(t, table)
}

func TestRankTeams_OrdersByCountersWithoutMutatingInput(t *testing.T) {
	teams := []domain.Team{
		{ID: "1", Name: "Storm", Points: 10, Wins: 3, Losses: 2},
		{ID: "2", Name: "Blaze", Points: 15, Wins: 5, Losses: 0},
		{ID: "3", Name: "Aces", Points: 10, Wins: 3, Losses: 1},
		{ID: "4", Name: "Wolves", Points: 10, Wins: 4, Losses: 1},
	}

	ranked := RankTeams(teams)

	require.Len(t, ranked, 4)
	assert.Equal(t, "Blaze", ranked[0].Name)
	assert.Equal(t, "Wolves", ranked[1].Name)
	assert.Equal(t, "Aces", ranked[2].Name)
	assert.Equal(t, "Storm", ranked[3].Name)
	assert.Equal(t, "Storm", teams[0].Name, "input order untouched")
}
