package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamWinPct(t *testing.T) {
	fresh := Team{}
	assert.Zero(t, fresh.WinPct())

	played := Team{Wins: 3, Losses: 1, Draws: 1}
	assert.Equal(t, 5, played.GamesPlayed())
	assert.InDelta(t, 0.6, played.WinPct(), 1e-9)
}

func TestGameWinnerID(t *testing.T) {
	g := Game{HomeTeamID: "h", AwayTeamID: "a", HomeScore: 2, AwayScore: 1, Status: GameCompleted}
	assert.Equal(t, "h", g.WinnerID())

	g.AwayScore = 3
	assert.Equal(t, "a", g.WinnerID())

	g.AwayScore = 2
	assert.Empty(t, g.WinnerID(), "draws have no winner")

	g.Status = GameScheduled
	g.AwayScore = 0
	assert.Empty(t, g.WinnerID(), "unfinished games have no winner")
}
