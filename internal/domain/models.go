package domain

import (
	"time"
)

type SeasonPhase string

const (
	PhaseRegular   SeasonPhase = "regular"
	PhasePlayoff   SeasonPhase = "playoff"
	PhaseOffseason SeasonPhase = "offseason"
)

// Season is the single active competition cycle. A new record supersedes the
// old one at rollover; only CurrentDay and Phase mutate in place.
type Season struct {
	ID         string
	SeqNo      int
	StartDate  time.Time
	CurrentDay int // 1-17
	Phase      SeasonPhase
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Team belongs to exactly one (division, subdivision) pair. Win/loss/draw and
// point counters are cumulative for the current season and reset at rollover.
type Team struct {
	ID          string
	Name        string
	Division    int // 1 (top) through 8 (floor)
	Subdivision string
	Wins        int
	Losses      int
	Draws       int
	Points      int
	IsAI        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Team) GamesPlayed() int {
	return t.Wins + t.Losses + t.Draws
}

// WinPct is the share of played games won, 0 when the team has not played.
func (t *Team) WinPct() float64 {
	played := t.GamesPlayed()
	if played == 0 {
		return 0
	}
	return float64(t.Wins) / float64(played)
}

type GameType string

const (
	GameLeague  GameType = "league"
	GamePlayoff GameType = "playoff"
)

type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameCompleted GameStatus = "completed"
)

// Game is a scheduled or completed fixture. Scores arrive from an external
// match outcome source; this engine never computes them.
type Game struct {
	ID          string
	SeasonID    string
	HomeTeamID  string
	AwayTeamID  string
	Day         int // 1-14 league, 15 playoff
	ScheduledAt time.Time
	Type        GameType
	Status      GameStatus
	HomeScore   int
	AwayScore   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WinnerID returns the winning team ID, or "" for a draw or an
// uncompleted game.
func (g *Game) WinnerID() string {
	if g.Status != GameCompleted {
		return ""
	}
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeTeamID
	case g.AwayScore > g.HomeScore:
		return g.AwayTeamID
	}
	return ""
}
