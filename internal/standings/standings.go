package standings

import (
	"sort"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
)

// Entry holds the derived standings line for one team. Standings are never a
// persisted source of truth; they are recomputed from completed games.
type Entry struct {
	TeamID        string
	Played        int
	Wins          int
	Draws         int
	Losses        int
	ScoredFor     int
	ScoredAgainst int
	Diff          int
	Points        int
}

// Compute aggregates completed league games into a ranked table.
// Scoring: win 3, draw 1, loss 0. Tie-break order: points desc,
// differential desc, scored-for desc, then team ID for a stable total order.
func Compute(games []domain.Game) []Entry {
	byTeam := make(map[string]*Entry)
	entry := func(teamID string) *Entry {
		e, ok := byTeam[teamID]
		if !ok {
			e = &Entry{TeamID: teamID}
			byTeam[teamID] = e
		}
		return e
	}

	for _, g := range games {
		if g.Status != domain.GameCompleted || g.Type != domain.GameLeague {
			continue
		}

		home := entry(g.HomeTeamID)
		away := entry(g.AwayTeamID)

		home.Played++
		away.Played++
		home.ScoredFor += g.HomeScore
		home.ScoredAgainst += g.AwayScore
		away.ScoredFor += g.AwayScore
		away.ScoredAgainst += g.HomeScore

		switch {
		case g.HomeScore > g.AwayScore:
			home.Wins++
			away.Losses++
			home.Points += 3
		case g.HomeScore < g.AwayScore:
			away.Wins++
			home.Losses++
			away.Points += 3
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	table := make([]Entry, 0, len(byTeam))
	for _, e := range byTeam {
		e.Diff = e.ScoredFor - e.ScoredAgainst
		table = append(table, *e)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Diff != b.Diff {
			return a.Diff > b.Diff
		}
		if a.ScoredFor != b.ScoredFor {
			return a.ScoredFor > b.ScoredFor
		}
		return a.TeamID < b.TeamID
	})

	return table
}

// RankTeams orders teams by their cumulative season counters: points desc,
// wins desc, losses asc, then name for stability. Used by the cascade, where
// relegation and promotion picks read team counters rather than recomputing
// tables from games.
func RankTeams(teams []domain.Team) []domain.Team {
	ranked := make([]domain.Team, len(teams))
	copy(ranked, teams)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		return a.Name < b.Name
	})

	return ranked
}
