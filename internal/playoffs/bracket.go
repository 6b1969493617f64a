package playoffs

import (
	"fmt"

	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/standings"
)

// Matchup is one first-round bracket pairing. Seeds are 1-based; the higher
// seed hosts.
type Matchup struct {
	HomeSeed   int
	AwaySeed   int
	HomeTeamID string
	AwayTeamID string
}

// BracketSize returns the qualifier count for a division: top 8 for
// divisions 1-2, top 4 for divisions 3-8.
func BracketSize(division int) int {
	if division <= 2 {
		return 8
	}
	return 4
}

// Seed builds the single-elimination first round from a final standings
// table: 1v8, 2v7, 3v6, 4v5 for 8 qualifiers, 1v4 and 2v3 for 4. Later
// rounds are scheduled dynamically after prior results, outside this engine.
// A table with fewer than size entries returns ErrInsufficientTeams; callers
// skip that league's bracket.
func Seed(table []standings.Entry, size int) ([]Matchup, error) {
	if size != 4 && size != 8 {
		return nil, fmt.Errorf("unsupported bracket size %d", size)
	}
	if len(table) < size {
		return nil, fmt.Errorf("%w: need %d qualifiers, have %d", domain.ErrInsufficientTeams, size, len(table))
	}

	matchups := make([]Matchup, 0, size/2)
	for seed := 1; seed <= size/2; seed++ {
		opponent := size + 1 - seed
		matchups = append(matchups, Matchup{
			HomeSeed:   seed,
			AwaySeed:   opponent,
			HomeTeamID: table[seed-1].TeamID,
			AwayTeamID: table[opponent-1].TeamID,
		})
	}
	return matchups, nil
}
