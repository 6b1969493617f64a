package schedule

import (
	"fmt"
	"math/rand"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
)

// Pairing references teams by their index into the ordered subdivision list.
// Home plays at home.
type Pairing struct {
	Home int
	Away int
}

const roundsPerCycle = 7

// canonicalRounds is the fixed single round-robin table for an 8-team
// subdivision: 7 rounds of 4 disjoint pairs spanning all 8 teams, every pair
// appearing exactly once. Round 1 pairs adjacent indices so that a roster
// ordered A-H opens with A-B, C-D, E-F, G-H.
var canonicalRounds = [roundsPerCycle][4]Pairing{
	{{0, 1}, {2, 3}, {4, 5}, {6, 7}},
	{{6, 0}, {1, 4}, {5, 2}, {3, 7}},
	{{5, 0}, {6, 1}, {7, 2}, {3, 4}},
	{{7, 0}, {3, 1}, {2, 4}, {6, 5}},
	{{4, 0}, {2, 1}, {6, 3}, {7, 5}},
	{{0, 3}, {1, 5}, {6, 2}, {4, 7}},
	{{0, 2}, {1, 7}, {5, 3}, {6, 4}},
}

// RoundRobinDay returns the canonical 8-team pairings for a regular-season
// day. Days 8-14 replay days 1-7 with home and away reversed, extending the
// table to a double round-robin in which every pair meets exactly twice.
func RoundRobinDay(day int) ([]Pairing, error) {
	if day < 1 || day > constants.RegularSeasonDays {
		return nil, fmt.Errorf("day %d outside regular season range 1-%d", day, constants.RegularSeasonDays)
	}

	round := canonicalRounds[(day-1)%roundsPerCycle]
	pairings := make([]Pairing, len(round))
	copy(pairings, round[:])

	if day > roundsPerCycle {
		for i, p := range pairings {
			pairings[i] = Pairing{Home: p.Away, Away: p.Home}
		}
	}
	return pairings, nil
}

// RotationDay is the best-effort fallback for subdivisions that do not hold
// exactly 8 teams, e.g. after a mid-season joiner. It pairs by index
// rotation and is NOT guaranteed to produce a complete round-robin; it must
// never be used in place of the canonical table for 8-team groups.
func RotationDay(teamCount, day int) []Pairing {
	if teamCount < 2 {
		return nil
	}

	half := teamCount / 2
	pairings := make([]Pairing, 0, half)
	for i := 0; i < half; i++ {
		opp := (i + day + half - 1) % teamCount
		if opp == i {
			// degenerate self-pair for this rotation offset, skip
			continue
		}
		pairings = append(pairings, Pairing{Home: i, Away: opp})
	}
	return pairings
}

// RandomDay produces one day of pairings for an even-sized group by drawing
// pairs without replacement from a shuffled order. Used for the 16-team top
// division, where 8 matches per day over 14 days approximate but do not
// guarantee a round-robin.
func RandomDay(teamCount int, rng *rand.Rand) ([]Pairing, error) {
	if teamCount < 2 || teamCount%2 != 0 {
		return nil, fmt.Errorf("random pairing requires an even team count, got %d", teamCount)
	}

	order := rng.Perm(teamCount)
	pairings := make([]Pairing, 0, teamCount/2)
	for i := 0; i < teamCount; i += 2 {
		pairings = append(pairings, Pairing{Home: order[i], Away: order[i+1]})
	}
	return pairings, nil
}
