package domain

import "errors"

var (
	// ErrSeasonNotFound is returned when an operation requires an active
	// season and none exists. Fatal for the calling operation.
	ErrSeasonNotFound = errors.New("season not found")

	// ErrTeamNotFound is returned for lookups of unknown team IDs.
	ErrTeamNotFound = errors.New("team not found")

	// ErrInsufficientTeams marks leagues too small to schedule or seed.
	// Callers skip the league and continue.
	ErrInsufficientTeams = errors.New("insufficient teams")
)
