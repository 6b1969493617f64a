package schedule

import "time"

// DefaultKickoffs is the static slot list used when the gameday collaborator
// cannot supply day-specific kickoff times.
var DefaultKickoffs = []string{"16:00", "17:00", "18:00", "19:00"}

// KickoffFor staggers matches across the supplied ordered daily slots:
// match index mod slot count. Slots are "HH:MM" strings anchored onto the
// given calendar day.
func KickoffFor(day time.Time, slots []string, matchIdx int) time.Time {
	if len(slots) == 0 {
		slots = DefaultKickoffs
	}
	slot := slots[matchIdx%len(slots)]

	t, err := time.Parse("15:04", slot)
	if err != nil {
		t, _ = time.Parse("15:04", DefaultKickoffs[0])
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
