package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKickoffFor_StaggersAcrossSlots(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	slots := []string{"16:00", "17:30"}

	first := KickoffFor(day, slots, 0)
	second := KickoffFor(day, slots, 1)
	third := KickoffFor(day, slots, 2)

	assert.Equal(t, time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2026, time.March, 2, 17, 30, 0, 0, time.UTC), second)
	assert.Equal(t, first, third, "slot list wraps around")
}

func TestKickoffFor_EmptySlotsFallBackToDefaults(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	got := KickoffFor(day, nil, 0)

	assert.Equal(t, time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC), got)
}

func TestKickoffFor_MalformedSlotFallsBack(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	got := KickoffFor(day, []string{"not-a-time"}, 0)

	assert.Equal(t, time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC), got)
}
