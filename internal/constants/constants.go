package constants

import "time"

// Season cycle shape. Days 1-14 are the regular season, day 15 hosts
// playoffs, days 16-17 are the offseason window before rollover.
const (
	RegularSeasonDays = 14
	PlayoffDay        = 15
	AwardsDay         = 16
	SeasonLengthDays  = 17
)

// Division hierarchy shape.
const (
	DivisionCount        = 8
	TopDivision          = 1
	FloorDivision        = 8
	SubdivisionSize      = 8
	LargeSubdivisionSize = 16 // divisions 1 and 2
	Div2SubdivisionCount = 3
)

// Cascade stage sizes.
const (
	Div1RelegationCount   = 6
	Div2PromotionPerSub   = 2
	Div2RelegationPerSub  = 4
	StdRelegationPerSub   = 4
	PromotionPoolPerSub   = 2
	LargeBracketQualifier = 8 // divisions 1-2
	SmallBracketQualifier = 4 // divisions 3-8
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RolloverTimeout    = 5 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

// PlaceholderTeamID is the sink for historical game references left behind
// when an AI team is purged at rollover. Seeded by migration.
const PlaceholderTeamID = "00000000-0000-0000-0000-000000000000"
