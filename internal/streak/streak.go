// Package streak implements the day-granular streak calculator: given a
// goal's prior counters and a new checkin date it derives the updated
// streak, the XP earned, freeze consumption and goal completion.
package streak

import "time"

// XP award constants for a single checkin.
const (
	BaseXP           = 10
	StreakMultiplier = 5
	WeeklyBonus      = 100
)

// Streak status labels, derived from a goal's accumulated points.
const (
	StatusUninitiated = "uninitiated"
	StatusBeginner    = "Beginner"
	StatusNovice      = "Novice"
	StatusConsistent  = "Consistent"
	StatusLegendary   = "Legendary"
)

// State is the subset of a goal the calculator reads
type State struct {
	CurrentStreak int
	LongestStreak int
	TotalPoints   int
	FreezeCount   int
	TargetDays    int
	StreakStatus  string
	LastCheckin   *time.Time // nil before the first checkin
}

// Result holds the updated counters plus what happened during the update
type Result struct {
	CurrentStreak int
	LongestStreak int
	TotalPoints   int
	FreezeCount   int
	StreakStatus  string
	PointsEarned  int
	SameDay       bool
	FreezeUsed    bool
	Completed     bool
}

// Day truncates t to UTC day granularity. All streak arithmetic
// operates on these normalized values.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// Advance applies a checkin on the given date to the goal state.
//
// A duplicate checkin on the same calendar day is an idempotent no-op.
// A gap of one calendar day extends the streak; a wider gap consumes a
// freeze if one is available, otherwise the streak resets to 1. The
// goal completes the first time the streak reaches the target.
func Advance(s State, today time.Time) Result {
	today = Day(today)

	res := Result{
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		TotalPoints:   s.TotalPoints,
		FreezeCount:   s.FreezeCount,
		StreakStatus:  s.StreakStatus,
	}

	if s.LastCheckin != nil && Day(*s.LastCheckin).Equal(today) {
		res.SameDay = true
		return res
	}

	switch {
	case s.LastCheckin == nil:
		// First ever checkin starts the streak
		res.CurrentStreak = 1
	case DaysBetween(*s.LastCheckin, today) > 1:
		if s.FreezeCount > 0 {
			res.FreezeCount--
			res.CurrentStreak++
			res.FreezeUsed = true
		} else {
			res.CurrentStreak = 1
		}
	default:
		res.CurrentStreak++
	}

	res.PointsEarned = BaseXP + res.CurrentStreak*StreakMultiplier
	res.TotalPoints += res.PointsEarned

	// Status is derived from the base award only; the weekly bonus
	// lands on the total afterwards.
	res.StreakStatus = StatusForPoints(res.TotalPoints)

	if res.CurrentStreak%7 == 0 {
		res.PointsEarned += WeeklyBonus
		res.TotalPoints += WeeklyBonus
	}

	if res.CurrentStreak > res.LongestStreak {
		res.LongestStreak = res.CurrentStreak
	}

	// Monthly milestone earns a freeze back
	if res.CurrentStreak%30 == 0 {
		res.FreezeCount++
	}

	if s.TargetDays > 0 && res.CurrentStreak >= s.TargetDays {
		res.Completed = true
	}

	return res
}

// StatusForPoints maps accumulated goal points to a streak status label
func StatusForPoints(points int) string {
	switch {
	case points >= 1000:
		return StatusLegendary
	case points >= 500:
		return StatusConsistent
	case points >= 100:
		return StatusNovice
	default:
		return StatusBeginner
	}
}

// CompletionPercentage reports streak progress against the target,
// rounded to two decimal places
func CompletionPercentage(currentStreak, targetDays int) float64 {
	if targetDays <= 0 {
		return 0
	}
	progress := float64(currentStreak) / float64(targetDays) * 100
	return float64(int(progress*100+0.5)) / 100
}
