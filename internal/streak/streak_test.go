package streak

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func TestAdvanceFirstCheckin(t *testing.T) {
	res := Advance(State{TargetDays: 30, FreezeCount: 1}, day("2026-08-01"))

	if res.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", res.CurrentStreak)
	}
	if res.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", res.LongestStreak)
	}
	if res.SameDay {
		t.Error("first checkin flagged as same day")
	}
	if res.PointsEarned != BaseXP+1*StreakMultiplier {
		t.Errorf("PointsEarned = %d, want %d", res.PointsEarned, BaseXP+StreakMultiplier)
	}
}

func TestAdvanceSameDayIsIdempotent(t *testing.T) {
	s := State{
		CurrentStreak: 3,
		LongestStreak: 5,
		TotalPoints:   120,
		FreezeCount:   1,
		TargetDays:    30,
		StreakStatus:  StatusNovice,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-10"))

	if !res.SameDay {
		t.Fatal("expected same-day no-op")
	}
	if res.CurrentStreak != 3 || res.LongestStreak != 5 || res.TotalPoints != 120 || res.FreezeCount != 1 {
		t.Errorf("same-day checkin mutated state: %+v", res)
	}
	if res.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d, want 0", res.PointsEarned)
	}
}

func TestAdvanceConsecutiveDay(t *testing.T) {
	s := State{
		CurrentStreak: 4,
		LongestStreak: 4,
		TargetDays:    30,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-11"))

	if res.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", res.CurrentStreak)
	}
	if res.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", res.LongestStreak)
	}
}

func TestAdvanceGapResetsWithoutFreeze(t *testing.T) {
	s := State{
		CurrentStreak: 10,
		LongestStreak: 10,
		TargetDays:    30,
		FreezeCount:   0,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-12"))

	if res.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after gap", res.CurrentStreak)
	}
	if res.LongestStreak != 10 {
		t.Errorf("LongestStreak = %d, want 10 preserved", res.LongestStreak)
	}
	if res.FreezeUsed {
		t.Error("FreezeUsed = true with no freezes available")
	}
}

func TestAdvanceGapConsumesFreeze(t *testing.T) {
	s := State{
		CurrentStreak: 10,
		LongestStreak: 10,
		TargetDays:    30,
		FreezeCount:   2,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-13"))

	if !res.FreezeUsed {
		t.Fatal("expected freeze consumption to bridge the gap")
	}
	if res.CurrentStreak != 11 {
		t.Errorf("CurrentStreak = %d, want 11", res.CurrentStreak)
	}
	if res.FreezeCount != 1 {
		t.Errorf("FreezeCount = %d, want 1", res.FreezeCount)
	}
}

func TestAdvanceCompletesGoalAtTarget(t *testing.T) {
	s := State{
		CurrentStreak: 2,
		LongestStreak: 2,
		TargetDays:    3,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-11"))

	if !res.Completed {
		t.Fatal("goal should complete when streak reaches target")
	}
	if res.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", res.CurrentStreak)
	}
}

func TestAdvanceThreeDayScenario(t *testing.T) {
	// createGoal(targetDays=3) then checkins on three consecutive days
	s := State{TargetDays: 3, FreezeCount: 1}
	dates := []string{"2026-08-01", "2026-08-02", "2026-08-03"}

	var res Result
	for i, d := range dates {
		res = Advance(s, day(d))
		if res.CurrentStreak != i+1 {
			t.Fatalf("day %d: CurrentStreak = %d, want %d", i+1, res.CurrentStreak, i+1)
		}
		last := day(d)
		s = State{
			CurrentStreak: res.CurrentStreak,
			LongestStreak: res.LongestStreak,
			TotalPoints:   res.TotalPoints,
			FreezeCount:   res.FreezeCount,
			TargetDays:    3,
			StreakStatus:  res.StreakStatus,
			LastCheckin:   &last,
		}
	}

	if !res.Completed {
		t.Error("goal not completed after reaching target")
	}
	if res.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", res.LongestStreak)
	}
}

func TestAdvanceWeeklyMilestoneBonus(t *testing.T) {
	s := State{
		CurrentStreak: 6,
		LongestStreak: 6,
		TargetDays:    30,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-11"))

	want := BaseXP + 7*StreakMultiplier + WeeklyBonus
	if res.PointsEarned != want {
		t.Errorf("PointsEarned = %d, want %d on 7-day milestone", res.PointsEarned, want)
	}
}

func TestAdvanceWeeklyBonusExcludedFromStatus(t *testing.T) {
	// 50 + base 45 = 95 stays Beginner; only the +100 bonus pushes the
	// total past the Novice threshold, so the label waits a day.
	s := State{
		CurrentStreak: 6,
		LongestStreak: 6,
		TotalPoints:   50,
		TargetDays:    30,
		StreakStatus:  StatusBeginner,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-11"))

	if res.TotalPoints != 195 {
		t.Errorf("TotalPoints = %d, want 195", res.TotalPoints)
	}
	if res.StreakStatus != StatusBeginner {
		t.Errorf("StreakStatus = %q, want %q before bonus is counted", res.StreakStatus, StatusBeginner)
	}

	last := day("2026-08-11")
	s = State{
		CurrentStreak: res.CurrentStreak,
		LongestStreak: res.LongestStreak,
		TotalPoints:   res.TotalPoints,
		FreezeCount:   res.FreezeCount,
		TargetDays:    30,
		StreakStatus:  res.StreakStatus,
		LastCheckin:   &last,
	}
	res = Advance(s, day("2026-08-12"))

	if res.StreakStatus != StatusNovice {
		t.Errorf("StreakStatus = %q, want %q on the following checkin", res.StreakStatus, StatusNovice)
	}
}

func TestAdvanceMonthlyMilestoneEarnsFreeze(t *testing.T) {
	s := State{
		CurrentStreak: 29,
		LongestStreak: 29,
		TargetDays:    100,
		FreezeCount:   0,
		LastCheckin:   dayPtr("2026-08-10"),
	}

	res := Advance(s, day("2026-08-11"))

	if res.FreezeCount != 1 {
		t.Errorf("FreezeCount = %d, want 1 after 30-day milestone", res.FreezeCount)
	}
}

func TestStatusForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, StatusBeginner},
		{99, StatusBeginner},
		{100, StatusNovice},
		{499, StatusNovice},
		{500, StatusConsistent},
		{999, StatusConsistent},
		{1000, StatusLegendary},
		{5000, StatusLegendary},
	}

	for _, tt := range tests {
		if got := StatusForPoints(tt.points); got != tt.want {
			t.Errorf("StatusForPoints(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2026-08-10", "2026-08-10", 0},
		{"2026-08-10", "2026-08-11", 1},
		{"2026-08-10", "2026-08-13", 3},
		{"2026-12-31", "2027-01-01", 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(day(tt.a), day(tt.b)); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 8, 10, 2, 30, 0, 0, loc) // 2026-08-09 21:30 UTC

	got := Day(in)
	want := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		streak, target int
		want           float64
	}{
		{0, 30, 0},
		{15, 30, 50},
		{1, 3, 33.33},
		{3, 3, 100},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := CompletionPercentage(tt.streak, tt.target); got != tt.want {
			t.Errorf("CompletionPercentage(%d, %d) = %v, want %v", tt.streak, tt.target, got, tt.want)
		}
	}
}
