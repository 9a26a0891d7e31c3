package domain_test

import (
	"testing"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
)

func TestCurve_Level(t *testing.T) {
	c := domain.DefaultCurve()

	cases := []struct {
		xp    int64
		level int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1050, 2},
		{9999, 10},
		{99000, 100},
		{250000, 100}, // capped
		{-50, 1},
	}

	for _, tc := range cases {
		if got := c.Level(tc.xp); got != tc.level {
			t.Errorf("Level(%d): expected %d, got %d", tc.xp, tc.level, got)
		}
	}
}

func TestNewProfile_StarterBalance(t *testing.T) {
	p := domain.NewProfile("alice")

	if p.Gems != 100 {
		t.Errorf("expected 100 starter gems, got %d", p.Gems)
	}
	if p.Coins != 500 {
		t.Errorf("expected 500 starter coins, got %d", p.Coins)
	}
	if p.TotalXP != 0 || p.CurrentStreak != 0 {
		t.Error("xp and streak should start at zero")
	}
	if p.Goals.ChaptersTarget != 3 || p.Goals.QuizzesTarget != 2 || p.Goals.StudyMinutesTarget != 60 {
		t.Errorf("unexpected default goal targets: %+v", p.Goals)
	}
}

func TestDailyGoals_CompleteAndRollover(t *testing.T) {
	g := domain.DefaultDailyGoals()
	if g.Complete() {
		t.Error("fresh goals should be incomplete")
	}

	g.Chapters, g.Quizzes, g.StudyMinutes = 3, 2, 60
	if !g.Complete() {
		t.Error("goals at target should be complete")
	}

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g.RolloverTo(day)
	if g.Complete() {
		t.Error("rollover should reset progress")
	}
	if g.ChaptersTarget != 3 {
		t.Error("rollover should keep targets")
	}

	// Same day again is a no-op.
	g.Chapters = 1
	g.RolloverTo(day.Add(5 * time.Hour))
	if g.Chapters != 1 {
		t.Error("same-day rollover must not reset progress")
	}
}

func TestDayOf_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, 3, 1, 2, 30, 0, 0, loc) // 2026-02-28 21:30 UTC

	day := domain.DayOf(ts)
	want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("expected %v, got %v", want, day)
	}
}

func TestReward_Clamp(t *testing.T) {
	r := domain.Reward{XP: -10, Gems: 5, Coins: -1}.Clamp()
	if r.XP != 0 || r.Gems != 5 || r.Coins != 0 {
		t.Errorf("expected negatives zeroed, got %+v", r)
	}
}

func TestValidLeaderboard(t *testing.T) {
	if !domain.ValidLeaderboard(domain.BoardXP, domain.TimeframeWeekly) {
		t.Error("xp/weekly should be valid")
	}
	if domain.ValidLeaderboard("karma", domain.TimeframeDaily) {
		t.Error("unknown type should be invalid")
	}
	if domain.ValidLeaderboard(domain.BoardStreak, "hourly") {
		t.Error("unknown timeframe should be invalid")
	}
}
