package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
	"github.com/ekima-network/ekima/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// Profile Store Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestProfiles_UnknownUserNotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfiles_PutGetRoundtrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := domain.NewProfile("alice")
	p.TotalXP = 1234
	p.Gems = 175
	p.Coins = 620
	p.CurrentStreak = 4
	p.LongestStreak = 9
	p.LastActivity = day
	p.ActivityDays = []time.Time{day.AddDate(0, 0, -1), day}
	p.Achievements = []domain.UnlockedAchievement{
		{ID: "first_chapter", UnlockedAt: day.Add(10 * time.Hour)},
		{ID: "week_warrior", UnlockedAt: day.Add(12 * time.Hour)},
	}
	p.Goals.Day = day
	p.Goals.Chapters = 2
	p.Goals.StudyMinutes = 45
	p.Counters.ChaptersCompleted = 17
	p.Counters.PerfectQuizzes = 3

	if err := db.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.TotalXP != 1234 || got.Gems != 175 || got.Coins != 620 {
		t.Errorf("scalars wrong: xp=%d gems=%d coins=%d", got.TotalXP, got.Gems, got.Coins)
	}
	if got.CurrentStreak != 4 || got.LongestStreak != 9 {
		t.Errorf("streaks wrong: %d/%d", got.CurrentStreak, got.LongestStreak)
	}
	if !got.LastActivity.Equal(day) {
		t.Errorf("last activity: expected %v, got %v", day, got.LastActivity)
	}
	if len(got.ActivityDays) != 2 || !got.ActivityDays[0].Equal(day.AddDate(0, 0, -1)) {
		t.Errorf("activity days wrong: %v", got.ActivityDays)
	}
	if len(got.Achievements) != 2 || got.Achievements[0].ID != "first_chapter" {
		t.Errorf("achievements wrong: %v", got.Achievements)
	}
	if !got.Goals.Day.Equal(day) || got.Goals.Chapters != 2 || got.Goals.StudyMinutes != 45 {
		t.Errorf("goals wrong: %+v", got.Goals)
	}
	if got.Counters.ChaptersCompleted != 17 || got.Counters.PerfectQuizzes != 3 {
		t.Errorf("counters wrong: %+v", got.Counters)
	}
}

func TestProfiles_PutIsUpsert(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	p := domain.NewProfile("bob")
	if err := db.Put(ctx, p); err != nil {
		t.Fatalf("first put: %v", err)
	}

	p.TotalXP = 500
	p.Achievements = append(p.Achievements, domain.UnlockedAchievement{
		ID: "first_chapter", UnlockedAt: time.Now().UTC(),
	})
	if err := db.Put(ctx, p); err != nil {
		t.Fatalf("second put: %v", err)
	}
	// A third put with the same achievement must stay idempotent.
	if err := db.Put(ctx, p); err != nil {
		t.Fatalf("third put: %v", err)
	}

	got, err := db.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalXP != 500 {
		t.Errorf("expected updated xp 500, got %d", got.TotalXP)
	}
	if len(got.Achievements) != 1 {
		t.Errorf("expected 1 achievement after re-put, got %d", len(got.Achievements))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Ranking Tests
// ═══════════════════════════════════════════════════════════════════════════

func seedRankingData(t *testing.T, db *sqlite.DB) {
	t.Helper()
	ctx := context.Background()

	users := []struct {
		id     string
		xp     int64
		streak int
	}{
		{"alice", 5200, 12},
		{"bob", 1800, 3},
		{"carol", 950, 30},
	}
	for _, u := range users {
		p := domain.NewProfile(u.id)
		p.TotalXP = u.xp
		p.CurrentStreak = u.streak
		if err := db.Put(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", u.id, err)
		}
	}
}

func TestRanking_XPAllTime(t *testing.T) {
	db := testDB(t)
	seedRankingData(t, db)
	r := sqlite.NewRanking(db, domain.DefaultCurve())

	entries, err := r.Rank(context.Background(), domain.BoardXP, domain.TimeframeAllTime, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].UserID != "alice" || entries[0].Rank != 1 || entries[0].Value != 5200 {
		t.Errorf("unexpected leader: %+v", entries[0])
	}
	if entries[2].UserID != "carol" || entries[2].Rank != 3 {
		t.Errorf("unexpected last place: %+v", entries[2])
	}
}

func TestRanking_LevelDerivedFromXP(t *testing.T) {
	db := testDB(t)
	seedRankingData(t, db)
	r := sqlite.NewRanking(db, domain.DefaultCurve())

	entries, err := r.Rank(context.Background(), domain.BoardLevel, domain.TimeframeAllTime, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if entries[0].Value != 6 { // 5200 XP
		t.Errorf("expected level 6 leader, got %d", entries[0].Value)
	}
	if entries[2].Value != 1 { // 950 XP
		t.Errorf("expected level 1 last, got %d", entries[2].Value)
	}
}

func TestRanking_StreakBoard(t *testing.T) {
	db := testDB(t)
	seedRankingData(t, db)
	r := sqlite.NewRanking(db, domain.DefaultCurve())

	entries, err := r.Rank(context.Background(), domain.BoardStreak, domain.TimeframeAllTime, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if entries[0].UserID != "carol" || entries[0].Value != 30 {
		t.Errorf("expected carol's 30-day streak on top, got %+v", entries[0])
	}
}

func TestRanking_WindowedXPFromActivityLog(t *testing.T) {
	db := testDB(t)
	seedRankingData(t, db)
	ctx := context.Background()
	now := time.Now().UTC()

	logEvent := func(id, user string, at time.Time, xp int64) {
		t.Helper()
		ev := domain.ActivityEvent{ID: id, UserID: user, Type: domain.ActivityDailyLogin, OccurredAt: at}
		if err := db.Append(ctx, ev, xp); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// bob earned everything this week; alice's haul is older than the
	// weekly window and must not count.
	logEvent("e1", "bob", now.Add(-2*time.Hour), 300)
	logEvent("e2", "bob", now.Add(-30*time.Hour), 200)
	logEvent("e3", "alice", now.AddDate(0, 0, -10), 900)

	r := sqlite.NewRanking(db, domain.DefaultCurve())
	entries, err := r.Rank(ctx, domain.BoardXP, domain.TimeframeWeekly, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only bob inside the window, got %+v", entries)
	}
	if entries[0].UserID != "bob" || entries[0].Value != 500 {
		t.Errorf("expected bob with 500, got %+v", entries[0])
	}
}

func TestRanking_AchievementCounts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := domain.NewProfile("alice")
	p.Achievements = []domain.UnlockedAchievement{
		{ID: "first_chapter", UnlockedAt: now.AddDate(0, 0, -60)},
		{ID: "week_warrior", UnlockedAt: now.Add(-time.Hour)},
	}
	if err := db.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	r := sqlite.NewRanking(db, domain.DefaultCurve())

	all, err := r.Rank(ctx, domain.BoardAchievements, domain.TimeframeAllTime, 10)
	if err != nil {
		t.Fatalf("rank all_time: %v", err)
	}
	if len(all) != 1 || all[0].Value != 2 {
		t.Errorf("expected 2 lifetime unlocks, got %+v", all)
	}

	weekly, err := r.Rank(ctx, domain.BoardAchievements, domain.TimeframeWeekly, 10)
	if err != nil {
		t.Fatalf("rank weekly: %v", err)
	}
	if len(weekly) != 1 || weekly[0].Value != 1 {
		t.Errorf("expected 1 unlock inside the week, got %+v", weekly)
	}
}

func TestRanking_InvalidRequest(t *testing.T) {
	db := testDB(t)
	r := sqlite.NewRanking(db, domain.DefaultCurve())

	_, err := r.Rank(context.Background(), "karma", domain.TimeframeDaily, 10)
	if !errors.Is(err, domain.ErrInvalidLeaderboard) {
		t.Errorf("expected ErrInvalidLeaderboard, got %v", err)
	}
}

func TestActivityLog_AppendIdempotentByID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	ev := domain.ActivityEvent{ID: "evt-1", UserID: "alice", Type: domain.ActivityDailyLogin, OccurredAt: now}
	if err := db.Append(ctx, ev, 100); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.Append(ctx, ev, 100); err != nil {
		t.Fatalf("re-append: %v", err)
	}

	r := sqlite.NewRanking(db, domain.DefaultCurve())
	entries, err := r.Rank(ctx, domain.BoardXP, domain.TimeframeDaily, 10)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != 100 {
		t.Errorf("duplicate event id must not double-count: %+v", entries)
	}
}
