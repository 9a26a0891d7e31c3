package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
)

// Ranking runs the leaderboard queries. It reads profiles outside the
// write-path transaction; rankings tolerate slightly stale values.
type Ranking struct {
	db    *DB
	curve domain.Curve
}

// NewRanking creates a ranking source using the given level curve.
func NewRanking(db *DB, curve domain.Curve) *Ranking {
	return &Ranking{db: db, curve: curve}
}

// Rank returns the top users for a metric and timeframe, best first.
// XP and achievement boards honor the timeframe window via the activity
// log and unlock timestamps; level and streak are point-in-time facts and
// rank the current value for every timeframe.
func (r *Ranking) Rank(ctx context.Context, t domain.LeaderboardType, tf domain.Timeframe, limit int) ([]domain.LeaderboardEntry, error) {
	if !domain.ValidLeaderboard(t, tf) {
		return nil, domain.ErrInvalidLeaderboard
	}
	if limit <= 0 {
		limit = 100
	}

	switch t {
	case domain.BoardXP:
		if tf == domain.TimeframeAllTime {
			return r.query(ctx,
				`SELECT user_id, total_xp FROM profiles ORDER BY total_xp DESC, user_id ASC LIMIT ?`,
				limit)
		}
		return r.query(ctx,
			`SELECT user_id, SUM(xp_granted) AS v FROM activity_log
			 WHERE occurred_at >= ? GROUP BY user_id ORDER BY v DESC, user_id ASC LIMIT ?`,
			windowStart(tf, time.Now()).Unix(), limit)

	case domain.BoardLevel:
		entries, err := r.query(ctx,
			`SELECT user_id, total_xp FROM profiles ORDER BY total_xp DESC, user_id ASC LIMIT ?`,
			limit)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			entries[i].Value = int64(r.curve.Level(entries[i].Value))
		}
		return entries, nil

	case domain.BoardStreak:
		return r.query(ctx,
			`SELECT user_id, current_streak FROM profiles
			 ORDER BY current_streak DESC, user_id ASC LIMIT ?`,
			limit)

	case domain.BoardAchievements:
		if tf == domain.TimeframeAllTime {
			return r.query(ctx,
				`SELECT user_id, COUNT(*) AS v FROM achievements
				 GROUP BY user_id ORDER BY v DESC, user_id ASC LIMIT ?`,
				limit)
		}
		return r.query(ctx,
			`SELECT user_id, COUNT(*) AS v FROM achievements
			 WHERE unlocked_at >= ? GROUP BY user_id ORDER BY v DESC, user_id ASC LIMIT ?`,
			windowStart(tf, time.Now()).Unix(), limit)
	}

	return nil, domain.ErrInvalidLeaderboard
}

func (r *Ranking) query(ctx context.Context, q string, args ...any) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ranking query: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Value); err != nil {
			return nil, fmt.Errorf("%w: scan ranking row: %v", domain.ErrStoreUnavailable, err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// windowStart returns the inclusive lower bound for a timeframe.
// Daily means the current UTC day; weekly and monthly are rolling windows.
func windowStart(tf domain.Timeframe, now time.Time) time.Time {
	switch tf {
	case domain.TimeframeDaily:
		return domain.DayOf(now)
	case domain.TimeframeWeekly:
		return now.UTC().AddDate(0, 0, -7)
	case domain.TimeframeMonthly:
		return now.UTC().AddDate(0, 0, -30)
	}
	return time.Time{}
}
