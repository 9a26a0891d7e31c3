package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// ProfileStore abstracts durable per-user profile storage. Get on an
// unknown user returns ErrProfileNotFound; the caller decides whether the
// lazy-default path applies. Put replaces the whole record atomically.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Put(ctx context.Context, profile *Profile) error
}

// RankingSource abstracts the leaderboard ranking query. Implementations
// may read profiles mid-update; leaderboard display tolerates slightly
// stale values.
type RankingSource interface {
	Rank(ctx context.Context, t LeaderboardType, tf Timeframe, limit int) ([]LeaderboardEntry, error)
}

// ActivityLog abstracts the append-only record of processed activity
// events. Timeframe-bounded rankings aggregate over it; lifetime counters
// live on the profile itself.
type ActivityLog interface {
	Append(ctx context.Context, ev ActivityEvent, xpGranted int64) error
}

// Publisher is the notification side of the event bus as seen by the
// write path.
type Publisher interface {
	Publish(ev Event)
}
