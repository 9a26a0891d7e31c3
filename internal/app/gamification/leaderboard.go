package gamification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
	"github.com/ekima-network/ekima/internal/infra/metrics"
)

// DefaultLeaderboardTTL is how long a cached board is served before the
// ranking query runs again.
const DefaultLeaderboardTTL = 5 * time.Minute

// LeaderboardCache is a TTL read cache over the ranking query, keyed by
// (type, timeframe). A fresh entry is served as-is; a stale or missing
// entry is recomputed synchronously and replaced wholesale — entries are
// never patched, so a page can't mix stale and fresh rows. A background
// ticker drops the whole map every TTL so an idle cache never serves
// arbitrarily old pages.
type LeaderboardCache struct {
	source domain.RankingSource
	ttl    time.Duration
	limit  int

	mu      sync.Mutex
	entries map[boardKey]*cachedBoard
}

type boardKey struct {
	t  domain.LeaderboardType
	tf domain.Timeframe
}

type cachedBoard struct {
	board     *domain.Leaderboard
	fetchedAt time.Time
}

// NewLeaderboardCache creates a cache over the ranking source.
// Non-positive ttl/limit fall back to defaults (5 minutes, 100 rows).
func NewLeaderboardCache(source domain.RankingSource, ttl time.Duration, limit int) *LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	if limit <= 0 {
		limit = 100
	}
	return &LeaderboardCache{
		source:  source,
		ttl:     ttl,
		limit:   limit,
		entries: make(map[boardKey]*cachedBoard),
	}
}

// Get returns the ranked board for a metric and timeframe. Two calls
// within the TTL return the identical board value.
func (c *LeaderboardCache) Get(ctx context.Context, t domain.LeaderboardType, tf domain.Timeframe) (*domain.Leaderboard, error) {
	if !domain.ValidLeaderboard(t, tf) {
		return nil, domain.ErrInvalidLeaderboard
	}

	key := boardKey{t: t, tf: tf}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.ttl {
		metrics.LeaderboardHits.WithLabelValues("hit").Inc()
		return e.board, nil
	}

	metrics.LeaderboardHits.WithLabelValues("miss").Inc()
	entries, err := c.source.Rank(ctx, t, tf, c.limit)
	if err != nil {
		return nil, err
	}

	board := &domain.Leaderboard{
		Type:      t,
		Timeframe: tf,
		UpdatedAt: time.Now().UTC(),
		Entries:   entries,
	}
	c.entries[key] = &cachedBoard{board: board, fetchedAt: time.Now()}
	metrics.LeaderboardEntriesServed.WithLabelValues(string(t), string(tf)).Set(float64(len(entries)))
	return board, nil
}

// Invalidate drops every cached board. The next Get recomputes.
func (c *LeaderboardCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[boardKey]*cachedBoard)
	c.mu.Unlock()
}

// Run invalidates the cache every TTL until the context is canceled.
// It runs independently of the write path.
func (c *LeaderboardCache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Invalidate()
			log.Printf("[leaderboard] cache invalidated")
		}
	}
}
