// Package metrics provides Prometheus metrics for the gamification engine.
// Counters and gauges for XP flow, unlocks, streaks, and leaderboard cache
// behavior.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── XP / Levels ────────────────────────────────────────────────────────────

// XPAwarded tracks total XP granted, by award source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "xp_awarded_total",
	Help:      "Total XP granted, including multipliers.",
}, []string{"source"})

// LevelUps tracks level-up transitions.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "level_ups_total",
	Help:      "Total level-up transitions.",
})

// ─── Achievements / Rewards ─────────────────────────────────────────────────

// AchievementsUnlocked tracks unlocks by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"category"})

// RewardsGranted tracks secondary currency grants by kind and source.
var RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "rewards_granted_total",
	Help:      "Total gems and coins granted.",
}, []string{"kind", "source"})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakMilestones tracks streak milestone hits.
var StreakMilestones = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "streak_milestones_total",
	Help:      "Total streak milestones reached.",
})

// ─── Activity Pipeline ──────────────────────────────────────────────────────

// EventsProcessed tracks activity events by type and outcome.
var EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "activity_events_total",
	Help:      "Activity events processed by the write path.",
}, []string{"type", "outcome"})

// ─── Leaderboard Cache ──────────────────────────────────────────────────────

// LeaderboardHits tracks cache hits and misses.
var LeaderboardHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ekima",
	Name:      "leaderboard_cache_total",
	Help:      "Leaderboard cache lookups by result.",
}, []string{"result"})

// LeaderboardEntriesServed tracks the size of the last served board.
var LeaderboardEntriesServed = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "ekima",
	Name:      "leaderboard_entries",
	Help:      "Entry count of the most recently served leaderboard.",
}, []string{"type", "timeframe"})
