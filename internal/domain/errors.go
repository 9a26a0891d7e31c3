package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Validation errors — rejected before any mutation.
	ErrInvalidAmount        = errors.New("xp amount must be a non-negative finite number")
	ErrMalformedRequirement = errors.New("malformed achievement requirement")
	ErrDuplicateAchievement = errors.New("duplicate achievement id in catalog")
	ErrInvalidLeaderboard   = errors.New("unknown leaderboard type or timeframe")
	ErrMissingUserID        = errors.New("activity event missing user id")

	// Not-found errors — surfaced to the caller, nothing created implicitly
	// outside the documented first-activity default path.
	ErrProfileNotFound     = errors.New("profile not found")
	ErrAchievementNotFound = errors.New("achievement not found")

	// Store errors — the whole award/evaluate cycle aborts, no partial
	// state change. Callers decide retry policy.
	ErrStoreUnavailable = errors.New("profile store unavailable")
)
