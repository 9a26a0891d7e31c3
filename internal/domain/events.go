package domain

import "time"

// ─── Bus Event Types ────────────────────────────────────────────────────────

// EventType names a gamification state change published on the event bus.
type EventType string

const (
	EventXPAwarded           EventType = "xp_awarded"
	EventLevelUp             EventType = "level_up"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventStreakMilestone     EventType = "streak_milestone"
	EventGemsAwarded         EventType = "gems_awarded"
	EventCoinsAwarded        EventType = "coins_awarded"
)

// Event is one state-change notification for collaborators (UI,
// notifications). The bus is not the persistence or evaluation path.
type Event struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`

	// Payload fields; which are set depends on Type.
	Amount        int64  `json:"amount,omitempty"`         // xp/gems/coins delta
	Source        string `json:"source,omitempty"`         // award source tag
	OldLevel      int    `json:"old_level,omitempty"`      // level_up
	NewLevel      int    `json:"new_level,omitempty"`      // level_up / xp_awarded
	AchievementID string `json:"achievement_id,omitempty"` // achievement_unlocked
	Milestone     int    `json:"milestone,omitempty"`      // streak_milestone
}
