// Package domain holds the pure gamification types shared across layers.
// No infrastructure dependency — profiles, achievements, streaks, and
// leaderboards are plain values passed between services.
package domain

import "time"

// ─── Profile Types ──────────────────────────────────────────────────────────

// Profile is the per-user gamification record. It is owned by the profile
// store and is always read and written as a whole — partial writes would
// let an unlock and its reward drift apart.
type Profile struct {
	UserID        string                `json:"user_id"`
	TotalXP       int64                 `json:"total_xp"`
	Gems          int64                 `json:"gems"`
	Coins         int64                 `json:"coins"`
	Achievements  []UnlockedAchievement `json:"achievements"`
	ActivityDays  []time.Time           `json:"activity_days"` // UTC midnights, ascending
	CurrentStreak int                   `json:"current_streak"`
	LongestStreak int                   `json:"longest_streak"`
	LastActivity  time.Time             `json:"last_activity"` // UTC midnight, zero if none
	Goals         DailyGoals            `json:"daily_goals"`
	Counters      ActivityCounters      `json:"counters"`
}

// NewProfile returns the lazy-default profile created on a user's first
// activity event. New users start with a small gem/coin balance.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID: userID,
		Gems:   100,
		Coins:  500,
		Goals:  DefaultDailyGoals(),
	}
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p *Profile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// HasActivityOn reports whether the given calendar day is recorded.
func (p *Profile) HasActivityOn(day time.Time) bool {
	day = DayOf(day)
	for _, d := range p.ActivityDays {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

// ActivityCounters aggregates lifetime activity totals. These back the
// achievement stat snapshot; they are derived from recorded events, never
// guessed.
type ActivityCounters struct {
	ChaptersCompleted    int64 `json:"chapters_completed"`
	QuizzesCompleted     int64 `json:"quizzes_completed"`
	ExperimentsCompleted int64 `json:"experiments_completed"`
	VideosWatched        int64 `json:"videos_watched"`
	PerfectQuizzes       int64 `json:"perfect_quizzes"`
	DailyGoalStreak      int64 `json:"daily_goal_streak"`
}

// ─── Daily Goals ────────────────────────────────────────────────────────────

// DailyGoals tracks today's targets and progress. Progress resets when a
// new calendar day is observed.
type DailyGoals struct {
	ChaptersTarget     int       `json:"chapters_target"`
	QuizzesTarget      int       `json:"quizzes_target"`
	StudyMinutesTarget int       `json:"study_minutes_target"`
	Chapters           int       `json:"chapters"`
	Quizzes            int       `json:"quizzes"`
	StudyMinutes       int       `json:"study_minutes"`
	Day                time.Time `json:"day"` // UTC midnight the progress belongs to
}

// DefaultDailyGoals returns the default daily targets.
func DefaultDailyGoals() DailyGoals {
	return DailyGoals{
		ChaptersTarget:     3,
		QuizzesTarget:      2,
		StudyMinutesTarget: 60,
	}
}

// Complete reports whether every target is met.
func (g DailyGoals) Complete() bool {
	return g.Chapters >= g.ChaptersTarget &&
		g.Quizzes >= g.QuizzesTarget &&
		g.StudyMinutes >= g.StudyMinutesTarget
}

// RolloverTo resets progress if day is a new calendar day, keeping targets.
func (g *DailyGoals) RolloverTo(day time.Time) {
	day = DayOf(day)
	if g.Day.Equal(day) {
		return
	}
	g.Day = day
	g.Chapters, g.Quizzes, g.StudyMinutes = 0, 0, 0
}

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakResult is the outcome of recording one day of activity.
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// StreakMilestones are the streak lengths that trigger a coin bonus and a
// streak_milestone event.
var StreakMilestones = []int{3, 7, 14, 30, 50, 100}

// DayOf normalizes a timestamp to its UTC calendar day (midnight).
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatProgression AchievementCategory = "progression"
	CatCompletion  AchievementCategory = "completion"
	CatStreak      AchievementCategory = "streak"
	CatPerformance AchievementCategory = "performance"
	CatActivity    AchievementCategory = "activity"
	CatSpecial     AchievementCategory = "special"
)

// Rarity ranks how hard an achievement is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// AchievementDef is one immutable catalog entry. Requirements are compiled
// from their string form exactly once, when the catalog loads.
type AchievementDef struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     AchievementCategory `json:"category"`
	Rarity       Rarity              `json:"rarity"`
	RewardXP     int64               `json:"reward_xp"`
	RewardGems   int64               `json:"reward_gems"`
	Icon         string              `json:"icon"`
	Requirements []Requirement       `json:"requirements"`
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// StatSnapshot is the flat field→value view of a profile that achievement
// predicates are evaluated against.
type StatSnapshot map[string]float64

// EvalContext carries event-local values for one evaluation pass. Context
// values shadow snapshot values of the same name, so a transient fact like
// this quiz's score can satisfy a predicate without being persisted.
type EvalContext map[string]float64

// Resolve looks a field up in the context first, then the snapshot.
// Unknown fields resolve to 0.
func Resolve(field string, snap StatSnapshot, ctx EvalContext) float64 {
	if v, ok := ctx[field]; ok {
		return v
	}
	return snap[field]
}

// ─── Reward Types ───────────────────────────────────────────────────────────

// Reward is a bundle of secondary currency and XP granted together.
type Reward struct {
	XP    int64 `json:"xp"`
	Gems  int64 `json:"gems"`
	Coins int64 `json:"coins"`
}

// Clamp zeroes any negative component. Grants never subtract.
func (r Reward) Clamp() Reward {
	if r.XP < 0 {
		r.XP = 0
	}
	if r.Gems < 0 {
		r.Gems = 0
	}
	if r.Coins < 0 {
		r.Coins = 0
	}
	return r
}

// Curve maps total XP to a level: floor(xp/xpPerLevel)+1, capped at
// MaxLevel. Level is always derived from stored XP, never stored itself,
// so the two cannot diverge.
type Curve struct {
	XPPerLevel int64 `json:"xp_per_level"`
	MaxLevel   int   `json:"max_level"`
}

// DefaultCurve is the platform level curve: 1000 XP per level, cap 100.
func DefaultCurve() Curve {
	return Curve{XPPerLevel: 1000, MaxLevel: 100}
}

// Level returns the level for a total XP amount.
func (c Curve) Level(totalXP int64) int {
	if totalXP < 0 {
		totalXP = 0
	}
	level := int(totalXP/c.XPPerLevel) + 1
	if level > c.MaxLevel {
		return c.MaxLevel
	}
	return level
}

// AwardResult is the outcome of one XP award.
type AwardResult struct {
	Granted   int64 `json:"granted"`
	NewTotal  int64 `json:"new_total"`
	LeveledUp bool  `json:"leveled_up"`
	NewLevel  int   `json:"new_level,omitempty"`
}

// ─── Activity Events ────────────────────────────────────────────────────────

// ActivityType categorizes incoming activity events.
type ActivityType string

const (
	ActivityChapterCompleted    ActivityType = "chapter_completed"
	ActivityQuizSubmitted       ActivityType = "quiz_submitted"
	ActivityExperimentCompleted ActivityType = "experiment_completed"
	ActivityVideoWatched        ActivityType = "video_watched"
	ActivityDailyLogin          ActivityType = "daily_login"
)

// Well-known numeric field names on activity events.
const (
	FieldScore        = "score"          // quiz score 0–100
	FieldTimeSpentSec = "time_spent_sec" // seconds spent on the activity
	FieldQuestions    = "questions"      // question count of a quiz
	FieldAttempts     = "attempts"       // quiz attempt number
	FieldDifficulty   = "difficulty"     // 1=easy 2=medium 3=hard 4=expert
	FieldEstimatedMin = "estimated_min"  // expected chapter minutes
)

// ActivityEvent is a raw activity delivered by the content/progress
// subsystem. Numeric facts live in Fields; Source tags the XP multiplier.
type ActivityEvent struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Type       ActivityType       `json:"type"`
	Source     string             `json:"source,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
	Fields     map[string]float64 `json:"fields,omitempty"`
}

// Field returns a numeric field, or 0 if absent.
func (e ActivityEvent) Field(name string) float64 {
	return e.Fields[name]
}

// ─── Leaderboard Types ──────────────────────────────────────────────────────

// LeaderboardType selects the ranking metric.
type LeaderboardType string

const (
	BoardXP           LeaderboardType = "xp"
	BoardLevel        LeaderboardType = "level"
	BoardStreak       LeaderboardType = "streak"
	BoardAchievements LeaderboardType = "achievements"
)

// Timeframe bounds the ranking window.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAllTime Timeframe = "all_time"
)

// LeaderboardEntry is one ranked row. Entries are read-only projections.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Value  int64  `json:"value"`
}

// Leaderboard is a whole ranked page. Refresh replaces the page wholesale.
type Leaderboard struct {
	Type      LeaderboardType    `json:"type"`
	Timeframe Timeframe          `json:"timeframe"`
	UpdatedAt time.Time          `json:"updated_at"`
	Entries   []LeaderboardEntry `json:"entries"`
}

// ValidLeaderboard reports whether the type/timeframe pair is served.
func ValidLeaderboard(t LeaderboardType, tf Timeframe) bool {
	switch t {
	case BoardXP, BoardLevel, BoardStreak, BoardAchievements:
	default:
		return false
	}
	switch tf {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly, TimeframeAllTime:
	default:
		return false
	}
	return true
}
