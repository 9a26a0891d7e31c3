package gamification

import (
	"fmt"

	"github.com/ekima-network/ekima/internal/domain"
)

// Engine evaluates the achievement catalog against user stats. It is
// fully data-driven: there is no per-achievement code path, only the
// compiled requirements each definition carries. New achievements are a
// catalog edit.
type Engine struct {
	defs []domain.AchievementDef
	byID map[string]int
}

// NewEngine creates a rule engine over an already-compiled catalog.
func NewEngine(defs []domain.AchievementDef) *Engine {
	byID := make(map[string]int, len(defs))
	for i, d := range defs {
		byID[d.ID] = i
	}
	return &Engine{defs: defs, byID: byID}
}

// Definitions returns the full catalog in definition order.
func (e *Engine) Definitions() []domain.AchievementDef { return e.defs }

// Definition looks up one catalog entry by id.
func (e *Engine) Definition(id string) (domain.AchievementDef, error) {
	i, ok := e.byID[id]
	if !ok {
		return domain.AchievementDef{}, fmt.Errorf("%w: %s", domain.ErrAchievementNotFound, id)
	}
	return e.defs[i], nil
}

// Evaluate returns the ids of definitions that newly qualify, in catalog
// order. Already-unlocked ids are skipped, so evaluation is idempotent:
// a second pass with the same context returns nothing new. A definition
// qualifies only when every requirement holds; fields resolve against the
// context first, then the snapshot, defaulting to 0.
func (e *Engine) Evaluate(p *domain.Profile, snap domain.StatSnapshot, ctx domain.EvalContext) []string {
	var newly []string
	for _, def := range e.defs {
		if p.HasAchievement(def.ID) {
			continue
		}
		if qualifies(def, snap, ctx) {
			newly = append(newly, def.ID)
		}
	}
	return newly
}

func qualifies(def domain.AchievementDef, snap domain.StatSnapshot, ctx domain.EvalContext) bool {
	for _, req := range def.Requirements {
		if !req.Holds(domain.Resolve(req.Field, snap, ctx)) {
			return false
		}
	}
	return true
}

// Snapshot flattens a profile into the field→value view predicates are
// evaluated against. These are real aggregates from recorded activity,
// not sampled guesses.
func Snapshot(p *domain.Profile, curve domain.Curve) domain.StatSnapshot {
	return domain.StatSnapshot{
		"level":                 float64(curve.Level(p.TotalXP)),
		"total_xp":              float64(p.TotalXP),
		"gems":                  float64(p.Gems),
		"coins":                 float64(p.Coins),
		"streak":                float64(p.CurrentStreak),
		"longest_streak":        float64(p.LongestStreak),
		"achievements":          float64(len(p.Achievements)),
		"chapters_completed":    float64(p.Counters.ChaptersCompleted),
		"quizzes_completed":     float64(p.Counters.QuizzesCompleted),
		"experiments_completed": float64(p.Counters.ExperimentsCompleted),
		"videos_watched":        float64(p.Counters.VideosWatched),
		"perfect_quizzes":       float64(p.Counters.PerfectQuizzes),
		"daily_goal_streak":     float64(p.Counters.DailyGoalStreak),
	}
}
