// Package gamification implements the Ekima gamification engine: XP
// ledger, streak tracking, achievement rules, reward dispatch, leaderboard
// cache, and the event bus that announces state changes.
package gamification

import (
	"fmt"
	"math"

	"github.com/ekima-network/ekima/internal/domain"
)

// Ledger applies XP awards and derives levels. Level is a pure function
// of total XP (domain.Curve); it is recomputed before and after each
// delta to detect level-ups. The ledger grants XP only — secondary
// currency for a level-up is the Dispatcher's job.
type Ledger struct {
	curve       domain.Curve
	multipliers map[string]float64
}

// DefaultSourceMultipliers is the award-source multiplier table.
// Unknown sources multiply by 1.
func DefaultSourceMultipliers() map[string]float64 {
	return map[string]float64{
		"perfect_quiz":    1.5,
		"fast_completion": 1.3,
		"challenge_mode":  2.0,
		"weekend_study":   1.2,
	}
}

// NewLedger creates a ledger. A nil multiplier table gets the defaults.
func NewLedger(curve domain.Curve, multipliers map[string]float64) *Ledger {
	if multipliers == nil {
		multipliers = DefaultSourceMultipliers()
	}
	return &Ledger{curve: curve, multipliers: multipliers}
}

// Curve returns the level curve the ledger derives levels with.
func (l *Ledger) Curve() domain.Curve { return l.curve }

// Award applies an XP delta to the profile. Bonuses apply in fixed order:
// source multiplier, streak bonus (+20% at a 7-day streak), daily-goal
// bonus (+10% when today's goals are complete); the final amount is
// rounded to the nearest integer after all multipliers, so the granted
// amount is never below baseAmount.
//
// A negative or non-finite baseAmount is rejected before any mutation.
func (l *Ledger) Award(p *domain.Profile, baseAmount float64, source string) (domain.AwardResult, error) {
	if baseAmount < 0 || math.IsNaN(baseAmount) || math.IsInf(baseAmount, 0) {
		return domain.AwardResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, baseAmount)
	}

	amount := baseAmount
	if m, ok := l.multipliers[source]; ok {
		amount *= m
	}
	if p.CurrentStreak >= 7 {
		amount *= 1.2
	}
	if p.Goals.Complete() {
		amount *= 1.1
	}
	granted := int64(math.Round(amount))

	oldLevel := l.curve.Level(p.TotalXP)
	p.TotalXP += granted
	newLevel := l.curve.Level(p.TotalXP)

	res := domain.AwardResult{
		Granted:   granted,
		NewTotal:  p.TotalXP,
		LeveledUp: newLevel > oldLevel,
	}
	if res.LeveledUp {
		res.NewLevel = newLevel
	}
	return res, nil
}
