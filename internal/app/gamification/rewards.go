package gamification

import (
	"github.com/ekima-network/ekima/internal/domain"
)

// Per-level and per-milestone reward rates.
const (
	gemsPerLevel      = 50
	coinsPerLevel     = 100
	coinsPerMilestone = 10
)

// Dispatcher grants reward bundles: gems and coins mutate the profile
// directly, XP is routed through the ledger so multipliers and level
// detection stay in one place. Grants never subtract — negative or
// missing components clamp to 0.
type Dispatcher struct {
	ledger *Ledger
}

// NewDispatcher creates a dispatcher over the given ledger.
func NewDispatcher(ledger *Ledger) *Dispatcher {
	return &Dispatcher{ledger: ledger}
}

// Grant applies a reward to the profile and returns the applied deltas
// plus the XP award result (zero-valued when the bundle carries no XP).
// The award result matters to callers: achievement XP can itself cross a
// level boundary.
func (d *Dispatcher) Grant(p *domain.Profile, r domain.Reward, source string) (domain.Reward, domain.AwardResult, error) {
	r = r.Clamp()

	var award domain.AwardResult
	if r.XP > 0 {
		var err error
		award, err = d.ledger.Award(p, float64(r.XP), source)
		if err != nil {
			return domain.Reward{}, domain.AwardResult{}, err
		}
		r.XP = award.Granted
	}

	p.Gems += r.Gems
	p.Coins += r.Coins
	return r, award, nil
}

// LevelUpReward is the bundle for gaining levels: 50 gems and 100 coins
// per level, so a multi-level jump grants reward × levelsGained.
func LevelUpReward(levelsGained int) domain.Reward {
	if levelsGained < 0 {
		levelsGained = 0
	}
	return domain.Reward{
		Gems:  int64(levelsGained) * gemsPerLevel,
		Coins: int64(levelsGained) * coinsPerLevel,
	}
}

// MilestoneReward is the coin bonus for reaching a streak milestone.
func MilestoneReward(milestone int) domain.Reward {
	if milestone < 0 {
		milestone = 0
	}
	return domain.Reward{Coins: int64(milestone) * coinsPerMilestone}
}

// AchievementReward is the bundle defined by a catalog entry.
func AchievementReward(def domain.AchievementDef) domain.Reward {
	return domain.Reward{XP: def.RewardXP, Gems: def.RewardGems}
}
