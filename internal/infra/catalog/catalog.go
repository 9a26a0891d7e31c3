// Package catalog loads the achievement catalog. Achievements are pure
// data: adding one is a catalog edit, never a code change. Requirement
// strings are compiled to structured predicates exactly once, here — a
// malformed requirement fails the load, not a later evaluation.
package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ekima-network/ekima/internal/domain"
)

// Entry is the authoring form of one achievement, as written in TOML.
type Entry struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Category     string   `toml:"category"`
	Rarity       string   `toml:"rarity"`
	RewardXP     int64    `toml:"reward_xp"`
	RewardGems   int64    `toml:"reward_gems"`
	Icon         string   `toml:"icon"`
	Requirements []string `toml:"requirements"`
}

type file struct {
	Achievements []Entry `toml:"achievement"`
}

// Load reads a TOML catalog file and compiles it.
func Load(path string) ([]domain.AchievementDef, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	defs, err := Compile(f.Achievements)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return defs, nil
}

// Compile validates entries and parses every requirement string.
// Definition order is preserved — it is the unlock display order.
func Compile(entries []Entry) ([]domain.AchievementDef, error) {
	seen := make(map[string]bool, len(entries))
	defs := make([]domain.AchievementDef, 0, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("achievement with empty id")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAchievement, e.ID)
		}
		seen[e.ID] = true

		if len(e.Requirements) == 0 {
			return nil, fmt.Errorf("achievement %s: no requirements", e.ID)
		}

		def := domain.AchievementDef{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    domain.AchievementCategory(e.Category),
			Rarity:      domain.Rarity(e.Rarity),
			RewardXP:    e.RewardXP,
			RewardGems:  e.RewardGems,
			Icon:        e.Icon,
		}
		for _, req := range e.Requirements {
			compiled, err := domain.ParseRequirement(req)
			if err != nil {
				return nil, fmt.Errorf("achievement %s: %w", e.ID, err)
			}
			def.Requirements = append(def.Requirements, compiled)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Default returns the built-in catalog, compiled. The built-ins are
// covered by tests, so a parse failure here is a programming error.
func Default() []domain.AchievementDef {
	defs, err := Compile(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin achievement catalog invalid: %v", err))
	}
	return defs
}

// builtin is the default achievement set shipped with the engine.
var builtin = []Entry{
	// ── Progression ────────────────────────────────────────────────
	{
		ID: "level_5", Name: "Rising Scholar", Description: "Reach Level 5",
		Category: "progression", Rarity: "common", RewardXP: 100, RewardGems: 25,
		Icon: "star", Requirements: []string{"level >= 5"},
	},
	{
		ID: "level_10", Name: "Dedicated Learner", Description: "Reach Level 10",
		Category: "progression", Rarity: "rare", RewardXP: 250, RewardGems: 50,
		Icon: "trophy", Requirements: []string{"level >= 10"},
	},
	{
		ID: "level_25", Name: "Knowledge Seeker", Description: "Reach Level 25",
		Category: "progression", Rarity: "epic", RewardXP: 500, RewardGems: 100,
		Icon: "crown", Requirements: []string{"level >= 25"},
	},

	// ── Completion ─────────────────────────────────────────────────
	{
		ID: "first_chapter", Name: "First Steps", Description: "Complete your first chapter",
		Category: "completion", Rarity: "common", RewardXP: 50, RewardGems: 10,
		Icon: "book", Requirements: []string{"chapters_completed >= 1"},
	},
	{
		ID: "chapter_marathon", Name: "Chapter Marathon", Description: "Complete 50 chapters",
		Category: "completion", Rarity: "epic", RewardXP: 1000, RewardGems: 200,
		Icon: "target", Requirements: []string{"chapters_completed >= 50"},
	},
	{
		ID: "subject_master", Name: "Subject Master", Description: "Complete all topics in a subject",
		Category: "completion", Rarity: "rare", RewardXP: 300, RewardGems: 75,
		Icon: "award", Requirements: []string{"subject_completion >= 100"},
	},

	// ── Streaks ────────────────────────────────────────────────────
	{
		ID: "week_warrior", Name: "Week Warrior", Description: "Study for 7 consecutive days",
		Category: "streak", Rarity: "rare", RewardXP: 200, RewardGems: 50,
		Icon: "flame", Requirements: []string{"streak >= 7"},
	},
	{
		ID: "month_master", Name: "Monthly Master", Description: "Study for 30 consecutive days",
		Category: "streak", Rarity: "legendary", RewardXP: 1000, RewardGems: 300,
		Icon: "calendar", Requirements: []string{"streak >= 30"},
	},

	// ── Performance ────────────────────────────────────────────────
	{
		ID: "perfect_score", Name: "Perfectionist", Description: "Get 100% on a quiz",
		Category: "performance", Rarity: "rare", RewardXP: 150, RewardGems: 40,
		Icon: "star", Requirements: []string{"quiz_score >= 100"},
	},
	{
		ID: "speed_demon", Name: "Speed Demon", Description: "Complete a chapter in under 10 minutes",
		Category: "performance", Rarity: "epic", RewardXP: 300, RewardGems: 80,
		Icon: "zap", Requirements: []string{"chapter_time > 0", "chapter_time <= 600"},
	},

	// ── Activity ───────────────────────────────────────────────────
	{
		ID: "daily_goal_streak", Name: "Goal Crusher", Description: "Complete daily goals for 7 days",
		Category: "activity", Rarity: "rare", RewardXP: 250, RewardGems: 60,
		Icon: "target", Requirements: []string{"daily_goal_streak >= 7"},
	},
	{
		ID: "experiment_enthusiast", Name: "Experiment Enthusiast", Description: "Complete 25 experiments",
		Category: "activity", Rarity: "rare", RewardXP: 200, RewardGems: 50,
		Icon: "beaker", Requirements: []string{"experiments_completed >= 25"},
	},

	// ── Special ────────────────────────────────────────────────────
	{
		ID: "early_bird", Name: "Early Bird", Description: "Study before 8 AM",
		Category: "special", Rarity: "rare", RewardXP: 100, RewardGems: 30,
		Icon: "clock", Requirements: []string{"study_hour <= 8"},
	},
	{
		ID: "night_owl", Name: "Night Owl", Description: "Study after 10 PM",
		Category: "special", Rarity: "rare", RewardXP: 100, RewardGems: 30,
		Icon: "moon", Requirements: []string{"study_hour >= 22"},
	},
}
