package gamification_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ekima-network/ekima/internal/app/gamification"
	"github.com/ekima-network/ekima/internal/domain"
)

func newLedger() *gamification.Ledger {
	return gamification.NewLedger(domain.DefaultCurve(), nil)
}

// ═══════════════════════════════════════════════════════════════════════════
// Ledger Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLedger_AwardCrossesLevelBoundary(t *testing.T) {
	l := newLedger()
	p := domain.NewProfile("alice")
	p.TotalXP = 950

	res, err := l.Award(p, 100, "")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if res.Granted != 100 {
		t.Errorf("expected 100 granted, got %d", res.Granted)
	}
	if res.NewTotal != 1050 {
		t.Errorf("expected total 1050, got %d", res.NewTotal)
	}
	if !res.LeveledUp || res.NewLevel != 2 {
		t.Errorf("expected level-up to 2, got %+v", res)
	}
}

func TestLedger_NoLevelUpWithinLevel(t *testing.T) {
	l := newLedger()
	p := domain.NewProfile("bob")

	res, err := l.Award(p, 500, "")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if res.LeveledUp {
		t.Errorf("500 XP from zero should stay at level 1, got %+v", res)
	}
}

func TestLedger_SourceMultiplier(t *testing.T) {
	l := newLedger()

	cases := []struct {
		source  string
		granted int64
	}{
		{"perfect_quiz", 150},
		{"fast_completion", 130},
		{"challenge_mode", 200},
		{"weekend_study", 120},
		{"unknown_source", 100},
		{"", 100},
	}

	for _, c := range cases {
		p := domain.NewProfile("carol")
		res, err := l.Award(p, 100, c.source)
		if err != nil {
			t.Fatalf("award %q: %v", c.source, err)
		}
		if res.Granted != c.granted {
			t.Errorf("source %q: expected %d, got %d", c.source, c.granted, res.Granted)
		}
	}
}

func TestLedger_StreakAndGoalBonuses(t *testing.T) {
	l := newLedger()

	p := domain.NewProfile("dave")
	p.CurrentStreak = 7
	res, _ := l.Award(p, 100, "")
	if res.Granted != 120 {
		t.Errorf("7-day streak: expected 120, got %d", res.Granted)
	}

	p = domain.NewProfile("dave")
	p.CurrentStreak = 6
	res, _ = l.Award(p, 100, "")
	if res.Granted != 100 {
		t.Errorf("6-day streak: expected no bonus, got %d", res.Granted)
	}

	p = domain.NewProfile("dave")
	p.Goals.Chapters, p.Goals.Quizzes, p.Goals.StudyMinutes = 3, 2, 60
	res, _ = l.Award(p, 100, "")
	if res.Granted != 110 {
		t.Errorf("goals complete: expected 110, got %d", res.Granted)
	}

	// All three stack: 100 × 1.5 × 1.2 × 1.1 = 198.
	p = domain.NewProfile("dave")
	p.CurrentStreak = 10
	p.Goals.Chapters, p.Goals.Quizzes, p.Goals.StudyMinutes = 3, 2, 60
	res, _ = l.Award(p, 100, "perfect_quiz")
	if res.Granted != 198 {
		t.Errorf("stacked bonuses: expected 198, got %d", res.Granted)
	}
}

func TestLedger_RejectsInvalidAmounts(t *testing.T) {
	l := newLedger()
	p := domain.NewProfile("eve")
	p.TotalXP = 42

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := l.Award(p, bad, ""); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %v: expected ErrInvalidAmount, got %v", bad, err)
		}
	}
	if p.TotalXP != 42 {
		t.Errorf("rejected award must not mutate the profile, xp now %d", p.TotalXP)
	}
}

func TestLedger_GrantedNeverBelowBase(t *testing.T) {
	l := newLedger()
	sources := []string{"", "perfect_quiz", "fast_completion", "challenge_mode", "weekend_study"}

	for _, src := range sources {
		for _, base := range []float64{0, 1, 10, 33.4, 100, 949.9} {
			p := domain.NewProfile("frank")
			p.CurrentStreak = 9
			res, err := l.Award(p, base, src)
			if err != nil {
				t.Fatalf("award %v/%q: %v", base, src, err)
			}
			if float64(res.Granted) < math.Floor(base) {
				t.Errorf("source %q base %v: granted %d below base", src, base, res.Granted)
			}
		}
	}
}

func TestLedger_ZeroAwardIsNoOp(t *testing.T) {
	l := newLedger()
	p := domain.NewProfile("grace")

	res, err := l.Award(p, 0, "challenge_mode")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if res.Granted != 0 || res.LeveledUp {
		t.Errorf("zero award should grant nothing, got %+v", res)
	}
}
