package gamification

import (
	"math"

	"github.com/ekima-network/ekima/internal/domain"
)

// Base XP values per activity kind.
const (
	chapterBaseXP    = 50
	quizBaseXP       = 25
	experimentBaseXP = 75
	videoBaseXP      = 25
	loginBaseXP      = 10

	performanceBonusRate = 0.5
	streakBonusRate      = 0.1
)

// ChapterXP computes base XP for a completed chapter: difficulty scaling,
// a performance bonus from the chapter quiz, a per-day streak bonus, and
// an efficiency bonus when finished within the estimated time. Minimum 10.
func ChapterXP(difficulty int, timeSpentMin, estimatedMin, quizScore float64, streak int) float64 {
	base := float64(chapterBaseXP)
	switch difficulty {
	case 1: // easy — no scaling
	case 3:
		base *= 1.5 // hard
	case 4:
		base *= 2.0 // expert
	default:
		base *= 1.2 // medium
	}

	performance := (quizScore / 100) * performanceBonusRate * base
	streakBonus := float64(streak) * streakBonusRate * base

	if estimatedMin <= 0 {
		estimatedMin = 30
	}
	var efficiency float64
	if timeSpentMin > 0 && timeSpentMin <= estimatedMin {
		efficiency = base * 0.2
	}

	total := math.Round(base + performance + streakBonus + efficiency)
	return math.Max(total, 10)
}

// QuizXP computes base XP for a submitted quiz: scaled by question count
// and score, penalized per extra attempt (floor 0.5), with a speed bonus
// for under a minute per question. Minimum 5.
func QuizXP(score float64, questions int, timeSpentMin float64, attempts int) float64 {
	if questions <= 0 {
		questions = 10
	}
	if attempts < 1 {
		attempts = 1
	}

	base := quizBaseXP * (float64(questions) / 10)
	scoreMult := score / 100
	attemptMult := math.Max(1-float64(attempts-1)*0.1, 0.5)

	var timeBonus float64
	if timeSpentMin > 0 && timeSpentMin/float64(questions) <= 1 {
		timeBonus = base * 0.15
	}

	total := math.Round(base*scoreMult*attemptMult + timeBonus)
	return math.Max(total, 5)
}

// BaseXP derives the pre-multiplier XP amount for an activity event.
// The streak fed to ChapterXP is the profile's streak before this event.
func BaseXP(ev domain.ActivityEvent, p *domain.Profile) float64 {
	minutes := ev.Field(domain.FieldTimeSpentSec) / 60

	switch ev.Type {
	case domain.ActivityChapterCompleted:
		return ChapterXP(
			int(ev.Field(domain.FieldDifficulty)),
			minutes,
			ev.Field(domain.FieldEstimatedMin),
			ev.Field(domain.FieldScore),
			p.CurrentStreak,
		)
	case domain.ActivityQuizSubmitted:
		return QuizXP(
			ev.Field(domain.FieldScore),
			int(ev.Field(domain.FieldQuestions)),
			minutes,
			int(ev.Field(domain.FieldAttempts)),
		)
	case domain.ActivityExperimentCompleted:
		return experimentBaseXP
	case domain.ActivityVideoWatched:
		return videoBaseXP
	case domain.ActivityDailyLogin:
		return loginBaseXP
	}
	return 0
}
