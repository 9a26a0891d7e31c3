package gamification

import (
	"github.com/ekima-network/ekima/internal/domain"
)

// applyActivity folds one event into the profile's daily-goal progress
// and lifetime counters. Returns true when this event completed today's
// goals (the completion transition, not every later event that day).
//
// The daily-goal streak counts consecutive days of completed goals: it
// grows on the day's completion transition and resets when a day ends
// incomplete or is skipped entirely.
func applyActivity(p *domain.Profile, ev domain.ActivityEvent) bool {
	day := domain.DayOf(ev.OccurredAt)

	if !p.Goals.Day.Equal(day) {
		prev := p.Goals.Day
		brokeChain := !prev.IsZero() &&
			(!p.Goals.Complete() || !day.Equal(prev.AddDate(0, 0, 1)))
		if brokeChain {
			p.Counters.DailyGoalStreak = 0
		}
		p.Goals.RolloverTo(day)
	}

	wasComplete := p.Goals.Complete()

	minutes := int(ev.Field(domain.FieldTimeSpentSec) / 60)
	if minutes > 0 {
		p.Goals.StudyMinutes += minutes
	}

	switch ev.Type {
	case domain.ActivityChapterCompleted:
		p.Goals.Chapters++
		p.Counters.ChaptersCompleted++
	case domain.ActivityQuizSubmitted:
		p.Goals.Quizzes++
		p.Counters.QuizzesCompleted++
		if ev.Field(domain.FieldScore) >= 100 {
			p.Counters.PerfectQuizzes++
		}
	case domain.ActivityExperimentCompleted:
		p.Counters.ExperimentsCompleted++
	case domain.ActivityVideoWatched:
		p.Counters.VideosWatched++
	}

	if !wasComplete && p.Goals.Complete() {
		p.Counters.DailyGoalStreak++
		return true
	}
	return false
}
