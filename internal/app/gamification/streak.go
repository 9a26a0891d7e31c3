package gamification

import (
	"sort"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
)

// RecordActivity registers one day of activity on the profile and
// recomputes its streaks. Recording the same calendar day twice is a
// no-op beyond the recompute, so the call is idempotent. The longest
// streak never decreases.
func RecordActivity(p *domain.Profile, occurredOn time.Time) domain.StreakResult {
	day := domain.DayOf(occurredOn)

	if !p.HasActivityOn(day) {
		p.ActivityDays = append(p.ActivityDays, day)
		sort.Slice(p.ActivityDays, func(i, j int) bool {
			return p.ActivityDays[i].Before(p.ActivityDays[j])
		})
	}
	if day.After(p.LastActivity) {
		p.LastActivity = day
	}

	res := ComputeStreak(p.ActivityDays, occurredOn)
	if res.Longest < p.LongestStreak {
		res.Longest = p.LongestStreak
	}
	p.CurrentStreak = res.Current
	p.LongestStreak = res.Longest
	return res
}

// ComputeStreak derives current and longest streaks from a set of
// activity days. Days are compared at calendar-day granularity.
//
// The current streak is the consecutive run ending today or yesterday
// relative to asOf — one missed day keeps the chain "current" until a
// second consecutive day is missed. Any older run counts only toward the
// longest streak. Empty history yields {0, 0}.
func ComputeStreak(days []time.Time, asOf time.Time) domain.StreakResult {
	if len(days) == 0 {
		return domain.StreakResult{}
	}

	norm := normalizeDays(days)

	today := domain.DayOf(asOf)
	yesterday := today.AddDate(0, 0, -1)
	last := norm[len(norm)-1]

	var current int
	if last.Equal(today) || last.Equal(yesterday) {
		current = 1
		for i := len(norm) - 2; i >= 0; i-- {
			if norm[i].Equal(norm[i+1].AddDate(0, 0, -1)) {
				current++
			} else {
				break
			}
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(norm); i++ {
		if norm[i].Equal(norm[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return domain.StreakResult{Current: current, Longest: longest}
}

// normalizeDays truncates to UTC midnights, dedupes, and sorts ascending.
func normalizeDays(days []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(days))
	norm := make([]time.Time, 0, len(days))
	for _, d := range days {
		day := domain.DayOf(d)
		if !seen[day] {
			seen[day] = true
			norm = append(norm, day)
		}
	}
	sort.Slice(norm, func(i, j int) bool { return norm[i].Before(norm[j]) })
	return norm
}
