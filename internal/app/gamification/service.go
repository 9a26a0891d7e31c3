package gamification

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekima-network/ekima/internal/domain"
	"github.com/ekima-network/ekima/internal/infra/metrics"
)

// profileLockStripes is the size of the per-user lock table.
const profileLockStripes = 64

// Service orchestrates the write path. One activity event runs
// goals → streak → ledger → rules → dispatcher as a single logical
// transaction over one profile read and one atomic put: the rule engine
// always sees the streak and XP this event produced, never a concurrent
// interleaving. Same-user events serialize on a striped lock; different
// users proceed in parallel.
//
// If the store read or write fails the whole cycle aborts with no state
// change and nothing published — the caller owns retrying the event.
type Service struct {
	store      domain.ProfileStore
	activity   domain.ActivityLog // optional
	ledger     *Ledger
	dispatcher *Dispatcher
	engine     *Engine
	bus        domain.Publisher

	locks [profileLockStripes]sync.Mutex
}

// NewService wires the write-path components. The activity log may be
// nil; counters still aggregate on the profile itself.
func NewService(store domain.ProfileStore, activity domain.ActivityLog, ledger *Ledger, engine *Engine, bus domain.Publisher) *Service {
	return &Service{
		store:      store,
		activity:   activity,
		ledger:     ledger,
		dispatcher: NewDispatcher(ledger),
		engine:     engine,
		bus:        bus,
	}
}

// Engine returns the achievement rule engine (for catalog display).
func (s *Service) Engine() *Engine { return s.engine }

// Curve returns the level curve.
func (s *Service) Curve() domain.Curve { return s.ledger.Curve() }

// ActivityResult summarizes everything one activity event changed.
type ActivityResult struct {
	Profile        *domain.Profile     `json:"profile"`
	Award          domain.AwardResult  `json:"award"`
	Streak         domain.StreakResult `json:"streak"`
	Unlocked       []string            `json:"unlocked,omitempty"`
	GoalsCompleted bool                `json:"goals_completed"`
}

// HandleActivity processes one raw activity event through the full
// pipeline. Events are published only after the profile put succeeds.
func (s *Service) HandleActivity(ctx context.Context, ev domain.ActivityEvent) (*ActivityResult, error) {
	if ev.UserID == "" {
		return nil, domain.ErrMissingUserID
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	lock := s.lockFor(ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	p, err := s.loadOrCreate(ctx, ev.UserID)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(ev.Type), "error").Inc()
		return nil, err
	}

	var pending []domain.Event

	goalsCompleted := applyActivity(p, ev)
	streakBefore := p.CurrentStreak
	streak := RecordActivity(p, ev.OccurredAt)

	award, err := s.applyAward(p, BaseXP(ev, p), ev.Source, &pending)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(ev.Type), "rejected").Inc()
		return nil, err
	}

	s.applyMilestone(p, streakBefore, streak.Current, &pending)

	unlocked, err := s.unlockNewly(p, evalContext(ev), ev.OccurredAt, &pending)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(ev.Type), "error").Inc()
		return nil, err
	}

	if err := s.store.Put(ctx, p); err != nil {
		metrics.EventsProcessed.WithLabelValues(string(ev.Type), "error").Inc()
		return nil, err
	}

	if s.activity != nil {
		if err := s.activity.Append(ctx, ev, award.Granted); err != nil {
			log.Printf("[gamification] activity log append failed: %v", err)
		}
	}

	metrics.EventsProcessed.WithLabelValues(string(ev.Type), "ok").Inc()
	metrics.XPAwarded.WithLabelValues(sourceLabel(ev.Source)).Add(float64(award.Granted))
	s.publish(ev.UserID, pending)

	return &ActivityResult{
		Profile:        p,
		Award:          award,
		Streak:         streak,
		Unlocked:       unlocked,
		GoalsCompleted: goalsCompleted,
	}, nil
}

// AwardXP grants XP outside the activity pipeline (backfills, manual
// grants). The same serialization, level, achievement, and atomicity
// rules apply; streaks and goals are untouched.
func (s *Service) AwardXP(ctx context.Context, userID string, amount float64, source string) (*ActivityResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	p, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pending []domain.Event
	award, err := s.applyAward(p, amount, source, &pending)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	eval := domain.EvalContext{"study_hour": float64(now.Hour())}
	unlocked, err := s.unlockNewly(p, eval, now, &pending)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, p); err != nil {
		return nil, err
	}

	metrics.XPAwarded.WithLabelValues(sourceLabel(source)).Add(float64(award.Granted))
	s.publish(userID, pending)

	return &ActivityResult{Profile: p, Award: award, Unlocked: unlocked}, nil
}

// Profile returns a stored profile. Unknown users get
// domain.ErrProfileNotFound — reads never create profiles.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.store.Get(ctx, userID)
}

// ─── Pipeline Steps ─────────────────────────────────────────────────────────

func (s *Service) loadOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if err == domain.ErrProfileNotFound {
		// Lazy default on first activity.
		return domain.NewProfile(userID), nil
	}
	return nil, err
}

// applyAward runs the ledger and, on a level-up, dispatches the level
// rewards before the event is considered processed.
func (s *Service) applyAward(p *domain.Profile, base float64, source string, pending *[]domain.Event) (domain.AwardResult, error) {
	oldLevel := s.Curve().Level(p.TotalXP)
	award, err := s.ledger.Award(p, base, source)
	if err != nil {
		return domain.AwardResult{}, err
	}

	if award.Granted > 0 {
		*pending = append(*pending, domain.Event{
			Type:     domain.EventXPAwarded,
			Amount:   award.Granted,
			Source:   source,
			NewLevel: award.NewLevel,
		})
	}

	if award.LeveledUp {
		s.applyLevelUp(p, oldLevel, award.NewLevel, pending)
	}
	return award, nil
}

func (s *Service) applyLevelUp(p *domain.Profile, oldLevel, newLevel int, pending *[]domain.Event) {
	granted, _, _ := s.dispatcher.Grant(p, LevelUpReward(newLevel-oldLevel), "level_up")

	metrics.LevelUps.Inc()
	metrics.RewardsGranted.WithLabelValues("gems", "level_up").Add(float64(granted.Gems))
	metrics.RewardsGranted.WithLabelValues("coins", "level_up").Add(float64(granted.Coins))

	*pending = append(*pending,
		domain.Event{Type: domain.EventLevelUp, OldLevel: oldLevel, NewLevel: newLevel},
		domain.Event{Type: domain.EventGemsAwarded, Amount: granted.Gems, Source: "level_up"},
		domain.Event{Type: domain.EventCoinsAwarded, Amount: granted.Coins, Source: "level_up"},
	)
}

func (s *Service) applyMilestone(p *domain.Profile, before, current int, pending *[]domain.Event) {
	if current <= before {
		return
	}
	for _, m := range domain.StreakMilestones {
		if current == m {
			granted, _, _ := s.dispatcher.Grant(p, MilestoneReward(m), "streak_milestone")
			metrics.StreakMilestones.Inc()
			metrics.RewardsGranted.WithLabelValues("coins", "streak_milestone").Add(float64(granted.Coins))
			*pending = append(*pending,
				domain.Event{Type: domain.EventStreakMilestone, Milestone: m, Amount: granted.Coins},
			)
			return
		}
	}
}

// unlockNewly evaluates the catalog against the post-award snapshot and
// applies every newly qualifying achievement: record the unlock, grant
// its rewards, and queue events. The unlock and its reward land in the
// same profile put — they cannot drift apart.
func (s *Service) unlockNewly(p *domain.Profile, ctx domain.EvalContext, at time.Time, pending *[]domain.Event) ([]string, error) {
	snap := Snapshot(p, s.Curve())
	newly := s.engine.Evaluate(p, snap, ctx)

	for _, id := range newly {
		def, err := s.engine.Definition(id)
		if err != nil {
			return nil, err
		}

		p.Achievements = append(p.Achievements, domain.UnlockedAchievement{ID: id, UnlockedAt: at})

		oldLevel := s.Curve().Level(p.TotalXP)
		granted, award, err := s.dispatcher.Grant(p, AchievementReward(def), "achievement")
		if err != nil {
			return nil, err
		}
		if award.LeveledUp {
			s.applyLevelUp(p, oldLevel, award.NewLevel, pending)
		}

		metrics.AchievementsUnlocked.WithLabelValues(string(def.Category)).Inc()
		metrics.RewardsGranted.WithLabelValues("gems", "achievement").Add(float64(granted.Gems))

		*pending = append(*pending, domain.Event{
			Type:          domain.EventAchievementUnlocked,
			AchievementID: id,
			Amount:        granted.XP,
		})
	}
	return newly, nil
}

func (s *Service) publish(userID string, events []domain.Event) {
	for _, ev := range events {
		ev.UserID = userID
		s.bus.Publish(ev)
	}
}

func (s *Service) lockFor(userID string) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprint(h, userID)
	return &s.locks[h.Sum32()%profileLockStripes]
}

// evalContext maps an activity event's transient facts to the field names
// achievement requirements use. Context values shadow stored stats for
// this one evaluation pass only.
func evalContext(ev domain.ActivityEvent) domain.EvalContext {
	ctx := make(domain.EvalContext, len(ev.Fields)+3)
	for k, v := range ev.Fields {
		ctx[k] = v
	}
	ctx["study_hour"] = float64(ev.OccurredAt.UTC().Hour())

	switch ev.Type {
	case domain.ActivityQuizSubmitted:
		ctx["quiz_score"] = ev.Field(domain.FieldScore)
	case domain.ActivityChapterCompleted:
		ctx["chapter_time"] = ev.Field(domain.FieldTimeSpentSec)
	}
	return ctx
}

func sourceLabel(source string) string {
	if source == "" {
		return "general"
	}
	return source
}
