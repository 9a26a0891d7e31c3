package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ekima-network/ekima/internal/domain"
)

// Get loads a full profile: scalar row, unlocked achievements, activity
// calendar. Returns domain.ErrProfileNotFound for unknown users.
func (d *DB) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p := &domain.Profile{UserID: userID}

	var lastActivity, goalDay sql.NullInt64
	err := d.db.QueryRowContext(ctx,
		`SELECT total_xp, gems, coins, current_streak, longest_streak, last_activity,
		        goal_day, goal_chapters_target, goal_quizzes_target, goal_minutes_target,
		        goal_chapters, goal_quizzes, goal_minutes,
		        chapters_completed, quizzes_completed, experiments_completed,
		        videos_watched, perfect_quizzes, daily_goal_streak
		 FROM profiles WHERE user_id = ?`, userID,
	).Scan(
		&p.TotalXP, &p.Gems, &p.Coins, &p.CurrentStreak, &p.LongestStreak, &lastActivity,
		&goalDay, &p.Goals.ChaptersTarget, &p.Goals.QuizzesTarget, &p.Goals.StudyMinutesTarget,
		&p.Goals.Chapters, &p.Goals.Quizzes, &p.Goals.StudyMinutes,
		&p.Counters.ChaptersCompleted, &p.Counters.QuizzesCompleted, &p.Counters.ExperimentsCompleted,
		&p.Counters.VideosWatched, &p.Counters.PerfectQuizzes, &p.Counters.DailyGoalStreak,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get profile: %v", domain.ErrStoreUnavailable, err)
	}

	if lastActivity.Valid {
		p.LastActivity = time.Unix(lastActivity.Int64, 0).UTC()
	}
	if goalDay.Valid {
		p.Goals.Day = time.Unix(goalDay.Int64, 0).UTC()
	}

	if p.Achievements, err = d.userAchievements(ctx, userID); err != nil {
		return nil, err
	}
	if p.ActivityDays, err = d.userActivityDays(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

// Put writes the whole profile in one transaction. Achievements and
// activity days only ever grow, so rows are inserted idempotently; scalar
// state is upserted. Either everything commits or nothing does.
func (d *DB) Put(ctx context.Context, p *domain.Profile) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin put: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	var lastActivity, goalDay any
	if !p.LastActivity.IsZero() {
		lastActivity = p.LastActivity.Unix()
	}
	if !p.Goals.Day.IsZero() {
		goalDay = p.Goals.Day.Unix()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (
			user_id, total_xp, gems, coins, current_streak, longest_streak, last_activity,
			goal_day, goal_chapters_target, goal_quizzes_target, goal_minutes_target,
			goal_chapters, goal_quizzes, goal_minutes,
			chapters_completed, quizzes_completed, experiments_completed,
			videos_watched, perfect_quizzes, daily_goal_streak
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			total_xp=excluded.total_xp, gems=excluded.gems, coins=excluded.coins,
			current_streak=excluded.current_streak, longest_streak=excluded.longest_streak,
			last_activity=excluded.last_activity, goal_day=excluded.goal_day,
			goal_chapters_target=excluded.goal_chapters_target,
			goal_quizzes_target=excluded.goal_quizzes_target,
			goal_minutes_target=excluded.goal_minutes_target,
			goal_chapters=excluded.goal_chapters, goal_quizzes=excluded.goal_quizzes,
			goal_minutes=excluded.goal_minutes,
			chapters_completed=excluded.chapters_completed,
			quizzes_completed=excluded.quizzes_completed,
			experiments_completed=excluded.experiments_completed,
			videos_watched=excluded.videos_watched,
			perfect_quizzes=excluded.perfect_quizzes,
			daily_goal_streak=excluded.daily_goal_streak`,
		p.UserID, p.TotalXP, p.Gems, p.Coins, p.CurrentStreak, p.LongestStreak, lastActivity,
		goalDay, p.Goals.ChaptersTarget, p.Goals.QuizzesTarget, p.Goals.StudyMinutesTarget,
		p.Goals.Chapters, p.Goals.Quizzes, p.Goals.StudyMinutes,
		p.Counters.ChaptersCompleted, p.Counters.QuizzesCompleted, p.Counters.ExperimentsCompleted,
		p.Counters.VideosWatched, p.Counters.PerfectQuizzes, p.Counters.DailyGoalStreak,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert profile: %v", domain.ErrStoreUnavailable, err)
	}

	for _, a := range p.Achievements {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO achievements (user_id, id, unlocked_at) VALUES (?, ?, ?)`,
			p.UserID, a.ID, a.UnlockedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("%w: insert achievement: %v", domain.ErrStoreUnavailable, err)
		}
	}

	for _, day := range p.ActivityDays {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO activity_days (user_id, day) VALUES (?, ?)`,
			p.UserID, day.Unix(),
		)
		if err != nil {
			return fmt.Errorf("%w: insert activity day: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit put: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Append records a processed activity event in the append-only log.
func (d *DB) Append(ctx context.Context, ev domain.ActivityEvent, xpGranted int64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO activity_log (id, user_id, type, source, occurred_at, xp_granted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, string(ev.Type), ev.Source, ev.OccurredAt.Unix(), xpGranted,
	)
	if err != nil {
		return fmt.Errorf("%w: append activity: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (d *DB) userAchievements(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, unlocked_at FROM achievements WHERE user_id = ? ORDER BY unlocked_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list achievements: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []domain.UnlockedAchievement
	for rows.Next() {
		var a domain.UnlockedAchievement
		var at int64
		if err := rows.Scan(&a.ID, &at); err != nil {
			return nil, fmt.Errorf("%w: scan achievement: %v", domain.ErrStoreUnavailable, err)
		}
		a.UnlockedAt = time.Unix(at, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *DB) userActivityDays(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT day FROM activity_days WHERE user_id = ? ORDER BY day ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list activity days: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var day int64
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: scan activity day: %v", domain.ErrStoreUnavailable, err)
		}
		out = append(out, time.Unix(day, 0).UTC())
	}
	return out, rows.Err()
}
