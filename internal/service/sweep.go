package service

import (
	"context"
	"time"

	"tally/internal/dates"
	"tally/internal/store"
)

// retentionDays bounds how long generated instances are kept.
const retentionDays = 30

// Sweeper discards stale generated instances. It runs once per application
// start.
type Sweeper struct {
	store *store.Store
}

func NewSweeper(s *store.Store) *Sweeper {
	return &Sweeper{store: s}
}

// Sweep removes generated task and meeting instances scheduled strictly
// before now minus the retention window, regardless of completion status.
// Definitions and hand-created entities are never touched. It returns the
// number of removed instances.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := dates.FromTime(now).AddDays(-retentionDays)
	removed := 0

	tasks := s.store.Tasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if stale(t.IsGenerated(), t.ScheduledDate, cutoff) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) != len(tasks) {
		if err := s.store.ReplaceTasks(ctx, kept); err != nil {
			return 0, err
		}
	}

	meetings := s.store.Meetings()
	keptMeetings := meetings[:0]
	for _, m := range meetings {
		if stale(m.IsGenerated(), m.ScheduledDate, cutoff) {
			removed++
			continue
		}
		keptMeetings = append(keptMeetings, m)
	}
	if len(keptMeetings) != len(meetings) {
		if err := s.store.ReplaceMeetings(ctx, keptMeetings); err != nil {
			return 0, err
		}
	}

	return removed, nil
}

func stale(generated bool, scheduled *dates.Date, cutoff dates.Date) bool {
	return generated && scheduled != nil && scheduled.Before(cutoff)
}
