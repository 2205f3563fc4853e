package service

import (
	"context"
	"time"

	"tally/internal/dates"
	"tally/internal/model"
	"tally/internal/store"
)

// instanceKey identifies one generated occurrence: at most one instance may
// exist per (parent, date) pair.
type instanceKey struct {
	parentID string
	date     dates.Date
}

// Generator materializes task and meeting instances from recurring
// definitions. Generation is idempotent: dates that already have an instance
// for a given parent are skipped, both against stored state and within the
// running batch.
type Generator struct {
	store *store.Store
	now   func() time.Time
}

func NewGenerator(s *store.Store) *Generator {
	return &Generator{store: s, now: time.Now}
}

// GenerateForDate generates occurrences for a single visible date.
func (g *Generator) GenerateForDate(ctx context.Context, date dates.Date) (int, error) {
	return g.GenerateForDates(ctx, []dates.Date{date})
}

// GenerateForDates generates occurrences for every (recurring definition,
// date) pair that matches and has no instance yet. All new instances of a
// collection are committed in one storage write.
func (g *Generator) GenerateForDates(ctx context.Context, targets []dates.Date) (int, error) {
	created, err := g.generateTasks(ctx, targets)
	if err != nil {
		return created, err
	}
	meetings, err := g.generateMeetings(ctx, targets)
	return created + meetings, err
}

func (g *Generator) generateTasks(ctx context.Context, targets []dates.Date) (int, error) {
	tasks := g.store.Tasks()

	seen := make(map[instanceKey]bool)
	for _, t := range tasks {
		if t.IsGenerated() && t.ScheduledDate != nil {
			seen[instanceKey{t.RecurrenceParentID, *t.ScheduledDate}] = true
		}
	}

	now := g.now()
	var created []model.Task
	for _, date := range targets {
		for _, parent := range tasks {
			if !parent.IsRecurring() || !parent.Recurrence.Matches(date) {
				continue
			}
			key := instanceKey{parent.ID, date}
			if seen[key] {
				continue
			}
			seen[key] = true
			created = append(created, model.NewTaskInstance(parent, date, now))
		}
	}

	if len(created) == 0 {
		return 0, nil
	}
	if err := g.store.ReplaceTasks(ctx, append(tasks, created...)); err != nil {
		return 0, err
	}
	return len(created), nil
}

func (g *Generator) generateMeetings(ctx context.Context, targets []dates.Date) (int, error) {
	meetings := g.store.Meetings()

	seen := make(map[instanceKey]bool)
	for _, m := range meetings {
		if m.IsGenerated() && m.ScheduledDate != nil {
			seen[instanceKey{m.RecurrenceParentID, *m.ScheduledDate}] = true
		}
	}

	now := g.now()
	var created []model.Meeting
	for _, date := range targets {
		for _, parent := range meetings {
			if !parent.IsRecurring() || !parent.Schedule.Matches(date) {
				continue
			}
			key := instanceKey{parent.ID, date}
			if seen[key] {
				continue
			}
			seen[key] = true
			created = append(created, model.NewMeetingInstance(parent, date, now))
		}
	}

	if len(created) == 0 {
		return 0, nil
	}
	if err := g.store.ReplaceMeetings(ctx, append(meetings, created...)); err != nil {
		return 0, err
	}
	return len(created), nil
}
