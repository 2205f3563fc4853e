package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tally/internal/dates"
	"tally/internal/model"
)

func generatedTask(id, parentID string, scheduled dates.Date, status model.Status) model.Task {
	return model.Task{
		ID:                 id,
		Title:              "instance",
		Status:             status,
		ScheduledDate:      &scheduled,
		RecurrenceParentID: parentID,
		CreatedAt:          scheduled.Time(),
	}
}

func TestSweepRetentionBoundary(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		generatedTask("old-done", "p", dates.New(2024, time.March, 1).AddDays(-31), model.StatusDone),
		generatedTask("old-open", "p", dates.New(2024, time.March, 1).AddDays(-31), model.StatusNotStarted),
		generatedTask("boundary", "p", dates.New(2024, time.March, 1).AddDays(-30), model.StatusNotStarted),
		generatedTask("recent", "p", dates.New(2024, time.March, 1).AddDays(-29), model.StatusNotStarted),
	}
	require.NoError(t, st.ReplaceTasks(ctx, tasks))

	removed, err := NewSweeper(st).Sweep(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	left := make(map[string]bool)
	for _, task := range st.Tasks() {
		left[task.ID] = true
	}
	require.False(t, left["old-done"], "31-day-old instance kept")
	require.False(t, left["old-open"], "completion status must not protect stale instances")
	require.True(t, left["boundary"], "exactly-30-day-old instance removed")
	require.True(t, left["recent"], "29-day-old instance removed")
}

func TestSweepLeavesNonGeneratedAlone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	ancient := dates.New(2023, time.January, 1)
	tasks := []model.Task{
		{ID: "hand-made", Title: "Old manual task", Status: model.StatusNotStarted, ScheduledDate: &ancient, CreatedAt: ancient.Time()},
		dailyParent("definition", dates.New(2023, time.January, 1)),
	}
	require.NoError(t, st.ReplaceTasks(ctx, tasks))

	removed, err := NewSweeper(st).Sweep(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, removed)
	require.Len(t, st.Tasks(), 2)
}

func TestSweepCoversMeetings(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	old := dates.New(2024, time.April, 1)
	fresh := dates.New(2024, time.May, 30)
	require.NoError(t, st.ReplaceMeetings(ctx, []model.Meeting{
		{ID: "m-old", Title: "old", RecurrenceParentID: "p", ScheduledDate: &old},
		{ID: "m-new", Title: "new", RecurrenceParentID: "p", ScheduledDate: &fresh},
	}))

	removed, err := NewSweeper(st).Sweep(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	meetings := st.Meetings()
	require.Len(t, meetings, 1)
	require.Equal(t, "m-new", meetings[0].ID)
}
