package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tally/internal/dates"
	"tally/internal/model"
)

func TestCreateTaskValidation(t *testing.T) {
	svc := NewTaskService(newTestStore(t))

	_, err := svc.CreateTask(context.Background(), TaskInput{})
	require.ErrorContains(t, err, "title is required")
}

func TestCreateAndCompleteTask(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewTaskService(st)

	created, err := svc.CreateTask(ctx, TaskInput{
		Title:    "Invoice Acme",
		Priority: model.PriorityHigh,
		ClientID: "acme",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, model.StatusNotStarted, created.Status)

	done := time.Now()
	completed, err := svc.CompleteTask(ctx, created.ID, done)
	require.NoError(t, err)
	require.Equal(t, model.StatusDone, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	stored := st.Tasks()
	require.Len(t, stored, 1)
	require.Equal(t, model.StatusDone, stored[0].Status)
}

func TestCompleteStopsRunningTimeEntry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewTaskService(st)

	started := time.Now().Add(-time.Hour)
	require.NoError(t, st.ReplaceTasks(ctx, []model.Task{{
		ID:          "tracked",
		Title:       "Tracked work",
		Status:      model.StatusInProgress,
		TimeEntries: []model.TimeEntry{{Start: started}},
	}}))

	done := time.Now()
	completed, err := svc.CompleteTask(ctx, "tracked", done)
	require.NoError(t, err)
	require.Len(t, completed.TimeEntries, 1)
	require.NotNil(t, completed.TimeEntries[0].End)
	require.True(t, completed.TimeEntries[0].End.Equal(done))
}

func TestPostponeTask(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewTaskService(st)

	today := dates.New(2024, time.May, 1)
	created, err := svc.CreateTask(ctx, TaskInput{Title: "Movable", ScheduledDate: &today})
	require.NoError(t, err)

	tomorrow := today.AddDays(1)
	moved, err := svc.PostponeTask(ctx, created.ID, tomorrow)
	require.NoError(t, err)
	require.Equal(t, tomorrow, *moved.ScheduledDate)
	require.Equal(t, 1, moved.PostponeCount)

	moved, err = svc.PostponeTask(ctx, created.ID, tomorrow.AddDays(1))
	require.NoError(t, err)
	require.Equal(t, 2, moved.PostponeCount)
}

func TestDeleteCascadesToInstances(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewTaskService(st)

	parent := dailyParent("parent", dates.New(2024, time.January, 1))
	other := dailyParent("other", dates.New(2024, time.January, 1))
	require.NoError(t, st.ReplaceTasks(ctx, []model.Task{parent, other}))

	g := NewGenerator(st)
	_, err := g.GenerateForDates(ctx, dates.Range(dates.New(2024, time.January, 2), 3))
	require.NoError(t, err)
	require.Len(t, st.Tasks(), 8) // 2 parents + 3 instances each

	require.NoError(t, svc.DeleteTask(ctx, "parent"))

	for _, task := range st.Tasks() {
		require.NotEqual(t, "parent", task.ID)
		require.NotEqual(t, "parent", task.RecurrenceParentID)
	}
	require.Len(t, st.Tasks(), 4) // the other parent and its instances survive
}

func TestDeleteUnknownTask(t *testing.T) {
	svc := NewTaskService(newTestStore(t))
	require.Error(t, svc.DeleteTask(context.Background(), "nope"))
}
