package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/dates"
	"tally/internal/model"
	"tally/internal/recurrence"
	"tally/internal/store"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title         string
	Description   string
	Priority      model.Priority
	ClientID      string
	Tags          []string
	ScheduledDate *dates.Date
	Recurrence    *recurrence.Schedule
}

// TaskService wraps task-related business logic over the snapshot store.
type TaskService struct {
	store *store.Store
	now   func() time.Time
}

func NewTaskService(s *store.Store) *TaskService {
	return &TaskService{store: s, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	task := model.Task{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Priority:      input.Priority,
		ClientID:      input.ClientID,
		Tags:          input.Tags,
		Status:        model.StatusNotStarted,
		ScheduledDate: input.ScheduledDate,
		Recurrence:    input.Recurrence,
		CreatedAt:     s.now(),
	}

	tasks := s.store.Tasks()
	if err := s.store.ReplaceTasks(ctx, append(tasks, task)); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task as done and stops any running time entry.
func (s *TaskService) CompleteTask(ctx context.Context, taskID string, completedAt time.Time) (*model.Task, error) {
	tasks := s.store.Tasks()
	idx := indexOfTask(tasks, taskID)
	if idx < 0 {
		return nil, fmt.Errorf("task %s not found", taskID)
	}

	task := &tasks[idx]
	task.Status = model.StatusDone
	task.CompletedAt = &completedAt
	for i := range task.TimeEntries {
		if task.TimeEntries[i].End == nil {
			end := completedAt
			task.TimeEntries[i].End = &end
		}
	}

	if err := s.store.ReplaceTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// PostponeTask moves a task to a new date and bumps its postpone counter.
func (s *TaskService) PostponeTask(ctx context.Context, taskID string, to dates.Date) (*model.Task, error) {
	tasks := s.store.Tasks()
	idx := indexOfTask(tasks, taskID)
	if idx < 0 {
		return nil, fmt.Errorf("task %s not found", taskID)
	}

	task := &tasks[idx]
	task.ScheduledDate = &to
	task.PostponeCount++

	if err := s.store.ReplaceTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Deleting a recurring definition cascades to all
// instances generated from it.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	tasks := s.store.Tasks()
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		if t.RecurrenceParentID == taskID {
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("task %s not found", taskID)
	}
	return s.store.ReplaceTasks(ctx, kept)
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
