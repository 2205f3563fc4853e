package model

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"tally/internal/dates"
	"tally/internal/recurrence"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status tracks task progress.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Subtask is a checklist item inside a task.
type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// TimeEntry is one tracked work interval. End is nil while tracking runs.
type TimeEntry struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Task represents a single item in the planner. A task with a non-nil
// Recurrence is a recurring definition; a task with a RecurrenceParentID is
// an instance generated from one. Instances never carry a rule themselves.
type Task struct {
	ID                 string               `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description,omitempty"`
	Priority           Priority             `json:"priority,omitempty"`
	ClientID           string               `json:"clientId,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	Status             Status               `json:"status"`
	Subtasks           []Subtask            `json:"subtasks,omitempty"`
	TimeEntries        []TimeEntry          `json:"timeEntries,omitempty"`
	ScheduledDate      *dates.Date          `json:"scheduledDate,omitempty"`
	Recurrence         *recurrence.Schedule `json:"recurrence,omitempty"`
	RecurrenceParentID string               `json:"recurrenceParentId,omitempty"`
	PostponeCount      int                  `json:"postponeCount,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	CompletedAt        *time.Time           `json:"completedAt,omitempty"`
}

// IsRecurring reports whether the task is a recurring definition.
func (t Task) IsRecurring() bool {
	return t.Recurrence != nil
}

// IsGenerated reports whether the task was generated from a recurring parent.
func (t Task) IsGenerated() bool {
	return t.RecurrenceParentID != ""
}

// NewTaskInstance materializes a concrete task for one date from a recurring
// parent. User-visible fields are copied; progress state is reset: status
// back to not-started, time entries dropped, subtasks unchecked, the
// postpone counter zeroed. The instance carries no recurrence rule.
func NewTaskInstance(parent Task, date dates.Date, now time.Time) Task {
	var subtasks []Subtask
	if len(parent.Subtasks) > 0 {
		subtasks = make([]Subtask, len(parent.Subtasks))
		for i, st := range parent.Subtasks {
			st.Done = false
			subtasks[i] = st
		}
	}

	return Task{
		ID:                 uuid.NewString(),
		Title:              parent.Title,
		Description:        parent.Description,
		Priority:           parent.Priority,
		ClientID:           parent.ClientID,
		Tags:               slices.Clone(parent.Tags),
		Status:             StatusNotStarted,
		Subtasks:           subtasks,
		ScheduledDate:      &date,
		RecurrenceParentID: parent.ID,
		CreatedAt:          now,
	}
}
