package model

import (
	"time"

	"github.com/google/uuid"

	"tally/internal/dates"
	"tally/internal/recurrence"
)

// Meeting is either a recurring meeting definition (non-nil Schedule) or a
// concrete meeting instance generated from one (non-empty
// RecurrenceParentID and a scheduled date).
type Meeting struct {
	ID                 string               `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description,omitempty"`
	ClientID           string               `json:"clientId,omitempty"`
	StartTime          string               `json:"startTime,omitempty"` // "15:04"
	DurationMinutes    int                  `json:"durationMinutes,omitempty"`
	Schedule           *recurrence.Schedule `json:"schedule,omitempty"`
	RecurrenceParentID string               `json:"recurrenceParentId,omitempty"`
	ScheduledDate      *dates.Date          `json:"scheduledDate,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// IsRecurring reports whether the meeting is a recurring definition.
func (m Meeting) IsRecurring() bool {
	return m.Schedule != nil
}

// IsGenerated reports whether the meeting was generated from a definition.
func (m Meeting) IsGenerated() bool {
	return m.RecurrenceParentID != ""
}

// NewMeetingInstance materializes a concrete meeting for one date from a
// recurring definition. The instance carries no schedule of its own.
func NewMeetingInstance(parent Meeting, date dates.Date, now time.Time) Meeting {
	return Meeting{
		ID:                 uuid.NewString(),
		Title:              parent.Title,
		Description:        parent.Description,
		ClientID:           parent.ClientID,
		StartTime:          parent.StartTime,
		DurationMinutes:    parent.DurationMinutes,
		RecurrenceParentID: parent.ID,
		ScheduledDate:      &date,
		CreatedAt:          now,
	}
}
