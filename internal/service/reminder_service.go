package service

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"tally/internal/dates"
	"tally/internal/model"
	"tally/internal/store"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	store *store.Store
}

func NewReminderService(s *store.Store) *ReminderService {
	return &ReminderService{store: s}
}

// DailySummary renders an HTML digest of the open tasks and meetings for one
// day, plus anything overdue.
func (s *ReminderService) DailySummary(today dates.Date) string {
	clientNames := make(map[string]string)
	for _, c := range s.store.Clients() {
		clientNames[c.ID] = c.Name
	}

	var due, overdue []model.Task
	for _, task := range s.store.Tasks() {
		if task.IsRecurring() || task.Status == model.StatusDone || task.ScheduledDate == nil {
			continue
		}
		switch {
		case *task.ScheduledDate == today:
			due = append(due, task)
		case task.ScheduledDate.Before(today):
			overdue = append(overdue, task)
		}
	}

	byPriority := func(tasks []model.Task) {
		sort.SliceStable(tasks, func(i, j int) bool {
			return priorityRank(tasks[i].Priority) < priorityRank(tasks[j].Priority)
		})
	}
	byPriority(due)
	byPriority(overdue)

	var meetings []model.Meeting
	for _, m := range s.store.Meetings() {
		if m.IsRecurring() || m.ScheduledDate == nil || *m.ScheduledDate != today {
			continue
		}
		meetings = append(meetings, m)
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].StartTime < meetings[j].StartTime
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily plan</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", today))

	builder.WriteString("🔥 <b>Today</b>\n")
	if len(due) == 0 {
		builder.WriteString("— nothing scheduled\n")
	}
	for _, task := range due {
		builder.WriteString(formatTaskLine("🟢", task, clientNames))
	}

	if len(overdue) > 0 {
		builder.WriteString("\n⚠️ <b>Overdue</b>\n")
		for _, task := range overdue {
			builder.WriteString(formatTaskLine("⚠️", task, clientNames))
		}
	}

	if len(meetings) > 0 {
		builder.WriteString("\n📅 <b>Meetings</b>\n")
		for _, m := range meetings {
			builder.WriteString(formatMeetingLine(m, clientNames))
		}
	}

	return strings.TrimSpace(builder.String())
}

func formatTaskLine(icon string, task model.Task, clientNames map[string]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))
	if name := strings.TrimSpace(clientNames[task.ClientID]); name != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
	}
	if task.Priority == model.PriorityHigh {
		sb.WriteString(" ❗")
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatMeetingLine(m model.Meeting, clientNames map[string]string) string {
	var sb strings.Builder
	if m.StartTime != "" {
		sb.WriteString(fmt.Sprintf("🕐 %s · ", m.StartTime))
	} else {
		sb.WriteString("🕐 ")
	}
	sb.WriteString(html.EscapeString(strings.TrimSpace(m.Title)))
	if name := strings.TrimSpace(clientNames[m.ClientID]); name != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	case model.PriorityLow:
		return 2
	default:
		return 3
	}
}
