package recurrence

import (
	"time"

	"tally/internal/dates"
)

// Rule is one recurrence pattern variant. Occurs is only consulted for
// targets strictly after the schedule's start date that already passed the
// end-date cutoff; Schedule.Matches handles the anchor and boundary cases.
type Rule interface {
	Occurs(start, target dates.Date) bool
}

// Daily fires every Interval days from the start date.
type Daily struct {
	Interval int
}

func (r Daily) Occurs(start, target dates.Date) bool {
	if r.Interval < 1 {
		return false
	}
	return target.DaysSince(start)%r.Interval == 0
}

// Weekly fires on the listed weekdays of every Interval-th week. The week
// count is whole weeks (days/7) from the start date, independent of which
// weekday the start falls on. An empty WeekDays list constrains only the
// week alignment.
type Weekly struct {
	Interval int
	WeekDays []time.Weekday
}

func (r Weekly) Occurs(start, target dates.Date) bool {
	if r.Interval < 1 {
		return false
	}
	if len(r.WeekDays) > 0 {
		ok := false
		for _, wd := range r.WeekDays {
			if target.Weekday() == wd {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	weeks := target.DaysSince(start) / 7
	return weeks%r.Interval == 0
}

// Monthly fires on MonthDay of every Interval-th month. NewSchedule and
// decoding default a zero MonthDay to the start date's day-of-month.
type Monthly struct {
	Interval int
	MonthDay int
}

func (r Monthly) Occurs(start, target dates.Date) bool {
	if r.Interval < 1 || r.MonthDay < 1 {
		return false
	}
	if target.Day != r.MonthDay {
		return false
	}
	return target.MonthsSince(start)%r.Interval == 0
}

// Yearly fires on the start date's month and day every Interval years.
type Yearly struct {
	Interval int
}

func (r Yearly) Occurs(start, target dates.Date) bool {
	if r.Interval < 1 {
		return false
	}
	if target.Month != start.Month || target.Day != start.Day {
		return false
	}
	return (target.Year-start.Year)%r.Interval == 0
}

// EveryNDays fires every Days days from the start date (the "custom"
// recurrence type).
type EveryNDays struct {
	Days int
}

func (r EveryNDays) Occurs(start, target dates.Date) bool {
	if r.Days < 1 {
		return false
	}
	return target.DaysSince(start)%r.Days == 0
}

// Schedule anchors a rule at a start date with an optional end date.
type Schedule struct {
	Start dates.Date
	End   *dates.Date
	Rule  Rule
}

// NewSchedule builds a schedule, applying the monthly day-of-month default:
// a Monthly rule with MonthDay <= 0 recurs on the start date's day.
func NewSchedule(start dates.Date, end *dates.Date, rule Rule) Schedule {
	if m, ok := rule.(Monthly); ok && m.MonthDay < 1 {
		m.MonthDay = start.Day
		rule = m
	}
	return Schedule{Start: start, End: end, Rule: rule}
}

// Matches reports whether an occurrence falls on target. Malformed rules
// (unrecognized type, non-positive interval) never match off the anchor day,
// and never error.
func (s Schedule) Matches(target dates.Date) bool {
	if s.End != nil && target.After(*s.End) {
		return false
	}
	if target == s.Start {
		// The anchor day always recurs.
		return true
	}
	if target.Before(s.Start) || s.Rule == nil {
		return false
	}
	return s.Rule.Occurs(s.Start, target)
}
