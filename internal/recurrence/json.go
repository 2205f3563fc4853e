package recurrence

import (
	"encoding/json"
	"time"

	"tally/internal/dates"
)

// Wire type discriminators.
const (
	typeDaily   = "daily"
	typeWeekly  = "weekly"
	typeMonthly = "monthly"
	typeYearly  = "yearly"
	typeCustom  = "custom"
)

// wireSchedule is the flat persisted shape. Fields irrelevant to a variant
// are omitted on encode and ignored on decode.
type wireSchedule struct {
	Type       string      `json:"type"`
	Interval   int         `json:"interval,omitempty"`
	WeekDays   []int       `json:"weekDays,omitempty"`
	MonthDay   int         `json:"monthDay,omitempty"`
	CustomDays int         `json:"customDays,omitempty"`
	StartDate  dates.Date  `json:"startDate"`
	EndDate    *dates.Date `json:"endDate,omitempty"`
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	w := wireSchedule{StartDate: s.Start, EndDate: s.End}
	switch r := s.Rule.(type) {
	case Daily:
		w.Type = typeDaily
		w.Interval = r.Interval
	case Weekly:
		w.Type = typeWeekly
		w.Interval = r.Interval
		for _, wd := range r.WeekDays {
			w.WeekDays = append(w.WeekDays, int(wd))
		}
	case Monthly:
		w.Type = typeMonthly
		w.Interval = r.Interval
		w.MonthDay = r.MonthDay
	case Yearly:
		w.Type = typeYearly
		w.Interval = r.Interval
	case EveryNDays:
		w.Type = typeCustom
		w.CustomDays = r.Days
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire shape. Unknown types decode to a nil
// rule, which never matches; decoding itself does not fail on them.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var w wireSchedule
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var rule Rule
	switch w.Type {
	case typeDaily:
		rule = Daily{Interval: w.Interval}
	case typeWeekly:
		weekly := Weekly{Interval: w.Interval}
		for _, wd := range w.WeekDays {
			weekly.WeekDays = append(weekly.WeekDays, time.Weekday(wd))
		}
		rule = weekly
	case typeMonthly:
		rule = Monthly{Interval: w.Interval, MonthDay: w.MonthDay}
	case typeYearly:
		rule = Yearly{Interval: w.Interval}
	case typeCustom:
		rule = EveryNDays{Days: w.CustomDays}
	}

	*s = NewSchedule(w.StartDate, w.EndDate, rule)
	return nil
}
