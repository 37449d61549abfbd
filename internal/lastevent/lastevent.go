package lastevent

import (
	"sort"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/domain"
)

// Snapshot is the derived "most recent event / what comes next" pair. It is
// never mutated after Compute returns it.
type Snapshot struct {
	LastEvent  *domain.ClockEvent `json:"lastEvent"`
	NextAction domain.ClockAction `json:"nextAction"`
	FetchedAt  time.Time          `json:"fetchedAt"`
}

// Compute flattens the day groups and picks the event with the greatest hour.
// Events with equal hours keep their original order.
func Compute(days []clockapi.HistoryDay) Snapshot {
	var all []domain.ClockEvent
	for _, d := range days {
		all = append(all, d.Events...)
	}
	if len(all) == 0 {
		return Snapshot{NextAction: domain.ActionClockIn}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].HourTime().After(all[j].HourTime())
	})

	last := all[0]
	next := domain.ActionClockIn
	if last.Action == domain.ActionClockIn {
		next = domain.ActionClockOut
	}
	return Snapshot{LastEvent: &last, NextAction: next}
}

// MonthRange returns the first and last instant of now's month in now's
// location, rendered as UTC ISO strings.
func MonthRange(now time.Time) (start, end string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return domain.FormatISO(first), domain.FormatISO(last)
}
