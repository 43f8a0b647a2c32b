package board

import (
	"time"

	"trellis/internal/model"
)

// MonthGrid returns every day shown on the calendar for a month: the
// month's days padded with leading and trailing out-of-month days so
// the grid starts on Sunday and ends on Saturday. The length is always
// a multiple of 7.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, 6-int(last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DueOn returns the tickets whose due date falls on the given day, in
// snapshot order. Tickets without a due date never appear.
func DueOn(tickets []model.Ticket, day time.Time) []model.Ticket {
	var due []model.Ticket
	for _, t := range tickets {
		if t.DueDate == nil {
			continue
		}
		if sameDay(t.DueDate.Local(), day) {
			due = append(due, t)
		}
	}
	return due
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
