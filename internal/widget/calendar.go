package widget

import (
	"time"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// MonthOffset moves the calendar focus by the given number of months and
// returns the new view state. Month arithmetic normalizes across year
// boundaries.
func MonthOffset(cal model.CalendarState, offset int) model.CalendarState {
	t := time.Date(cal.FocusYear, time.Month(cal.FocusMonth), 1, 0, 0, 0, 0, time.UTC)
	t = t.AddDate(0, offset, 0)
	return model.CalendarState{FocusYear: t.Year(), FocusMonth: int(t.Month())}
}

// CurrentMonth returns the view state focused on now's month.
func CurrentMonth(now time.Time) model.CalendarState {
	return model.CalendarState{FocusYear: now.Year(), FocusMonth: int(now.Month())}
}

// MonthMatrix computes the Monday-first day grid for the focused month.
// Each week has exactly seven cells; cells before the first and after the
// last day of the month are nil. The weekday conversion shifts Go's
// Sunday-first numbering to Monday-first display:
// startDayIndex = (firstWeekday + 6) % 7.
func MonthMatrix(cal model.CalendarState) model.CalendarView {
	first := time.Date(cal.FocusYear, time.Month(cal.FocusMonth), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	startDayIndex := (int(first.Weekday()) + 6) % 7

	var weeks [][]*int
	week := make([]*int, 7)
	col := startDayIndex

	for day := 1; day <= daysInMonth; day++ {
		d := day
		week[col] = &d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}

	return model.CalendarView{
		Year:  cal.FocusYear,
		Month: cal.FocusMonth,
		Weeks: weeks,
	}
}
