package widget

import (
	"testing"
	"time"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

func TestMonthMatrix_shape(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantWeeks int
		firstCell *int // nil means padding
	}{
		// September 2025 starts on a Monday and has 30 days: 5 weeks.
		{"monday-first month", 2025, 9, 5, intOf(1)},
		// August 2025 starts on a Friday, 31 days: 4+31 = 35 cells, 5 weeks.
		{"late-start month", 2025, 8, 5, nil},
		// February 2027 starts on a Monday with 28 days: exactly 4 weeks.
		{"exact february", 2027, 2, 4, intOf(1)},
		// December 2025: Monday start, 31 days → 5 weeks.
		{"december", 2025, 12, 5, intOf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := MonthMatrix(model.CalendarState{FocusYear: tt.year, FocusMonth: tt.month})

			if len(view.Weeks) != tt.wantWeeks {
				t.Fatalf("weeks = %d, want %d", len(view.Weeks), tt.wantWeeks)
			}
			for i, week := range view.Weeks {
				if len(week) != 7 {
					t.Errorf("week %d has %d cells, want 7", i, len(week))
				}
			}
			first := view.Weeks[0][0]
			if (first == nil) != (tt.firstCell == nil) {
				t.Errorf("first cell = %v, want %v", first, tt.firstCell)
			}
		})
	}
}

func TestMonthMatrix_paddingOnlyAtEdges(t *testing.T) {
	// May 2025: Thursday start, 31 days.
	view := MonthMatrix(model.CalendarState{FocusYear: 2025, FocusMonth: 5})

	for w := 1; w < len(view.Weeks)-1; w++ {
		for c, cell := range view.Weeks[w] {
			if cell == nil {
				t.Errorf("nil cell in interior week %d col %d", w, c)
			}
		}
	}

	// Every day 1..31 appears exactly once.
	seen := make(map[int]int)
	for _, week := range view.Weeks {
		for _, cell := range week {
			if cell != nil {
				seen[*cell]++
			}
		}
	}
	for day := 1; day <= 31; day++ {
		if seen[day] != 1 {
			t.Errorf("day %d appears %d times", day, seen[day])
		}
	}
}

func TestMonthMatrix_mondayFirstConversion(t *testing.T) {
	// June 2025 starts on a Sunday; Monday-first puts day 1 in the last column.
	view := MonthMatrix(model.CalendarState{FocusYear: 2025, FocusMonth: 6})

	for col := 0; col < 6; col++ {
		if view.Weeks[0][col] != nil {
			t.Errorf("col %d = %v, want nil padding", col, *view.Weeks[0][col])
		}
	}
	if view.Weeks[0][6] == nil || *view.Weeks[0][6] != 1 {
		t.Error("Sunday-starting month must place day 1 in the last column")
	}
}

func TestMonthOffset(t *testing.T) {
	cal := model.CalendarState{FocusYear: 2025, FocusMonth: 12}

	next := MonthOffset(cal, 1)
	if next.FocusYear != 2026 || next.FocusMonth != 1 {
		t.Errorf("forward = %d-%d, want 2026-1", next.FocusYear, next.FocusMonth)
	}

	prev := MonthOffset(model.CalendarState{FocusYear: 2025, FocusMonth: 1}, -1)
	if prev.FocusYear != 2024 || prev.FocusMonth != 12 {
		t.Errorf("back = %d-%d, want 2024-12", prev.FocusYear, prev.FocusMonth)
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	cal := CurrentMonth(now)
	if cal.FocusYear != 2025 || cal.FocusMonth != 7 {
		t.Errorf("CurrentMonth = %d-%d, want 2025-7", cal.FocusYear, cal.FocusMonth)
	}
}

func intOf(v int) *int { return &v }
