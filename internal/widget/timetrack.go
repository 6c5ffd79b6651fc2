// Package widget implements the state machines of the composite container
// components. Every transition is pure: it takes the current sub-config
// value and returns a new one, which the host patches back into the node's
// props via the tree engine. Widgets never write to the store directly.
package widget

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// StartEntry closes any running entry (folding its wall-clock elapsed time
// into Seconds and stamping EndedAt) and appends a fresh running entry for
// label. Close-then-open happens within one transition, so no sequence of
// starts can yield two simultaneously running entries.
func StartEntry(tt model.TimeTracking, label string, now time.Time) model.TimeTracking {
	out := StopEntry(tt, now)
	out.Entries = append(out.Entries, model.TimeEntry{
		ID:        uuid.NewString(),
		Label:     label,
		Seconds:   0,
		StartedAt: &now,
	})
	return out
}

// StopEntry closes the running entry if one exists. Calling it with no
// running entry is a no-op.
func StopEntry(tt model.TimeTracking, now time.Time) model.TimeTracking {
	out := model.TimeTracking{Entries: make([]model.TimeEntry, len(tt.Entries))}
	copy(out.Entries, tt.Entries)

	for i, e := range out.Entries {
		if !e.Running() {
			continue
		}
		ended := now
		e.Seconds += elapsedSince(*e.StartedAt, now)
		e.EndedAt = &ended
		out.Entries[i] = e
	}
	return out
}

// ResetEntries clears all entries. The caller is responsible for having
// collected user confirmation before invoking it.
func ResetEntries(model.TimeTracking) model.TimeTracking {
	return model.TimeTracking{Entries: []model.TimeEntry{}}
}

// Elapsed returns the display seconds for an entry at the given instant:
// the stored seconds plus, for a running entry, the wall-clock time since
// it started. The stored Seconds field stays authoritative and is only
// updated when the entry closes.
func Elapsed(e model.TimeEntry, now time.Time) int64 {
	if !e.Running() {
		return e.Seconds
	}
	return e.Seconds + elapsedSince(*e.StartedAt, now)
}

// RunningEntry returns the currently running entry, or nil.
func RunningEntry(tt model.TimeTracking) *model.TimeEntry {
	for i := range tt.Entries {
		if tt.Entries[i].Running() {
			return &tt.Entries[i]
		}
	}
	return nil
}

func elapsedSince(start, now time.Time) int64 {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
