// Package availability turns flat lists of appointments and blocked slots into
// per-court, chronologically ordered views, and classifies candidate slot times by
// their occupancy state. Everything here is a pure function over a read-only
// snapshot; the database remains the single source of truth for conflicts.
package availability

import (
	"sort"
	"strings"
	"time"
)

// UnassignedCourt is the grouping key for entries without a court name.
const UnassignedCourt = "unassigned"

// Kind distinguishes the two entry sources.
type Kind string

const (
	KindAppointment Kind = "appointment"
	KindBlock       Kind = "block"
)

// State is the occupancy state of a candidate slot.
type State string

const (
	StateAvailable State = "available"
	StateRequested State = "requested"
	StateConfirmed State = "confirmed"
	StateBlocked   State = "blocked"
)

// Entry is a unified snapshot row: either an appointment or an operator block.
// Status is only meaningful for appointments.
type Entry struct {
	Kind      Kind
	CourtName string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// valid filters out malformed rows defensively; upstream data is backend-validated
// so this should never trigger in practice.
func (e Entry) valid() bool {
	return !e.StartTime.IsZero() && !e.EndTime.IsZero() && e.StartTime.Before(e.EndTime)
}

// covers reports whether the half-open interval [StartTime, EndTime) contains t.
func (e Entry) covers(t time.Time) bool {
	return !t.Before(e.StartTime) && t.Before(e.EndTime)
}

// GroupByCourt groups entries by trimmed court name, with empty names collected
// under UnassignedCourt. Each group is sorted ascending by start time; ties keep
// insertion order. The input slice is not mutated.
func GroupByCourt(entries []Entry) map[string][]Entry {
	groups := make(map[string][]Entry)
	for _, e := range entries {
		if !e.valid() {
			continue
		}
		key := strings.TrimSpace(e.CourtName)
		if key == "" {
			key = UnassignedCourt
		}
		groups[key] = append(groups[key], e)
	}

	for key := range groups {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartTime.Before(group[j].StartTime)
		})
	}

	return groups
}

// ClassifySlot determines the state of a candidate start time against the entries of
// a single court. Blocks win over confirmed appointments, which win over requested
// ones: a block is an operator decision and must never be hidden by a booking state.
func ClassifySlot(candidate time.Time, entries []Entry) State {
	state := StateAvailable
	for _, e := range entries {
		if !e.valid() || !e.covers(candidate) {
			continue
		}
		switch e.Kind {
		case KindBlock:
			return StateBlocked
		case KindAppointment:
			switch e.Status {
			case string(StateConfirmed):
				state = StateConfirmed
			case string(StateRequested):
				if state == StateAvailable {
					state = StateRequested
				}
			}
		}
	}
	return state
}
