package booking

import (
	"strings"
	"time"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
)

// resolveCourt picks the court for a new appointment on [start, end).
//
// A requested court must belong to the bookable set and be neither busy nor
// blocked. Without a request the first free bookable court wins, preserving
// roster order. A whole-venue block makes every court blocked.
func resolveCourt(
	requested string,
	bookable []string,
	appointments []*Appointment,
	blocks []*blockedslot.BlockedSlot,
	start, end time.Time,
) (string, error) {
	busy := make(map[string]bool)
	for _, a := range appointments {
		if a.Active() && a.Overlaps(start, end) && a.CourtName != "" {
			busy[a.CourtName] = true
		}
	}

	venueBlocked := false
	blocked := make(map[string]bool)
	for _, b := range blocks {
		if !b.Overlaps(start, end) {
			continue
		}
		if b.BlocksWholeVenue() {
			venueBlocked = true
			break
		}
		blocked[b.CourtName] = true
	}

	free := func(court string) bool {
		return !venueBlocked && !busy[court] && !blocked[court]
	}

	requested = strings.TrimSpace(requested)
	if requested != "" {
		included := false
		for _, c := range bookable {
			if c == requested {
				included = true
				break
			}
		}
		if !included {
			return "", ErrCourtNotIncluded
		}
		if !free(requested) {
			return "", ErrCourtUnavailable
		}
		return requested, nil
	}

	for _, c := range bookable {
		if free(c) {
			return c, nil
		}
	}
	return "", ErrNoCourtAvailable
}
