package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/availability"
)

// dateLayout is the calendar-day query format.
const dateLayout = "2006-01-02"

type EntryDTO struct {
	Kind      string    `json:"kind"`
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status,omitempty"`
}

func newEntryDTO(e availability.Entry) EntryDTO {
	return EntryDTO{
		Kind:      string(e.Kind),
		CourtName: e.CourtName,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    e.Status,
	}
}

// AgendaResponse is the per-court chronological day view.
type AgendaResponse struct {
	TenantID string                `json:"tenant_id"`
	Date     string                `json:"date"`
	Courts   map[string][]EntryDTO `json:"courts"`
}

type SlotDTO struct {
	StartTime time.Time `json:"start_time"`
	Label     string    `json:"label"`
	State     string    `json:"state"`
}

func newSlotDTO(s availability.Slot) SlotDTO {
	return SlotDTO{StartTime: s.StartTime, Label: s.Label, State: string(s.State)}
}

// SlotsResponse splits the day grid into bookable and taken slots, with a
// state legend on the unavailable side.
type SlotsResponse struct {
	ServiceID   string    `json:"service_id"`
	Date        string    `json:"date"`
	Available   []SlotDTO `json:"available"`
	Unavailable []SlotDTO `json:"unavailable"`
}

func NewSlotsResponse(serviceID, date string, slots []availability.Slot) SlotsResponse {
	resp := SlotsResponse{
		ServiceID:   serviceID,
		Date:        date,
		Available:   []SlotDTO{},
		Unavailable: []SlotDTO{},
	}
	for _, s := range slots {
		dto := newSlotDTO(s)
		if s.State == availability.StateAvailable {
			resp.Available = append(resp.Available, dto)
		} else {
			resp.Unavailable = append(resp.Unavailable, dto)
		}
	}
	return resp
}
