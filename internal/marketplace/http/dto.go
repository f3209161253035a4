package http

import (
	"time"

	catalogHttp "github.com/nilahq/scheduling-backend/internal/catalog/http"
	"github.com/nilahq/scheduling-backend/internal/marketplace"
)

type ProposedSlotDTO struct {
	StartTime time.Time `json:"start_time"`
	Label     string    `json:"label"`
}

type ServiceListingDTO struct {
	Service   catalogHttp.ServiceResponse `json:"service"`
	NextSlots []ProposedSlotDTO           `json:"next_slots"`
}

type TenantListingDTO struct {
	TenantID   string              `json:"tenant_id"`
	TenantName string              `json:"tenant_name"`
	Services   []ServiceListingDTO `json:"services"`
}

type DiscoverResponse struct {
	Tenants []TenantListingDTO `json:"tenants"`
}

func NewDiscoverResponse(listings []marketplace.TenantListing) DiscoverResponse {
	resp := DiscoverResponse{Tenants: make([]TenantListingDTO, len(listings))}
	for i, l := range listings {
		dto := TenantListingDTO{
			TenantID:   l.TenantID,
			TenantName: l.TenantName,
			Services:   make([]ServiceListingDTO, len(l.Services)),
		}
		for j, sl := range l.Services {
			slots := make([]ProposedSlotDTO, len(sl.NextSlots))
			for k, s := range sl.NextSlots {
				slots[k] = ProposedSlotDTO{StartTime: s.StartTime, Label: s.Label}
			}
			dto.Services[j] = ServiceListingDTO{
				Service:   catalogHttp.NewServiceResponse(sl.Service),
				NextSlots: slots,
			}
		}
		resp.Tenants[i] = dto
	}
	return resp
}
