package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/nilahq/scheduling-backend/internal/booking/http"
	catalogHttp "github.com/nilahq/scheduling-backend/internal/catalog/http"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	tenantHttp "github.com/nilahq/scheduling-backend/internal/tenant/http"
	waitlistHttp "github.com/nilahq/scheduling-backend/internal/waitlist/http"
)

// findPendingOffer returns the id of the pending offer addressed to the user,
// or an empty string when there is none.
func findPendingOffer(t *testing.T, userID string) string {
	var id string
	err := testPool.QueryRow(context.Background(),
		`SELECT o.id FROM public.waitlist_offers o
		 JOIN public.waitlist_entries e ON o.entry_id = e.id
		 WHERE e.user_id = $1 AND o.status = 'pending'`, userID).Scan(&id)
	if err != nil {
		return ""
	}
	return id
}

func entryStatus(t *testing.T, token string) string {
	w := executeRequest("GET", "/v1/waitlist/entries?mine=true", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp response.PageResponse[waitlistHttp.EntryResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Items, 1)
	return listResp.Items[0].Status
}

func TestWaitlistOfferLifecycle(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@waitlist.com", "pass", false)
	clientA := createTestUser(t, "clienta@waitlist.com", "pass", false)
	clientB := createTestUser(t, "clientb@waitlist.com", "pass", false)
	clientC := createTestUser(t, "clientc@waitlist.com", "pass", false)

	ownerToken := generateToken(owner.ID, owner.Email)
	clientAToken := generateToken(clientA.ID, clientA.Email)
	clientBToken := generateToken(clientB.ID, clientB.Email)
	clientCToken := generateToken(clientC.ID, clientC.Email)

	wTenant := executeRequest("POST", "/v1/tenants", tenantHttp.CreateTenantRequest{
		Name:              "Club Unico",
		EstablishmentType: "cancha",
		RevenueModel:      "turnos",
		OpeningHours:      "Lun, Mar, Mie, Jue, Vie, Sab, Dom 09:00-21:00",
		Courts:            []string{"Cancha 1"},
	}, ownerToken)
	require.Equal(t, http.StatusCreated, wTenant.Code)

	var tenantResp tenantHttp.TenantResponse
	require.NoError(t, json.Unmarshal(wTenant.Body.Bytes(), &tenantResp))

	wService := executeRequest("POST", "/v1/services", catalogHttp.CreateServiceRequest{
		TenantID:    tenantResp.ID,
		Name:        "Alquiler de cancha",
		DurationMin: 60,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, wService.Code)

	var serviceResp catalogHttp.ServiceResponse
	require.NoError(t, json.Unmarshal(wService.Body.Bytes(), &serviceResp))

	day := time.Now().UTC().AddDate(0, 0, 2)
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)

	// The only court is taken, so later requests for this hour have to queue.
	wBook := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
		ServiceID: serviceResp.ID,
		StartTime: start,
	}, clientAToken)
	require.Equal(t, http.StatusCreated, wBook.Code)

	var apptResp bookingHttp.AppointmentResponse
	require.NoError(t, json.Unmarshal(wBook.Body.Bytes(), &apptResp))

	joinPayload := waitlistHttp.JoinRequest{TenantID: tenantResp.ID, ServiceID: serviceResp.ID}

	t.Run("Join queues users in order", func(t *testing.T) {
		wB := executeRequest("POST", "/v1/waitlist/entries", joinPayload, clientBToken)
		require.Equal(t, http.StatusCreated, wB.Code)

		var entryResp waitlistHttp.EntryResponse
		require.NoError(t, json.Unmarshal(wB.Body.Bytes(), &entryResp))
		assert.Equal(t, "waiting", entryResp.Status)

		// Joining twice -> Conflict
		wDup := executeRequest("POST", "/v1/waitlist/entries", joinPayload, clientBToken)
		assert.Equal(t, http.StatusConflict, wDup.Code)

		wC := executeRequest("POST", "/v1/waitlist/entries", joinPayload, clientCToken)
		require.Equal(t, http.StatusCreated, wC.Code)
	})

	t.Run("Cancellation offers the slot to the queue head", func(t *testing.T) {
		w := executeRequest("POST", fmt.Sprintf("/v1/appointments/%s/cancel", apptResp.ID), nil, clientAToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		offerID := findPendingOffer(t, clientB.ID)
		require.NotEmpty(t, offerID, "Oldest waiting entry should receive the offer")
		assert.Empty(t, findPendingOffer(t, clientC.ID))

		wGet := executeRequest("GET", fmt.Sprintf("/v1/waitlist/offers/%s", offerID), nil, clientBToken)
		require.Equal(t, http.StatusOK, wGet.Code)

		var offerResp waitlistHttp.OfferResponse
		require.NoError(t, json.Unmarshal(wGet.Body.Bytes(), &offerResp))
		assert.Equal(t, "Cancha 1", offerResp.CourtName)
		assert.True(t, offerResp.StartTime.Equal(start))
		assert.True(t, offerResp.ExpiresAt.After(time.Now()), "Offer should be open for a limited window")

		assert.Equal(t, "offered", entryStatus(t, clientBToken))
	})

	t.Run("Reject moves the offer to the next entry", func(t *testing.T) {
		offerID := findPendingOffer(t, clientB.ID)
		require.NotEmpty(t, offerID)

		// Another user cannot answer it
		wFail := executeRequest("POST", fmt.Sprintf("/v1/waitlist/offers/%s/reject", offerID), nil, clientCToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)

		w := executeRequest("POST", fmt.Sprintf("/v1/waitlist/offers/%s/reject", offerID), nil, clientBToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		assert.Equal(t, "waiting", entryStatus(t, clientBToken), "Rejector should stay queued for other slots")
		require.NotEmpty(t, findPendingOffer(t, clientC.ID), "Slot should move on to the next waiting entry")
		assert.Empty(t, findPendingOffer(t, clientB.ID), "Rejector must not be re-offered the same slot")
	})

	t.Run("Expired accept passes the slot along", func(t *testing.T) {
		offerID := findPendingOffer(t, clientC.ID)
		require.NotEmpty(t, offerID)

		_, err := testPool.Exec(context.Background(),
			"UPDATE public.waitlist_offers SET expires_at = now() - interval '1 hour' WHERE id = $1", offerID)
		require.NoError(t, err)

		w := executeRequest("POST", fmt.Sprintf("/v1/waitlist/offers/%s/accept", offerID), nil, clientCToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		assert.Equal(t, "removed", entryStatus(t, clientCToken), "Lapsed entry should leave the queue")
		require.NotEmpty(t, findPendingOffer(t, clientB.ID), "Slot should move on past the lapsed offer")
	})

	t.Run("Accept books the slot bypassing the advance window", func(t *testing.T) {
		// Tighten the advance window so a direct booking two days out is rejected
		wCfg := executeRequest("PATCH", fmt.Sprintf("/v1/services/%s", serviceResp.ID), catalogHttp.UpdateServiceRequest{
			Config: &catalogHttp.ConfigDTO{MinAdvanceHours: 240},
		}, ownerToken)
		require.Equal(t, http.StatusOK, wCfg.Code)

		wDirect := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
			ServiceID: serviceResp.ID,
			StartTime: start.Add(3 * time.Hour),
		}, clientCToken)
		assert.Equal(t, http.StatusBadRequest, wDirect.Code, "Direct booking inside the advance window should fail")

		offerID := findPendingOffer(t, clientB.ID)
		require.NotEmpty(t, offerID)

		w := executeRequest("POST", fmt.Sprintf("/v1/waitlist/offers/%s/accept", offerID), nil, clientBToken)
		require.Equal(t, http.StatusCreated, w.Code, "Accepting an offer is exempt from the advance window")

		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "requested", resp.Status)
		assert.Equal(t, "Cancha 1", resp.CourtName)
		assert.Equal(t, clientB.ID, resp.ClientUserID)
		assert.True(t, resp.StartTime.Equal(start))

		assert.Equal(t, "accepted", entryStatus(t, clientBToken))
	})
}
