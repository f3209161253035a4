package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availabilityHttp "github.com/nilahq/scheduling-backend/internal/availability/http"
	bookingHttp "github.com/nilahq/scheduling-backend/internal/booking/http"
	catalogHttp "github.com/nilahq/scheduling-backend/internal/catalog/http"
	tenantHttp "github.com/nilahq/scheduling-backend/internal/tenant/http"
)

func TestBookingFlow(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@booking.com", "pass", false)
	clientA := createTestUser(t, "clienta@booking.com", "pass", false)
	clientB := createTestUser(t, "clientb@booking.com", "pass", false)
	clientC := createTestUser(t, "clientc@booking.com", "pass", false)

	ownerToken := generateToken(owner.ID, owner.Email)
	clientAToken := generateToken(clientA.ID, clientA.Email)
	clientBToken := generateToken(clientB.ID, clientB.Email)
	clientCToken := generateToken(clientC.ID, clientC.Email)

	// Venue open every day so the test is stable regardless of weekday
	wTenant := executeRequest("POST", "/v1/tenants", tenantHttp.CreateTenantRequest{
		Name:              "Club Central",
		EstablishmentType: "cancha",
		RevenueModel:      "turnos",
		OpeningHours:      "Lun, Mar, Mie, Jue, Vie, Sab, Dom 09:00-21:00",
		Courts:            []string{"Cancha 1", "Cancha 2"},
	}, ownerToken)
	require.Equal(t, http.StatusCreated, wTenant.Code)

	var tenantResp tenantHttp.TenantResponse
	require.NoError(t, json.Unmarshal(wTenant.Body.Bytes(), &tenantResp))

	wService := executeRequest("POST", "/v1/services", catalogHttp.CreateServiceRequest{
		TenantID:    tenantResp.ID,
		Name:        "Alquiler de cancha",
		Discipline:  "padel",
		PriceCents:  150000,
		DurationMin: 60,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, wService.Code)

	var serviceResp catalogHttp.ServiceResponse
	require.NoError(t, json.Unmarshal(wService.Body.Bytes(), &serviceResp))
	assert.Equal(t, "per_court", serviceResp.Config.BookingMode)

	day := time.Now().UTC().AddDate(0, 0, 2)
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)

	var firstID, secondID string

	t.Run("Request assigns first free court", func(t *testing.T) {
		w := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
			ServiceID: serviceResp.ID,
			StartTime: start,
		}, clientAToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "requested", resp.Status)
		assert.Equal(t, "Cancha 1", resp.CourtName)
		assert.Equal(t, clientA.ID, resp.ClientUserID)
		assert.True(t, resp.EndTime.Equal(start.Add(time.Hour)))

		firstID = resp.ID
	})

	t.Run("Overlapping request rolls to next court", func(t *testing.T) {
		w := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
			ServiceID: serviceResp.ID,
			StartTime: start.Add(30 * time.Minute),
		}, clientBToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Cancha 2", resp.CourtName)

		secondID = resp.ID
	})

	t.Run("Full venue rejects further requests", func(t *testing.T) {
		w := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
			ServiceID: serviceResp.ID,
			StartTime: start,
		}, clientCToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Confirm is manager only", func(t *testing.T) {
		path := fmt.Sprintf("/v1/appointments/%s/confirm", firstID)

		wFail := executeRequest("POST", path, nil, clientAToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)

		w := executeRequest("POST", path, nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		wGet := executeRequest("GET", fmt.Sprintf("/v1/appointments/%s", firstID), nil, clientAToken)
		require.Equal(t, http.StatusOK, wGet.Code)

		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(wGet.Body.Bytes(), &resp))
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("Slot grid marks the taken hour", func(t *testing.T) {
		path := fmt.Sprintf("/v1/marketplace/services/%s/slots?date=%s", serviceResp.ID, start.Format("2006-01-02"))
		w := executeRequest("GET", path, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp availabilityHttp.SlotsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		states := map[string]string{}
		for _, s := range resp.Unavailable {
			states[s.StartTime.UTC().Format("15:04")] = s.State
		}
		assert.Equal(t, "confirmed", states["10:00"], "Confirmed booking wins over the overlapping request")
		assert.Equal(t, "requested", states["11:00"], "Half-overlap from the second court should be reported")
		assert.NotEmpty(t, resp.Available, "The rest of the day should stay bookable")
	})

	t.Run("Client cancels own appointment", func(t *testing.T) {
		path := fmt.Sprintf("/v1/appointments/%s/cancel", secondID)

		// Another client cannot cancel it
		wFail := executeRequest("POST", path, nil, clientAToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)

		w := executeRequest("POST", path, nil, clientBToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		wGet := executeRequest("GET", fmt.Sprintf("/v1/appointments/%s", secondID), nil, clientBToken)
		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(wGet.Body.Bytes(), &resp))
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("Freed court accepts a new request", func(t *testing.T) {
		w := executeRequest("POST", "/v1/appointments", bookingHttp.CreateAppointmentRequest{
			ServiceID: serviceResp.ID,
			StartTime: start,
		}, clientCToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.AppointmentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Cancha 2", resp.CourtName)
	})
}
