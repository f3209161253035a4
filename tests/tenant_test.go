package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	tenantHttp "github.com/nilahq/scheduling-backend/internal/tenant/http"
)

func TestTenantCRUD(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@tenant.com", "pass", true)
	owner := createTestUser(t, "owner@tenant.com", "pass", false)
	stranger := createTestUser(t, "stranger@tenant.com", "pass", false)

	adminToken := generateToken(admin.ID, admin.Email)
	ownerToken := generateToken(owner.ID, owner.Email)
	strangerToken := generateToken(stranger.ID, stranger.Email)

	// Define tenantID in the outer scope to share it between sub-tests
	var tenantID string

	t.Run("Create Tenant", func(t *testing.T) {
		createPayload := tenantHttp.CreateTenantRequest{
			Name:              "Padel Center Norte",
			EstablishmentType: "cancha",
			RevenueModel:      "turnos",
			OpeningHours:      "Lun, Mar, Mie, Jue, Vie 09:00-21:00",
			Courts:            []string{"Cancha 1", "Cancha 2"},
		}

		w := executeRequest("POST", "/v1/tenants", createPayload, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Any authenticated user should be able to create a tenant")

		var resp tenantHttp.TenantResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Padel Center Norte", resp.Name)
		assert.Equal(t, "padel-center-norte", resp.Slug)

		// The raw string is stored as-is; the structured form is decoded from it,
		// accepting the legacy Spanish day labels
		assert.Equal(t, "Lun, Mar, Mie, Jue, Vie 09:00-21:00", resp.OpeningHours)
		require.NotNil(t, resp.Schedule)
		assert.Equal(t, []string{"mon", "tue", "wed", "thu", "fri"}, resp.Schedule.Days)
		assert.Equal(t, "09:00", resp.Schedule.Open1)
		assert.Equal(t, "21:00", resp.Schedule.Close1)

		tenantID = resp.ID
	})

	t.Run("Get Tenant", func(t *testing.T) {
		path := fmt.Sprintf("/v1/tenants/%s", tenantID)

		// Creator is the owner, so they can read it
		w := executeRequest("GET", path, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp tenantHttp.TenantResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, tenantID, resp.ID)
		assert.Equal(t, []string{"Cancha 1", "Cancha 2"}, resp.Courts)

		// Non-member -> Forbidden
		wFail := executeRequest("GET", path, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)
	})

	t.Run("Update Schedule", func(t *testing.T) {
		path := fmt.Sprintf("/v1/tenants/%s", tenantID)
		updatePayload := tenantHttp.UpdateTenantRequest{
			Schedule: &tenantHttp.ScheduleDTO{
				Days:   []string{"mon", "tue", "wed", "thu", "fri", "sat"},
				Open1:  "08:00",
				Close1: "13:00",
				Open2:  "16:00",
				Close2: "22:00",
			},
		}

		w := executeRequest("PATCH", path, updatePayload, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp tenantHttp.TenantResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "Mon, Tue, Wed, Thu, Fri, Sat 08:00-13:00 | 16:00-22:00", resp.OpeningHours)

		// Non-manager cannot update
		wFail := executeRequest("PATCH", path, updatePayload, strangerToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)
	})

	t.Run("Manage Members", func(t *testing.T) {
		path := fmt.Sprintf("/v1/tenants/%s/members", tenantID)

		addPayload := tenantHttp.AddMemberRequest{UserID: stranger.ID, Role: "client"}
		wAdd := executeRequest("POST", path, addPayload, ownerToken)
		require.Equal(t, http.StatusCreated, wAdd.Code)

		// Adding twice -> Conflict
		wDup := executeRequest("POST", path, addPayload, ownerToken)
		assert.Equal(t, http.StatusConflict, wDup.Code)

		wList := executeRequest("GET", path, nil, ownerToken)
		require.Equal(t, http.StatusOK, wList.Code)

		var listResp response.PageResponse[tenantHttp.MemberResponse]
		err := json.Unmarshal(wList.Body.Bytes(), &listResp)
		require.NoError(t, err)
		assert.Equal(t, 2, listResp.Total, "Owner and the new client should be listed")

		// Now a member, the former stranger can read the tenant
		wGet := executeRequest("GET", fmt.Sprintf("/v1/tenants/%s", tenantID), nil, strangerToken)
		assert.Equal(t, http.StatusOK, wGet.Code)

		// Promote to staff
		memberPath := fmt.Sprintf("/v1/tenants/%s/members/%s", tenantID, stranger.ID)
		wUpdate := executeRequest("PATCH", memberPath, tenantHttp.UpdateMemberRequest{Role: "staff"}, ownerToken)
		assert.Equal(t, http.StatusNoContent, wUpdate.Code)

		wRemove := executeRequest("DELETE", memberPath, nil, ownerToken)
		assert.Equal(t, http.StatusNoContent, wRemove.Code)
	})

	t.Run("List Tenants", func(t *testing.T) {
		// Listing is admin-only
		wFail := executeRequest("GET", "/v1/tenants", nil, ownerToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)

		w := executeRequest("GET", "/v1/tenants", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var listResp response.PageResponse[tenantHttp.TenantResponse]
		err := json.Unmarshal(w.Body.Bytes(), &listResp)
		require.NoError(t, err)
		assert.Equal(t, 1, listResp.Total)
	})

	t.Run("Delete Tenant", func(t *testing.T) {
		path := fmt.Sprintf("/v1/tenants/%s", tenantID)

		// Non-admin -> Forbidden
		wFail := executeRequest("DELETE", path, nil, ownerToken)
		assert.Equal(t, http.StatusForbidden, wFail.Code)

		wDelete := executeRequest("DELETE", path, nil, adminToken)
		assert.Equal(t, http.StatusNoContent, wDelete.Code)

		wListAfter := executeRequest("GET", "/v1/tenants", nil, adminToken)
		var listRespAfter response.PageResponse[tenantHttp.TenantResponse]
		_ = json.Unmarshal(wListAfter.Body.Bytes(), &listRespAfter)
		assert.Equal(t, 0, listRespAfter.Total, "Deleted tenant should not be listed")
	})
}
