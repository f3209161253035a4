package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilahq/scheduling-backend/internal/api"
)

func TestAuthFlow(t *testing.T) {
	clearTables()

	t.Run("Register", func(t *testing.T) {
		payload := api.RegisterRequest{
			Email:       "bruno@nila.app",
			Password:    "secret123",
			DisplayName: "Bruno",
		}

		w := executeRequest("POST", "/v1/auth/register", payload, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.RegisterResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.User.ID)
		assert.Equal(t, "bruno@nila.app", resp.User.Email)

		// Duplicate email -> Conflict
		wDup := executeRequest("POST", "/v1/auth/register", payload, "")
		assert.Equal(t, http.StatusConflict, wDup.Code)
	})

	t.Run("Login", func(t *testing.T) {
		payload := api.LoginRequest{Email: "bruno@nila.app", Password: "secret123"}

		w := executeRequest("POST", "/v1/auth/login", payload, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.LoginResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bruno@nila.app", resp.User.Email)
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		payload := api.LoginRequest{Email: "bruno@nila.app", Password: "wrong"}

		w := executeRequest("POST", "/v1/auth/login", payload, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Protected route without token", func(t *testing.T) {
		w := executeRequest("GET", "/v1/appointments", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
