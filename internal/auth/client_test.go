package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/aifa-contracts/internal/model"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "anon-key", 5*time.Second, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_SignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "isaac@aifa.aero", body["email"])

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"expires_at":    1900000000,
			"user": map[string]any{
				"id":            "u-123",
				"email":         "isaac@aifa.aero",
				"app_metadata":  map[string]any{"role": "ADMIN"},
				"user_metadata": map[string]any{"full_name": "Captain Isaac"},
			},
		})
	})

	session, err := newTestClient(t, mux).SignIn(context.Background(), "isaac@aifa.aero", "pw")
	require.NoError(t, err)

	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.Equal(t, int64(1900000000), session.ExpiresAt.Unix())
	assert.Equal(t, &model.User{ID: "u-123", Name: "Captain Isaac", Email: "isaac@aifa.aero", Role: model.UserRoleAdmin}, session.User)
}

func TestClient_SignInInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	})

	_, err := newTestClient(t, mux).SignIn(context.Background(), "x@aifa.aero", "bad")
	require.Error(t, err)

	var authErr *Error
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, KindInvalidCredentials, authErr.Kind)
}

func TestClient_SignUpAlreadyRegistered(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":       422,
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})
	})

	_, err := newTestClient(t, mux).SignUp(context.Background(), "x@aifa.aero", "pw", "X")

	var authErr *Error
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, KindAlreadyRegistered, authErr.Kind)
}

func TestClient_SignUpReturnsUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data := body["data"].(map[string]any)
		assert.Equal(t, "Ana Ruiz", data["full_name"])

		writeJSON(w, http.StatusOK, map[string]any{
			"id":            "u-9",
			"email":         "ana.ruiz@aifa.aero",
			"user_metadata": map[string]any{"full_name": "Ana Ruiz", "role": "ADMIN"},
		})
	})

	user, err := newTestClient(t, mux).SignUp(context.Background(), "ana.ruiz@aifa.aero", "pw", "Ana Ruiz")
	require.NoError(t, err)
	assert.Equal(t, "u-9", user.ID)
	assert.Equal(t, model.UserRoleViewer, user.Role)
}

func TestClient_GetUserFallsBackToEmailName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"id": "u-5", "email": "operador@aifa.aero"})
	})

	user, err := newTestClient(t, mux).GetUser(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, "operador", user.Name)
}

func TestClient_SignOut(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, newTestClient(t, mux).SignOut(context.Background(), "access"))
	assert.True(t, called)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "anon-key", time.Second, zerolog.Nop())

	_, err := client.GetUser(context.Background(), "access")

	var authErr *Error
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, KindUnavailable, authErr.Kind)
}
