package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	body := map[string]string{
		"uid":      "firebase-uid",
		"email":    "ada@example.com",
		"name":     "Ada",
		"role":     "user",
		"password": "correct horse",
	}

	status, raw := srv.do(t, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.JSONEq(t, `{
		"success": true,
		"message": "User created successfully",
		"user": {"uid":"firebase-uid","email":"ada@example.com","name":"Ada","role":"user"}
	}`, string(raw))

	status, raw = srv.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, status)
	resp := decode[map[string]any](t, raw)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "User already exists", resp["message"])
}

func TestRegisterUser_BadRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: `{"email":`},
		{name: "empty body", body: ""},
		{name: "missing email", body: map[string]string{"name": "Nobody"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := srv.do(t, http.MethodPost, "/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			resp := decode[map[string]any](t, raw)
			assert.Equal(t, false, resp["success"])
			assert.NotEmpty(t, resp["message"])
		})
	}
}

func TestRegisterUser_PasswordTooLong(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, raw := srv.do(t, http.MethodPost, "/users", map[string]string{
		"email":    "long@example.com",
		"password": strings.Repeat("x", 80),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"success":false,"message":"Invalid password: must be at most 72 bytes"}`, stripTrace(t, raw))

	status, _ = srv.do(t, http.MethodGet, "/users/long@example.com", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRegisterUser_PaddedEmail(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, raw := srv.do(t, http.MethodPost, "/users", map[string]string{"email": " pad@example.com "})
	require.Equal(t, http.StatusCreated, status, string(raw))

	for _, path := range []string{"/users/%20pad@example.com%20", "/users/pad@example.com"} {
		status, raw = srv.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "pad@example.com", decode[map[string]any](t, raw)["user"].(map[string]any)["email"])
	}

	status, _ = srv.do(t, http.MethodPost, "/users", map[string]string{"email": "pad@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLookupUser(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, _ := srv.do(t, http.MethodPost, "/users", map[string]string{
		"uid": "u1", "email": "grace@example.com", "name": "Grace", "role": "admin", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw := srv.do(t, http.MethodGet, "/users/grace@example.com", nil)
	require.Equal(t, http.StatusOK, status)

	resp := decode[map[string]any](t, raw)
	assert.Equal(t, true, resp["success"])
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Grace", user["name"])
	assert.Equal(t, "admin", user["role"])
	assert.Contains(t, user, "createdAt")
	for _, hidden := range []string{"password", "hashedPassword", "hashed_password", "id", "_id"} {
		assert.NotContains(t, user, hidden)
	}
	assert.NotContains(t, string(raw), "$2a$")

	status, raw = srv.do(t, http.MethodGet, "/users/ghost@example.com", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"success":false,"message":"User not found"}`, stripTrace(t, raw))
}
