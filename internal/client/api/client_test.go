package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   "tok-abc",
			"user": map[string]interface{}{
				"id": "01A", "username": "alice", "email": "alice@codingclub.com", "role": "member",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, user, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "member", user.Role)
	assert.Equal(t, map[string]string{"identifier": "alice", "password": "pw"}, gotBody)
}

func TestLoginRejectedCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "account is deactivated",
		})
	}))
	defer srv.Close()

	_, _, err := New(srv.URL).Login(context.Background(), "bob", "pw")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "account is deactivated", apiErr.Message)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	_, _, err := New("http://127.0.0.1:1").Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "a connection failure never carries a server message")
}

func TestMeAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "invalid or missing token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id": "01A", "username": "alice", "email": "alice@codingclub.com", "role": "admin",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Me(context.Background())
	require.Error(t, err, "no token set yet")

	c.SetToken("tok-abc")
	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	c.ClearToken()
	_, err = c.Me(context.Background())
	require.Error(t, err, "cleared token must stop being sent")
}
