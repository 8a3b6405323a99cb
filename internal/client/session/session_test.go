package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhub-service/internal/client/api"
	"clubhub-service/internal/client/store"
)

const validToken = "token-alice"

// newBackend serves the two endpoints the session touches. Any bearer token
// other than validToken is rejected the way the real service rejects it.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Identifier != "alice" || body.Password != "s3cret!pass" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "invalid username or password",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   validToken,
			"user": map[string]interface{}{
				"id": "01A", "username": "alice", "email": "alice@codingclub.com", "role": "member",
			},
		})
	})

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "invalid or missing token",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id": "01A", "username": "alice", "email": "alice@codingclub.com", "role": "member",
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, baseURL string) (*Session, *store.MemoryStore) {
	t.Helper()
	tokens := store.NewMemoryStore("")
	return New(api.New(baseURL), tokens), tokens
}

func TestRestoreWithoutToken(t *testing.T) {
	sess, _ := newSession(t, "http://127.0.0.1:0")

	require.Equal(t, StateUnknown, sess.State())
	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Nil(t, sess.User())
}

func TestRestoreWithValidToken(t *testing.T) {
	srv := newBackend(t)
	sess, tokens := newSession(t, srv.URL)
	tokens.Save(validToken)

	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StateAuthenticated, sess.State())
	require.NotNil(t, sess.User())
	assert.Equal(t, "alice", sess.User().Username)
}

func TestRestoreWithRejectedTokenClearsIt(t *testing.T) {
	srv := newBackend(t)
	sess, tokens := newSession(t, srv.URL)
	tokens.Save("token-stale")

	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Nil(t, sess.User())

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "a rejected token must not survive restoration")
}

func TestRestoreWithUnreachableServer(t *testing.T) {
	sess, tokens := newSession(t, "http://127.0.0.1:1")
	tokens.Save(validToken)

	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StateAnonymous, sess.State())

	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestLoginSuccess(t *testing.T) {
	srv := newBackend(t)
	sess, tokens := newSession(t, srv.URL)
	require.NoError(t, sess.Restore(context.Background()))

	user, err := sess.Login(context.Background(), "alice", "s3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, "member", user.Role)

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, validToken, stored)

	// The stored token works for subsequent protected calls.
	me, err := sess.API().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestLoginRejectedKeepsServerMessage(t *testing.T) {
	srv := newBackend(t)
	sess, _ := newSession(t, srv.URL)
	require.NoError(t, sess.Restore(context.Background()))

	_, err := sess.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, StateAnonymous, sess.State())
	assert.EqualError(t, err, "invalid username or password")
}

func TestLoginConnectivityFailure(t *testing.T) {
	sess, _ := newSession(t, "http://127.0.0.1:1")
	require.NoError(t, sess.Restore(context.Background()))

	_, err := sess.Login(context.Background(), "alice", "s3cret!pass")
	require.ErrorIs(t, err, ErrConnectivity)
	assert.Equal(t, StateAnonymous, sess.State())
}

func TestLogoutIsIdempotent(t *testing.T) {
	srv := newBackend(t)
	sess, tokens := newSession(t, srv.URL)
	require.NoError(t, sess.Restore(context.Background()))

	_, err := sess.Login(context.Background(), "alice", "s3cret!pass")
	require.NoError(t, err)

	sess.Logout()
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Nil(t, sess.User())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)

	sess.Logout()
	assert.Equal(t, StateAnonymous, sess.State())

	// The cleared token really is gone from outgoing requests.
	_, err = sess.API().Me(context.Background())
	require.Error(t, err)
}
