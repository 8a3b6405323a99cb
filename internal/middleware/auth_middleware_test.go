package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubhub-service/internal/domain/auth"
	"clubhub-service/internal/domain/member"
	xerrors "clubhub-service/internal/pkg/errors"
	"clubhub-service/internal/pkg/token"
	authService "clubhub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ---- fakes ----

type fakeRepo struct {
	identities map[string]*auth.Identity
}

func (f *fakeRepo) FindByIdentifier(_ context.Context, identifier string) (*auth.Identity, error) {
	for _, i := range f.identities {
		if i.Username == identifier || i.Email == identifier {
			return i, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*auth.Identity, error) {
	if i, ok := f.identities[id]; ok {
		return i, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, i *auth.Identity) error {
	f.identities[i.ID] = i
	return nil
}

func (f *fakeRepo) ExistsByUsername(_ context.Context, _ string) (bool, error) { return false, nil }
func (f *fakeRepo) AdminExists(_ context.Context) (bool, error)                { return false, nil }
func (f *fakeRepo) SetActiveByMemberID(_ context.Context, _ string, _ bool) error {
	return nil
}

type fakeProfiles struct{}

func (fakeProfiles) GetByID(_ context.Context, _ string) (*member.Member, error) {
	return nil, xerrors.ErrNotFound
}

// ---- harness ----

type harness struct {
	engine *gin.Engine
	tokens *token.Manager
	repo   *fakeRepo
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeRepo{identities: map[string]*auth.Identity{
		"id-admin":  {ID: "id-admin", Username: "admin", Email: "admin@codingclub.com", PasswordHash: string(hash), Role: auth.RoleAdmin, Active: true},
		"id-member": {ID: "id-member", Username: "student", Email: "member@codingclub.com", PasswordHash: string(hash), Role: auth.RoleMember, Active: true},
	}}

	tokens := token.NewManager(token.Config{Secret: []byte("test-secret"), Issuer: "clubhub", TTL: time.Hour})
	svc := authService.NewAuthService(repo, fakeProfiles{}, tokens, zap.NewNop())
	mw := NewAuthMiddleware(svc)

	engine := gin.New()
	engine.GET("/protected", mw.Auth(), func(c *gin.Context) {
		identity := MustGetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID})
	})
	engine.GET("/admin", append(mw.AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})...)

	return &harness{engine: engine, tokens: tokens, repo: repo}
}

func (h *harness) request(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) issue(t *testing.T, identityID string) string {
	t.Helper()
	tok, err := h.tokens.Issuer.Issue(identityID)
	require.NoError(t, err)
	return tok
}

// ---- tests ----

func TestAuth_MissingToken(t *testing.T) {
	h := setup(t)

	w := h.request(t, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
}

func TestAuth_MalformedAndForgedTokens(t *testing.T) {
	h := setup(t)

	require.Equal(t, http.StatusUnauthorized, h.request(t, "/protected", "garbage").Code)

	forged := token.NewManager(token.Config{Secret: []byte("other"), Issuer: "clubhub", TTL: time.Hour})
	tok, err := forged.Issuer.Issue("id-admin")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, h.request(t, "/protected", tok).Code)
}

func TestAuth_ValidToken(t *testing.T) {
	h := setup(t)

	w := h.request(t, "/protected", h.issue(t, "id-member"))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "id-member", body["id"])
}

func TestAuth_IdentityDeletedSinceIssuance(t *testing.T) {
	h := setup(t)

	tok := h.issue(t, "id-member")
	delete(h.repo.identities, "id-member")

	require.Equal(t, http.StatusUnauthorized, h.request(t, "/protected", tok).Code)
}

func TestAuth_IdentityDeactivatedSinceIssuance(t *testing.T) {
	h := setup(t)

	tok := h.issue(t, "id-member")
	h.repo.identities["id-member"].Active = false

	require.Equal(t, http.StatusUnauthorized, h.request(t, "/protected", tok).Code)
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	h := setup(t)
	require.Equal(t, http.StatusOK, h.request(t, "/admin", h.issue(t, "id-admin")).Code)
}

func TestRequireRole_MemberForbidden(t *testing.T) {
	h := setup(t)

	w := h.request(t, "/admin", h.issue(t, "id-member"))
	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
}

func TestRequireRole_UnauthenticatedGets401Not403(t *testing.T) {
	h := setup(t)

	// Authentication is checked before role: no token on an admin route is a
	// 401, never a 403.
	require.Equal(t, http.StatusUnauthorized, h.request(t, "/admin", "").Code)
}

func TestRequireRole_RoleChangeTakesEffectNextCall(t *testing.T) {
	h := setup(t)

	tok := h.issue(t, "id-member")
	require.Equal(t, http.StatusForbidden, h.request(t, "/admin", tok).Code)

	h.repo.identities["id-member"].Role = auth.RoleAdmin
	require.Equal(t, http.StatusOK, h.request(t, "/admin", tok).Code)
}
