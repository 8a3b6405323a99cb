// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"clubhub-service/internal/domain/auth"
	"clubhub-service/internal/middleware"
	xerrors "clubhub-service/internal/pkg/errors"
	"clubhub-service/internal/pkg/response"
	authUsecase "clubhub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login. The identifier is a username or an email; the
// response carries the token plus the user fields the client session needs,
// so the client never decodes the token itself.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "identifier and password are required")
		return
	}

	identity, tok, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) || errors.Is(err, xerrors.ErrAccountInactive) {
			response.Unauthorized(c, err.Error())
			return
		}
		h.logger.Error("login failed",
			zap.String("identifier", req.Identifier),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Success: true,
		Token:   tok,
		User:    auth.UserInfoFor(identity),
	})
}

// GetMe returns the current identity with its linked profile fields. The
// identity here was re-resolved by the Auth middleware, so role and active
// are current, not what the token was issued with.
func (h *AuthHandler) GetMe(c *gin.Context) {
	identity := middleware.MustGetIdentity(c)

	data := gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"role":     identity.Role,
	}

	profile, err := h.authService.Profile(c.Request.Context(), identity)
	if err != nil {
		h.logger.Error("failed to load profile",
			zap.String("identity_id", identity.ID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile != nil {
		data["member_id"] = profile.ID
		data["full_name"] = profile.FullName()
		data["bio"] = profile.Bio
		data["skills"] = profile.Skills
		data["profile_image"] = profile.ProfileImage
	}

	response.Success(c, http.StatusOK, "", data)
}

// Seed creates the development test accounts. Registered outside release
// mode only.
func (h *AuthHandler) Seed(c *gin.Context) {
	if err := h.authService.SeedDemoUsers(c.Request.Context()); err != nil {
		h.logger.Error("seeding failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to create test users")
		return
	}
	response.Success(c, http.StatusCreated, "test users created", nil)
}
