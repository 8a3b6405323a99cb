// internal/handlers/member/member_handler.go
package member

import (
	"errors"
	"net/http"

	"clubhub-service/internal/domain/member"
	xerrors "clubhub-service/internal/pkg/errors"
	"clubhub-service/internal/pkg/response"
	memberUsecase "clubhub-service/internal/service/member"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MemberHandler struct {
	memberService *memberUsecase.MemberService
	logger        *zap.Logger
}

func NewMemberHandler(memberService *memberUsecase.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// ListMembers returns all member profiles.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to list members")
		return
	}
	response.Success(c, http.StatusOK, "", members)
}

// GetMember returns one member profile.
func (h *MemberHandler) GetMember(c *gin.Context) {
	m, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "member not found")
			return
		}
		h.logger.Error("failed to get member", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to get member")
		return
	}
	response.Success(c, http.StatusOK, "", m)
}

// CreateMember creates a member profile, optionally with a login account.
// Generated credentials appear in this response once and are never
// retrievable again.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req member.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request")
		return
	}

	m, creds, err := h.memberService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create member", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to create member")
		return
	}

	body := gin.H{"success": true, "data": m}
	if creds != nil {
		body["user"] = creds
		body["message"] = "member created with user account"
	} else {
		body["message"] = "member created"
	}
	c.JSON(http.StatusCreated, body)
}

// UpdateMember applies a partial profile update.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req member.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request")
		return
	}

	m, err := h.memberService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "member not found")
			return
		}
		h.logger.Error("failed to update member", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to update member")
		return
	}
	response.Success(c, http.StatusOK, "", m)
}

// DeleteMember removes a member profile and its linked identity together.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "member not found")
			return
		}
		h.logger.Error("failed to delete member", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to delete member")
		return
	}
	response.Success(c, http.StatusOK, "member deleted", nil)
}
