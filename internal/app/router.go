// internal/app/router.go
package app

import (
	authHandler "clubhub-service/internal/handlers/auth"
	memberHandler "clubhub-service/internal/handlers/member"
	"clubhub-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	MemberHandler  *memberHandler.MemberHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Auth Routes ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
		auth.GET("/me", h.AuthMiddleware.Auth(), h.AuthHandler.GetMe)

		// Dev-only test fixtures; not registered in release mode.
		if gin.Mode() != gin.ReleaseMode {
			auth.POST("/seed", h.AuthHandler.Seed)
		}
	}

	// ==================== Members ====================
	members := api.Group("/members")
	members.Use(h.AuthMiddleware.Auth())
	{
		members.GET("", h.MemberHandler.ListMembers)
		members.GET("/:id", h.MemberHandler.GetMember)

		admin := members.Group("")
		admin.Use(h.AuthMiddleware.RequireRole("admin"))
		{
			admin.POST("", h.MemberHandler.CreateMember)
			admin.PUT("/:id", h.MemberHandler.UpdateMember)
			admin.DELETE("/:id", h.MemberHandler.DeleteMember)
		}
	}
}
