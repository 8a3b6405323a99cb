// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"clubhub-service/internal/config"
	"clubhub-service/internal/db"
	authHandler "clubhub-service/internal/handlers/auth"
	memberHandler "clubhub-service/internal/handlers/member"
	"clubhub-service/internal/middleware"
	"clubhub-service/internal/pkg/token"
	"clubhub-service/internal/repository/postgres"
	authUsecase "clubhub-service/internal/service/auth"
	memberUsecase "clubhub-service/internal/service/member"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Token Manager -----
	tokens := token.NewManager(s.cfg.Token)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	authRepo := postgres.NewAuthRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool, dbWrapper, authRepo)

	// ----- Services -----
	authService := authUsecase.NewAuthService(authRepo, memberRepo, tokens, logger)
	memberService := memberUsecase.NewMemberService(memberRepo, authService, logger)

	// ----- Admin bootstrap -----
	if err := authService.EnsureAdmin(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword); err != nil {
		logger.Error("failed to ensure admin identity", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	memberHandlerInst := memberHandler.NewMemberHandler(memberService, logger)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(middleware.RecoveryMiddleware(logger))

	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		MemberHandler:  memberHandlerInst,
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
