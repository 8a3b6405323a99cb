// internal/service/auth/seed.go
package auth

import (
	"context"
	"fmt"

	"clubhub-service/internal/domain/auth"
	"clubhub-service/internal/pkg/ids"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	email    string
	password string
	role     auth.Role
}

// SeedDemoUsers creates the development test accounts. The route that calls
// this is only registered outside release mode.
func (s *AuthService) SeedDemoUsers(ctx context.Context) error {
	users := []seedUser{
		{username: "admin", email: "admin@codingclub.com", password: "Admin@123!", role: auth.RoleAdmin},
		{username: "student2025", email: "member@codingclub.com", password: "Student@123!", role: auth.RoleMember},
	}

	for _, u := range users {
		exists, err := s.repo.ExistsByUsername(ctx, u.username)
		if err != nil {
			return fmt.Errorf("failed to check seed user %s: %w", u.username, err)
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		identity := &auth.Identity{
			ID:           ids.NewIdentityID(),
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
		}
		if err := s.repo.Create(ctx, identity); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", u.username, err)
		}
		s.logger.Info("seed user created", zap.String("username", u.username))
	}
	return nil
}
