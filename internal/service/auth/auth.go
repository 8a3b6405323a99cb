// internal/service/auth/auth.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clubhub-service/internal/domain/auth"
	"clubhub-service/internal/domain/member"
	xerrors "clubhub-service/internal/pkg/errors"
	"clubhub-service/internal/pkg/ids"
	"clubhub-service/internal/pkg/password"
	"clubhub-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IdentityRepository is the credential store surface the service needs.
type IdentityRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*auth.Identity, error)
	FindByID(ctx context.Context, id string) (*auth.Identity, error)
	Create(ctx context.Context, identity *auth.Identity) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	AdminExists(ctx context.Context) (bool, error)
	SetActiveByMemberID(ctx context.Context, memberID string, active bool) error
}

// ProfileReader resolves the member profile an identity points at.
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*member.Member, error)
}

type AuthService struct {
	repo     IdentityRepository
	profiles ProfileReader
	tokens   *token.Manager
	logger   *zap.Logger
}

func NewAuthService(repo IdentityRepository, profiles ProfileReader, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies an identifier/password pair and issues a bearer token.
//
// The response never distinguishes "no such user" from "wrong password"
// (identifier enumeration); the internal reason goes to the log only.
func (s *AuthService) Login(ctx context.Context, identifier, pw string) (*auth.Identity, string, error) {
	if identifier == "" || pw == "" {
		return nil, "", xerrors.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			s.logger.Info("login failed: no such identity", zap.String("identifier", identifier))
			return nil, "", xerrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up identity: %w", err)
	}

	if !identity.Active {
		s.logger.Info("login failed: account inactive", zap.String("identifier", identifier))
		return nil, "", xerrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(pw)); err != nil {
		s.logger.Info("login failed: password mismatch", zap.String("identifier", identifier))
		return nil, "", xerrors.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issuer.Issue(identity.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("identity_id", identity.ID),
		zap.String("username", identity.Username),
	)
	return identity, tok, nil
}

// Authenticate resolves a bearer token back to a live identity record.
//
// The identity is re-read from the store on every call so role and active
// reflect current state, never what was true at issuance. A token whose
// identity has been deleted or deactivated yields ErrIdentityGone.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*auth.Identity, error) {
	identityID, err := s.tokens.Verifier.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	identity, err := s.repo.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrIdentityGone
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	if !identity.Active {
		return nil, xerrors.ErrIdentityGone
	}

	return identity, nil
}

// Authorize checks a resolved identity against a required role. An empty
// requirement admits any authenticated identity; otherwise the roles must
// match exactly. There is no role hierarchy.
func Authorize(identity *auth.Identity, required auth.Role) error {
	if required == "" {
		return nil
	}
	if identity.Role != required {
		return xerrors.ErrForbidden
	}
	return nil
}

// Profile returns the member profile linked to an identity, or nil when the
// identity has no profile (the bootstrap admin, for instance).
func (s *AuthService) Profile(ctx context.Context, identity *auth.Identity) (*member.Member, error) {
	if !identity.MemberID.Valid {
		return nil, nil
	}
	m, err := s.profiles.GetByID(ctx, identity.MemberID.String)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return m, nil
}

// CreateAccount creates a login identity for a member with a generated
// username and one-time password. The plaintext password is returned once
// and never persisted.
func (s *AuthService) CreateAccount(ctx context.Context, m *member.Member) (*auth.AccountCredentials, error) {
	username := password.Username(m.FirstName, m.LastName)
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		username += password.UniqueSuffix()
	}

	plain := password.Generate()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &auth.Identity{
		ID:           ids.NewIdentityID(),
		Username:     username,
		Email:        m.Email,
		PasswordHash: string(hash),
		Role:         auth.RoleMember,
		Active:       true,
		MemberID:     sql.NullString{String: m.ID, Valid: true},
	}
	if err := s.repo.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("member account created",
		zap.String("identity_id", identity.ID),
		zap.String("member_id", m.ID),
		zap.String("username", username),
	)

	return &auth.AccountCredentials{
		Username: username,
		Password: plain,
		Role:     auth.RoleMember,
	}, nil
}

// SetAccountActive propagates a member's active flag to its login identity.
// Deactivating a profile locks its account out on the very next request,
// since every protected call re-resolves the identity. No-op for members
// without accounts.
func (s *AuthService) SetAccountActive(ctx context.Context, memberID string, active bool) error {
	if err := s.repo.SetActiveByMemberID(ctx, memberID, active); err != nil {
		return fmt.Errorf("failed to update account state: %w", err)
	}
	s.logger.Info("account state changed",
		zap.String("member_id", memberID),
		zap.Bool("active", active),
	)
	return nil
}

// EnsureAdmin creates the admin identity on startup when none exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, pw string) error {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		s.logger.Info("admin identity already exists, skipping bootstrap")
		return nil
	}

	if email == "" || pw == "" {
		return fmt.Errorf("admin email and password must be provided")
	}
	if len(pw) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &auth.Identity{
		ID:           ids.NewIdentityID(),
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
		Active:       true,
	}
	if err := s.repo.Create(ctx, identity); err != nil {
		return fmt.Errorf("failed to create admin identity: %w", err)
	}

	s.logger.Info("admin identity created",
		zap.String("email", email),
		zap.String("identity_id", identity.ID),
	)
	return nil
}
