// internal/service/member/member.go
package member

import (
	"context"
	"fmt"

	"clubhub-service/internal/domain/auth"
	"clubhub-service/internal/domain/member"
	"clubhub-service/internal/pkg/ids"

	"go.uber.org/zap"
)

// Repository is the member-profile store surface.
type Repository interface {
	GetByID(ctx context.Context, id string) (*member.Member, error)
	List(ctx context.Context) ([]*member.Member, error)
	Create(ctx context.Context, m *member.Member) error
	Update(ctx context.Context, m *member.Member) error
	DeleteWithIdentity(ctx context.Context, id string) error
}

// AccountManager covers the identity operations the member lifecycle
// touches: issuing a login for a new profile and keeping the account's
// active flag in step with the profile's.
type AccountManager interface {
	CreateAccount(ctx context.Context, m *member.Member) (*auth.AccountCredentials, error)
	SetAccountActive(ctx context.Context, memberID string, active bool) error
}

type MemberService struct {
	repo     Repository
	accounts AccountManager
	logger   *zap.Logger
}

func NewMemberService(repo Repository, accounts AccountManager, logger *zap.Logger) *MemberService {
	return &MemberService{repo: repo, accounts: accounts, logger: logger}
}

// Get returns one member profile.
func (s *MemberService) Get(ctx context.Context, id string) (*member.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all member profiles.
func (s *MemberService) List(ctx context.Context) ([]*member.Member, error) {
	return s.repo.List(ctx)
}

// Create adds a member profile and, when requested, a login account with
// generated credentials. The credentials are returned exactly once.
func (s *MemberService) Create(ctx context.Context, req *member.CreateRequest) (*member.Member, *auth.AccountCredentials, error) {
	clubRole := req.ClubRole
	if clubRole == "" {
		clubRole = "Member"
	}

	m := &member.Member{
		ID:        ids.NewMemberCode(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		ClubRole:  clubRole,
		Skills:    req.Skills,
		Bio:       req.Bio,
		Active:    true,
	}
	if m.Skills == nil {
		m.Skills = []string{}
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, nil, fmt.Errorf("failed to create member: %w", err)
	}

	var creds *auth.AccountCredentials
	if req.CreateAccount {
		var err error
		creds, err = s.accounts.CreateAccount(ctx, m)
		if err != nil {
			return nil, nil, fmt.Errorf("member created but account creation failed: %w", err)
		}
	}

	s.logger.Info("member created",
		zap.String("member_id", m.ID),
		zap.Bool("with_account", creds != nil),
	)
	return m, creds, nil
}

// Update applies a partial profile update.
func (s *MemberService) Update(ctx context.Context, id string, req *member.UpdateRequest) (*member.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.ClubRole != nil {
		m.ClubRole = *req.ClubRole
	}
	if req.Skills != nil {
		m.Skills = req.Skills
	}
	if req.Bio != nil {
		m.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		m.ProfileImage = *req.ProfileImage
	}
	activeChanged := req.Active != nil && m.Active != *req.Active
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	// Keep the login in step with the profile, or a deactivated member
	// could still sign in.
	if activeChanged {
		if err := s.accounts.SetAccountActive(ctx, m.ID, m.Active); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Delete removes a member profile together with its linked identity, so no
// login survives its member record.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteWithIdentity(ctx, id); err != nil {
		return err
	}
	s.logger.Info("member deleted", zap.String("member_id", id))
	return nil
}
