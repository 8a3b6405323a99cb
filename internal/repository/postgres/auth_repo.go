// internal/repository/postgres/auth_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"clubhub-service/internal/domain/auth"
	xerrors "clubhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

const identityColumns = `id, username, email, password_hash, role, active, member_id, created_at, updated_at`

func scanIdentity(row pgx.Row) (*auth.Identity, error) {
	var identity auth.Identity
	err := row.Scan(
		&identity.ID, &identity.Username, &identity.Email, &identity.PasswordHash,
		&identity.Role, &identity.Active, &identity.MemberID,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan identity: %w", err)
	}
	return &identity, nil
}

// FindByIdentifier retrieves an identity whose username or email matches the
// given login identifier. The UI allows logging in with either.
func (r *AuthRepository) FindByIdentifier(ctx context.Context, identifier string) (*auth.Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM auth_identities
		WHERE username = $1 OR LOWER(email) = LOWER($1)
	`
	return scanIdentity(r.db.QueryRow(ctx, query, identifier))
}

// FindByID retrieves an identity by its id.
func (r *AuthRepository) FindByID(ctx context.Context, id string) (*auth.Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM auth_identities
		WHERE id = $1
	`
	return scanIdentity(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new identity record.
func (r *AuthRepository) Create(ctx context.Context, identity *auth.Identity) error {
	query := `
		INSERT INTO auth_identities (id, username, email, password_hash, role, active, member_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		identity.ID, identity.Username, identity.Email, identity.PasswordHash,
		identity.Role, identity.Active, identity.MemberID,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

// SetActiveByMemberID flips the active flag on the identity linked to a
// member. A member without an account is not an error; profile deactivation
// must not fail just because no login exists.
func (r *AuthRepository) SetActiveByMemberID(ctx context.Context, memberID string, active bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE auth_identities SET active = $2, updated_at = NOW() WHERE member_id = $1`,
		memberID, active,
	)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	return nil
}

// ExistsByUsername reports whether a username is already taken.
func (r *AuthRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM auth_identities WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// AdminExists reports whether any admin identity exists (startup bootstrap).
func (r *AuthRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM auth_identities WHERE role = $1)`,
		auth.RoleAdmin,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return exists, nil
}

// DeleteByMemberIDTx removes the identity linked to a member, inside the
// caller's transaction so a member delete and its identity delete commit
// together. A member without an account is not an error.
func (r *AuthRepository) DeleteByMemberIDTx(ctx context.Context, tx pgx.Tx, memberID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM auth_identities WHERE member_id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete identity for member %s: %w", memberID, err)
	}
	return nil
}
