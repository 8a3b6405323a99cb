// internal/repository/postgres/member_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"clubhub-service/internal/domain/member"
	xerrors "clubhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	db      *pgxpool.Pool
	wrapper *DB
	auth    *AuthRepository
}

func NewMemberRepository(pool *pgxpool.Pool, wrapper *DB, auth *AuthRepository) *MemberRepository {
	return &MemberRepository{db: pool, wrapper: wrapper, auth: auth}
}

const memberColumns = `id, first_name, last_name, email, club_role, skills, bio, profile_image, active, join_date`

func scanMember(row pgx.Row) (*member.Member, error) {
	var m member.Member
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.ClubRole,
		&m.Skills, &m.Bio, &m.ProfileImage, &m.Active, &m.JoinDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan member: %w", err)
	}
	return &m, nil
}

// GetByID retrieves a member profile.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRow(ctx, query, id))
}

// List returns all member profiles, newest first.
func (r *MemberRepository) List(ctx context.Context) ([]*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY join_date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Create inserts a new member profile.
func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (id, first_name, last_name, email, club_role, skills, bio, profile_image, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING join_date
	`
	err := r.db.QueryRow(ctx, query,
		m.ID, m.FirstName, m.LastName, m.Email, m.ClubRole,
		m.Skills, m.Bio, m.ProfileImage, m.Active,
	).Scan(&m.JoinDate)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// Update persists a full member profile.
func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE members
		SET first_name = $2, last_name = $3, email = $4, club_role = $5,
		    skills = $6, bio = $7, profile_image = $8, active = $9
		WHERE id = $1
	`, m.ID, m.FirstName, m.LastName, m.Email, m.ClubRole,
		m.Skills, m.Bio, m.ProfileImage, m.Active)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DeleteWithIdentity removes a member and its linked auth identity in one
// transaction. A member profile is never left behind with a live login, and
// an identity is never left pointing at a deleted member.
func (r *MemberRepository) DeleteWithIdentity(ctx context.Context, memberID string) error {
	tx, err := r.wrapper.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.auth.DeleteByMemberIDTx(ctx, tx, memberID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return tx.Commit(ctx)
}
