// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"time"
)

// Role is the closed set of authorization roles. There is no hierarchy:
// each protected operation names the exact role it requires.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Identity is the authentication record: login credential plus role. It is
// distinct from the richer member profile it may reference.
type Identity struct {
	ID           string         `json:"id" db:"id"`
	Username     string         `json:"username" db:"username"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Role         Role           `json:"role" db:"role"`
	Active       bool           `json:"active" db:"active"`
	MemberID     sql.NullString `json:"-" db:"member_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
