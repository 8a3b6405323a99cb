// internal/domain/member/entity.go
package member

import "time"

// Member is a club member profile. Auth identities hold a weak reference to
// this record; deleting a member must also remove its linked identity.
type Member struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	ClubRole     string    `json:"club_role" db:"club_role"` // President, Secretary, Member, ...
	Skills       []string  `json:"skills" db:"skills"`
	Bio          string    `json:"bio" db:"bio"`
	ProfileImage string    `json:"profile_image" db:"profile_image"`
	Active       bool      `json:"active" db:"active"`
	JoinDate     time.Time `json:"join_date" db:"join_date"`
}

// FullName joins the member's first and last name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
