// internal/domain/member/dto.go
package member

// CreateRequest creates a new member profile. When CreateAccount is set, a
// login identity with a generated username and password is created alongside
// the profile.
type CreateRequest struct {
	FirstName     string   `json:"first_name" binding:"required"`
	LastName      string   `json:"last_name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	ClubRole      string   `json:"club_role"`
	Skills        []string `json:"skills"`
	Bio           string   `json:"bio"`
	CreateAccount bool     `json:"create_account"`
}

// UpdateRequest carries a partial profile update.
type UpdateRequest struct {
	FirstName    *string  `json:"first_name"`
	LastName     *string  `json:"last_name"`
	Email        *string  `json:"email"`
	ClubRole     *string  `json:"club_role"`
	Skills       []string `json:"skills"`
	Bio          *string  `json:"bio"`
	ProfileImage *string  `json:"profile_image"`
	Active       *bool    `json:"active"`
}
