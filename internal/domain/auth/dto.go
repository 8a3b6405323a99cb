// internal/domain/auth/dto.go
package auth

// LoginRequest carries the login form. The identifier is accepted as either
// a username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// UserInfo is the minimal identity view returned alongside a token.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// LoginResponse is the wire shape of a successful login.
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// AccountCredentials is returned exactly once when an account is
// auto-generated for a member. The plaintext password is never stored.
type AccountCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UserInfoFor builds a UserInfo from an identity record.
func UserInfoFor(identity *Identity) UserInfo {
	return UserInfo{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
	}
}
