package auth

// LoginRequest carries the credentials presented at the boundary.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the validated identity handed back to the boundary for
// token minting. It never carries the password hash.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
