package helpers

// Request DTOs for the dev auction backend.
type CreateBidRequest struct {
	ItemID string  `json:"itemId" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the success body of /api/auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
