package response

import (
	"time"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// UserResponse is the user detail shape returned to staff screens.
type UserResponse struct {
	UserID      int64      `json:"user_id"`
	Login       string     `json:"login,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	FullName string `json:"full_name,omitempty"`
	Region   string `json:"region,omitempty"`
	Level    string `json:"level,omitempty"`
}

// NewUserResponse maps a user entity, flattening the linked form's
// roster fields when the form is loaded.
func NewUserResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		UserID:      user.ID,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
	if user.Login != nil {
		resp.Login = *user.Login
	}
	if user.Form != nil {
		resp.FullName = user.Form.FullName()
		resp.Region = user.Form.Region
		resp.Level = user.Form.RepresentativeBodyLevel
	}
	return resp
}

// AuthResponse is returned from login and token refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// ProcessFormResponse reports the outcome of a staff decision.
type ProcessFormResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
