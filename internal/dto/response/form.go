package response

import (
	"time"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// FormResponse is the full questionnaire as served to staff screens.
// The entity carries its own JSON tags; the wrapper adds the owner's
// account state next to the form body.
type FormResponse struct {
	Form     *entity.RegistrationForm `json:"form"`
	IsActive bool                     `json:"is_active"`
	Role     string                   `json:"role"`
}

// NewFormResponse maps a user with a preloaded form.
func NewFormResponse(user *entity.User) FormResponse {
	return FormResponse{
		Form:     user.Form,
		IsActive: user.IsActive,
		Role:     string(user.Role),
	}
}

// SubmitFormResponse acknowledges a questionnaire submission.
type SubmitFormResponse struct {
	UserID      int64     `json:"user_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}
