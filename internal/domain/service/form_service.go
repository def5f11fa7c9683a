package service

import (
	"context"
	"errors"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/dto/request"
)

var ErrFormNotFound = errors.New("form not found")

// FormService defines questionnaire operations. Submit is the public
// intake path; Update is the staff edit path with replace-on-supplied
// semantics for child collections.
type FormService interface {
	// Submit validates the payload and stores a fresh questionnaire,
	// creating an inactive user when the identity is unknown. An
	// already approved identity is rejected; a pending resubmission
	// replaces the stored form.
	Submit(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error)

	// Update validates the payload and overwrites a pending form's
	// scalars, replacing only the child collections the payload
	// actually supplied.
	Update(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error)

	// Get retrieves a questionnaire with all collections loaded
	Get(ctx context.Context, userID int64) (*entity.RegistrationForm, error)

	// ListPending retrieves the questionnaires awaiting staff review
	ListPending(ctx context.Context) ([]*entity.RegistrationForm, error)
}
