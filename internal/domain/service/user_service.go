package service

import (
	"context"
	"errors"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyActive = errors.New("user is already active")
	ErrAccessDenied      = errors.New("access denied")
)

// RelayError reports that the notification side of a workflow failed.
// Message carries the worker's error text for the staff screen.
type RelayError struct {
	Message string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return "notification delivery failed"
	}
	return "notification delivery failed: " + e.Message
}

// UserService defines staff-facing user operations. Every read is
// scoped by the viewer: admins see all active non-admin users,
// coordinators only their own form's region, deputies only themselves.
type UserService interface {
	// List retrieves the users visible to the viewer
	List(ctx context.Context, viewerID int64) ([]*entity.User, error)

	// GetByID retrieves one user if the viewer's scope allows it
	GetByID(ctx context.Context, viewerID, targetID int64) (*entity.User, error)

	// ProcessForm applies the staff decision on a pending questionnaire.
	// Approval issues credentials and notifies the user atomically; a
	// rejection deletes the user even when the notification fails, in
	// which case the response carries a warning instead of an error.
	ProcessForm(ctx context.Context, req *request.ProcessForm) (*response.ProcessFormResponse, error)
}
