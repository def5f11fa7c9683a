package repository

import (
	"context"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// ChildSelection flags which child collections an update payload
// actually supplied. A flagged collection is replaced wholesale, even
// with an empty list; an unflagged one keeps its stored rows.
type ChildSelection struct {
	OtherLinks          bool
	Educations          bool
	WorkExperiences     bool
	ForeignLanguages    bool
	NativeLanguages     bool
	SocialOrganizations bool
}

// AllChildren selects every child collection, used on create.
func AllChildren() ChildSelection {
	return ChildSelection{
		OtherLinks:          true,
		Educations:          true,
		WorkExperiences:     true,
		ForeignLanguages:    true,
		NativeLanguages:     true,
		SocialOrganizations: true,
	}
}

// FormRepository defines the interface for questionnaire persistence.
// Create and Update run inside a transaction so the aggregate is never
// stored partially.
type FormRepository interface {
	// Create persists the root and all child collections atomically
	Create(ctx context.Context, form *entity.RegistrationForm) error

	// GetByUserID retrieves a form with every child collection loaded
	GetByUserID(ctx context.Context, userID int64) (*entity.RegistrationForm, error)

	// ListPending retrieves the forms of users awaiting review
	ListPending(ctx context.Context) ([]*entity.RegistrationForm, error)

	// Update overwrites root scalars and replaces the selected child
	// collections with the rows on the form value
	Update(ctx context.Context, form *entity.RegistrationForm, replace ChildSelection) error

	// Delete removes a form and its children
	Delete(ctx context.Context, userID int64) error
}
