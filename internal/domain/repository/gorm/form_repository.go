package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// formRepository implements repository.FormRepository using GORM.
type formRepository struct {
	*baseRepository[entity.RegistrationForm]
}

// NewFormRepository creates a new GORM-based FormRepository.
func NewFormRepository(db *gorm.DB) repository.FormRepository {
	return &formRepository{
		baseRepository: newBaseRepository[entity.RegistrationForm](db),
	}
}

// Create persists the root and all child collections in one transaction.
// gorm's association handling inserts the child slices with the root.
func (r *formRepository) Create(ctx context.Context, form *entity.RegistrationForm) error {
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(form).Error
	})
}

// GetByUserID retrieves a form with every child collection loaded.
func (r *formRepository) GetByUserID(ctx context.Context, userID int64) (*entity.RegistrationForm, error) {
	var form entity.RegistrationForm
	err := r.getDB().WithContext(ctx).
		Preload("OtherLinks").
		Preload("Educations").
		Preload("WorkExperiences").
		Preload("ForeignLanguages").
		Preload("NativeLanguages").
		Preload("SocialOrganizations").
		First(&form, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// ListPending retrieves the forms of users still awaiting review,
// newest submissions first.
func (r *formRepository) ListPending(ctx context.Context) ([]*entity.RegistrationForm, error) {
	var forms []*entity.RegistrationForm
	err := r.getDB().WithContext(ctx).
		Joins("JOIN users ON users.user_id = registration_forms.user_id").
		Where("users.is_active = ?", false).
		Order("registration_forms.created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// Update overwrites root scalars unconditionally. Each child collection
// flagged in replace is deleted and re-created from the rows on form;
// unflagged collections keep whatever is stored.
func (r *formRepository) Update(ctx context.Context, form *entity.RegistrationForm, replace repository.ChildSelection) error {
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clauseAssociations...).Save(form).Error; err != nil {
			return err
		}

		if replace.OtherLinks {
			if err := replaceChildren(tx, form.UserID, &entity.OtherLink{}, form.OtherLinks); err != nil {
				return err
			}
		}
		if replace.Educations {
			if err := replaceChildren(tx, form.UserID, &entity.Education{}, form.Educations); err != nil {
				return err
			}
		}
		if replace.WorkExperiences {
			if err := replaceChildren(tx, form.UserID, &entity.WorkExperience{}, form.WorkExperiences); err != nil {
				return err
			}
		}
		if replace.ForeignLanguages {
			if err := replaceChildren(tx, form.UserID, &entity.ForeignLanguage{}, form.ForeignLanguages); err != nil {
				return err
			}
		}
		if replace.NativeLanguages {
			if err := replaceChildren(tx, form.UserID, &entity.NativeLanguage{}, form.NativeLanguages); err != nil {
				return err
			}
		}
		if replace.SocialOrganizations {
			if err := replaceChildren(tx, form.UserID, &entity.SocialOrganization{}, form.SocialOrganizations); err != nil {
				return err
			}
		}
		return nil
	})
}

// clauseAssociations lists the association fields Save must not touch;
// child replacement is handled explicitly per selection.
var clauseAssociations = []string{
	"OtherLinks", "Educations", "WorkExperiences",
	"ForeignLanguages", "NativeLanguages", "SocialOrganizations",
}

// replaceChildren deletes the stored rows of one collection and inserts
// the supplied ones. An empty slice just clears the collection.
func replaceChildren[T any](tx *gorm.DB, formID int64, model *T, rows []T) error {
	if err := tx.Where("form_id = ?", formID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if err := setFormID(&rows[i], formID); err != nil {
			return err
		}
	}
	return tx.Create(&rows).Error
}

// setFormID stamps the owning form id on a child row.
func setFormID(row any, formID int64) error {
	switch v := row.(type) {
	case *entity.OtherLink:
		v.ID = 0
		v.FormID = formID
	case *entity.Education:
		v.ID = 0
		v.FormID = formID
	case *entity.WorkExperience:
		v.ID = 0
		v.FormID = formID
	case *entity.ForeignLanguage:
		v.ID = 0
		v.FormID = formID
	case *entity.NativeLanguage:
		v.ID = 0
		v.FormID = formID
	case *entity.SocialOrganization:
		v.ID = 0
		v.FormID = formID
	default:
		return errors.New("unknown child row type")
	}
	return nil
}

// Delete removes a form and its children.
func (r *formRepository) Delete(ctx context.Context, userID int64) error {
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&entity.OtherLink{}, &entity.Education{}, &entity.WorkExperience{},
			&entity.ForeignLanguage{}, &entity.NativeLanguage{}, &entity.SocialOrganization{},
		} {
			if err := tx.Where("form_id = ?", userID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&entity.RegistrationForm{}).Error
	})
}
