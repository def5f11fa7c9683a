package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	*baseRepository[entity.User]
}

// NewUserRepository creates a new GORM-based UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		baseRepository: newBaseRepository[entity.User](db),
	}
}

// GetByID retrieves a user with the linked form and its collections.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.getDB().WithContext(ctx).
		Preload("Form").
		Preload("Form.OtherLinks").
		Preload("Form.Educations").
		Preload("Form.WorkExperiences").
		Preload("Form.ForeignLanguages").
		Preload("Form.NativeLanguages").
		Preload("Form.SocialOrganizations").
		First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin retrieves a user by their unique login.
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.findByField(ctx, "login", login)
}

// Delete removes a user. Child rows go with the form via the cascade
// constraints; the explicit deletes keep sqlite test databases honest.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&entity.OtherLink{}, &entity.Education{}, &entity.WorkExperience{},
			&entity.ForeignLanguage{}, &entity.NativeLanguage{}, &entity.SocialOrganization{},
		} {
			if err := tx.Where("form_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.RegistrationForm{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&entity.User{}).Error
	})
}

// ListActiveStaffVisible retrieves active non-admin users. When region
// is non-empty the list is narrowed to users whose form is in that
// region, which is how coordinator scoping works.
func (r *userRepository) ListActiveStaffVisible(ctx context.Context, region string) ([]*entity.User, error) {
	query := r.getDB().WithContext(ctx).
		Preload("Form").
		Where("is_active = ?", true).
		Where("role <> ?", entity.RoleAdmin)

	if region != "" {
		query = query.
			Joins("JOIN registration_forms ON registration_forms.user_id = users.user_id").
			Where("registration_forms.region = ?", region)
	}

	var users []*entity.User
	err := query.Order("users.user_id").Find(&users).Error
	return users, err
}

// ListReportEligible retrieves the active users of a region whose form
// carries one of the given representative body levels.
func (r *userRepository) ListReportEligible(ctx context.Context, region string, levels []string) ([]*entity.User, error) {
	var users []*entity.User
	err := r.getDB().WithContext(ctx).
		Preload("Form").
		Joins("JOIN registration_forms ON registration_forms.user_id = users.user_id").
		Where("users.is_active = ?", true).
		Where("registration_forms.region = ?", region).
		Where("registration_forms.representative_body_level IN ?", levels).
		Order("users.user_id").
		Find(&users).Error
	return users, err
}

// ExistsByLogin checks if a user with the given login exists.
func (r *userRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	return r.existsBy(ctx, "login", login)
}
