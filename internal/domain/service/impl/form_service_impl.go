package impl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/observability"
	"github.com/politreg/deputy-portal/internal/validation"
	apperrors "github.com/politreg/deputy-portal/pkg/errors"
)

// formService implements service.FormService
type formService struct {
	tx     repository.TxManager
	forms  repository.FormRepository
	logger *zap.Logger
}

// NewFormService creates a new FormService instance
func NewFormService(tx repository.TxManager, forms repository.FormRepository, logger *zap.Logger) service.FormService {
	return &formService{
		tx:     tx,
		forms:  forms,
		logger: logger,
	}
}

func (s *formService) Submit(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error) {
	if errs := validation.ValidateForm(req, time.Now()); errs != nil {
		return nil, apperrors.NewValidationError(errs)
	}

	form := mapForm(req)

	err := s.tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.Users.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			user = &entity.User{ID: req.UserID, Role: entity.RoleDeputy}
			if err := r.Users.Create(ctx, user); err != nil {
				return err
			}
		}
		if user.IsActive {
			return service.ErrUserAlreadyActive
		}

		// A pending resubmission replaces the stored questionnaire.
		existing, err := r.Forms.GetByUserID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := r.Forms.Delete(ctx, req.UserID); err != nil {
				return err
			}
		}

		return r.Forms.Create(ctx, form)
	})
	if err != nil {
		return nil, err
	}

	observability.FormSubmissions.Inc()
	s.logger.Info("Questionnaire submitted",
		zap.Int64("user_id", req.UserID),
		zap.String("region", form.Region),
	)
	return form, nil
}

func (s *formService) Update(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error) {
	if errs := validation.ValidateForm(req, time.Now()); errs != nil {
		return nil, apperrors.NewValidationError(errs)
	}

	stored, err := s.forms.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, service.ErrFormNotFound
	}

	form := mapForm(req)
	form.CreatedAt = stored.CreatedAt

	if err := s.forms.Update(ctx, form, childSelection(req)); err != nil {
		return nil, err
	}

	s.logger.Info("Questionnaire updated", zap.Int64("user_id", req.UserID))
	return s.forms.GetByUserID(ctx, req.UserID)
}

func (s *formService) ListPending(ctx context.Context) ([]*entity.RegistrationForm, error) {
	return s.forms.ListPending(ctx)
}

func (s *formService) Get(ctx context.Context, userID int64) (*entity.RegistrationForm, error) {
	form, err := s.forms.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, service.ErrFormNotFound
	}
	return form, nil
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// mapForm converts the validated payload into the aggregate. The birth
// date is already known to parse.
func mapForm(req *request.SubmitForm) *entity.RegistrationForm {
	birthDate, _ := validation.ParseBirthDate(req.BirthDate)

	form := &entity.RegistrationForm{
		UserID:     req.UserID,
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Gender:     req.Gender,
		BirthDate:  birthDate,
		Region:     req.Region,
		Occupation: req.Occupation,

		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		VKPage:          req.VKPage,
		VKGroup:         req.VKGroup,
		TelegramChannel: req.TelegramChannel,
		PersonalSite:    req.PersonalSite,

		MaritalStatus:               req.MaritalStatus,
		ChildrenCount:               req.ChildrenCount,
		ChildrenMaleCount:           req.ChildrenMaleCount,
		ChildrenFemaleCount:         req.ChildrenFemaleCount,
		UnderageChildrenCount:       req.UnderageChildrenCount,
		UnderageChildrenMaleCount:   req.UnderageChildrenMaleCount,
		UnderageChildrenFemaleCount: req.UnderageChildrenFemaleCount,

		PartyExperience: intValue(req.PartyExperience),
		PartyPosition:   req.PartyPosition,
		PartyRole:       req.PartyRole,

		RepresentativeBodyName:     req.RepresentativeBodyName,
		RepresentativeBodyLevel:    req.RepresentativeBodyLevel,
		RepresentativeBodyPosition: req.RepresentativeBodyPosition,
		CommitteeName:              req.CommitteeName,
		CommitteeStatus:            req.CommitteeStatus,

		ProfessionalSphere: entity.StringList(req.ProfessionalSphere),
		Sports:             entity.StringList(req.Sports),
		Recreation:         entity.StringList(req.Recreation),
		Hobbies:            entity.StringList(req.Hobbies),
		PartyResources:     entity.StringList(req.PartyResources),
		KnowledgeGaps:      entity.StringList(req.KnowledgeGaps),

		Awards:                 req.Awards,
		CentralOfficeAssistant: req.CentralOfficeAssistant,
		AdditionalInfo:         req.AdditionalInfo,
		Suggestions:            req.Suggestions,
		Talents:                req.Talents,
		KnowledgeToShare:       req.KnowledgeToShare,
		Superpower:             req.Superpower,
	}

	if req.OtherLinks != nil {
		for _, l := range *req.OtherLinks {
			form.OtherLinks = append(form.OtherLinks, entity.OtherLink{URL: l.URL})
		}
	}
	if req.Educations != nil {
		for _, e := range *req.Educations {
			form.Educations = append(form.Educations, entity.Education{
				Level:                    e.Level,
				Organization:             e.Organization,
				Specialty:                e.Specialty,
				HasPostgraduate:          e.HasPostgraduate,
				PostgraduateType:         e.PostgraduateType,
				PostgraduateOrganization: e.PostgraduateOrganization,
				HasDegree:                e.HasDegree,
				DegreeType:               e.DegreeType,
				HasTitle:                 e.HasTitle,
				TitleType:                e.TitleType,
			})
		}
	}
	if req.WorkExperiences != nil {
		for _, w := range *req.WorkExperiences {
			form.WorkExperiences = append(form.WorkExperiences, entity.WorkExperience{
				Organization: w.Organization,
				Position:     w.Position,
				StartDate:    w.StartDate,
			})
		}
	}
	if req.ForeignLanguages != nil {
		for _, l := range *req.ForeignLanguages {
			form.ForeignLanguages = append(form.ForeignLanguages, entity.ForeignLanguage{
				Name:  l.Name,
				Level: l.Level,
			})
		}
	}
	if req.NativeLanguages != nil {
		for _, l := range *req.NativeLanguages {
			form.NativeLanguages = append(form.NativeLanguages, entity.NativeLanguage{
				Name:  l.Name,
				Level: l.Level,
			})
		}
	}
	if req.SocialOrganizations != nil {
		for _, o := range *req.SocialOrganizations {
			form.SocialOrganizations = append(form.SocialOrganizations, entity.SocialOrganization{
				Name:     o.Name,
				Position: o.Position,
				Years:    o.Years,
			})
		}
	}

	return form
}

// childSelection flags the collections the payload actually supplied.
func childSelection(req *request.SubmitForm) repository.ChildSelection {
	return repository.ChildSelection{
		OtherLinks:          req.OtherLinks != nil,
		Educations:          req.Educations != nil,
		WorkExperiences:     req.WorkExperiences != nil,
		ForeignLanguages:    req.ForeignLanguages != nil,
		NativeLanguages:     req.NativeLanguages != nil,
		SocialOrganizations: req.SocialOrganizations != nil,
	}
}
