package impl

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/observability"
	"github.com/politreg/deputy-portal/internal/relay"
	"github.com/politreg/deputy-portal/internal/security"
)

const (
	msgApproved    = "Пользователь успешно подтверждён"
	msgRejected    = "Пользователь успешно удалён"
	msgNotNotified = "Пользователь не получил уведомление об отклонении заявки."
)

// userService implements service.UserService
type userService struct {
	tx     repository.TxManager
	users  repository.UserRepository
	relay  relay.Client
	hasher *security.PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(
	tx repository.TxManager,
	users repository.UserRepository,
	relayClient relay.Client,
	hasher *security.PasswordHasher,
	logger *zap.Logger,
) service.UserService {
	return &userService{
		tx:     tx,
		users:  users,
		relay:  relayClient,
		hasher: hasher,
		logger: logger,
	}
}

func (s *userService) List(ctx context.Context, viewerID int64) ([]*entity.User, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, service.ErrUserNotFound
	}

	switch {
	case viewer.Role.IsAdmin():
		return s.users.ListActiveStaffVisible(ctx, "")
	case viewer.Role.IsCoordinator():
		region := viewer.Region()
		if region == "" {
			return nil, service.ErrAccessDenied
		}
		return s.users.ListActiveStaffVisible(ctx, region)
	default:
		return nil, service.ErrAccessDenied
	}
}

func (s *userService) GetByID(ctx context.Context, viewerID, targetID int64) (*entity.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Own record is always visible, even before activation.
	if viewerID == targetID {
		if target == nil {
			return nil, service.ErrUserNotFound
		}
		return target, nil
	}

	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, service.ErrUserNotFound
	}

	switch {
	case viewer.Role.IsAdmin():
	case viewer.Role.IsCoordinator():
		region := viewer.Region()
		if region == "" {
			return nil, service.ErrAccessDenied
		}
		// Scope decided before existence so a coordinator cannot probe
		// other regions' ids.
		if target != nil && (target.Role.IsAdmin() || target.Region() != region) {
			return nil, service.ErrAccessDenied
		}
	default:
		return nil, service.ErrAccessDenied
	}

	if target == nil {
		return nil, service.ErrUserNotFound
	}
	return target, nil
}

func (s *userService) ProcessForm(ctx context.Context, req *request.ProcessForm) (*response.ProcessFormResponse, error) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	if user.IsActive {
		return nil, service.ErrUserAlreadyActive
	}

	if req.Approved {
		return s.approve(ctx, req.UserID)
	}
	return s.reject(ctx, user, req.Reason)
}

// approve activates the user, issues credentials and notifies them.
// The whole unit is transactional: if the user cannot be reached, the
// activation rolls back and the staff can retry later.
func (s *userService) approve(ctx context.Context, userID int64) (*response.ProcessFormResponse, error) {
	err := s.tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return service.ErrUserNotFound
		}
		if user.IsActive {
			return service.ErrUserAlreadyActive
		}
		if user.Form == nil {
			return service.ErrFormNotFound
		}

		password, err := security.GeneratePassword()
		if err != nil {
			return err
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		login := security.BuildLogin(user.Form.LastName, user.Form.FirstName, user.Form.MiddleName)
		taken, err := r.Users.ExistsByLogin(ctx, login)
		if err != nil {
			return err
		}
		if taken {
			login = fmt.Sprintf("%s%d", login, user.ID)
		}

		user.Login = &login
		user.PasswordHash = &hash
		user.IsActive = true
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}

		message := fmt.Sprintf(
			"Поздравляем, вы прошли верификацию. \n"+
				"Ваши данные для входа в систему: \n"+
				"Логин: %s\nПароль: %s", login, password)
		if err := s.call(ctx, relay.TaskSendMessage, relay.SendMessagePayload{ChatID: userID, Text: message}); err != nil {
			return err
		}
		return s.call(ctx, relay.TaskChatInvite, relay.ChatInvitePayload{ChatID: userID})
	})
	if err != nil {
		return nil, err
	}

	observability.UserActivations.Inc()
	s.logger.Info("User approved", zap.Int64("user_id", userID))
	return &response.ProcessFormResponse{Status: "success", Message: msgApproved}, nil
}

// reject deletes the user and tells them why. The deletion stands even
// when the notification cannot be delivered; the caller only gets a
// warning in that case.
func (s *userService) reject(ctx context.Context, user *entity.User, reason string) (*response.ProcessFormResponse, error) {
	message := fmt.Sprintf(
		"К сожалению, ваша анкета не прошла проверку.\n"+
			"Причина отклонения анкеты: \n\n%s", reason)

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	if err := s.call(ctx, relay.TaskSendMessage, relay.SendMessagePayload{ChatID: user.ID, Text: message}); err != nil {
		s.logger.Warn("Rejected user was not notified",
			zap.Int64("user_id", user.ID), zap.Error(err))
		return &response.ProcessFormResponse{Status: "warning", Message: msgNotNotified}, nil
	}

	s.logger.Info("User rejected", zap.Int64("user_id", user.ID))
	return &response.ProcessFormResponse{Status: "success", Message: msgRejected}, nil
}

// call runs one relay task and folds transport failures and non-success
// results into a RelayError.
func (s *userService) call(ctx context.Context, taskType string, payload any) error {
	result, err := s.relay.Call(ctx, taskType, payload)
	if err != nil {
		observability.RelayTasks.WithLabelValues(taskType, "error").Inc()
		return &service.RelayError{Message: err.Error()}
	}
	if !result.OK() {
		observability.RelayTasks.WithLabelValues(taskType, "error").Inc()
		return &service.RelayError{Message: result.Message}
	}
	observability.RelayTasks.WithLabelValues(taskType, "success").Inc()
	return nil
}
