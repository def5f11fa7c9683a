package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/config"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	serviceimpl "github.com/politreg/deputy-portal/internal/domain/service/impl"
	"github.com/politreg/deputy-portal/internal/relay"
	"github.com/politreg/deputy-portal/internal/reports"
	"github.com/politreg/deputy-portal/internal/security"
)

// ServiceModule provides service layer dependencies
var ServiceModule = fx.Module("service",
	fx.Provide(
		provideAuthService,
		provideUserService,
		provideFormService,
		provideReportService,
		provideRenderService,
	),
)

func provideAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
) service.AuthService {
	return serviceimpl.NewAuthService(userRepo, refreshTokenRepo, jwtProvider, passwordHasher)
}

func provideUserService(
	tx repository.TxManager,
	userRepo repository.UserRepository,
	relayClient relay.Client,
	passwordHasher *security.PasswordHasher,
	logger *zap.Logger,
) service.UserService {
	return serviceimpl.NewUserService(tx, userRepo, relayClient, passwordHasher, logger)
}

func provideFormService(
	tx repository.TxManager,
	formRepo repository.FormRepository,
	logger *zap.Logger,
) service.FormService {
	return serviceimpl.NewFormService(tx, formRepo, logger)
}

func provideReportService(
	tx repository.TxManager,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) service.ReportService {
	return serviceimpl.NewReportService(tx, reportRepo, userRepo, logger)
}

func provideRenderService(
	cfg *config.ReportsConfig,
	renderLog reports.RenderLog,
	logger *zap.Logger,
) *reports.Service {
	rendererCfg := reports.Config{
		MediaDir: cfg.MediaDir,
		BaseURL:  cfg.BaseURL,
		FontDir:  cfg.FontDir,
	}
	return reports.NewService(rendererCfg, reports.NewRenderer(rendererCfg), renderLog, logger)
}
