package di

import (
	"go.uber.org/fx"

	httpctrl "github.com/politreg/deputy-portal/internal/controller/http"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/middleware"
	"github.com/politreg/deputy-portal/internal/reports"
	"github.com/politreg/deputy-portal/internal/security"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		provideAuthController,
		provideFormController,
		provideUserController,
		provideReportController,
	),
)

func provideAuthController(
	authService service.AuthService,
	securityService *security.SecurityService,
) *httpctrl.AuthController {
	return httpctrl.NewAuthController(authService, securityService)
}

func provideFormController(
	formService service.FormService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.FormController {
	return httpctrl.NewFormController(formService, authMiddleware)
}

func provideUserController(
	userService service.UserService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.UserController {
	return httpctrl.NewUserController(userService, securityService, authMiddleware)
}

func provideReportController(
	reportService service.ReportService,
	renderService *reports.Service,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *httpctrl.ReportController {
	return httpctrl.NewReportController(reportService, renderService, securityService, authMiddleware)
}
