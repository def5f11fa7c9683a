package di

import (
	"go.uber.org/fx"

	"github.com/politreg/deputy-portal/internal/middleware"
	"github.com/politreg/deputy-portal/internal/security"
)

// MiddlewareModule provides middleware dependencies
var MiddlewareModule = fx.Module("middleware",
	fx.Provide(provideAuthMiddleware),
)

func provideAuthMiddleware(
	jwtProvider *security.JWTProvider,
	securityService *security.SecurityService,
) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtProvider, securityService)
}
