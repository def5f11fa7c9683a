package di

import (
	"go.uber.org/fx"
	gormdb "gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/repository"
	gormrepo "github.com/politreg/deputy-portal/internal/domain/repository/gorm"
	"github.com/politreg/deputy-portal/internal/reports"
)

// RepositoryModule provides repository dependencies
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		provideUserRepository,
		provideFormRepository,
		provideReportRepository,
		provideRefreshTokenRepository,
		provideTxManager,
		provideRenderLog,
	),
)

func provideUserRepository(db *gormdb.DB) repository.UserRepository {
	return gormrepo.NewUserRepository(db)
}

func provideFormRepository(db *gormdb.DB) repository.FormRepository {
	return gormrepo.NewFormRepository(db)
}

func provideReportRepository(db *gormdb.DB) repository.ReportRepository {
	return gormrepo.NewReportRepository(db)
}

func provideRefreshTokenRepository(db *gormdb.DB) repository.RefreshTokenRepository {
	return gormrepo.NewRefreshTokenRepository(db)
}

func provideTxManager(db *gormdb.DB) repository.TxManager {
	return gormrepo.NewTxManager(db)
}

func provideRenderLog(store *ReportStore) reports.RenderLog {
	return reports.NewMongoRenderLog(store.DB)
}
