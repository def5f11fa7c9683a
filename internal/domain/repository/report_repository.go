package repository

import (
	"context"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// ReportRepository defines the interface for the reporting subsystem.
type ReportRepository interface {
	// CreatePeriod persists a period together with its templates,
	// region rosters and record graph in one transaction
	CreatePeriod(ctx context.Context, period *entity.ReportPeriod) error

	// AddRegionReports attaches region rosters, with their record
	// graphs, to a stored period
	AddRegionReports(ctx context.Context, periodID uint, reports []entity.RegionReport) error

	// GetPeriod retrieves a period with the full roster graph loaded
	GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error)

	// ListPeriods retrieves all periods ordered by start date descending
	ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error)

	// GetDeputyRecord retrieves one roster row
	GetDeputyRecord(ctx context.Context, id uint) (*entity.DeputyRecord, error)

	// UpdateDeputyRecord saves availability changes on a roster row
	UpdateDeputyRecord(ctx context.Context, record *entity.DeputyRecord) error

	// GetReportRecord retrieves one assignment record
	GetReportRecord(ctx context.Context, id uint) (*entity.ReportRecord, error)

	// UpdateReportRecord saves the completion link of an assignment
	UpdateReportRecord(ctx context.Context, record *entity.ReportRecord) error
}
