package service

import (
	"context"
	"errors"
	"time"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/dto/request"
)

var (
	ErrPeriodNotFound = errors.New("report period not found")
	ErrRecordNotFound = errors.New("report record not found")
	ErrInvalidPeriod  = errors.New("invalid report period")
)

// ReportService manages reporting windows and their rosters. Creating
// a period fans out a RegionReport per known region, a DeputyRecord
// per eligible deputy and an empty ReportRecord per template.
type ReportService interface {
	// CreatePeriod opens a reporting window and builds the full roster graph
	CreatePeriod(ctx context.Context, req *request.CreateReportPeriod) (*entity.ReportPeriod, error)

	// EnsurePeriodFor opens the calendar-month window containing now
	// unless one already covers it; used by the monthly scheduler
	EnsurePeriodFor(ctx context.Context, now time.Time) (*entity.ReportPeriod, error)

	// ListPeriods retrieves all periods, newest first
	ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error)

	// GetPeriod retrieves one period with the roster graph loaded
	GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error)

	// UpdateDeputyRecord marks a roster row available or not
	UpdateDeputyRecord(ctx context.Context, id uint, req *request.UpdateDeputyRecord) (*entity.DeputyRecord, error)

	// FillReportRecord attaches a completion link to an assignment
	FillReportRecord(ctx context.Context, id uint, req *request.FillReportRecord) (*entity.ReportRecord, error)
}
