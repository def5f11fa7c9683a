package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// reportRepository implements repository.ReportRepository using GORM.
type reportRepository struct {
	*baseRepository[entity.ReportPeriod]
}

// NewReportRepository creates a new GORM-based ReportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{
		baseRepository: newBaseRepository[entity.ReportPeriod](db),
	}
}

// CreatePeriod persists the period graph in one transaction. gorm
// inserts the nested slices with the root.
func (r *reportRepository) CreatePeriod(ctx context.Context, period *entity.ReportPeriod) error {
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(period).Error
	})
}

// AddRegionReports attaches region rosters to a stored period. gorm
// inserts the nested record graphs with each roster root.
func (r *reportRepository) AddRegionReports(ctx context.Context, periodID uint, reports []entity.RegionReport) error {
	if len(reports) == 0 {
		return nil
	}
	for i := range reports {
		reports[i].PeriodID = periodID
	}
	return r.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&reports).Error
	})
}

// GetPeriod retrieves a period with the full roster graph loaded.
func (r *reportRepository) GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error) {
	var period entity.ReportPeriod
	err := r.getDB().WithContext(ctx).
		Preload("Templates").
		Preload("RegionReports").
		Preload("RegionReports.DeputyRecords").
		Preload("RegionReports.DeputyRecords.ReportRecords").
		First(&period, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// ListPeriods retrieves all periods ordered by start date descending.
// Templates come along for the summary counts; rosters stay lazy.
func (r *reportRepository) ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error) {
	var periods []*entity.ReportPeriod
	err := r.getDB().WithContext(ctx).
		Preload("Templates").
		Preload("RegionReports").
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

// GetDeputyRecord retrieves one roster row.
func (r *reportRepository) GetDeputyRecord(ctx context.Context, id uint) (*entity.DeputyRecord, error) {
	var record entity.DeputyRecord
	err := r.getDB().WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateDeputyRecord saves availability changes on a roster row.
func (r *reportRepository) UpdateDeputyRecord(ctx context.Context, record *entity.DeputyRecord) error {
	return r.getDB().WithContext(ctx).Save(record).Error
}

// GetReportRecord retrieves one assignment record.
func (r *reportRepository) GetReportRecord(ctx context.Context, id uint) (*entity.ReportRecord, error) {
	var record entity.ReportRecord
	err := r.getDB().WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateReportRecord saves the completion link of an assignment.
func (r *reportRepository) UpdateReportRecord(ctx context.Context, record *entity.ReportRecord) error {
	return r.getDB().WithContext(ctx).Save(record).Error
}
