package impl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/constants"
	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/validation"
)

// reportService implements service.ReportService
type reportService struct {
	tx      repository.TxManager
	reports repository.ReportRepository
	users   repository.UserRepository
	logger  *zap.Logger
}

// NewReportService creates a new ReportService instance
func NewReportService(
	tx repository.TxManager,
	reports repository.ReportRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) service.ReportService {
	return &reportService{
		tx:      tx,
		reports: reports,
		users:   users,
		logger:  logger,
	}
}

func (s *reportService) CreatePeriod(ctx context.Context, req *request.CreateReportPeriod) (*entity.ReportPeriod, error) {
	start, err := validation.ParseBirthDate(req.StartDate)
	if err != nil {
		return nil, service.ErrInvalidPeriod
	}
	end, err := validation.ParseBirthDate(req.EndDate)
	if err != nil {
		return nil, service.ErrInvalidPeriod
	}
	if !end.After(start) {
		return nil, service.ErrInvalidPeriod
	}

	period := &entity.ReportPeriod{
		StartDate: start,
		EndDate:   end,
	}
	for _, t := range req.Templates {
		tmpl := entity.ReportTemplate{
			Name:        t.Name,
			Description: t.Description,
			Theme:       entity.ReportTheme(t.Theme),
		}
		if t.StartDate != "" {
			if ts, err := validation.ParseBirthDate(t.StartDate); err == nil {
				tmpl.StartDate = &ts
			}
		}
		if t.EndDate != "" {
			if te, err := validation.ParseBirthDate(t.EndDate); err == nil {
				tmpl.EndDate = &te
			}
		}
		period.Templates = append(period.Templates, tmpl)
	}

	if err := s.fanOut(ctx, period); err != nil {
		return nil, err
	}

	s.logger.Info("Report period created",
		zap.Uint("period_id", period.ID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("templates", len(period.Templates)),
	)
	return period, nil
}

func (s *reportService) EnsurePeriodFor(ctx context.Context, now time.Time) (*entity.ReportPeriod, error) {
	periods, err := s.reports.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		if !now.Before(p.StartDate) && now.Before(p.EndDate.AddDate(0, 0, 1)) {
			return p, nil
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	period := &entity.ReportPeriod{
		StartDate: monthStart,
		EndDate:   monthEnd,
	}
	if err := s.fanOut(ctx, period); err != nil {
		return nil, err
	}

	s.logger.Info("Monthly report period bootstrapped",
		zap.Uint("period_id", period.ID),
		zap.Time("start", monthStart),
	)
	return period, nil
}

// fanOut persists the period, then builds the roster graph under it:
// one RegionReport per known region, one DeputyRecord per eligible
// deputy and an empty ReportRecord per template. The period goes in
// first so the records can reference the stored template ids. FullName
// and level are snapshotted from the current form.
func (s *reportService) fanOut(ctx context.Context, period *entity.ReportPeriod) error {
	return s.tx.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Reports.CreatePeriod(ctx, period); err != nil {
			return err
		}

		var regionReports []entity.RegionReport
		for _, region := range constants.Regions {
			regionReport := entity.RegionReport{Region: region}

			users, err := r.Users.ListReportEligible(ctx, region, constants.ReportableBodyLevels)
			if err != nil {
				return err
			}
			for _, u := range users {
				record := entity.DeputyRecord{
					UserID:      u.ID,
					FullName:    u.Form.FullName(),
					Level:       u.Form.RepresentativeBodyLevel,
					IsAvailable: true,
				}
				for _, tmpl := range period.Templates {
					record.ReportRecords = append(record.ReportRecords, entity.ReportRecord{
						TemplateID: tmpl.ID,
					})
				}
				regionReport.DeputyRecords = append(regionReport.DeputyRecords, record)
			}
			regionReports = append(regionReports, regionReport)
		}

		if err := r.Reports.AddRegionReports(ctx, period.ID, regionReports); err != nil {
			return err
		}
		period.RegionReports = regionReports
		return nil
	})
}

func (s *reportService) ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error) {
	return s.reports.ListPeriods(ctx)
}

func (s *reportService) GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error) {
	period, err := s.reports.GetPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, service.ErrPeriodNotFound
	}
	return period, nil
}

func (s *reportService) UpdateDeputyRecord(ctx context.Context, id uint, req *request.UpdateDeputyRecord) (*entity.DeputyRecord, error) {
	record, err := s.reports.GetDeputyRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, service.ErrRecordNotFound
	}

	record.IsAvailable = *req.IsAvailable
	record.Reason = req.Reason
	if err := s.reports.UpdateDeputyRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *reportService) FillReportRecord(ctx context.Context, id uint, req *request.FillReportRecord) (*entity.ReportRecord, error) {
	record, err := s.reports.GetReportRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, service.ErrRecordNotFound
	}

	record.Link = req.Link
	if err := s.reports.UpdateReportRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
