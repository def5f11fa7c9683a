package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/constants"
	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/testutil/mocks"
)

type reportServiceFixture struct {
	svc     service.ReportService
	users   *mocks.MockUserRepository
	forms   *mocks.MockFormRepository
	reports *mocks.MockReportRepository
}

func setupReportService(t *testing.T) *reportServiceFixture {
	t.Helper()
	forms := mocks.NewMockFormRepository()
	users := mocks.NewMockUserRepository(forms)
	reports := mocks.NewMockReportRepository()
	tx := mocks.NewMockTxManager(&repository.Repositories{
		Users:   users,
		Forms:   forms,
		Reports: reports,
	}, users, forms)

	svc := NewReportService(tx, reports, users, zap.NewNop())
	return &reportServiceFixture{svc: svc, users: users, forms: forms, reports: reports}
}

// addDeputy stores an active deputy with the roster-relevant form
// fields filled in.
func (f *reportServiceFixture) addDeputy(t *testing.T, id int64, lastName, region, level string, active bool) {
	t.Helper()
	ctx := context.Background()
	if err := f.users.Create(ctx, &entity.User{ID: id, Role: entity.RoleDeputy, IsActive: active}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := f.forms.Create(ctx, &entity.RegistrationForm{
		UserID:                  id,
		LastName:                lastName,
		FirstName:               "Иван",
		MiddleName:              "Иванович",
		Region:                  region,
		RepresentativeBodyLevel: level,
	})
	if err != nil {
		t.Fatalf("forms.Create() error = %v", err)
	}
}

func periodRequest() *request.CreateReportPeriod {
	return &request.CreateReportPeriod{
		StartDate: "01.06.2025",
		EndDate:   "30.06.2025",
		Templates: []request.ReportTemplatePayload{
			{Name: "Приём граждан", Theme: "Работа с избирателями"},
			{Name: "Публикации", Theme: "Медиа", StartDate: "01.06.2025", EndDate: "15.06.2025"},
		},
	}
}

func TestReportService_CreatePeriod_FansOutRoster(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	f.addDeputy(t, 1, "Иванов", "Московская область", "МСУ", true)
	f.addDeputy(t, 2, "Петров", "Московская область", "ЗС", true)
	f.addDeputy(t, 3, "Сидоров", "Тульская область", "АЦС", true)
	// Pending and non-mandate users stay off the roster.
	f.addDeputy(t, 4, "Смирнов", "Московская область", "МСУ", false)
	f.addDeputy(t, 5, "Кузнецов", "Московская область", "Не является депутатом", true)

	period, err := f.svc.CreatePeriod(ctx, periodRequest())
	if err != nil {
		t.Fatalf("CreatePeriod() error = %v", err)
	}
	if period.ID == 0 {
		t.Fatal("CreatePeriod() did not persist the period")
	}
	if len(period.Templates) != 2 {
		t.Fatalf("templates = %d, want 2", len(period.Templates))
	}
	for _, tmpl := range period.Templates {
		if tmpl.ID == 0 {
			t.Error("template was not persisted before the roster fan-out")
		}
	}

	// Every known region gets a report, deputies or not.
	if len(period.RegionReports) != len(constants.Regions) {
		t.Fatalf("region reports = %d, want %d", len(period.RegionReports), len(constants.Regions))
	}

	rosters := make(map[string][]entity.DeputyRecord)
	for _, rr := range period.RegionReports {
		rosters[rr.Region] = rr.DeputyRecords
	}
	moscow := rosters["Московская область"]
	if len(moscow) != 2 {
		t.Fatalf("Московская область roster = %d, want 2", len(moscow))
	}
	if len(rosters["Тульская область"]) != 1 {
		t.Errorf("Тульская область roster = %d, want 1", len(rosters["Тульская область"]))
	}

	for _, record := range moscow {
		if record.FullName == "" {
			t.Error("roster row has no full name snapshot")
		}
		if !record.IsAvailable {
			t.Error("fresh roster row is not available")
		}
		if len(record.ReportRecords) != 2 {
			t.Fatalf("report records = %d, want one per template", len(record.ReportRecords))
		}
		for _, rec := range record.ReportRecords {
			if rec.TemplateID == 0 {
				t.Error("report record is not bound to a template")
			}
		}
	}
}

func TestReportService_CreatePeriod_InvalidDates(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"unparseable start", "июнь", "30.06.2025"},
		{"unparseable end", "01.06.2025", "скоро"},
		{"end before start", "30.06.2025", "01.06.2025"},
		{"empty interval", "01.06.2025", "01.06.2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := periodRequest()
			req.StartDate = tt.start
			req.EndDate = tt.end
			if _, err := f.svc.CreatePeriod(ctx, req); !errors.Is(err, service.ErrInvalidPeriod) {
				t.Errorf("CreatePeriod() error = %v, want ErrInvalidPeriod", err)
			}
		})
	}
}

func TestReportService_EnsurePeriodFor_ReusesCoveringPeriod(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	created, err := f.svc.CreatePeriod(ctx, periodRequest())
	if err != nil {
		t.Fatalf("CreatePeriod() error = %v", err)
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got, err := f.svc.EnsurePeriodFor(ctx, now)
	if err != nil {
		t.Fatalf("EnsurePeriodFor() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("EnsurePeriodFor() ID = %d, want existing %d", got.ID, created.ID)
	}
	if periods, _ := f.reports.ListPeriods(ctx); len(periods) != 1 {
		t.Errorf("EnsurePeriodFor() duplicated the period, have %d", len(periods))
	}
}

func TestReportService_EnsurePeriodFor_BootstrapsMonth(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	f.addDeputy(t, 1, "Иванов", "Московская область", "МСУ", true)

	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	period, err := f.svc.EnsurePeriodFor(ctx, now)
	if err != nil {
		t.Fatalf("EnsurePeriodFor() error = %v", err)
	}

	wantStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	if !period.StartDate.Equal(wantStart) || !period.EndDate.Equal(wantEnd) {
		t.Errorf("period = %v..%v, want %v..%v", period.StartDate, period.EndDate, wantStart, wantEnd)
	}
	if len(period.RegionReports) != len(constants.Regions) {
		t.Errorf("region reports = %d, want %d", len(period.RegionReports), len(constants.Regions))
	}
}

func TestReportService_GetPeriod_NotFound(t *testing.T) {
	f := setupReportService(t)

	if _, err := f.svc.GetPeriod(context.Background(), 404); !errors.Is(err, service.ErrPeriodNotFound) {
		t.Errorf("GetPeriod() error = %v, want ErrPeriodNotFound", err)
	}
}

func TestReportService_UpdateDeputyRecord(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	f.addDeputy(t, 1, "Иванов", "Московская область", "МСУ", true)
	period, err := f.svc.CreatePeriod(ctx, periodRequest())
	if err != nil {
		t.Fatalf("CreatePeriod() error = %v", err)
	}

	var recordID uint
	for _, rr := range period.RegionReports {
		if len(rr.DeputyRecords) > 0 {
			recordID = rr.DeputyRecords[0].ID
			break
		}
	}
	if recordID == 0 {
		t.Fatal("no roster row was created")
	}

	unavailable := false
	updated, err := f.svc.UpdateDeputyRecord(ctx, recordID, &request.UpdateDeputyRecord{
		IsAvailable: &unavailable,
		Reason:      "Командировка",
	})
	if err != nil {
		t.Fatalf("UpdateDeputyRecord() error = %v", err)
	}
	if updated.IsAvailable || updated.Reason != "Командировка" {
		t.Errorf("UpdateDeputyRecord() = %+v", updated)
	}

	stored, _ := f.reports.GetDeputyRecord(ctx, recordID)
	if stored.IsAvailable {
		t.Error("availability change was not saved")
	}
}

func TestReportService_UpdateDeputyRecord_NotFound(t *testing.T) {
	f := setupReportService(t)

	available := true
	_, err := f.svc.UpdateDeputyRecord(context.Background(), 404, &request.UpdateDeputyRecord{IsAvailable: &available})
	if !errors.Is(err, service.ErrRecordNotFound) {
		t.Errorf("UpdateDeputyRecord() error = %v, want ErrRecordNotFound", err)
	}
}

func TestReportService_FillReportRecord(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	f.addDeputy(t, 1, "Иванов", "Московская область", "МСУ", true)
	period, err := f.svc.CreatePeriod(ctx, periodRequest())
	if err != nil {
		t.Fatalf("CreatePeriod() error = %v", err)
	}

	var recordID uint
	for _, rr := range period.RegionReports {
		for _, dr := range rr.DeputyRecords {
			if len(dr.ReportRecords) > 0 {
				recordID = dr.ReportRecords[0].ID
				break
			}
		}
	}
	if recordID == 0 {
		t.Fatal("no report record was created")
	}

	filled, err := f.svc.FillReportRecord(ctx, recordID, &request.FillReportRecord{
		Link: "https://disk.example.com/report.pdf",
	})
	if err != nil {
		t.Fatalf("FillReportRecord() error = %v", err)
	}
	if filled.Link != "https://disk.example.com/report.pdf" {
		t.Errorf("FillReportRecord() Link = %q", filled.Link)
	}

	stored, _ := f.reports.GetReportRecord(ctx, recordID)
	if stored.Link != filled.Link {
		t.Error("completion link was not saved")
	}
}

func TestReportService_FillReportRecord_NotFound(t *testing.T) {
	f := setupReportService(t)

	_, err := f.svc.FillReportRecord(context.Background(), 404, &request.FillReportRecord{Link: "https://example.com"})
	if !errors.Is(err, service.ErrRecordNotFound) {
		t.Errorf("FillReportRecord() error = %v, want ErrRecordNotFound", err)
	}
}
