package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{}, &entity.RefreshToken{},
		&entity.RegistrationForm{}, &entity.OtherLink{}, &entity.Education{},
		&entity.WorkExperience{}, &entity.ForeignLanguage{}, &entity.NativeLanguage{},
		&entity.SocialOrganization{},
		&entity.ReportPeriod{}, &entity.ReportTemplate{}, &entity.RegionReport{},
		&entity.DeputyRecord{}, &entity.ReportRecord{},
	)
	require.NoError(t, err)

	return db
}

func testForm(userID int64) *entity.RegistrationForm {
	return &entity.RegistrationForm{
		UserID:             userID,
		LastName:           "Иванов",
		FirstName:          "Иван",
		MiddleName:         "Иванович",
		Gender:             "Мужчина",
		BirthDate:          time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		Region:             "Тверская область",
		PhoneNumber:        "+79161234567",
		Email:              "ivanov@example.com",
		MaritalStatus:      "Женат",
		ProfessionalSphere: entity.StringList{"Право", "Экономика", "Спорт", "Медицина"},
		RepresentativeBodyLevel: "ЗС",
		Educations: []entity.Education{
			{Level: "Высшее", Organization: "МГУ", HasPostgraduate: "Нет"},
		},
		WorkExperiences: []entity.WorkExperience{
			{Organization: "ООО Ромашка", Position: "Юрист", StartDate: "01.2020"},
		},
		ForeignLanguages: []entity.ForeignLanguage{
			{Name: "Английский", Level: "Свободно"},
		},
	}
}

func createUserWithForm(t *testing.T, db *gorm.DB, id int64) {
	ctx := context.Background()
	users := NewUserRepository(db)
	forms := NewFormRepository(db)

	require.NoError(t, users.Create(ctx, &entity.User{ID: id, Role: entity.RoleDeputy}))
	require.NoError(t, forms.Create(ctx, testForm(id)))
}

func TestFormRepository_CreatePersistsChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testForm(42)))

	got, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Educations, 1)
	assert.Len(t, got.WorkExperiences, 1)
	assert.Len(t, got.ForeignLanguages, 1)
	assert.Equal(t, entity.StringList{"Право", "Экономика", "Спорт", "Медицина"}, got.ProfessionalSphere)
}

func TestFormRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)

	got, err := repo.GetByUserID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFormRepository_UpdateReplacesSelectedChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testForm(42)))

	form, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)

	form.Occupation = "Предприниматель"
	form.Educations = []entity.Education{
		{Level: "Высшее", Organization: "СПбГУ", HasPostgraduate: "Нет"},
		{Level: "Среднее специальное", Organization: "Колледж", HasPostgraduate: "Нет"},
	}

	// Only education was supplied; work experience must survive.
	err = repo.Update(ctx, form, repository.ChildSelection{Educations: true})
	require.NoError(t, err)

	got, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Предприниматель", got.Occupation)
	assert.Len(t, got.Educations, 2)
	assert.Len(t, got.WorkExperiences, 1, "unselected collection must keep its rows")
}

func TestFormRepository_UpdateWithEmptyListClears(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testForm(42)))

	form, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	form.ForeignLanguages = nil

	err = repo.Update(ctx, form, repository.ChildSelection{ForeignLanguages: true})
	require.NoError(t, err)

	got, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, got.ForeignLanguages, "supplied empty list must clear stored rows")
}

func TestUserRepository_DeleteCascadesToForm(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	forms := NewFormRepository(db)
	ctx := context.Background()

	createUserWithForm(t, db, 42)

	require.NoError(t, users.Delete(ctx, 42))

	gotUser, err := users.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, gotUser)

	gotForm, err := forms.GetByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, gotForm)

	var count int64
	require.NoError(t, db.Model(&entity.Education{}).Count(&count).Error)
	assert.Zero(t, count, "child rows must be removed with the form")
}

func TestUserRepository_ListActiveStaffVisible(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	forms := NewFormRepository(db)
	ctx := context.Background()

	login := "admin"
	require.NoError(t, users.Create(ctx, &entity.User{ID: 1, Role: entity.RoleAdmin, IsActive: true, Login: &login}))

	require.NoError(t, users.Create(ctx, &entity.User{ID: 2, Role: entity.RoleDeputy, IsActive: true}))
	require.NoError(t, forms.Create(ctx, testForm(2)))

	inactive := testForm(3)
	require.NoError(t, users.Create(ctx, &entity.User{ID: 3, Role: entity.RoleDeputy, IsActive: false}))
	require.NoError(t, forms.Create(ctx, inactive))

	other := testForm(4)
	other.Region = "Омская область"
	require.NoError(t, users.Create(ctx, &entity.User{ID: 4, Role: entity.RoleDeputy, IsActive: true}))
	require.NoError(t, forms.Create(ctx, other))

	all, err := users.ListActiveStaffVisible(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "admins and inactive users stay hidden")

	scoped, err := users.ListActiveStaffVisible(ctx, "Тверская область")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, int64(2), scoped[0].ID)
	require.NotNil(t, scoped[0].Form)
}

func TestUserRepository_ListReportEligible(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	forms := NewFormRepository(db)
	ctx := context.Background()

	createUserWithForm(t, db, 10)

	noLevel := testForm(11)
	noLevel.RepresentativeBodyLevel = ""
	require.NoError(t, users.Create(ctx, &entity.User{ID: 11, Role: entity.RoleDeputy, IsActive: true}))
	require.NoError(t, forms.Create(ctx, noLevel))

	require.NoError(t, db.Model(&entity.User{}).Where("user_id = ?", 10).Update("is_active", true).Error)

	eligible, err := users.ListReportEligible(ctx, "Тверская область", []string{"ЗС", "АЦС", "МСУ"})
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(10), eligible[0].ID)
}

func TestReportRepository_PeriodGraph(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	period := &entity.ReportPeriod{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Templates: []entity.ReportTemplate{
			{Name: "Инфоудар", Theme: entity.ThemeInfoStrike},
		},
		RegionReports: []entity.RegionReport{
			{
				Region: "Тверская область",
				DeputyRecords: []entity.DeputyRecord{
					{
						UserID:      10,
						FullName:    "Иванов Иван Иванович",
						Level:       "ЗС",
						IsAvailable: true,
						ReportRecords: []entity.ReportRecord{{TemplateID: 1}},
					},
				},
			},
		},
	}

	require.NoError(t, repo.CreatePeriod(ctx, period))

	got, err := repo.GetPeriod(ctx, period.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.RegionReports, 1)
	require.Len(t, got.RegionReports[0].DeputyRecords, 1)
	assert.Len(t, got.RegionReports[0].DeputyRecords[0].ReportRecords, 1)

	record := &got.RegionReports[0].DeputyRecords[0]
	record.IsAvailable = false
	record.Reason = "Болезнь"
	require.NoError(t, repo.UpdateDeputyRecord(ctx, record))

	reloaded, err := repo.GetDeputyRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)
	assert.Equal(t, "Болезнь", reloaded.Reason)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	tm := NewTxManager(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	err := tm.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Create(ctx, &entity.User{ID: 7, Role: entity.RoleDeputy}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	got, err := users.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got, "insert must be rolled back")
}
