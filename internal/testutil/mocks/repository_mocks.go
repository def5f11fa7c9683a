// Package mocks provides in-memory fakes for service tests. Each mock
// is map-backed and exposes error-injection fields.
package mocks

import (
	"context"
	"sync"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
	forms *MockFormRepository

	// Error injection
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
	ExistsErr error
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates an empty user store. Passing a form
// repository links form lookups the way the gorm preload does.
func NewMockUserRepository(forms *MockFormRepository) *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*entity.User),
		forms: forms,
	}
}

func (r *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return r.withForm(user), nil
}

func (r *MockUserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Login != nil && *user.Login == login {
			return r.withForm(user), nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	cp.Form = nil
	r.users[user.ID] = &cp
	return nil
}

func (r *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	delete(r.users, id)
	r.mu.Unlock()
	if r.forms != nil {
		return r.forms.Delete(ctx, id)
	}
	return nil
}

func (r *MockUserRepository) ListActiveStaffVisible(ctx context.Context, region string) ([]*entity.User, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.User
	for _, user := range r.users {
		if !user.IsActive || user.Role.IsAdmin() {
			continue
		}
		loaded := r.withForm(user)
		if region != "" && loaded.Region() != region {
			continue
		}
		result = append(result, loaded)
	}
	return result, nil
}

func (r *MockUserRepository) ListReportEligible(ctx context.Context, region string, levels []string) ([]*entity.User, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.User
	for _, user := range r.users {
		if !user.IsActive {
			continue
		}
		loaded := r.withForm(user)
		if loaded.Form == nil || loaded.Form.Region != region {
			continue
		}
		for _, level := range levels {
			if loaded.Form.RepresentativeBodyLevel == level {
				result = append(result, loaded)
				break
			}
		}
	}
	return result, nil
}

func (r *MockUserRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Login != nil && *user.Login == login {
			return true, nil
		}
	}
	return false, nil
}

// withForm returns a copy of user with the linked form attached.
// Callers hold at least a read lock.
func (r *MockUserRepository) withForm(user *entity.User) *entity.User {
	cp := *user
	if r.forms != nil {
		cp.Form = r.forms.get(user.ID)
	}
	return &cp
}

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	mu    sync.RWMutex
	forms map[int64]*entity.RegistrationForm

	// LastReplace records the selection passed to the latest Update.
	LastReplace repository.ChildSelection

	// Error injection
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

var _ repository.FormRepository = (*MockFormRepository)(nil)

func NewMockFormRepository() *MockFormRepository {
	return &MockFormRepository{
		forms: make(map[int64]*entity.RegistrationForm),
	}
}

func (r *MockFormRepository) Create(ctx context.Context, form *entity.RegistrationForm) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[form.UserID] = form
	return nil
}

func (r *MockFormRepository) GetByUserID(ctx context.Context, userID int64) (*entity.RegistrationForm, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forms[userID], nil
}

func (r *MockFormRepository) ListPending(ctx context.Context) ([]*entity.RegistrationForm, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.RegistrationForm
	for _, form := range r.forms {
		result = append(result, form)
	}
	return result, nil
}

func (r *MockFormRepository) Update(ctx context.Context, form *entity.RegistrationForm, replace repository.ChildSelection) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastReplace = replace

	stored, ok := r.forms[form.UserID]
	if !ok {
		r.forms[form.UserID] = form
		return nil
	}
	// Unselected collections keep the stored rows.
	if !replace.OtherLinks {
		form.OtherLinks = stored.OtherLinks
	}
	if !replace.Educations {
		form.Educations = stored.Educations
	}
	if !replace.WorkExperiences {
		form.WorkExperiences = stored.WorkExperiences
	}
	if !replace.ForeignLanguages {
		form.ForeignLanguages = stored.ForeignLanguages
	}
	if !replace.NativeLanguages {
		form.NativeLanguages = stored.NativeLanguages
	}
	if !replace.SocialOrganizations {
		form.SocialOrganizations = stored.SocialOrganizations
	}
	r.forms[form.UserID] = form
	return nil
}

func (r *MockFormRepository) Delete(ctx context.Context, userID int64) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, userID)
	return nil
}

func (r *MockFormRepository) get(userID int64) *entity.RegistrationForm {
	return r.forms[userID]
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	mu      sync.RWMutex
	periods map[uint]*entity.ReportPeriod
	nextID  uint

	// Error injection
	CreateErr error
	GetErr    error
	UpdateErr error
}

var _ repository.ReportRepository = (*MockReportRepository)(nil)

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		periods: make(map[uint]*entity.ReportPeriod),
		nextID:  1,
	}
}

func (r *MockReportRepository) CreatePeriod(ctx context.Context, period *entity.ReportPeriod) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	period.ID = r.nextID
	r.nextID++
	for i := range period.Templates {
		period.Templates[i].ID = r.nextID
		period.Templates[i].PeriodID = period.ID
		r.nextID++
	}
	r.periods[period.ID] = period
	return nil
}

func (r *MockReportRepository) AddRegionReports(ctx context.Context, periodID uint, reports []entity.RegionReport) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	period, ok := r.periods[periodID]
	if !ok {
		return nil
	}
	for i := range reports {
		reports[i].ID = r.nextID
		reports[i].PeriodID = periodID
		r.nextID++
		for j := range reports[i].DeputyRecords {
			reports[i].DeputyRecords[j].ID = r.nextID
			reports[i].DeputyRecords[j].RegionReportID = reports[i].ID
			r.nextID++
			for k := range reports[i].DeputyRecords[j].ReportRecords {
				reports[i].DeputyRecords[j].ReportRecords[k].ID = r.nextID
				reports[i].DeputyRecords[j].ReportRecords[k].DeputyRecordID = reports[i].DeputyRecords[j].ID
				r.nextID++
			}
		}
	}
	period.RegionReports = append(period.RegionReports, reports...)
	return nil
}

func (r *MockReportRepository) GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.periods[id], nil
}

func (r *MockReportRepository) ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*entity.ReportPeriod
	for _, p := range r.periods {
		result = append(result, p)
	}
	return result, nil
}

func (r *MockReportRepository) GetDeputyRecord(ctx context.Context, id uint) (*entity.DeputyRecord, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, period := range r.periods {
		for i := range period.RegionReports {
			for j := range period.RegionReports[i].DeputyRecords {
				if period.RegionReports[i].DeputyRecords[j].ID == id {
					return &period.RegionReports[i].DeputyRecords[j], nil
				}
			}
		}
	}
	return nil, nil
}

func (r *MockReportRepository) UpdateDeputyRecord(ctx context.Context, record *entity.DeputyRecord) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, period := range r.periods {
		for i := range period.RegionReports {
			for j := range period.RegionReports[i].DeputyRecords {
				if period.RegionReports[i].DeputyRecords[j].ID == record.ID {
					keep := period.RegionReports[i].DeputyRecords[j].ReportRecords
					period.RegionReports[i].DeputyRecords[j] = *record
					period.RegionReports[i].DeputyRecords[j].ReportRecords = keep
					return nil
				}
			}
		}
	}
	return nil
}

func (r *MockReportRepository) GetReportRecord(ctx context.Context, id uint) (*entity.ReportRecord, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, period := range r.periods {
		for i := range period.RegionReports {
			for j := range period.RegionReports[i].DeputyRecords {
				records := period.RegionReports[i].DeputyRecords[j].ReportRecords
				for k := range records {
					if records[k].ID == id {
						return &records[k], nil
					}
				}
			}
		}
	}
	return nil, nil
}

func (r *MockReportRepository) UpdateReportRecord(ctx context.Context, record *entity.ReportRecord) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, period := range r.periods {
		for i := range period.RegionReports {
			for j := range period.RegionReports[i].DeputyRecords {
				records := period.RegionReports[i].DeputyRecords[j].ReportRecords
				for k := range records {
					if records[k].ID == record.ID {
						records[k] = *record
						return nil
					}
				}
			}
		}
	}
	return nil
}

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*entity.RefreshToken

	// Error injection
	CreateErr error
	GetErr    error
	RevokeErr error
}

var _ repository.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{
		tokens: make(map[string]*entity.RefreshToken),
	}
}

func (r *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *MockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[token], nil
}

func (r *MockRefreshTokenRepository) RevokeByToken(ctx context.Context, token string) error {
	if r.RevokeErr != nil {
		return r.RevokeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID int64) error {
	if r.RevokeErr != nil {
		return r.RevokeErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, key)
		}
	}
	return nil
}

// MockTxManager runs the unit against the shared mocks. When the user
// and form mocks are known it snapshots their state before fn and
// restores it on error, imitating a rollback.
type MockTxManager struct {
	Repos *repository.Repositories

	// Snapshot targets; optional.
	Users *MockUserRepository
	Forms *MockFormRepository

	// DoErr short-circuits the unit before fn runs.
	DoErr error
}

var _ repository.TxManager = (*MockTxManager)(nil)

func NewMockTxManager(repos *repository.Repositories, users *MockUserRepository, forms *MockFormRepository) *MockTxManager {
	return &MockTxManager{Repos: repos, Users: users, Forms: forms}
}

func (m *MockTxManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	if m.DoErr != nil {
		return m.DoErr
	}

	var userSnap map[int64]*entity.User
	if m.Users != nil {
		userSnap = make(map[int64]*entity.User, len(m.Users.users))
		m.Users.mu.RLock()
		for id, u := range m.Users.users {
			cp := *u
			userSnap[id] = &cp
		}
		m.Users.mu.RUnlock()
	}
	var formSnap map[int64]*entity.RegistrationForm
	if m.Forms != nil {
		formSnap = make(map[int64]*entity.RegistrationForm, len(m.Forms.forms))
		m.Forms.mu.RLock()
		for id, f := range m.Forms.forms {
			formSnap[id] = f
		}
		m.Forms.mu.RUnlock()
	}

	err := fn(m.Repos)
	if err != nil {
		if m.Users != nil {
			m.Users.mu.Lock()
			m.Users.users = userSnap
			m.Users.mu.Unlock()
		}
		if m.Forms != nil {
			m.Forms.mu.Lock()
			m.Forms.forms = formSnap
			m.Forms.mu.Unlock()
		}
	}
	return err
}
