package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/politreg/deputy-portal/internal/config"
	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/middleware"
	"github.com/politreg/deputy-portal/internal/security"
	apperrors "github.com/politreg/deputy-portal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Service stubs with function fields so each test scripts only what it
// needs.

type stubAuthService struct {
	LoginFn func(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	return s.LoginFn(ctx, req)
}

func (s *stubAuthService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	return nil, service.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) LogoutAll(ctx context.Context, userID int64) error { return nil }

type stubUserService struct {
	ListFn        func(ctx context.Context, viewerID int64) ([]*entity.User, error)
	GetByIDFn     func(ctx context.Context, viewerID, targetID int64) (*entity.User, error)
	ProcessFormFn func(ctx context.Context, req *request.ProcessForm) (*response.ProcessFormResponse, error)
}

func (s *stubUserService) List(ctx context.Context, viewerID int64) ([]*entity.User, error) {
	return s.ListFn(ctx, viewerID)
}

func (s *stubUserService) GetByID(ctx context.Context, viewerID, targetID int64) (*entity.User, error) {
	return s.GetByIDFn(ctx, viewerID, targetID)
}

func (s *stubUserService) ProcessForm(ctx context.Context, req *request.ProcessForm) (*response.ProcessFormResponse, error) {
	return s.ProcessFormFn(ctx, req)
}

type stubFormService struct {
	SubmitFn func(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error)
	GetFn    func(ctx context.Context, userID int64) (*entity.RegistrationForm, error)
}

func (s *stubFormService) Submit(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error) {
	return s.SubmitFn(ctx, req)
}

func (s *stubFormService) Update(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error) {
	return nil, service.ErrFormNotFound
}

func (s *stubFormService) Get(ctx context.Context, userID int64) (*entity.RegistrationForm, error) {
	return s.GetFn(ctx, userID)
}

func (s *stubFormService) ListPending(ctx context.Context) ([]*entity.RegistrationForm, error) {
	return nil, nil
}

type stubReportService struct {
	CreatePeriodFn func(ctx context.Context, req *request.CreateReportPeriod) (*entity.ReportPeriod, error)
}

func (s *stubReportService) CreatePeriod(ctx context.Context, req *request.CreateReportPeriod) (*entity.ReportPeriod, error) {
	return s.CreatePeriodFn(ctx, req)
}

func (s *stubReportService) EnsurePeriodFor(ctx context.Context, now time.Time) (*entity.ReportPeriod, error) {
	return nil, nil
}

func (s *stubReportService) ListPeriods(ctx context.Context) ([]*entity.ReportPeriod, error) {
	return nil, nil
}

func (s *stubReportService) GetPeriod(ctx context.Context, id uint) (*entity.ReportPeriod, error) {
	return nil, service.ErrPeriodNotFound
}

func (s *stubReportService) UpdateDeputyRecord(ctx context.Context, id uint, req *request.UpdateDeputyRecord) (*entity.DeputyRecord, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubReportService) FillReportRecord(ctx context.Context, id uint, req *request.FillReportRecord) (*entity.ReportRecord, error) {
	return nil, service.ErrRecordNotFound
}

type testHarness struct {
	router   *gin.Engine
	provider *security.JWTProvider
}

func newHarness() *testHarness {
	provider := security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-testing",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "test",
	})
	return &testHarness{router: gin.New(), provider: provider}
}

func (h *testHarness) api() *gin.RouterGroup { return h.router.Group("/api/v1") }

func (h *testHarness) authMiddleware() (*middleware.AuthMiddleware, *security.SecurityService) {
	secService := security.NewSecurityService(h.provider)
	return middleware.NewAuthMiddleware(h.provider, secService), secService
}

func (h *testHarness) token(t *testing.T, id int64, role entity.UserRole) string {
	t.Helper()
	login := "user"
	token, err := h.provider.GenerateAccessToken(&entity.User{ID: id, Login: &login, Role: role, IsActive: true})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login(t *testing.T) {
	h := newHarness()
	_, secService := h.authMiddleware()

	auth := &stubAuthService{
		LoginFn: func(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
			if req.Login == "ivanovii" && req.Password == "secret" {
				return &response.AuthResponse{AccessToken: "token", TokenType: "Bearer"}, nil
			}
			return nil, service.ErrInvalidCredentials
		},
	}
	NewAuthController(auth, secService).RegisterRoutes(h.api())

	t.Run("success", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/auth/login", "",
			request.LoginRequest{Login: "ivanovii", Password: "secret"})
		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/auth/login", "",
			request.LoginRequest{Login: "ivanovii", Password: "wrong"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"login": "ivanovii"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusBadRequest)
		}
	})
}

func TestFormController_Submit(t *testing.T) {
	h := newHarness()
	auth, _ := h.authMiddleware()

	forms := &stubFormService{
		SubmitFn: func(ctx context.Context, req *request.SubmitForm) (*entity.RegistrationForm, error) {
			switch req.UserID {
			case 1:
				return &entity.RegistrationForm{UserID: 1}, nil
			case 2:
				return nil, service.ErrUserAlreadyActive
			default:
				return nil, apperrors.NewValidationError(map[string][]string{
					"phoneNumber": {"Неверный формат телефона. Ожидается +7XXXXXXXXXX."},
				})
			}
		},
	}
	NewFormController(forms, auth).RegisterRoutes(h.api())

	t.Run("created", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/forms", "", request.SubmitForm{UserID: 1})
		if w.Code != http.StatusCreated {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusCreated)
		}
	})

	t.Run("already verified", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/forms", "", request.SubmitForm{UserID: 2})
		if w.Code != http.StatusConflict {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusConflict)
		}
	})

	t.Run("validation errors carry the field map", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/forms", "", request.SubmitForm{UserID: 3})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Status = %v, want %v", w.Code, http.StatusBadRequest)
		}
		var body struct {
			Errors map[string][]string `json:"errors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("body unmarshal error = %v", err)
		}
		if len(body.Errors["phoneNumber"]) == 0 {
			t.Errorf("body = %s, want phoneNumber errors", w.Body.String())
		}
	})
}

func TestFormController_StaffRoutesRequireStaff(t *testing.T) {
	h := newHarness()
	auth, _ := h.authMiddleware()

	forms := &stubFormService{
		GetFn: func(ctx context.Context, userID int64) (*entity.RegistrationForm, error) {
			return &entity.RegistrationForm{UserID: userID}, nil
		},
	}
	NewFormController(forms, auth).RegisterRoutes(h.api())

	t.Run("deputy is rejected", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/forms/1", h.token(t, 1, entity.RoleDeputy), nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusForbidden)
		}
	})

	t.Run("coordinator is admitted", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/forms/1", h.token(t, 1, entity.RoleCoordinator), nil)
		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/forms/1", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestUserController_ProcessForm(t *testing.T) {
	h := newHarness()
	auth, secService := h.authMiddleware()

	users := &stubUserService{
		ProcessFormFn: func(ctx context.Context, req *request.ProcessForm) (*response.ProcessFormResponse, error) {
			switch req.UserID {
			case 1:
				return &response.ProcessFormResponse{Status: "success", Message: "Пользователь успешно подтверждён"}, nil
			case 2:
				return &response.ProcessFormResponse{Status: "warning", Message: "Пользователь не получил уведомление об отклонении заявки."}, nil
			case 3:
				return nil, &service.RelayError{Message: "chat not found"}
			case 4:
				return nil, service.ErrUserAlreadyActive
			default:
				return nil, service.ErrUserNotFound
			}
		},
	}
	NewUserController(users, secService, auth).RegisterRoutes(h.api())

	token := h.token(t, 10, entity.RoleAdmin)
	tests := []struct {
		name   string
		userID int64
		want   int
	}{
		{"approved", 1, http.StatusAccepted},
		{"rejected without notification", 2, http.StatusOK},
		{"relay failure", 3, http.StatusBadRequest},
		{"already active", 4, http.StatusBadRequest},
		{"unknown user", 404, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(h.router, http.MethodPost, "/api/v1/users/process", token,
				request.ProcessForm{UserID: tt.userID, Approved: true})
			if w.Code != tt.want {
				t.Errorf("Status = %v, want %v", w.Code, tt.want)
			}
		})
	}

	t.Run("deputy cannot decide", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/users/process", h.token(t, 1, entity.RoleDeputy),
			request.ProcessForm{UserID: 1, Approved: true})
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusForbidden)
		}
	})
}

func TestUserController_GetByID(t *testing.T) {
	h := newHarness()
	auth, secService := h.authMiddleware()

	users := &stubUserService{
		GetByIDFn: func(ctx context.Context, viewerID, targetID int64) (*entity.User, error) {
			switch targetID {
			case viewerID:
				return &entity.User{ID: viewerID, Role: entity.RoleDeputy, IsActive: true}, nil
			case 99:
				return nil, service.ErrAccessDenied
			default:
				return nil, service.ErrUserNotFound
			}
		},
	}
	NewUserController(users, secService, auth).RegisterRoutes(h.api())

	token := h.token(t, 7, entity.RoleDeputy)

	t.Run("own record", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/users/7", token, nil)
		if w.Code != http.StatusOK {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusOK)
		}
	})

	t.Run("out of scope", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/users/99", token, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusForbidden)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		w := doJSON(h.router, http.MethodGet, "/api/v1/users/404", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusNotFound)
		}
	})
}

func TestReportController_CreatePeriod(t *testing.T) {
	h := newHarness()
	auth, secService := h.authMiddleware()

	reportsSvc := &stubReportService{
		CreatePeriodFn: func(ctx context.Context, req *request.CreateReportPeriod) (*entity.ReportPeriod, error) {
			if req.StartDate == "bad" {
				return nil, service.ErrInvalidPeriod
			}
			return &entity.ReportPeriod{ID: 1}, nil
		},
	}
	NewReportController(reportsSvc, nil, secService, auth).RegisterRoutes(h.api())

	body := request.CreateReportPeriod{
		StartDate: "01.06.2025",
		EndDate:   "30.06.2025",
		Templates: []request.ReportTemplatePayload{{Name: "Приём", Theme: "event"}},
	}

	t.Run("admin creates", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/report-periods", h.token(t, 1, entity.RoleAdmin), body)
		if w.Code != http.StatusCreated {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusCreated)
		}
	})

	t.Run("coordinator is rejected", func(t *testing.T) {
		w := doJSON(h.router, http.MethodPost, "/api/v1/report-periods", h.token(t, 1, entity.RoleCoordinator), body)
		if w.Code != http.StatusForbidden {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusForbidden)
		}
	})

	t.Run("invalid dates", func(t *testing.T) {
		bad := body
		bad.StartDate = "bad"
		w := doJSON(h.router, http.MethodPost, "/api/v1/report-periods", h.token(t, 1, entity.RoleAdmin), bad)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %v, want %v", w.Code, http.StatusBadRequest)
		}
	})
}

func TestReportController_Ping(t *testing.T) {
	h := newHarness()
	auth, secService := h.authMiddleware()
	NewReportController(&stubReportService{}, nil, secService, auth).RegisterRoutes(h.api())

	w := doJSON(h.router, http.MethodGet, "/api/v1/reports/ping", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %v, want %v", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body unmarshal error = %v", err)
	}
	if body["message"] != "Pong" {
		t.Errorf("message = %q, want Pong", body["message"])
	}
}
