package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/politreg/deputy-portal/internal/config"
	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/security"
	"github.com/politreg/deputy-portal/internal/testutil/mocks"
)

func testJWTProvider() *security.JWTProvider {
	return security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-testing-purposes-only",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "test",
	})
}

func setupAuthService(t *testing.T) (service.AuthService, *mocks.MockUserRepository, *mocks.MockRefreshTokenRepository) {
	t.Helper()
	userRepo := mocks.NewMockUserRepository(nil)
	tokenRepo := mocks.NewMockRefreshTokenRepository()
	authService := NewAuthService(userRepo, tokenRepo, testJWTProvider(), security.NewPasswordHasher())
	return authService, userRepo, tokenRepo
}

// addActiveUser stores an active user with the given credentials.
func addActiveUser(t *testing.T, repo *mocks.MockUserRepository, id int64, login, password string) *entity.User {
	t.Helper()
	hash, err := security.NewPasswordHasher().Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	user := &entity.User{
		ID:           id,
		Login:        &login,
		PasswordHash: &hash,
		Role:         entity.RoleDeputy,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	addActiveUser(t, userRepo, 100500, "ivanovii", "password123")

	resp, err := authService.Login(ctx, &request.LoginRequest{Login: "ivanovii", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("Login() AccessToken is empty")
	}
	if resp.RefreshToken == "" {
		t.Error("Login() RefreshToken is empty")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("Login() TokenType = %v, want Bearer", resp.TokenType)
	}
	if resp.User.UserID != 100500 {
		t.Errorf("Login() User.UserID = %v, want 100500", resp.User.UserID)
	}

	stored, _ := userRepo.GetByLogin(ctx, "ivanovii")
	if stored.LastLoginAt == nil {
		t.Error("Login() did not record last login time")
	}
}

func TestAuthService_Login_UnknownLogin(t *testing.T) {
	authService, _, _ := setupAuthService(t)

	_, err := authService.Login(context.Background(), &request.LoginRequest{Login: "nobody", Password: "password123"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_NoCredentialsIssued(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	// A user created from a form submission has no login yet, but a
	// stale record could carry one without a hash.
	login := "pending"
	userRepo.Create(ctx, &entity.User{ID: 7, Login: &login, Role: entity.RoleDeputy, IsActive: true})

	_, err := authService.Login(ctx, &request.LoginRequest{Login: "pending", Password: "password123"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)

	addActiveUser(t, userRepo, 1, "ivanovii", "correctpassword")

	_, err := authService.Login(context.Background(), &request.LoginRequest{Login: "ivanovii", Password: "wrongpassword"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UserInactive(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	user.IsActive = false
	userRepo.Update(ctx, user)

	_, err := authService.Login(ctx, &request.LoginRequest{Login: "ivanovii", Password: "password123"})
	if !errors.Is(err, service.ErrUserInactive) {
		t.Errorf("Login() error = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_Login_LookupError(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)

	expectedErr := errors.New("database error")
	userRepo.GetErr = expectedErr

	_, err := authService.Login(context.Background(), &request.LoginRequest{Login: "ivanovii", Password: "password123"})
	if !errors.Is(err, expectedErr) {
		t.Errorf("Login() error = %v, want %v", err, expectedErr)
	}
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")

	tokenString, expiresAt, err := testJWTProvider().GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	})

	resp, err := authService.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: tokenString})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("RefreshToken() AccessToken is empty")
	}
	if resp.RefreshToken == tokenString {
		t.Error("RefreshToken() did not rotate the token")
	}

	// The old token must be unusable afterwards.
	old, _ := tokenRepo.GetByToken(ctx, tokenString)
	if old == nil || !old.Revoked {
		t.Error("RefreshToken() did not revoke the old token")
	}
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	authService, _, _ := setupAuthService(t)

	_, err := authService.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("RefreshToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_RefreshToken_TokenNotStored(t *testing.T) {
	authService, userRepo, _ := setupAuthService(t)

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	tokenString, _, _ := testJWTProvider().GenerateRefreshToken(user)

	_, err := authService.RefreshToken(context.Background(), &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("RefreshToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_RefreshToken_RevokedToken(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	tokenString, expiresAt, _ := testJWTProvider().GenerateRefreshToken(user)
	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Revoked:   true,
	})

	_, err := authService.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("RefreshToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_RefreshToken_UserGone(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	tokenString, expiresAt, _ := testJWTProvider().GenerateRefreshToken(user)
	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	})
	userRepo.Delete(ctx, user.ID)

	_, err := authService.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("RefreshToken() error = %v, want ErrUserNotFound", err)
	}
}

func TestAuthService_RefreshToken_UserInactive(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	tokenString, expiresAt, _ := testJWTProvider().GenerateRefreshToken(user)
	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	})
	user.IsActive = false
	userRepo.Update(ctx, user)

	_, err := authService.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, service.ErrUserInactive) {
		t.Errorf("RefreshToken() error = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_RefreshToken_RevokeError(t *testing.T) {
	authService, userRepo, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	user := addActiveUser(t, userRepo, 1, "ivanovii", "password123")
	tokenString, expiresAt, _ := testJWTProvider().GenerateRefreshToken(user)
	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	})

	expectedErr := errors.New("revoke error")
	tokenRepo.RevokeErr = expectedErr

	_, err := authService.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: tokenString})
	if !errors.Is(err, expectedErr) {
		t.Errorf("RefreshToken() error = %v, want %v", err, expectedErr)
	}
}

func TestAuthService_Logout(t *testing.T) {
	authService, _, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	tokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:    1,
		Token:     "session-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})

	if err := authService.Logout(ctx, "session-token"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	stored, _ := tokenRepo.GetByToken(ctx, "session-token")
	if !stored.Revoked {
		t.Error("Logout() did not revoke the token")
	}
}

func TestAuthService_LogoutAll(t *testing.T) {
	authService, _, tokenRepo := setupAuthService(t)
	ctx := context.Background()

	for _, token := range []string{"first", "second"} {
		tokenRepo.Create(ctx, &entity.RefreshToken{
			UserID:    1,
			Token:     token,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
	}

	if err := authService.LogoutAll(ctx, 1); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}
	for _, token := range []string{"first", "second"} {
		stored, _ := tokenRepo.GetByToken(ctx, token)
		if !stored.Revoked {
			t.Errorf("LogoutAll() left token %q valid", token)
		}
	}
}

func TestAuthService_LogoutAll_Error(t *testing.T) {
	authService, _, tokenRepo := setupAuthService(t)

	expectedErr := errors.New("revoke all error")
	tokenRepo.RevokeErr = expectedErr

	if err := authService.LogoutAll(context.Background(), 1); !errors.Is(err, expectedErr) {
		t.Errorf("LogoutAll() error = %v, want %v", err, expectedErr)
	}
}
