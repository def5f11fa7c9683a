package security

import (
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
		verify   string
		expected bool
	}{
		{
			name:     "correct password",
			password: "qwertyuiop",
			verify:   "qwertyuiop",
			expected: true,
		},
		{
			name:     "wrong password",
			password: "qwertyuiop",
			verify:   "wrongpassword",
			expected: false,
		},
		{
			name:     "case sensitive",
			password: "Password",
			verify:   "password",
			expected: false,
		},
		{
			name:     "unicode password",
			password: "пароль123",
			verify:   "пароль123",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Error("Hash() returned unhashed password")
			}

			result := hasher.Verify(tt.verify, hash)
			if result != tt.expected {
				t.Errorf("Verify() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPasswordHasher_Verify_InvalidHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("password", "invalid-hash") {
		t.Error("Verify() should return false for invalid hash")
	}
	if hasher.Verify("password", "") {
		t.Error("Verify() should return false for empty hash")
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		password, err := GeneratePassword()
		if err != nil {
			t.Fatalf("GeneratePassword() error = %v", err)
		}
		if len(password) != GeneratedPasswordLength {
			t.Errorf("len = %d, want %d", len(password), GeneratedPasswordLength)
		}
		for _, r := range password {
			if r < 'a' || r > 'z' {
				t.Errorf("password %q contains %q outside the lowercase alphabet", password, r)
			}
		}
		seen[password] = true
	}
	if len(seen) < 2 {
		t.Error("GeneratePassword() produced identical passwords on every call")
	}
}

func TestBuildLogin(t *testing.T) {
	tests := []struct {
		name       string
		lastName   string
		firstName  string
		middleName string
		want       string
	}{
		{
			name:       "full name",
			lastName:   "Иванов",
			firstName:  "Иван",
			middleName: "Иванович",
			want:       "ИвановИИ",
		},
		{
			name:       "no middle name",
			lastName:   "Петров",
			firstName:  "Пётр",
			middleName: "",
			want:       "ПетровП",
		},
		{
			name:       "surrounding spaces stripped",
			lastName:   " Сидоров ",
			firstName:  " Семён",
			middleName: " Семёнович",
			want:       "СидоровСС",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildLogin(tt.lastName, tt.firstName, tt.middleName)
			if got != tt.want {
				t.Errorf("BuildLogin() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, " ") {
				t.Errorf("BuildLogin() = %q contains spaces", got)
			}
		})
	}
}
