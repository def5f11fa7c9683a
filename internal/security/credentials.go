package security

import (
	"crypto/rand"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// GeneratedPasswordLength is the length of issued passwords.
	GeneratedPasswordLength = 10

	passwordAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// PasswordHasher handles password hashing and verification
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a new PasswordHasher instance
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: DefaultCost}
}

// Hash generates a bcrypt hash of the password
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks if the password matches the hash
func (h *PasswordHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GeneratePassword produces a random lowercase password for a freshly
// approved user. The user is expected to change it after first login.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, GeneratedPasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// BuildLogin derives a login from the applicant's name: full last name
// followed by the initials of the first and middle names.
func BuildLogin(lastName, firstName, middleName string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(lastName))
	for _, name := range []string{firstName, middleName} {
		for _, r := range strings.TrimSpace(name) {
			sb.WriteRune(r)
			break
		}
	}
	return strings.TrimSpace(sb.String())
}
