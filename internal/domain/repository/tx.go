package repository

import (
	"context"
)

// Repositories bundles the aggregate repositories bound to one
// transaction scope.
type Repositories struct {
	Users         UserRepository
	Forms         FormRepository
	Reports       ReportRepository
	RefreshTokens RefreshTokenRepository
}

// TxManager runs a function inside a database transaction. Every
// repository handed to fn operates on the same transaction; returning
// an error rolls the whole unit back.
type TxManager interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}
