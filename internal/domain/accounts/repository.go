package accounts

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve ErrDuplicate si el username ya existe.
	Create(ctx context.Context, a Account) error
	GetByUsername(ctx context.Context, username string) (Account, error)
	UpdatePasswordHash(ctx context.Context, username, hash string, at time.Time) error
	ListUsernames(ctx context.Context) ([]string, error)
}
