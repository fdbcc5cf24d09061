package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"shelter-dashboard/internal/domain/accounts"
)

type accountsRepo struct {
	mu     sync.RWMutex
	byName map[string]accounts.Account
}

func NewAccountsRepo() accounts.Repository {
	return &accountsRepo{
		byName: make(map[string]accounts.Account),
	}
}

func (r *accountsRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[a.Username]; exists {
		return accounts.ErrDuplicate
	}
	r.byName[a.Username] = a
	return nil
}

func (r *accountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byName[username]
	if !ok {
		return accounts.Account{}, accounts.ErrNotFound
	}
	return a, nil
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, username, hash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byName[username]
	if !ok {
		return accounts.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = at
	r.byName[username] = a
	return nil
}

func (r *accountsRepo) ListUsernames(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
