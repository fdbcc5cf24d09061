package accounts

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu     sync.Mutex
	byName map[string]Account
}

func (r *testRepo) Create(ctx context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[a.Username]; ok {
		return ErrDuplicate
	}
	r.byName[a.Username] = a
	return nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byName[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) UpdatePasswordHash(ctx context.Context, username, hash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byName[username]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = at
	r.byName[username] = a
	return nil
}

func (r *testRepo) ListUsernames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

func newTestService() *Service {
	svc := NewService(&testRepo{byName: map[string]Account{}})
	svc.cost = bcrypt.MinCost
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestRegister_HashesPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Username: " jdoe ", Password: "s3cret", EmployeeName: "J. Doe"})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", a.Username)
	assert.NotEqual(t, "s3cret", a.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("s3cret")))

	_, err = svc.Register(ctx, RegisterInput{Username: "jdoe", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Register(ctx, RegisterInput{Username: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "jdoe", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "jdoe", "s3cret")
	assert.NoError(t, err)

	_, err = svc.Authenticate(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChangePassword_InvalidatesOld(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "jdoe", Password: "old"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, "jdoe", "bad", "new"), ErrUnauthorized)
	require.NoError(t, svc.ChangePassword(ctx, "jdoe", "old", "new"))

	_, err = svc.Authenticate(ctx, "jdoe", "old")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "jdoe", "new")
	assert.NoError(t, err)
}

func TestVerify_ReturnsClaims(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a, err := svc.Register(ctx, RegisterInput{Username: "jdoe", Password: "pw", EmployeeName: "Jane"})
	require.NoError(t, err)

	c, err := svc.Verify(ctx, "jdoe", "pw")
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.UserID)
	assert.Equal(t, "Jane", c.EmployeeName)

	names, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"jdoe"}, names)
}
