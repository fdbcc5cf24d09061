package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shelter-dashboard/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("account not found")
	ErrDuplicate    = errors.New("username already exists")
	ErrUnauthorized = errors.New("invalid username or password")
)

type Service struct {
	repo Repository
	now  func() time.Time
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username     string
	Password     string
	EmployeeName string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return Account{}, err
	}

	now := s.now()
	a := Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Authenticate no distingue usuario inexistente de password incorrecta.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Account{}, ErrUnauthorized
	}

	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrUnauthorized
		}
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrUnauthorized
	}
	return a, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	a, err := s.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return err
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, a.Username, hash, s.now())
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.ListUsernames(ctx)
}

// Verify implementa auth.AuthVerifier.
func (s *Service) Verify(ctx context.Context, username, password string) (auth.Claims, error) {
	a, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{
		UserID:       a.ID,
		Username:     a.Username,
		EmployeeName: a.EmployeeName,
	}, nil
}

func (s *Service) hash(password string) (string, error) {
	// bcrypt rechaza passwords de más de 72 bytes.
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrInvalidInput
		}
		return "", err
	}
	return string(b), nil
}
