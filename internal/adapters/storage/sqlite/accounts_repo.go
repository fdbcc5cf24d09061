package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shelter-dashboard/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, employee_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.Username,
		a.PasswordHash,
		a.EmployeeName,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return accounts.ErrDuplicate
	}
	return err
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	var a accounts.Account
	var created, updated string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, employee_name, created_at, updated_at
		FROM users WHERE username = ?
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.EmployeeName, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, err
	}
	a.CreatedAt = parseTime(created)
	a.UpdatedAt = parseTime(updated)
	return a, nil
}

func (r *AccountsRepo) UpdatePasswordHash(ctx context.Context, username, hash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`,
		hash, formatTime(at), username,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *AccountsRepo) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
