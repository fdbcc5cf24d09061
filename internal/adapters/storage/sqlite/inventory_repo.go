package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shelter-dashboard/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

const itemColumns = `id, name, upc, sku, short_description, quantity, created_at, updated_at`

func (r *InventoryRepo) Create(ctx context.Context, it inventory.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		it.ID,
		it.Name,
		it.UPC,
		it.SKU,
		it.ShortDescription,
		it.Quantity,
		formatTime(it.CreatedAt),
		formatTime(it.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return inventory.ErrDuplicate
	}
	return err
}

func (r *InventoryRepo) GetBySKU(ctx context.Context, sku string) (inventory.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = ?`, sku)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Item{}, inventory.ErrNotFound
	}
	return it, err
}

func (r *InventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name COLLATE NOCASE, sku`)
}

func (r *InventoryRepo) SearchByName(ctx context.Context, term string) ([]inventory.Item, error) {
	return r.query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY name COLLATE NOCASE, sku
	`, "%"+escapeLike(term)+"%")
}

func (r *InventoryRepo) ListZeroStock(ctx context.Context) ([]inventory.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items WHERE quantity = 0 ORDER BY name COLLATE NOCASE, sku`)
}

func (r *InventoryRepo) UpdateQuantity(ctx context.Context, sku string, fn inventory.QuantityFunc, at time.Time) (inventory.Item, inventory.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return inventory.Item{}, inventory.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	before, err := scanItem(tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = ?`, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return inventory.Item{}, inventory.Item{}, inventory.ErrNotFound
		}
		return inventory.Item{}, inventory.Item{}, err
	}

	after := before
	after.Quantity = fn(before.Quantity)
	if after.Quantity < 0 {
		after.Quantity = 0
	}
	after.UpdatedAt = at

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET quantity = ?, updated_at = ? WHERE sku = ?`,
		after.Quantity, formatTime(at), sku,
	); err != nil {
		return inventory.Item{}, inventory.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return inventory.Item{}, inventory.Item{}, err
	}
	return before, after, nil
}

func (r *InventoryRepo) DeleteBySKU(ctx context.Context, sku string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE sku = ?`, sku)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) query(ctx context.Context, q string, args ...any) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]inventory.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (inventory.Item, error) {
	var it inventory.Item
	var created, updated string
	if err := s.Scan(
		&it.ID,
		&it.Name,
		&it.UPC,
		&it.SKU,
		&it.ShortDescription,
		&it.Quantity,
		&created,
		&updated,
	); err != nil {
		return inventory.Item{}, err
	}
	it.CreatedAt = parseTime(created)
	it.UpdatedAt = parseTime(updated)
	return it, nil
}
