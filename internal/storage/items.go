package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/model"
)

const itemColumns = `id, item_name, image, store_name, category, city, region, for_whom,
	price_real, price_yen, price_dollar, purchased, created_at, updated_at`

// ListItems returns every item, newest first.
func (s *SQLiteStorage) ListItems(ctx context.Context) ([]model.ShoppingItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM shopping_items ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.ShoppingItem{}
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// GetItem returns one item or common.ErrNotFound.
func (s *SQLiteStorage) GetItem(ctx context.Context, id int) (model.ShoppingItem, error) {
	if err := validateContext(ctx); err != nil {
		return model.ShoppingItem{}, err
	}
	if err := validateID(id); err != nil {
		return model.ShoppingItem{}, err
	}
	return s.getItemTx(ctx, s.db, id)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStorage) getItemTx(ctx context.Context, q querier, id int) (model.ShoppingItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ShoppingItem{}, common.ErrNotFound
	}
	return item, err
}

// CreateItem stores a new, not yet purchased item and returns it.
func (s *SQLiteStorage) CreateItem(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error) {
	if err := validateContext(ctx); err != nil {
		return model.ShoppingItem{}, err
	}
	if err := validateItem(item); err != nil {
		return model.ShoppingItem{}, err
	}
	return s.createItemTx(ctx, s.db, item)
}

func (s *SQLiteStorage) createItemTx(ctx context.Context, q querier, item model.CreateItem) (model.ShoppingItem, error) {
	createdAt := s.now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO shopping_items (item_name, image, store_name, category, city, region, for_whom,
			price_real, price_yen, price_dollar, purchased, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		item.ItemName, item.Image, item.StoreName, item.Category, item.City, item.Region, item.ForWhom,
		item.PriceReal, item.PriceYen, item.PriceDollar, createdAt)
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("failed to get item id: %w", err)
	}
	return model.NewItem(int(id), item, createdAt), nil
}

// CreateItems stores a batch in one transaction. Either every item is
// stored or none is.
func (s *SQLiteStorage) CreateItems(ctx context.Context, items []model.CreateItem) ([]model.ShoppingItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]model.ShoppingItem, 0, len(items))
	for _, item := range items {
		stored, createErr := s.createItemTx(ctx, tx, item)
		if createErr != nil {
			return nil, createErr
		}
		created = append(created, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit items: %w", err)
	}
	return created, nil
}

// UpdateItem replaces the editable fields and the purchased flag.
func (s *SQLiteStorage) UpdateItem(ctx context.Context, id int, item model.UpdateItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateItem(item.CreateItem); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE shopping_items SET item_name = ?, image = ?, store_name = ?, category = ?, city = ?,
			region = ?, for_whom = ?, price_real = ?, price_yen = ?, price_dollar = ?, purchased = ?,
			updated_at = ?
		WHERE id = ?`,
		item.ItemName, item.Image, item.StoreName, item.Category, item.City, item.Region, item.ForWhom,
		item.PriceReal, item.PriceYen, item.PriceDollar, item.Purchased, s.now(), id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return expectOneRow(result)
}

// TogglePurchased flips the purchased flag.
func (s *SQLiteStorage) TogglePurchased(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET purchased = NOT purchased, updated_at = ? WHERE id = ?`,
		s.now(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle item: %w", err)
	}
	return expectOneRow(result)
}

// DeleteItem removes an item.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return expectOneRow(result)
}

// Stats aggregates the whole table.
func (s *SQLiteStorage) Stats(ctx context.Context) (model.RemoteStats, error) {
	if err := validateContext(ctx); err != nil {
		return model.RemoteStats{}, err
	}

	var stats model.RemoteStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN purchased THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(price_real), 0),
			COALESCE(SUM(price_yen), 0),
			COALESCE(SUM(price_dollar), 0)
		FROM shopping_items`).Scan(
		&stats.TotalItems,
		&stats.PurchasedItems,
		&stats.TotalPriceReal,
		&stats.TotalPriceYen,
		&stats.TotalPriceDollar,
	)
	if err != nil {
		return model.RemoteStats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	stats.PendingItems = stats.TotalItems - stats.PurchasedItems
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (model.ShoppingItem, error) {
	var (
		item      model.ShoppingItem
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&item.ID,
		&item.ItemName,
		&item.Image,
		&item.StoreName,
		&item.Category,
		&item.City,
		&item.Region,
		&item.ForWhom,
		&item.PriceReal,
		&item.PriceYen,
		&item.PriceDollar,
		&item.Purchased,
		&item.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ShoppingItem{}, err
		}
		return model.ShoppingItem{}, fmt.Errorf("failed to scan item: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		item.UpdatedAt = &t
	}
	return item, nil
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
