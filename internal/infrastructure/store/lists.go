package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cenoskoczek/backend/internal/domain"
)

// CreateList inserts a shopping list after verifying its owner exists.
func (s *Store) CreateList(ctx context.Context, list *domain.ShoppingList) error {
	if _, err := s.GetUser(ctx, list.UserID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO shopping_lists (name, user_id) VALUES (?, ?)",
		list.Name, list.UserID)
	if err != nil {
		return fmt.Errorf("store: insert list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: list id: %w", err)
	}
	list.ID = id
	return nil
}

// AddItem appends a product line to a list after verifying the list exists.
func (s *Store) AddItem(ctx context.Context, listID int64, productName string) (*domain.ListItem, error) {
	if err := s.listExists(ctx, listID); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO list_items (product_name, list_id) VALUES (?, ?)",
		productName, listID)
	if err != nil {
		return nil, fmt.Errorf("store: insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: item id: %w", err)
	}

	return &domain.ListItem{ID: id, ProductName: productName, ListID: listID}, nil
}

// GetItems returns the items on a list in insertion order.
func (s *Store) GetItems(ctx context.Context, listID int64) ([]domain.ListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, product_name, list_id FROM list_items WHERE list_id = ? ORDER BY id",
		listID)
	if err != nil {
		return nil, fmt.Errorf("store: get items: %w", err)
	}
	defer rows.Close()

	items := []domain.ListItem{}
	for rows.Next() {
		var item domain.ListItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.ListID); err != nil {
			return nil, fmt.Errorf("store: scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get items: %w", err)
	}

	return items, nil
}

// GetProductNames returns the product names on a list in insertion order.
// This is the comparison engine's only read on the store. Duplicates are
// preserved: each line item is priced separately.
func (s *Store) GetProductNames(ctx context.Context, listID int64) ([]string, error) {
	if err := s.listExists(ctx, listID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT product_name FROM list_items WHERE list_id = ? ORDER BY id", listID)
	if err != nil {
		return nil, fmt.Errorf("store: get product names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan product name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get product names: %w", err)
	}

	return names, nil
}

func (s *Store) listExists(ctx context.Context, listID int64) error {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM shopping_lists WHERE id = ?", listID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrListNotFound
	}
	if err != nil {
		return fmt.Errorf("store: lookup list: %w", err)
	}
	return nil
}
