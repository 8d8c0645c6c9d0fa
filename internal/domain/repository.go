package domain

import "context"

// PageFetcher retrieves raw page content from an external source URL.
// Failures are reported as *FetchError so callers can classify them.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
}

// ListRepository defines the interface for shopping-list persistence.
// GetProductNames is the comparison engine's only read dependency on
// the store.
type ListRepository interface {
	CreateList(ctx context.Context, list *ShoppingList) error
	AddItem(ctx context.Context, listID int64, productName string) (*ListItem, error)
	GetItems(ctx context.Context, listID int64) ([]ListItem, error)
	GetProductNames(ctx context.Context, listID int64) ([]string, error)
}
