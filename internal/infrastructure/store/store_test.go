package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenoskoczek/backend/internal/domain"
)

// openTestStore opens a throwaway store backed by a temp file so WAL mode
// and multiple connections behave like production.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_AppliesSchema(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='users'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "users", name)
}

func TestSeed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	user, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)

	// Seeding twice must not duplicate the default data.
	require.NoError(t, s.Seed(ctx))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCreateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := &domain.User{Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	fetched, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", fetched.Email)
	assert.Equal(t, "Anna", fetched.Name)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &domain.User{Email: "anna@example.com", Name: "Anna"}))

	err := s.CreateUser(ctx, &domain.User{Email: "anna@example.com", Name: "Inna Anna"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestGetUser_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := &domain.User{Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, s.CreateUser(ctx, user))

	list := &domain.ShoppingList{Name: "Zakupy", UserID: user.ID}
	require.NoError(t, s.CreateList(ctx, list))
	assert.NotZero(t, list.ID)
}

func TestCreateList_MissingUser(t *testing.T) {
	s := openTestStore(t)

	err := s.CreateList(context.Background(), &domain.ShoppingList{Name: "Zakupy", UserID: 99})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAddItem_MissingList(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AddItem(context.Background(), 99, "mleko")
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestItemsAndProductNames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := &domain.User{Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, s.CreateUser(ctx, user))
	list := &domain.ShoppingList{Name: "Zakupy", UserID: user.ID}
	require.NoError(t, s.CreateList(ctx, list))

	// Insertion order matters and duplicates are preserved.
	for _, name := range []string{"mleko", "chleb", "mleko"} {
		item, err := s.AddItem(ctx, list.ID, name)
		require.NoError(t, err)
		assert.Equal(t, name, item.ProductName)
	}

	items, err := s.GetItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "mleko", items[0].ProductName)
	assert.Equal(t, "chleb", items[1].ProductName)

	names, err := s.GetProductNames(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"mleko", "chleb", "mleko"}, names)
}

func TestGetProductNames_MissingList(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetProductNames(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestGetItems_EmptyList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := &domain.User{Email: "anna@example.com", Name: "Anna"}
	require.NoError(t, s.CreateUser(ctx, user))
	list := &domain.ShoppingList{Name: "Pusta", UserID: user.ID}
	require.NoError(t, s.CreateList(ctx, list))

	items, err := s.GetItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
