package domain

// User is an account that owns shopping lists.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// ShoppingList is a named collection of product line items owned by a user.
type ShoppingList struct {
	ID     int64  `json:"id"`
	Name   string `json:"name" binding:"required"`
	UserID int64  `json:"user_id" binding:"required"`
}

// ListItem is a single product line on a shopping list. Duplicates are
// allowed and are priced independently by the comparison engine.
type ListItem struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
	ListID      int64  `json:"list_id"`
}

// AddItemRequest is the payload for adding a product to a list.
type AddItemRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

// CompareRequest is the payload for an ad hoc price comparison.
type CompareRequest struct {
	Products []string `json:"products"`
}
