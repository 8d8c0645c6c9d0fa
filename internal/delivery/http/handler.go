package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cenoskoczek/backend/internal/domain"
)

// Comparer runs a price comparison over a product list.
type Comparer interface {
	Compare(ctx context.Context, products []string) domain.RankedComparison
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	users    domain.UserRepository
	lists    domain.ListRepository
	comparer Comparer
}

// NewHandler creates a new HTTP handler
func NewHandler(users domain.UserRepository, lists domain.ListRepository, comparer Comparer) *Handler {
	return &Handler{
		users:    users,
		lists:    lists,
		comparer: comparer,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cenoskoczek-backend",
		"version": "1.0.0",
	})
}

// CreateUser handles user registration requests
func (h *Handler) CreateUser(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CreateList handles shopping-list creation requests
func (h *Handler) CreateList(c *gin.Context) {
	var list domain.ShoppingList
	if err := c.ShouldBindJSON(&list); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.lists.CreateList(c.Request.Context(), &list); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// GetItems returns the items on a shopping list
func (h *Handler) GetItems(c *gin.Context) {
	listID, ok := listIDParam(c)
	if !ok {
		return
	}

	items, err := h.lists.GetItems(c.Request.Context(), listID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddItem appends a product to a shopping list
func (h *Handler) AddItem(c *gin.Context) {
	listID, ok := listIDParam(c)
	if !ok {
		return
	}

	var req domain.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.lists.AddItem(c.Request.Context(), listID, req.ProductName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ComparePrices runs the comparison engine over an ad hoc product list.
// An empty product list is not an error; it yields an empty ranking.
func (h *Handler) ComparePrices(c *gin.Context) {
	var req domain.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.comparer.Compare(c.Request.Context(), req.Products)
	c.JSON(http.StatusOK, result)
}

// CompareList runs the comparison engine over a stored shopping list.
func (h *Handler) CompareList(c *gin.Context) {
	listID, ok := listIDParam(c)
	if !ok {
		return
	}

	products, err := h.lists.GetProductNames(c.Request.Context(), listID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := h.comparer.Compare(c.Request.Context(), products)
	c.JSON(http.StatusOK, result)
}

// listIDParam parses the :id path parameter, responding 400 on garbage.
func listIDParam(c *gin.Context) (int64, bool) {
	listID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return 0, false
	}
	return listID, true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
