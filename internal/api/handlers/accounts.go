package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smsledger/sms-expense-backend/internal/api/dto"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// AccountsHandler serves accounts and categories.
type AccountsHandler struct {
	repo storage.Repository
}

// NewAccountsHandler creates an accounts handler.
func NewAccountsHandler(repo storage.Repository) *AccountsHandler {
	return &AccountsHandler{repo: repo}
}

// ListAccounts handles GET /api/accounts.
func (h *AccountsHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.repo.ListAccounts()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	result := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, dto.AccountResponse{
			ID:        a.ID,
			Name:      a.Name,
			IsDefault: a.IsDefault,
		})
	}
	c.JSON(http.StatusOK, result)
}

// ListCategories handles GET /api/categories.
func (h *AccountsHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		result = append(result, dto.CategoryResponse{
			ID:   cat.ID,
			Name: cat.Name,
			Type: cat.Type,
		})
	}
	c.JSON(http.StatusOK, result)
}
