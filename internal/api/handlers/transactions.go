package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smsledger/sms-expense-backend/internal/api/dto"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// TransactionsHandler serves persisted transactions.
type TransactionsHandler struct {
	repo storage.Repository
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{repo: repo}
}

// List handles GET /api/transactions with sender/direction/limit/offset
// query filters.
func (h *TransactionsHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		Sender:    c.Query("sender"),
		Direction: c.Query("direction"),
		Limit:     intQuery(c, "limit", 50),
		Offset:    intQuery(c, "offset", 0),
	}

	transactions, err := h.repo.ListTransactions(filters)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	result := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, dto.NewTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *gin.Context) {
	tx, err := h.repo.GetTransaction(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to get transaction")
		return
	}
	if tx == nil {
		writeError(c, http.StatusNotFound, "transaction not found")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}
