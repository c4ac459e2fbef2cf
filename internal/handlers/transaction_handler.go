package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/pagination"
	"catatuang/internal/period"
	"catatuang/internal/services"
	"catatuang/internal/uuid"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request to create a transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id" binding:"required,uuid"`
	CategoryID  *string         `json:"category_id" binding:"omitempty,uuid"`
	Type        string          `json:"type" binding:"required,transaction_type"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	ToAccountID *string         `json:"to_account_id" binding:"omitempty,uuid"`
	Date        *time.Time      `json:"date"`
}

// listQuery holds the optional month filter for the history listing.
type listQuery struct {
	pagination.PageRequest
	Month string `form:"month" binding:"omitempty,month"`
}

// List returns one page of the user's history, optionally filtered to a
// month.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Defaults()

	var year, month int
	if query.Month != "" {
		year, month, err = period.ParseMonth(query.Month)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	transactions, total, err := h.transactionService.ListPage(userID, year, month, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPageResponse(transactions, query.Page, query.PageSize, total))
}

// Create records a transaction and applies its balance effect.
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params := services.CreateTransactionParams{
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Type:        models.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		ToAccountID: req.ToAccountID,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	result, err := h.transactionService.Create(params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Delete removes a transaction and reverses its balance effect.
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if !uuid.IsValid(id) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid transaction ID"))
		return
	}

	txn, err := h.transactionService.DeleteByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if txn == nil {
		respondWithError(c, apperrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction deleted",
		"transaction": txn,
	})
}
