package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
	"ledgersync/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// The QB account and status are computed server-side and cannot be supplied.
type CreateTransactionRequest struct {
	Date          string         `json:"date" binding:"required"`
	RawMerchant   *string        `json:"raw_merchant"`
	Merchant      *string        `json:"merchant"`
	Description   *string        `json:"description" binding:"omitempty,max=500"`
	AmountCents   int64          `json:"amount_cents"`
	Entity        *models.Entity `json:"entity" binding:"omitempty,entity"`
	SourceAccount *string        `json:"source_account"`
	CardNumber    *string        `json:"card_number"`
	Notes         *string        `json:"notes" binding:"omitempty,max=1000"`
	SheetsRowID   *int64         `json:"sheets_row_id" binding:"omitempty,min=2"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a transaction; its QB account and status are derived from the merchant rules
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD"))
		return
	}

	input := services.TransactionInput{
		Date:          date,
		RawMerchant:   req.RawMerchant,
		Merchant:      req.Merchant,
		Description:   req.Description,
		AmountCents:   req.AmountCents,
		SourceAccount: req.SourceAccount,
		CardNumber:    req.CardNumber,
		Notes:         req.Notes,
		SheetsRowID:   req.SheetsRowID,
	}
	if req.Entity != nil {
		input.Entity = *req.Entity
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactionsQuery holds the query parameters for listing transactions.
type ListTransactionsQuery struct {
	pagination.PageRequest
	Entity   *models.Entity            `form:"entity" binding:"omitempty,entity"`
	Status   *models.TransactionStatus `form:"status" binding:"omitempty,txn_status"`
	Merchant *string                   `form:"merchant"`
	Dirty    *bool                     `form:"dirty"`
	From     *string                   `form:"from"`
	To       *string                   `form:"to"`
}

// ListTransactions handles listing transactions with filters
// @Summary     List transactions
// @Description List transactions with optional entity/status/merchant/dirty/date filters
// @Tags        transactions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       entity query string false "Entity filter"
// @Param       status query string false "Status filter"
// @Param       merchant query string false "Merchant partial match"
// @Param       dirty query bool false "Only rows needing (or not needing) outbound sync"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		Entity:   query.Entity,
		Status:   query.Status,
		Merchant: query.Merchant,
		Dirty:    query.Dirty,
	}
	if query.From != nil {
		from, err := time.Parse("2006-01-02", *query.From)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be YYYY-MM-DD"))
			return
		}
		filter.FromDate = &from
	}
	if query.To != nil {
		to, err := time.Parse("2006-01-02", *query.To)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be YYYY-MM-DD"))
			return
		}
		filter.ToDate = &to
	}

	result, err := h.transactionService.ListTransactions(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles retrieving a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransactionRequest represents the request payload for patching a transaction.
type UpdateTransactionRequest struct {
	Date          *string        `json:"date"`
	RawMerchant   *string        `json:"raw_merchant"`
	Merchant      *string        `json:"merchant"`
	Description   *string        `json:"description" binding:"omitempty,max=500"`
	AmountCents   *int64         `json:"amount_cents"`
	Entity        *models.Entity `json:"entity" binding:"omitempty,entity"`
	SourceAccount *string        `json:"source_account"`
	CardNumber    *string        `json:"card_number"`
	Notes         *string        `json:"notes" binding:"omitempty,max=1000"`
	SheetsRowID   *int64         `json:"sheets_row_id" binding:"omitempty,min=2"`
}

// UpdateTransaction handles patching team-owned transaction fields
// @Summary     Update a transaction
// @Description Patch team-owned fields; derived fields are recomputed automatically
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.TransactionPatch{
		RawMerchant:   req.RawMerchant,
		Merchant:      req.Merchant,
		Description:   req.Description,
		AmountCents:   req.AmountCents,
		Entity:        req.Entity,
		SourceAccount: req.SourceAccount,
		CardNumber:    req.CardNumber,
		Notes:         req.Notes,
		SheetsRowID:   req.SheetsRowID,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD"))
			return
		}
		patch.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
