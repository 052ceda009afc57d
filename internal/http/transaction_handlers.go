package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance-api/internal/domain"
	"finance-api/internal/service"
	"finance-api/internal/validate"
)

const msgTransactionNotFound = "Transaction not found"

type transactionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CategoryID  int64     `json:"categoryId"`
	TransDate   int64     `json:"transDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Name:        tx.Name,
		Description: tx.Description,
		Amount:      tx.Amount,
		CategoryID:  tx.CategoryID,
		TransDate:   tx.TransDate,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

func (h *Handler) listTransactions(c *gin.Context) {
	txs, err := h.transactions.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for i := range txs {
		resp = append(resp, toTransactionResponse(&txs[i]))
	}
	respond(c, http.StatusOK, "Successfully get transactions", resp)
}

func (h *Handler) createTransaction(c *gin.Context) {
	req, ok := bindJSON[createTransactionRequest](h, c)
	if !ok {
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), domain.Transaction{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		TransDate:   *req.TransDate,
	})
	if err != nil {
		h.transactionError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully created transaction", toTransactionResponse(tx))
}

func (h *Handler) getTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), id)
	if err != nil {
		h.transactionError(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully get transaction", toTransactionResponse(tx))
}

func (h *Handler) updateTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindJSON[updateTransactionRequest](h, c)
	if !ok {
		return
	}

	tx, err := h.transactions.Update(c.Request.Context(), id, domain.TransactionPatch{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		TransDate:   req.TransDate,
	})
	if err != nil {
		h.transactionError(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully updated transaction", toTransactionResponse(tx))
}

func (h *Handler) deleteTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), id); err != nil {
		h.transactionError(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully deleted transaction", nil)
}

func (h *Handler) transactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		fail(c, http.StatusNotFound, msgTransactionNotFound, nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		fail(c, http.StatusBadRequest, msgInvalidInput, validate.FieldErrors{"categoryId": {"Category does not exist"}})
	default:
		h.internalError(c, err)
	}
}
