package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/insuranceguard/insuranceguard/internal/api/dto"
	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/service"
)

type LedgerHandler struct {
	service service.LedgerService
	log     *logger.Logger
}

func NewLedgerHandler(service service.LedgerService, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, log: log}
}

// @Summary Credit a customer's balance
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param operation body dto.BalanceOperationRequest true "Operation"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /customers/{id}/balance/topup [post]
func (h *LedgerHandler) TopUp(c *gin.Context) {
	var req dto.BalanceOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	entry, err := h.service.TopUp(c.Request.Context(), c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLedgerEntryResponse(entry))
}

// @Summary Debit a customer's balance by a manual deduction
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param operation body dto.BalanceOperationRequest true "Operation"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /customers/{id}/balance/deduct [post]
func (h *LedgerHandler) Deduct(c *gin.Context) {
	var req dto.BalanceOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	entry, err := h.service.Adjust(c.Request.Context(), c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLedgerEntryResponse(entry))
}

// @Summary Get a customer's balance
// @Tags Ledger
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/balance [get]
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	customerID := c.Param("id")
	balance, err := h.service.Balance(c.Request.Context(), customerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{CustomerID: customerID, Balance: balance})
}

// @Summary Get a customer's balance history
// @Tags Ledger
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.LedgerHistoryResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/balance/history [get]
func (h *LedgerHandler) GetHistory(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.LedgerHistoryResponse{
		Items: lo.Map(entries, func(e *ledger.Entry, _ int) *dto.LedgerEntryResponse {
			return dto.NewLedgerEntryResponse(e)
		}),
		Total: len(entries),
	})
}
