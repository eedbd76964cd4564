package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/insuranceguard/insuranceguard/internal/api/dto"
	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/service"
)

type PayoutHandler struct {
	service service.PayoutService
	log     *logger.Logger
}

func NewPayoutHandler(service service.PayoutService, log *logger.Logger) *PayoutHandler {
	return &PayoutHandler{service: service, log: log}
}

// @Summary File a payout request
// @Tags Payouts
// @Accept json
// @Produce json
// @Param payout body dto.CreatePayoutRequest true "Payout"
// @Success 201 {object} dto.PayoutResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /payouts [post]
func (h *PayoutHandler) CreatePayout(c *gin.Context) {
	var req dto.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	p, err := h.service.Request(c.Request.Context(), req.CustomerID, req.Amount, req.Description)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPayoutResponse(p))
}

// @Summary Get a payout request
// @Tags Payouts
// @Produce json
// @Param id path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payouts/{id} [get]
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPayoutResponse(p))
}

// @Summary List pending payout requests
// @Tags Payouts
// @Produce json
// @Success 200 {object} dto.ListPayoutsResponse
// @Router /payouts/pending [get]
func (h *PayoutHandler) GetPendingPayouts(c *gin.Context) {
	payouts, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.ListPayoutsResponse{
		Items: lo.Map(payouts, func(p *payout.PayoutRequest, _ int) *dto.PayoutResponse {
			return dto.NewPayoutResponse(p)
		}),
		Total: len(payouts),
	})
}

// @Summary Approve a payout request and debit the balance
// @Tags Payouts
// @Produce json
// @Param id path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /payouts/{id}/approve [post]
func (h *PayoutHandler) ApprovePayout(c *gin.Context) {
	p, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPayoutResponse(p))
}

// @Summary Reject a payout request
// @Tags Payouts
// @Accept json
// @Produce json
// @Param id path string true "Payout ID"
// @Param rejection body dto.RejectPayoutRequest false "Rejection"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /payouts/{id}/reject [post]
func (h *PayoutHandler) RejectPayout(c *gin.Context) {
	var req dto.RejectPayoutRequest
	// the body is optional, a missing reason falls back to the default
	_ = c.ShouldBindJSON(&req)

	p, err := h.service.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPayoutResponse(p))
}
