package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/insuranceguard/insuranceguard/internal/api/dto"
	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/service"
)

type InvoiceHandler struct {
	service service.InvoiceService
	dunning service.DunningService
	log     *logger.Logger
}

func NewInvoiceHandler(
	service service.InvoiceService,
	dunning service.DunningService,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{service: service, dunning: dunning, log: log}
}

// @Summary Issue an invoice over the customer's monthly premium
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.IssueInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	var req dto.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.service.Issue(c.Request.Context(), req.CustomerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewInvoiceResponse(inv))
}

// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}

// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	invoices, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv)
		}),
		Total: len(invoices),
	})
}

// @Summary Settle an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	inv, err := h.service.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}

// @Summary Force-advance an invoice one reminder stage
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /invoices/{id}/remind [post]
func (h *InvoiceHandler) SendReminder(c *gin.Context) {
	inv, err := h.dunning.ManualReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}
