package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/insuranceguard/insuranceguard/internal/api/dto"
	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/service"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

// @Summary Create a policy record
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	cust, err := h.service.Create(c.Request.Context(), req.Name, req.AccountRef, req.PaymentHandle, req.Policies)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCustomerResponse(cust))
}

// @Summary Get a policy record
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	cust, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCustomerResponse(cust))
}

// @Summary List policy records
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.ListCustomersResponse
// @Router /customers [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.ListCustomersResponse{
		Items: lo.Map(customers, func(cust *customer.Customer, _ int) *dto.CustomerResponse {
			return dto.NewCustomerResponse(cust)
		}),
		Total: len(customers),
	})
}

// @Summary Archive a policy record
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /customers/{id}/archive [post]
func (h *CustomerHandler) ArchiveCustomer(c *gin.Context) {
	cust, err := h.service.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCustomerResponse(cust))
}
