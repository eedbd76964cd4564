package dto

import (
	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type CreateCustomerRequest struct {
	Name          string   `json:"name" binding:"required"`
	AccountRef    string   `json:"account_ref" binding:"required"`
	PaymentHandle string   `json:"payment_handle" binding:"required"`
	Policies      []string `json:"policies" binding:"required,min=1"`
}

type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AccountRef     string          `json:"account_ref"`
	PaymentHandle  string          `json:"payment_handle"`
	Policies       []string        `json:"policies"`
	MonthlyPremium decimal.Decimal `json:"monthly_premium"`
	Status         types.Status    `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
}

func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		AccountRef:     c.AccountRef,
		PaymentHandle:  c.PaymentHandle,
		Policies:       c.Policies,
		MonthlyPremium: c.MonthlyPremium,
		Status:         c.Status,
		Balance:        c.Balance,
	}
}

type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}
