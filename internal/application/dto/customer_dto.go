package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	DocumentID   string `json:"document_id" validate:"required,min=1,max=20"`
	DocumentType string `json:"document_type" validate:"omitempty,oneof=DNI RUC"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Address      string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DocumentID   string    `json:"document_id"`
	DocumentType string    `json:"document_type"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CustomerDetailResponse cliente con sus acumulados de compras.
type CustomerDetailResponse struct {
	CustomerResponse
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	PurchaseCount  int             `json:"purchase_count"`
}
