package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterProductRequest struct {
	Code        string          `json:"code"        validate:"required,min=1,max=60"`
	Category    string          `json:"category"    validate:"required"`
	Subcategory *string         `json:"subcategory"`
	Description string          `json:"description" validate:"required"`
	Unit        string          `json:"unit"        validate:"required"`
	Stock       decimal.Decimal `json:"stock"       validate:"min=0"`
}

// UpdateProductRequest carries non-stock attributes only. Stock is owned by
// the ledger and cannot be overwritten through CRUD.
type UpdateProductRequest struct {
	Code        string  `json:"code"        validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Subcategory *string `json:"subcategory"`
	Description string  `json:"description" validate:"required"`
	Unit        string  `json:"unit"        validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	Code        string          `json:"code"`
	Category    string          `json:"category"`
	Subcategory *string         `json:"subcategory"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"stock"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// LookupResponse is returned by the public cached lookup endpoint.
type LookupResponse struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category"`
	Stock       decimal.Decimal `json:"stock"`
}
