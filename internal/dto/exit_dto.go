package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ExitItemInput struct {
	ProductCode string           `json:"product_code" validate:"required"`
	Qty         decimal.Decimal  `json:"qty"          validate:"required,gt=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
}

// CreateExitRequest deliberately has no created_by field: the actor is always
// derived from the authenticated session.
type CreateExitRequest struct {
	Destination string          `json:"destination" validate:"required,min=1"`
	Notes       *string         `json:"notes"`
	Items       []ExitItemInput `json:"items" validate:"required,min=1,dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ExitFilter struct {
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=500"`
	Destination string `form:"destination"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	Sort        string `form:"sort,default=desc" validate:"omitempty,oneof=asc desc"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExitItemResponse struct {
	ProductCode string          `json:"product_code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Qty         decimal.Decimal `json:"qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type ExitHeaderResponse struct {
	ID          int64   `json:"id"`
	ExitCode    string  `json:"exit_code"`
	Destination string  `json:"destination"`
	CreatedBy   *int64  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	Notes       *string `json:"notes"`
}

type ExitDetailResponse struct {
	Exit  ExitHeaderResponse `json:"exit"`
	Items []ExitItemResponse `json:"items"`
}

type ExitListResponse struct {
	Success bool                 `json:"success"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	Data    []ExitHeaderResponse `json:"data"`
}
