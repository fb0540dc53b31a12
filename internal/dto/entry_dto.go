package dto

import "github.com/shopspring/decimal"

// EntryResponse is one entries-history row, flattened with the supplier name
// resolved for reporting.
type EntryResponse struct {
	ID           int64           `json:"id"`
	ReceivedAt   string          `json:"received_at"`
	PONumber     int64           `json:"po_number"`
	SupplierCNPJ string          `json:"supplier_cnpj"`
	SupplierName *string         `json:"supplier_name"`
	ProductCode  string          `json:"product_code"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Qty          decimal.Decimal `json:"qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}
