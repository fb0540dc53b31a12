package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type POItemInput struct {
	Code        string          `json:"code"        validate:"required"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Qty         decimal.Decimal `json:"qty"         validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
}

type CreatePORequest struct {
	SupplierCNPJ         string  `json:"supplier_cnpj" validate:"required"`
	SupplierName         *string `json:"supplier_name"`
	SupplierAddress      *string `json:"supplier_address"`
	SupplierNeighborhood *string `json:"supplier_neighborhood"`
	SupplierCity         *string `json:"supplier_city"`
	SupplierState        *string `json:"supplier_state"`
	SupplierCEP          *string `json:"supplier_cep"`
	SupplierPix          *string `json:"supplier_pix"`
	SupplierContact      *string `json:"supplier_contact"`

	BuyerCNPJ         *string `json:"buyer_cnpj"`
	BuyerName         *string `json:"buyer_name"`
	BuyerAddress      *string `json:"buyer_address"`
	BuyerNeighborhood *string `json:"buyer_neighborhood"`
	BuyerCity         *string `json:"buyer_city"`
	BuyerState        *string `json:"buyer_state"`
	BuyerCEP          *string `json:"buyer_cep"`
	BuyerPix          *string `json:"buyer_pix"`
	BuyerContact      *string `json:"buyer_contact"`

	Notes *string       `json:"notes"`
	Items []POItemInput `json:"items" validate:"dive"`
}

type UpdatePOStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CreatePOResponse struct {
	PONumber int64  `json:"po_number"`
	POCode   string `json:"po_code"`
}

type POItemResponse struct {
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type POHeaderResponse struct {
	PONumber int64  `json:"po_number"`
	POCode   string `json:"po_code"`

	SupplierCNPJ         string  `json:"supplier_cnpj"`
	SupplierName         *string `json:"supplier_name"`
	SupplierAddress      *string `json:"supplier_address"`
	SupplierNeighborhood *string `json:"supplier_neighborhood"`
	SupplierCity         *string `json:"supplier_city"`
	SupplierState        *string `json:"supplier_state"`
	SupplierCEP          *string `json:"supplier_cep"`
	SupplierPix          *string `json:"supplier_pix"`
	SupplierContact      *string `json:"supplier_contact"`

	BuyerCNPJ         *string `json:"buyer_cnpj"`
	BuyerName         *string `json:"buyer_name"`
	BuyerAddress      *string `json:"buyer_address"`
	BuyerNeighborhood *string `json:"buyer_neighborhood"`
	BuyerCity         *string `json:"buyer_city"`
	BuyerState        *string `json:"buyer_state"`
	BuyerCEP          *string `json:"buyer_cep"`
	BuyerPix          *string `json:"buyer_pix"`
	BuyerContact      *string `json:"buyer_contact"`

	CreatedAt  string  `json:"created_at"`
	ReceivedAt *string `json:"received_at"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

type PODetailResponse struct {
	Header *POHeaderResponse `json:"header"`
	Items  []POItemResponse  `json:"items"`
}

type POListItem struct {
	PONumber     int64   `json:"po_number"`
	POCode       string  `json:"po_code"`
	SupplierName *string `json:"supplier_name"`
	CreatedAt    string  `json:"created_at"`
	Status       string  `json:"status"`
}

type POListResponse struct {
	PurchaseOrders []POListItem `json:"purchase_orders"`
}

type UpdatePOStatusResponse struct {
	Success   bool   `json:"success"`
	NewStatus string `json:"new_status"`
}

// ReceiveResult is the data payload of a successful receipt.
type ReceiveResult struct {
	Status        string          `json:"status"`
	PONumber      int64           `json:"po_number"`
	POReceivedID  int64           `json:"po_received_id"`
	TotalReceived decimal.Decimal `json:"total_received"`
}

type ReceiveResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *ReceiveResult `json:"data"`
}
