package dto

type RegisterSupplierRequest struct {
	CNPJ         string  `json:"cnpj" validate:"required,min=1,max=30"`
	Name         string  `json:"name" validate:"required,min=1,max=150"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	CEP          *string `json:"cep"`
	Seller       *string `json:"seller"`
	Cellphone    *string `json:"cellphone"`
	Pix          *string `json:"pix"`
}

type SupplierResponse struct {
	CNPJ         string  `json:"cnpj"`
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	CEP          *string `json:"cep"`
	Seller       *string `json:"seller"`
	Cellphone    *string `json:"cellphone"`
	Pix          *string `json:"pix"`
}

type SupplierListResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}
