package model

// Supplier holds the registered supplier data keyed by tax ID.
// Purchase orders embed a snapshot of these fields at creation time, so later
// edits never retroactively alter historical documents.
type Supplier struct {
	CNPJ         string `gorm:"column:cnpj;primaryKey"`
	Name         string `gorm:"not null"`
	Address      *string
	Neighborhood *string
	City         *string
	State        *string
	CEP          *string `gorm:"column:cep"`
	Seller       *string
	Cellphone    *string
	Pix          *string
}

func (Supplier) TableName() string { return "suppliers" }
