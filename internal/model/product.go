package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name     string          `db:"name" json:"name"`
	Quantity int             `db:"quantity" json:"quantity"`
	Price    decimal.Decimal `db:"price" json:"price"`
	ImageURL *string         `db:"image_url" json:"image_url"` // Nullable
}
