package entity

import "github.com/sangkips/gusto-pos/internal/domain/enum"

// Product is the catalog read model captured by value into order items
type Product struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	CategoryID       string               `json:"category_id,omitempty"`
	SalePrice        float64              `json:"sale_price"`
	CostPrice        float64              `json:"cost_price,omitempty"`
	Stock            int                  `json:"stock,omitempty"`
	PrintingStation  enum.PrintingStation `json:"printing_station,omitempty"`
	AllowPriceChange bool                 `json:"allow_price_change,omitempty"`
}
