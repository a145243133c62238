package request

import (
	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
)

// OrderItemRequest is one cart line with the product captured by value
type OrderItemRequest struct {
	ProductID       string               `json:"product_id" binding:"required,max=100"`
	Name            string               `json:"name" binding:"max=255"`
	CategoryID      string               `json:"category_id" binding:"omitempty,max=100"`
	SalePrice       float64              `json:"sale_price"`
	CostPrice       float64              `json:"cost_price" binding:"min=0"`
	PrintingStation enum.PrintingStation `json:"printing_station"`
	Quantity        int                  `json:"quantity"`
	Notes           string               `json:"notes" binding:"max=500"`
}

// ToEntity converts the request into an order item
func (r OrderItemRequest) ToEntity() entity.OrderItem {
	station := r.PrintingStation
	if station == "" {
		station = enum.PrintingStationNone
	}
	return entity.OrderItem{
		Product: entity.Product{
			ID:              r.ProductID,
			Name:            r.Name,
			CategoryID:      r.CategoryID,
			SalePrice:       r.SalePrice,
			CostPrice:       r.CostPrice,
			PrintingStation: station,
		},
		Quantity: r.Quantity,
		Notes:    r.Notes,
	}
}

// ToOrderItems converts a list of item requests
func ToOrderItems(items []OrderItemRequest) []entity.OrderItem {
	out := make([]entity.OrderItem, len(items))
	for i, it := range items {
		out[i] = it.ToEntity()
	}
	return out
}

// SaveOrderRequest creates a new order, or updates one when OrderID is set
type SaveOrderRequest struct {
	OrderID      string             `json:"order_id" binding:"omitempty,max=100"`
	TableNumber  string             `json:"table_number" binding:"max=50"`
	EmployeeName string             `json:"employee_name" binding:"max=100"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderItemsRequest replaces the items of an open order
type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"dive"`
}

// KitchenStatusRequest moves an order on the kitchen board
type KitchenStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentRequest settles an order. Method defaults to cash.
type PaymentRequest struct {
	DiscountType  enum.DiscountType  `json:"discount_type"`
	DiscountValue float64            `json:"discount_value"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	AmountPaid    float64            `json:"amount_paid"`
}

// Discount returns the requested discount
func (r PaymentRequest) Discount() entity.Discount {
	return entity.Discount{Type: r.DiscountType, Value: r.DiscountValue}
}
