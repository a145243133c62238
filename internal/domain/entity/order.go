package entity

import (
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/money"
)

// OrderItem is a product snapshot with a quantity and an optional note
type OrderItem struct {
	Product
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// LinePrice implements money.Line
func (i OrderItem) LinePrice() float64 {
	return i.SalePrice
}

// LineQuantity implements money.Line
func (i OrderItem) LineQuantity() int {
	return i.Quantity
}

// LineTotal returns unit price x quantity rounded to cents
func (i OrderItem) LineTotal() float64 {
	return money.Round2(i.SalePrice * float64(i.Quantity))
}

// Discount is an order-wide reduction chosen at payment time
type Discount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

// ToMoney converts the discount into the arithmetic form
func (d Discount) ToMoney() money.Discount {
	kind := money.DiscountNone
	switch d.Type {
	case enum.DiscountTypePercentage:
		kind = money.DiscountPercentage
	case enum.DiscountTypeFixed:
		kind = money.DiscountFixed
	}
	return money.Discount{Kind: kind, Value: d.Value}
}

// Payment holds the figures frozen when an order is paid. It is nil while the order is open.
type Payment struct {
	Subtotal       float64            `json:"subtotal"`
	Discount       Discount           `json:"discount"`
	DiscountAmount float64            `json:"discount_amount"`
	Total          float64            `json:"total"`
	Method         enum.PaymentMethod `json:"method"`
	AmountPaid     float64            `json:"amount_paid"`
	Change         float64            `json:"change"`
	PaidAt         time.Time          `json:"paid_at"`
	InvoiceNumber  string             `json:"invoice_number"`
}

// Order is one table's transaction from creation to archival
type Order struct {
	ID            string             `json:"id"`
	TableNumber   string             `json:"table_number"`
	EmployeeName  string             `json:"employee_name,omitempty"`
	Items         []OrderItem        `json:"items"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	KitchenStatus enum.KitchenStatus `json:"kitchen_status"`
	IsArchived    bool               `json:"is_archived"`
	Payment       *Payment           `json:"payment,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// IsOpen reports whether the order can still be edited and paid
func (o *Order) IsOpen() bool {
	return o.PaymentStatus == enum.PaymentStatusOpen
}

// IsPaid reports whether the order has been settled
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == enum.PaymentStatusPaid && o.Payment != nil
}

// Breakdown returns the frozen totals for a paid order, or live totals otherwise
func (o *Order) Breakdown() money.Breakdown {
	if o.Payment != nil {
		return money.Breakdown{
			Subtotal:       o.Payment.Subtotal,
			DiscountAmount: o.Payment.DiscountAmount,
			Total:          o.Payment.Total,
		}
	}
	return money.Compute(o.Items, money.Discount{Kind: money.DiscountNone})
}

// InvoiceNumber returns the invoice number, empty while unpaid
func (o *Order) InvoiceNumber() string {
	if o.Payment == nil {
		return ""
	}
	return o.Payment.InvoiceNumber
}

// Clone returns a deep copy so callers cannot mutate the stored collection
func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	if o.Payment != nil {
		p := *o.Payment
		c.Payment = &p
	}
	return &c
}
