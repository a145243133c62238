package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is anything that contributes unit price x quantity to a subtotal.
type Line interface {
	LinePrice() float64
	LineQuantity() int
}

// DiscountKind mirrors the order discount kinds without importing the domain.
type DiscountKind string

const (
	DiscountNone       DiscountKind = "none"
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Discount is an order-wide reduction.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// Breakdown holds the figures frozen on an order when it is paid.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// Round2 rounds an amount to two decimals, half away from zero.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// ComputeSubtotal sums unit price x quantity over lines.
func ComputeSubtotal[L Line](lines []L) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.LinePrice()).Mul(decimal.NewFromInt(int64(l.LineQuantity()))))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// ComputeDiscountAmount applies a discount to a subtotal.
// Fixed discounts are returned as-is, even when larger than the subtotal.
func ComputeDiscountAmount(subtotal float64, d Discount) float64 {
	if d.Value <= 0 {
		return 0
	}
	switch d.Kind {
	case DiscountFixed:
		return Round2(d.Value)
	case DiscountPercentage:
		amount := decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromFloat(d.Value)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		f, _ := amount.Float64()
		return f
	default:
		return 0
	}
}

// ComputeTotal subtracts the discount and clamps the result at zero.
func ComputeTotal(subtotal, discountAmount float64) float64 {
	total := decimal.NewFromFloat(subtotal).Sub(decimal.NewFromFloat(discountAmount))
	if total.IsNegative() {
		return 0
	}
	f, _ := total.Round(2).Float64()
	return f
}

// ComputeChange returns the cash owed back to the customer, never negative.
func ComputeChange(amountPaid, total float64) float64 {
	change := decimal.NewFromFloat(amountPaid).Sub(decimal.NewFromFloat(total))
	if !change.IsPositive() {
		return 0
	}
	f, _ := change.Round(2).Float64()
	return f
}

// Covers reports whether amountPaid settles total in full.
func Covers(amountPaid, total float64) bool {
	return decimal.NewFromFloat(amountPaid).Round(2).GreaterThanOrEqual(decimal.NewFromFloat(total).Round(2))
}

// Compute runs the whole subtotal, discount and total chain.
func Compute[L Line](lines []L, d Discount) Breakdown {
	subtotal := ComputeSubtotal(lines)
	discountAmount := ComputeDiscountAmount(subtotal, d)
	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          ComputeTotal(subtotal, discountAmount),
	}
}

// Format renders an amount with two fixed decimals.
func Format(amount float64) string {
	return fmt.Sprintf("%.2f", Round2(amount))
}

// FormatCurrency renders an amount prefixed with the currency sign, e.g. "$8.50".
func FormatCurrency(amount float64) string {
	return "$" + Format(amount)
}
