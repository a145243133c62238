package entity

import "time"

// SalesRow is one paid order inside a sales report
type SalesRow struct {
	OrderID        string    `json:"order_id"`
	InvoiceNumber  string    `json:"invoice_number"`
	TableNumber    string    `json:"table_number"`
	EmployeeName   string    `json:"employee_name,omitempty"`
	PaidAt         time.Time `json:"paid_at"`
	PaymentMethod  string    `json:"payment_method"`
	ItemCount      int       `json:"item_count"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	Total          float64   `json:"total"`
}

// TopItem aggregates quantity and revenue for one product name
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesReport summarizes paid orders within a time range
type SalesReport struct {
	From            time.Time          `json:"from"`
	To              time.Time          `json:"to"`
	TotalOrders     int                `json:"total_orders"`
	TotalRevenue    float64            `json:"total_revenue"`
	TotalDiscount   float64            `json:"total_discount"`
	AverageTicket   float64            `json:"average_ticket"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
	TopItems        []TopItem          `json:"top_items"`
	Rows            []SalesRow         `json:"rows"`
}
