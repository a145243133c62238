package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/internal/domain/repository"
	"github.com/sangkips/gusto-pos/internal/domain/statemachine"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/sangkips/gusto-pos/pkg/money"
	"github.com/sangkips/gusto-pos/pkg/pagination"
	"github.com/sangkips/gusto-pos/pkg/utils"
	"github.com/sirupsen/logrus"
)

// OrdersSnapshotKey is the versioned key holding the whole order collection
const OrdersSnapshotKey = "orders_v2"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// OrderService owns the order collection. Every mutation rewrites the full snapshot.
type OrderService struct {
	mu            sync.Mutex
	snapshotRepo  repository.SnapshotRepository
	orders        []*entity.Order
	now           Clock
	lastInvoiceMs int64
}

// NewOrderService creates a new order service and loads the persisted collection once
func NewOrderService(ctx context.Context, snapshotRepo repository.SnapshotRepository, clock Clock) *OrderService {
	if clock == nil {
		clock = time.Now
	}
	s := &OrderService{
		snapshotRepo: snapshotRepo,
		now:          clock,
	}
	s.load(ctx)
	return s
}

func (s *OrderService) load(ctx context.Context) {
	snapshot, err := s.snapshotRepo.Get(ctx, OrdersSnapshotKey)
	if err != nil {
		logrus.WithError(err).WithField("key", OrdersSnapshotKey).Error("Failed to load orders, starting empty")
		return
	}
	if snapshot == nil {
		return
	}

	var orders []*entity.Order
	if err := json.Unmarshal([]byte(snapshot.Payload), &orders); err != nil {
		logrus.WithError(err).WithField("key", OrdersSnapshotKey).Error("Stored orders are unreadable, starting empty")
		return
	}
	for _, o := range orders {
		if ms, ok := utils.InvoiceMillis(o.InvoiceNumber()); ok && ms > s.lastInvoiceMs {
			s.lastInvoiceMs = ms
		}
	}
	s.orders = orders
	logrus.WithField("orders", len(orders)).Info("Orders loaded")
}

// persist writes the whole collection. Failures are logged and the in-memory state is kept.
func (s *OrderService) persist(ctx context.Context) {
	payload, err := json.Marshal(s.orders)
	if err != nil {
		logrus.WithError(err).WithField("key", OrdersSnapshotKey).Error("Failed to encode orders")
		return
	}
	if err := s.snapshotRepo.Put(ctx, OrdersSnapshotKey, string(payload)); err != nil {
		logrus.WithError(err).WithField("key", OrdersSnapshotKey).Error("Failed to persist orders")
	}
}

func (s *OrderService) find(id string) *entity.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// normalizeItems drops rows with quantity below one and rounds prices to cents
func normalizeItems(items []entity.OrderItem) ([]entity.OrderItem, error) {
	out := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperror.NewFieldError("items", "Every item needs a name")
		}
		if item.SalePrice < 0 {
			return nil, apperror.NewFieldError("items", "Item prices cannot be negative")
		}
		item.SalePrice = money.Round2(item.SalePrice)
		item.Notes = strings.TrimSpace(item.Notes)
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, apperror.NewFieldError("items", "Cannot save an empty order")
	}
	return out, nil
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	Items        []entity.OrderItem
	TableNumber  string
	EmployeeName string
}

// CreateOrder saves a cart as a new open order
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}
	table := strings.TrimSpace(input.TableNumber)
	if table == "" {
		return nil, apperror.NewFieldError("table_number", "Table number is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	order := &entity.Order{
		ID:            utils.NewID(),
		TableNumber:   table,
		EmployeeName:  strings.TrimSpace(input.EmployeeName),
		Items:         items,
		PaymentStatus: enum.PaymentStatusOpen,
		KitchenStatus: statemachine.Initial,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.orders = append(s.orders, order)
	s.persist(ctx)

	logrus.WithFields(logrus.Fields{"order_id": order.ID, "table": table}).Info("Order created")
	return order.Clone(), nil
}

// UpdateOrderItems replaces the items of an open order and sends it back to pending
func (s *OrderService) UpdateOrderItems(ctx context.Context, id string, items []entity.OrderItem) (*entity.Order, error) {
	return s.editOrder(ctx, id, items, "", "")
}

// editOrder applies a whole edit under one lock and one snapshot write.
// Blank table or employee values leave the stored ones unchanged.
func (s *OrderService) editOrder(ctx context.Context, id string, items []entity.OrderItem, table, employee string) (*entity.Order, error) {
	normalized, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if !order.IsOpen() {
		return nil, apperror.NewConflictError("Only open orders can be edited")
	}

	order.Items = normalized
	if table = strings.TrimSpace(table); table != "" {
		order.TableNumber = table
	}
	if employee = strings.TrimSpace(employee); employee != "" {
		order.EmployeeName = employee
	}
	statemachine.ApplyItemEdit(order)
	order.UpdatedAt = s.now()
	s.persist(ctx)

	return order.Clone(), nil
}

// SaveOrderInput represents a save from the order screen. OrderID is empty for new orders.
type SaveOrderInput struct {
	OrderID      string
	Items        []entity.OrderItem
	TableNumber  string
	EmployeeName string
}

// SaveOrder creates a new order or updates the one being edited.
// A blank table number is tolerated only when editing an existing order.
func (s *OrderService) SaveOrder(ctx context.Context, input *SaveOrderInput) (*entity.Order, error) {
	if input.OrderID == "" {
		return s.CreateOrder(ctx, &CreateOrderInput{
			Items:        input.Items,
			TableNumber:  input.TableNumber,
			EmployeeName: input.EmployeeName,
		})
	}

	return s.editOrder(ctx, input.OrderID, input.Items, input.TableNumber, input.EmployeeName)
}

// PayOrderInput carries the vetted payment details
type PayOrderInput struct {
	Discount   entity.Discount
	Method     enum.PaymentMethod
	AmountPaid float64
}

// PayOrder freezes the totals and settles an open order. The caller is expected to have
// vetted the tendered amount through ConfirmPayment or QuotePayment.
func (s *OrderService) PayOrder(ctx context.Context, id string, input *PayOrderInput) (*entity.Order, error) {
	if err := validatePayment(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if !order.IsOpen() {
		return nil, apperror.NewConflictError("Order is already " + order.PaymentStatus.String())
	}

	method := input.Method
	if method == "" {
		method = enum.PaymentMethodCash
	}
	discount := normalizeDiscount(input.Discount)
	breakdown := money.Compute(order.Items, discount.ToMoney())

	amountPaid, change := breakdown.Total, 0.0
	if method.IsCash() {
		amountPaid = money.Round2(input.AmountPaid)
		change = money.ComputeChange(amountPaid, breakdown.Total)
	}

	now := s.now()
	order.Payment = &entity.Payment{
		Subtotal:       breakdown.Subtotal,
		Discount:       discount,
		DiscountAmount: breakdown.DiscountAmount,
		Total:          breakdown.Total,
		Method:         method,
		AmountPaid:     amountPaid,
		Change:         change,
		PaidAt:         now,
		InvoiceNumber:  s.nextInvoice(now),
	}
	order.PaymentStatus = enum.PaymentStatusPaid
	// a freshly paid order goes back to the kitchen board from the start
	statemachine.Reset(order)
	order.UpdatedAt = now
	s.persist(ctx)

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"invoice":  order.Payment.InvoiceNumber,
		"total":    money.Format(order.Payment.Total),
		"method":   method,
	}).Info("Order paid")
	return order.Clone(), nil
}

// nextInvoice returns INV-<ms>, bumped so numbers stay strictly increasing
func (s *OrderService) nextInvoice(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.lastInvoiceMs {
		ms = s.lastInvoiceMs + 1
	}
	s.lastInvoiceMs = ms
	return utils.InvoiceNumber(ms)
}

// normalizeDiscount treats a zero value as no discount
func normalizeDiscount(d entity.Discount) entity.Discount {
	if d.Value <= 0 || d.Type == "" || d.Type == enum.DiscountTypeNone {
		return entity.Discount{Type: enum.DiscountTypeNone}
	}
	d.Value = money.Round2(d.Value)
	return d
}

// PaymentQuote previews what a payment would freeze on the order
type PaymentQuote struct {
	Subtotal       float64            `json:"subtotal"`
	Discount       entity.Discount    `json:"discount"`
	DiscountAmount float64            `json:"discount_amount"`
	Total          float64            `json:"total"`
	Method         enum.PaymentMethod `json:"method"`
	AmountPaid     float64            `json:"amount_paid"`
	Change         float64            `json:"change"`
	CanConfirm     bool               `json:"can_confirm"`
	Reason         string             `json:"reason,omitempty"`
}

func validatePayment(input *PayOrderInput) error {
	var fieldErrors []apperror.FieldError
	if !input.Discount.Type.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount.type", Message: "Discount type must be percentage, fixed or none"})
	}
	if input.Discount.Value < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount.value", Message: "Discount cannot be negative"})
	}
	if input.Discount.Type == enum.DiscountTypePercentage && input.Discount.Value > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount.value", Message: "Percentage discount cannot exceed 100"})
	}
	if input.Method != "" && !input.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "method", Message: "Unknown payment method"})
	}
	if input.AmountPaid < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount_paid", Message: "Amount paid cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// QuotePayment computes the payment figures without committing anything
func (s *OrderService) QuotePayment(ctx context.Context, id string, input *PayOrderInput) (*PaymentQuote, error) {
	if err := validatePayment(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if !order.IsOpen() {
		return nil, apperror.NewConflictError("Order is already " + order.PaymentStatus.String())
	}
	return quote(order.Items, input), nil
}

func quote(items []entity.OrderItem, input *PayOrderInput) *PaymentQuote {
	method := input.Method
	if method == "" {
		method = enum.PaymentMethodCash
	}
	discount := normalizeDiscount(input.Discount)
	breakdown := money.Compute(items, discount.ToMoney())

	q := &PaymentQuote{
		Subtotal:       breakdown.Subtotal,
		Discount:       discount,
		DiscountAmount: breakdown.DiscountAmount,
		Total:          breakdown.Total,
		Method:         method,
		AmountPaid:     breakdown.Total,
		CanConfirm:     true,
	}
	if method.IsCash() {
		q.AmountPaid = money.Round2(input.AmountPaid)
		q.Change = money.ComputeChange(q.AmountPaid, q.Total)
		if !money.Covers(q.AmountPaid, q.Total) {
			q.CanConfirm = false
			q.Reason = "Amount paid (" + money.Format(q.AmountPaid) + ") is less than the total (" + money.Format(q.Total) + ")"
		}
	}
	return q
}

// ConfirmPayment is the caller-facing payment step. It declines when the cash
// tendered does not cover the total, then commits through PayOrder.
func (s *OrderService) ConfirmPayment(ctx context.Context, id string, input *PayOrderInput) (*entity.Order, error) {
	q, err := s.QuotePayment(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if !q.CanConfirm {
		return nil, apperror.NewFieldError("amount_paid", q.Reason)
	}
	return s.PayOrder(ctx, id, input)
}

// UpdateKitchenStatus moves an order to any known kitchen status
func (s *OrderService) UpdateKitchenStatus(ctx context.Context, id string, status enum.KitchenStatus) (*entity.Order, error) {
	if err := statemachine.ValidateTarget(status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if err := statemachine.Apply(order, status); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.now()
	s.persist(ctx)

	return order.Clone(), nil
}

// ClearCompletedOrders archives every completed order and returns how many moved
func (s *OrderService) ClearCompletedOrders(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	archived := 0
	now := s.now()
	for _, o := range s.orders {
		if statemachine.Archive(o) {
			o.UpdatedAt = now
			archived++
		}
	}
	s.persist(ctx)

	logrus.WithField("archived", archived).Info("Completed orders archived")
	return archived
}

// RestoreOrder brings an archived order back to the board as completed
func (s *OrderService) RestoreOrder(ctx context.Context, id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	statemachine.Restore(order)
	order.UpdatedAt = s.now()
	s.persist(ctx)

	return order.Clone(), nil
}

// CancelOrder voids an open order. Cancellation is terminal.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if !order.IsOpen() {
		return nil, apperror.NewConflictError("Only open orders can be cancelled")
	}
	order.PaymentStatus = enum.PaymentStatusCancelled
	order.UpdatedAt = s.now()
	s.persist(ctx)

	logrus.WithField("order_id", order.ID).Info("Order cancelled")
	return order.Clone(), nil
}

// GetOrder returns a copy of one order
func (s *OrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.find(id)
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (s *OrderService) filter(keep func(*entity.Order) bool) []*entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Order, 0)
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// OpenOrders returns every order still being built, oldest first
func (s *OrderService) OpenOrders(ctx context.Context) []*entity.Order {
	return s.filter(func(o *entity.Order) bool { return o.IsOpen() })
}

// PaidOrders returns paid orders still on the active board, newest payment first
func (s *OrderService) PaidOrders(ctx context.Context, params *pagination.PaginationParams) *pagination.PaginatedResult[*entity.Order] {
	orders := s.filter(func(o *entity.Order) bool { return o.IsPaid() && !o.IsArchived })
	return paginateByPaidAt(orders, params)
}

// ArchivedOrders returns the paid order history, newest payment first
func (s *OrderService) ArchivedOrders(ctx context.Context, params *pagination.PaginationParams) *pagination.PaginatedResult[*entity.Order] {
	orders := s.filter(func(o *entity.Order) bool { return o.IsPaid() && o.IsArchived })
	return paginateByPaidAt(orders, params)
}

// PaidBetween returns every paid order whose payment falls in [from, to)
func (s *OrderService) PaidBetween(ctx context.Context, from, to time.Time) []*entity.Order {
	return s.filter(func(o *entity.Order) bool {
		if !o.IsPaid() {
			return false
		}
		paidAt := o.Payment.PaidAt
		return !paidAt.Before(from) && paidAt.Before(to)
	})
}

func paginateByPaidAt(orders []*entity.Order, params *pagination.PaginationParams) *pagination.PaginatedResult[*entity.Order] {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Payment.PaidAt.After(orders[j].Payment.PaidAt)
	})
	return pagination.Slice(orders, params)
}

// KitchenColumn is one status column of the kitchen board
type KitchenColumn struct {
	Status enum.KitchenStatus `json:"status"`
	Orders []*entity.Order    `json:"orders"`
}

// KitchenBoard groups active, non-cancelled orders by kitchen status
func (s *OrderService) KitchenBoard(ctx context.Context) []KitchenColumn {
	active := s.filter(func(o *entity.Order) bool {
		return !o.IsArchived && o.PaymentStatus != enum.PaymentStatusCancelled
	})

	columns := make([]KitchenColumn, 0, len(enum.KitchenStatuses))
	for _, status := range enum.KitchenStatuses {
		column := KitchenColumn{Status: status, Orders: make([]*entity.Order, 0)}
		for _, o := range active {
			if o.KitchenStatus == status {
				column.Orders = append(column.Orders, o)
			}
		}
		columns = append(columns, column)
	}
	return columns
}
