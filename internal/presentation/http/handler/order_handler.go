package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/gusto-pos/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns open orders, or paginated paid or archived orders when view is set
func (h *OrderHandler) List(c *gin.Context) {
	var q request.OrderListQuery
	if !bindQuery(c, &q) {
		return
	}
	ctx := c.Request.Context()
	params := &pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage}

	switch q.View {
	case "paid":
		response.SuccessWithPagination(c, "Paid orders retrieved successfully", h.orderService.PaidOrders(ctx, params))
	case "archived":
		response.SuccessWithPagination(c, "Order history retrieved successfully", h.orderService.ArchivedOrders(ctx, params))
	default:
		response.OK(c, "Open orders retrieved successfully", h.orderService.OpenOrders(ctx))
	}
}

// Save creates a new order, or updates the order named by order_id
func (h *OrderHandler) Save(c *gin.Context) {
	var req request.SaveOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.SaveOrder(c.Request.Context(), &service.SaveOrderInput{
		OrderID:      req.OrderID,
		Items:        request.ToOrderItems(req.Items),
		TableNumber:  req.TableNumber,
		EmployeeName: req.EmployeeName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.OrderID == "" {
		response.Created(c, "Order created successfully", order)
		return
	}
	response.OK(c, "Order updated successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// UpdateItems replaces the items of an open order and sends it back to the kitchen queue
func (h *OrderHandler) UpdateItems(c *gin.Context) {
	var req request.UpdateOrderItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrderItems(c.Request.Context(), c.Param("id"), request.ToOrderItems(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order updated successfully", order)
}

// UpdateKitchenStatus moves an order on the kitchen board
func (h *OrderHandler) UpdateKitchenStatus(c *gin.Context) {
	var req request.KitchenStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateKitchenStatus(c.Request.Context(), c.Param("id"), enum.KitchenStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Kitchen status updated", order)
}

func paymentInput(req request.PaymentRequest) *service.PayOrderInput {
	return &service.PayOrderInput{
		Discount:   req.Discount(),
		Method:     req.PaymentMethod,
		AmountPaid: req.AmountPaid,
	}
}

// QuotePayment previews the totals and change of a payment without committing it
func (h *OrderHandler) QuotePayment(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.orderService.QuotePayment(c.Request.Context(), c.Param("id"), paymentInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment quote calculated", quote)
}

// Pay confirms the payment of an open order
func (h *OrderHandler) Pay(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ConfirmPayment(c.Request.Context(), c.Param("id"), paymentInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment registered", order)
}

// Cancel voids an open order
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.orderService.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cancelled", order)
}

// ArchiveCompleted moves every completed order off the kitchen board
func (h *OrderHandler) ArchiveCompleted(c *gin.Context) {
	archived := h.orderService.ClearCompletedOrders(c.Request.Context())
	response.OK(c, "Completed orders archived", gin.H{"archived": archived})
}

// Restore brings an archived order back to the kitchen board as completed
func (h *OrderHandler) Restore(c *gin.Context) {
	order, err := h.orderService.RestoreOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order restored", order)
}

// KitchenBoard returns the active orders grouped by kitchen status
func (h *OrderHandler) KitchenBoard(c *gin.Context) {
	response.OK(c, "Kitchen board retrieved successfully", h.orderService.KitchenBoard(c.Request.Context()))
}
