package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	printerService *service.PrinterService
	loc            *time.Location
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printerService *service.PrinterService, loc *time.Location) *OrderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderHandler{orderService: orderService, printerService: printerService, loc: loc}
}

// Create handles placing an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.PlaceOrderInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		Items:         make([]service.OrderItemInput, len(req.Items)),
	}
	for i, item := range req.Items {
		input.Items[i] = service.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", result)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		status, ok := enum.ParseOrderStatus(filter.Status)
		if !ok {
			response.Error(c, apperror.NewFieldError("status", "must be one of pending, paid, canceled"))
			return
		}
		params.Status = &status
	}
	if filter.PaymentMethod != "" {
		method, ok := enum.ParsePaymentMethod(filter.PaymentMethod)
		if !ok {
			response.Error(c, apperror.NewFieldError("payment_method", "must be one of cash, card, pix, fiado"))
			return
		}
		params.PaymentMethod = &method
	}

	var errCustomer, errStart, errEnd error
	params.CustomerID, errCustomer = optionalID("customer_id", filter.CustomerID)
	params.StartDate, errStart = parseDate("start_date", filter.StartDate, h.loc)
	params.EndDate, errEnd = parseEndDate("end_date", filter.EndDate, h.loc)
	if err := firstError(errCustomer, errStart, errEnd); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles getting an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Cancel handles canceling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order canceled successfully", order)
}

// Print sends the order receipt to the printer. The formatted receipt is
// returned even when printing fails.
func (h *OrderHandler) Print(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintOrderReceipt(c.Request.Context(), id)
	if receipt == nil {
		response.Error(c, err)
		return
	}
	if err != nil {
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{"receipt": receipt})
}
