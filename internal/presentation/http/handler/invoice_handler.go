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

// InvoiceHandler handles supplier invoice requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	loc            *time.Location
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, loc *time.Location) *InvoiceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InvoiceHandler{invoiceService: invoiceService, loc: loc}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	switch filter.Status {
	case "":
	case "pending":
		status := enum.InvoiceStatusPending
		params.Status = &status
	case "received":
		status := enum.InvoiceStatusReceived
		params.Status = &status
	default:
		response.Error(c, apperror.NewFieldError("status", "must be pending or received"))
		return
	}

	var errSupplier, errStart, errEnd error
	params.SupplierID, errSupplier = optionalID("supplier_id", filter.SupplierID)
	params.StartDate, errStart = parseDate("start_date", filter.StartDate, h.loc)
	params.EndDate, errEnd = parseEndDate("end_date", filter.EndDate, h.loc)
	if err := firstError(errSupplier, errStart, errEnd); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles registering a pending invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseDate("date", req.Date, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CreateInvoiceInput{
		SupplierID: req.SupplierID,
		InvoiceNo:  req.InvoiceNo,
		Date:       date,
		Notes:      req.Notes,
		Items:      make([]service.InvoiceItemInput, len(req.Items)),
	}
	for i, item := range req.Items {
		input.Items[i] = service.InvoiceItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Receive handles receiving the goods of an invoice into stock
func (h *InvoiceHandler) Receive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.ReceiveInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice received successfully", invoice)
}

// Delete handles deleting a pending invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}
