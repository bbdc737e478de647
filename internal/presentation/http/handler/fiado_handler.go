package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// FiadoHandler handles on-credit receipt requests
type FiadoHandler struct {
	fiadoService *service.FiadoService
	loc          *time.Location
}

// NewFiadoHandler creates a new fiado handler
func NewFiadoHandler(fiadoService *service.FiadoService, loc *time.Location) *FiadoHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &FiadoHandler{fiadoService: fiadoService, loc: loc}
}

// Settle marks a receipt paid or unpaid. The id may be the receipt's or its order's.
func (h *FiadoHandler) Settle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.SettleFiadoRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.fiadoService.MarkSettled(c.Request.Context(), id, *req.Paid)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Fiado receipt marked as unpaid"
	if receipt.Paid {
		message = "Fiado receipt settled successfully"
	}
	response.OK(c, message, receipt)
}

// List handles listing receipts
func (h *FiadoHandler) List(c *gin.Context) {
	var filter request.FiadoFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.FiadoFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
		Paid:   filter.Paid,
	}

	result, err := h.fiadoService.ListReceipts(c.Request.Context(), params, filter.Overdue)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Fiado receipts retrieved successfully", result)
}

// Create handles registering a standalone receipt
func (h *FiadoHandler) Create(c *gin.Context) {
	var req request.CreateFiadoRequest
	if !bindJSON(c, &req) {
		return
	}

	dueDate, err := parseDate("due_date", req.DueDate, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.fiadoService.CreateReceipt(c.Request.Context(), &service.CreateFiadoInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Description:   req.Description,
		Amount:        req.Amount,
		DueDate:       dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fiado receipt created successfully", receipt)
}

// Get handles getting a receipt by ID
func (h *FiadoHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.fiadoService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiado receipt retrieved successfully", receipt)
}

// Delete handles deleting a standalone receipt
func (h *FiadoHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.fiadoService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fiado receipt deleted successfully", nil)
}
