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
)

// LedgerHandler handles financial ledger requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
	loc           *time.Location
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService, loc *time.Location) *LedgerHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerHandler{ledgerService: ledgerService, loc: loc}
}

func parseLedgerDirection(value string) (*enum.LedgerDirection, error) {
	switch d := enum.LedgerDirection(value); d {
	case "":
		return nil, nil
	case enum.LedgerDirectionIn, enum.LedgerDirectionOut:
		return &d, nil
	default:
		return nil, apperror.NewFieldError("type", "must be in or out")
	}
}

func parseLedgerCursor(token string) (*repository.LedgerCursor, error) {
	cursor, err := repository.ParseLedgerCursor(token)
	if err != nil {
		return nil, apperror.NewFieldError("cursor", "is invalid")
	}
	return cursor, nil
}

// parseWalkDirection reports whether the page reads towards newer entries
func parseWalkDirection(value string) (bool, error) {
	switch value {
	case "", "next":
		return false, nil
	case "prev":
		return true, nil
	default:
		return false, apperror.NewFieldError("direction", "must be next or prev")
	}
}

// List handles listing entries newest first, paged by cursor
func (h *LedgerHandler) List(c *gin.Context) {
	var filter request.LedgerFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.LedgerFilterParams{
		Page:     repository.LedgerPage{Limit: filter.Limit},
		Category: filter.Category,
	}

	var errCursor, errWalk, errType, errOrder, errFrom, errTo error
	params.Page.Cursor, errCursor = parseLedgerCursor(filter.Cursor)
	params.Page.Backwards, errWalk = parseWalkDirection(filter.Direction)
	params.Direction, errType = parseLedgerDirection(filter.Type)
	params.OrderID, errOrder = optionalID("order_id", filter.OrderID)
	params.From, errFrom = parseDate("from", filter.From, h.loc)
	params.To, errTo = parseEndDate("to", filter.To, h.loc)
	if err := firstError(errCursor, errWalk, errType, errOrder, errFrom, errTo); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entries retrieved successfully", result)
}

// Summary handles totals over [from, to]; both are optional dates
func (h *LedgerHandler) Summary(c *gin.Context) {
	from, errFrom := parseDate("from", c.Query("from"), h.loc)
	to, errTo := parseEndDate("to", c.Query("to"), h.loc)
	if err := firstError(errFrom, errTo); err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.ledgerService.Summary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger summary retrieved successfully", summary)
}

// Create handles recording a manual movement
func (h *LedgerHandler) Create(c *gin.Context) {
	var req request.CreateLedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	occurredAt, err := parseTime("occurred_at", req.OccurredAt, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	input := &service.CreateEntryInput{
		Direction:   enum.LedgerDirection(req.Direction),
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		OccurredAt:  occurredAt,
	}
	if req.PaymentMethod != "" {
		method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
		if !ok {
			response.Error(c, apperror.NewFieldError("payment_method", "must be one of cash, card, pix, fiado"))
			return
		}
		input.PaymentMethod = method
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ledger entry created successfully", entry)
}

// Delete handles removing an entry as a manual correction
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entry deleted successfully", nil)
}
