package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// CashSessionHandler handles cash register session requests
type CashSessionHandler struct {
	sessionService *service.CashSessionService
}

// NewCashSessionHandler creates a new cash session handler
func NewCashSessionHandler(sessionService *service.CashSessionService) *CashSessionHandler {
	return &CashSessionHandler{sessionService: sessionService}
}

// Open handles opening today's session
func (h *CashSessionHandler) Open(c *gin.Context) {
	var req request.OpenCashSessionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), req.OpeningFloat)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened successfully", session)
}

// Close handles closing the open session
func (h *CashSessionHandler) Close(c *gin.Context) {
	session, err := h.sessionService.Close(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed successfully", session)
}

// Current handles getting the open session
func (h *CashSessionHandler) Current(c *gin.Context) {
	session, err := h.sessionService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved successfully", session)
}

// List handles listing sessions
func (h *CashSessionHandler) List(c *gin.Context) {
	var req request.ListRequest
	if !bindQuery(c, &req) {
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	result, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash sessions retrieved successfully", result)
}
