package handler

import (
	"net/http"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/service"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	service service.TicketService
	tokens  *auth.TokenManager
}

func NewTicketHandler(service service.TicketService, tokens *auth.TokenManager) *TicketHandler {
	return &TicketHandler{service: service, tokens: tokens}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tickets", h.GetTickets)
		router.GET("tickets/advertised", h.GetAdvertisedTickets)
		router.GET("tickets/latest", h.GetLatestTickets)
		router.GET("tickets/:id", h.GetTicket)
		router.POST("tickets", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleVendor), h.CreateTicket)
		router.GET("vendors/:email/tickets", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleVendor), h.GetVendorTickets)
		router.PATCH("tickets/:id/status", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleAdmin), h.SetStatus)
		router.PATCH("tickets/:id/advertise", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleAdmin), h.SetAdvertised)
		router.DELETE("tickets/:id", auth.RequireAuth(h.tokens), h.DeleteTicket)
	}
}

func (h *TicketHandler) GetTickets(c *gin.Context) {
	tickets, err := h.service.ListApproved(c)
	if err != nil {
		handleError(c, err, "GetTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) GetAdvertisedTickets(c *gin.Context) {
	tickets, err := h.service.ListAdvertised(c)
	if err != nil {
		handleError(c, err, "GetAdvertisedTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) GetLatestTickets(c *gin.Context) {
	tickets, err := h.service.ListLatest(c)
	if err != nil {
		handleError(c, err, "GetLatestTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrTicketNotFound, "GetTicket")
		return
	}

	ticket, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetTicket")
		return
	}

	handleSuccess(c, ticket, http.StatusOK)
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "CreateTicket")
		return
	}

	var req model.CreateTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, identity.Email, req)
	if err != nil {
		handleError(c, err, "CreateTicket")
		return
	}

	handleSuccess(c, created, http.StatusCreated)
}

// GetVendorTickets is owner-scoped: vendors only see their own listings.
func (h *TicketHandler) GetVendorTickets(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetVendorTickets")
		return
	}
	email := c.Param("email")
	if identity.Email != email {
		handleError(c, apperrors.ErrForbidden, "GetVendorTickets")
		return
	}

	tickets, err := h.service.ListByVendor(c, email)
	if err != nil {
		handleError(c, err, "GetVendorTickets")
		return
	}

	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrTicketNotFound, "SetStatus")
		return
	}

	var req model.SetTicketStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.SetStatus(c, id, req.Status)
	if err != nil {
		handleError(c, err, "SetStatus")
		return
	}

	handleSuccess(c, ticket, http.StatusOK)
}

func (h *TicketHandler) SetAdvertised(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrTicketNotFound, "SetAdvertised")
		return
	}

	var req model.SetAdvertisedRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.SetAdvertised(c, id, *req.Advertised); err != nil {
		handleError(c, err, "SetAdvertised")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "DeleteTicket")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrTicketNotFound, "DeleteTicket")
		return
	}

	if err := h.service.Delete(c, id, identity); err != nil {
		handleError(c, err, "DeleteTicket")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}
