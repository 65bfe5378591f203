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

type BookingHandler struct {
	service service.BookingService
	tokens  *auth.TokenManager
}

func NewBookingHandler(service service.BookingService, tokens *auth.TokenManager) *BookingHandler {
	return &BookingHandler{service: service, tokens: tokens}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", auth.RequireAuth(h.tokens))
	{
		router.POST("bookings", h.CreateBooking)
		router.GET("bookings/user/:email", h.GetUserBookings)
		router.GET("bookings/vendor/:email", auth.RequireRole(model.RoleVendor), h.GetVendorBookings)
		router.PATCH("bookings/:id/status", auth.RequireRole(model.RoleVendor), h.SetStatus)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "CreateBooking")
		return
	}

	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.Create(c, identity.Email, req)
	if err != nil {
		handleError(c, err, "CreateBooking")
		return
	}

	handleSuccess(c, booking, http.StatusCreated)
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetUserBookings")
		return
	}
	email := c.Param("email")
	if !auth.OwnsSubject(identity, email) {
		handleError(c, apperrors.ErrForbidden, "GetUserBookings")
		return
	}

	bookings, err := h.service.ListForUser(c, email)
	if err != nil {
		handleError(c, err, "GetUserBookings")
		return
	}

	handleSuccess(c, bookings, http.StatusOK)
}

func (h *BookingHandler) GetVendorBookings(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetVendorBookings")
		return
	}
	email := c.Param("email")
	if identity.Email != email {
		handleError(c, apperrors.ErrForbidden, "GetVendorBookings")
		return
	}

	bookings, err := h.service.ListForVendor(c, email)
	if err != nil {
		handleError(c, err, "GetVendorBookings")
		return
	}

	handleSuccess(c, bookings, http.StatusOK)
}

func (h *BookingHandler) SetStatus(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "SetBookingStatus")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apperrors.ErrBookingNotFound, "SetBookingStatus")
		return
	}

	var req model.SetBookingStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.SetDecision(c, id, req.Status, identity)
	if err != nil {
		handleError(c, err, "SetBookingStatus")
		return
	}

	handleSuccess(c, booking, http.StatusOK)
}
