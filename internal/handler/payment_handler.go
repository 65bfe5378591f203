package handler

import (
	"net/http"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/service"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service service.PaymentService
	tokens  *auth.TokenManager
}

func NewPaymentHandler(service service.PaymentService, tokens *auth.TokenManager) *PaymentHandler {
	return &PaymentHandler{service: service, tokens: tokens}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", auth.RequireAuth(h.tokens))
	{
		router.POST("payments/intent", h.CreateIntent)
		router.POST("payments", h.RecordPayment)
		router.GET("payments/user/:email", h.GetUserPayments)
		router.GET("vendors/:email/stats", auth.RequireRole(model.RoleVendor), h.GetVendorStats)
	}
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req model.CreateIntentRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	intent, err := h.service.CreateIntent(c, req.Amount)
	if err != nil {
		handleError(c, err, "CreateIntent")
		return
	}

	handleSuccess(c, intent, http.StatusOK)
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "RecordPayment")
		return
	}

	var req model.RecordPaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	payment, err := h.service.Record(c, identity.Email, req)
	if err != nil {
		handleError(c, err, "RecordPayment")
		return
	}

	handleSuccess(c, payment, http.StatusCreated)
}

func (h *PaymentHandler) GetUserPayments(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetUserPayments")
		return
	}
	email := c.Param("email")
	if !auth.OwnsSubject(identity, email) {
		handleError(c, apperrors.ErrForbidden, "GetUserPayments")
		return
	}

	payments, err := h.service.ListForUser(c, email)
	if err != nil {
		handleError(c, err, "GetUserPayments")
		return
	}

	handleSuccess(c, payments, http.StatusOK)
}

func (h *PaymentHandler) GetVendorStats(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetVendorStats")
		return
	}
	email := c.Param("email")
	if identity.Email != email {
		handleError(c, apperrors.ErrForbidden, "GetVendorStats")
		return
	}

	stats, err := h.service.VendorStats(c, email)
	if err != nil {
		handleError(c, err, "GetVendorStats")
		return
	}

	handleSuccess(c, stats, http.StatusOK)
}
