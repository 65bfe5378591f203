package handler

import (
	"net/http"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/service"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
	tokens  *auth.TokenManager
}

func NewUserHandler(service service.UserService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("users", h.Register)
		router.POST("jwt", h.IssueToken)
		router.GET("users", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleAdmin), h.ListUsers)
		router.GET("users/:email", auth.RequireAuth(h.tokens), h.GetUser)
		router.PATCH("users/:email/role", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleAdmin), h.SetRole)
		router.PATCH("users/:email/fraud", auth.RequireAuth(h.tokens), auth.RequireRole(model.RoleAdmin), h.FlagFraud)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterUserRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	user, created, err := h.service.Register(c, req)
	if err != nil {
		handleError(c, err, "Register")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	handleSuccess(c, user, status)
}

func (h *UserHandler) IssueToken(c *gin.Context) {
	var req model.IssueTokenRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.service.IssueToken(c, req.Email)
	if err != nil {
		handleError(c, err, "IssueToken")
		return
	}

	handleSuccess(c, gin.H{"token": token}, http.StatusOK)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListUsers")
		return
	}

	handleSuccess(c, users, http.StatusOK)
}

// GetUser lets callers read their own record; admins may read anyone's.
func (h *UserHandler) GetUser(c *gin.Context) {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "GetUser")
		return
	}
	email := c.Param("email")
	if !auth.OwnsSubject(identity, email) {
		handleError(c, apperrors.ErrForbidden, "GetUser")
		return
	}

	user, err := h.service.GetByEmail(c, email)
	if err != nil {
		handleError(c, err, "GetUser")
		return
	}

	handleSuccess(c, user, http.StatusOK)
}

func (h *UserHandler) SetRole(c *gin.Context) {
	var req model.SetRoleRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.service.SetRole(c, c.Param("email"), req.Role)
	if err != nil {
		handleError(c, err, "SetRole")
		return
	}

	handleSuccess(c, user, http.StatusOK)
}

func (h *UserHandler) FlagFraud(c *gin.Context) {
	if err := h.service.FlagFraud(c, c.Param("email")); err != nil {
		handleError(c, err, "FlagFraud")
		return
	}

	handleSuccess(c, nil, http.StatusOK)
}
