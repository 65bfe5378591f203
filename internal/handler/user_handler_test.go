package handler_test

import (
	"net/http"
	"testing"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/handler"
	"ticketbari-api/internal/model"
	svcMocks "ticketbari-api/internal/service/mocks"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserRouter() (*gin.Engine, *svcMocks.UserServiceMock, *auth.TokenManager) {
	svc := svcMocks.NewUserServiceMock()
	tm := newTokenManager()
	r := gin.New()
	handler.NewUserHandler(svc, tm).RegisterRoutes(r)
	return r, svc, tm
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("new registration returns 201", func(t *testing.T) {
		r, svc, _ := newUserRouter()
		svc.On("Register", mock.Anything, mock.Anything).Return(
			&model.User{Email: "new@example.com", Role: model.RoleUser}, true, nil).Once()

		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
			"email": "new@example.com", "name": "New User",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("repeat registration returns 200 with the stored record", func(t *testing.T) {
		r, svc, _ := newUserRouter()
		svc.On("Register", mock.Anything, mock.Anything).Return(
			&model.User{Email: "known@example.com", Role: model.RoleVendor}, false, nil).Once()

		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
			"email": "known@example.com", "name": "Known User",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "vendor", decodeBody(t, w)["role"])
	})

	t.Run("malformed email is rejected before the service", func(t *testing.T) {
		r, svc, _ := newUserRouter()

		w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
			"email": "not-an-email", "name": "X",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_IssueToken(t *testing.T) {
	r, svc, _ := newUserRouter()
	svc.On("IssueToken", mock.Anything, "user@example.com").Return("signed-token", nil).Once()

	w := doJSON(t, r, http.MethodPost, "/api/v1/jwt", "", gin.H{"email": "user@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed-token", decodeBody(t, w)["token"])
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("admin can list", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("List", mock.Anything).Return([]*model.User{{Email: "a@example.com"}}, nil).Once()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users",
			bearerToken(t, tm, "admin@example.com", model.RoleAdmin), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		r, svc, tm := newUserRouter()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users",
			bearerToken(t, tm, "user@example.com", model.RoleUser), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("missing token gets 401", func(t *testing.T) {
		r, _, _ := newUserRouter()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("owner reads own record", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("GetByEmail", mock.Anything, "me@example.com").Return(
			&model.User{Email: "me@example.com"}, nil).Once()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/me@example.com",
			bearerToken(t, tm, "me@example.com", model.RoleUser), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("GetByEmail", mock.Anything, "someone@example.com").Return(
			&model.User{Email: "someone@example.com"}, nil).Once()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/someone@example.com",
			bearerToken(t, tm, "admin@example.com", model.RoleAdmin), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reading another user's record is forbidden", func(t *testing.T) {
		r, svc, tm := newUserRouter()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/other@example.com",
			bearerToken(t, tm, "me@example.com", model.RoleUser), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("GetByEmail", mock.Anything, "ghost@example.com").Return(
			nil, apperrors.ErrUserNotFound).Once()

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/ghost@example.com",
			bearerToken(t, tm, "ghost@example.com", model.RoleUser), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_SetRole(t *testing.T) {
	t.Run("admin promotes a user to vendor", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("SetRole", mock.Anything, "u@example.com", model.RoleVendor).Return(
			&model.User{Email: "u@example.com", Role: model.RoleVendor}, nil).Once()

		w := doJSON(t, r, http.MethodPatch, "/api/v1/users/u@example.com/role",
			bearerToken(t, tm, "admin@example.com", model.RoleAdmin), gin.H{"role": "vendor"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown role maps to 400", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("SetRole", mock.Anything, "u@example.com", model.Role("superuser")).Return(
			nil, apperrors.ErrInvalidRole).Once()

		w := doJSON(t, r, http.MethodPatch, "/api/v1/users/u@example.com/role",
			bearerToken(t, tm, "admin@example.com", model.RoleAdmin), gin.H{"role": "superuser"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("vendor cannot change roles", func(t *testing.T) {
		r, svc, tm := newUserRouter()

		w := doJSON(t, r, http.MethodPatch, "/api/v1/users/u@example.com/role",
			bearerToken(t, tm, "vendor@example.com", model.RoleVendor), gin.H{"role": "admin"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_FlagFraud(t *testing.T) {
	t.Run("admin flags a vendor", func(t *testing.T) {
		r, svc, tm := newUserRouter()
		svc.On("FlagFraud", mock.Anything, "vendor@example.com").Return(nil).Once()

		w := doJSON(t, r, http.MethodPatch, "/api/v1/users/vendor@example.com/fraud",
			bearerToken(t, tm, "admin@example.com", model.RoleAdmin), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("user role is rejected", func(t *testing.T) {
		r, svc, tm := newUserRouter()

		w := doJSON(t, r, http.MethodPatch, "/api/v1/users/vendor@example.com/fraud",
			bearerToken(t, tm, "user@example.com", model.RoleUser), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "FlagFraud", mock.Anything, mock.Anything)
	})
}
