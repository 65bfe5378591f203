package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketbari-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(tm *TokenManager, required model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tm), RequireRole(required), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	r := setupRouter(tm, model.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	r := setupRouter(tm, model.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllPairs(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	roles := []model.Role{model.RoleUser, model.RoleVendor, model.RoleAdmin}

	for _, required := range roles {
		for _, actual := range roles {
			r := setupRouter(tm, required)
			token, err := tm.Issue("alice@example.com", actual)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			if required == actual {
				assert.Equal(t, http.StatusOK, w.Code, "required=%s actual=%s", required, actual)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code, "required=%s actual=%s", required, actual)
			}
		}
	}
}

func TestOwnsSubject(t *testing.T) {
	assert.True(t, OwnsSubject(Identity{Email: "a@x.com", Role: model.RoleUser}, "a@x.com"))
	assert.False(t, OwnsSubject(Identity{Email: "a@x.com", Role: model.RoleUser}, "b@x.com"))
	assert.False(t, OwnsSubject(Identity{Email: "a@x.com", Role: model.RoleVendor}, "b@x.com"))
	assert.True(t, OwnsSubject(Identity{Email: "a@x.com", Role: model.RoleAdmin}, "b@x.com"))
}
