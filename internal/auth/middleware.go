package auth

import (
	"errors"
	"net/http"

	"ticketbari-api/internal/model"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireAuth verifies the bearer credential and stores the Identity in the
// request context. It must run before any RequireRole check.
func RequireAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := tm.Verify(c.GetHeader("Authorization"))
		if err != nil {
			status := http.StatusForbidden
			if errors.Is(err, apperrors.ErrMissingToken) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole denies the request unless the verified identity carries the
// required role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// OwnsSubject reports whether the identity may act on the subject email.
// Admins pass every ownership check.
func OwnsSubject(identity Identity, subjectEmail string) bool {
	return identity.Email == subjectEmail || identity.Role == model.RoleAdmin
}
