package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/models"
	"cocktail-bar-api/security"
)

const claimsKey = "claims"

// TokenVerifier is implemented by *security.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

// AuthRequired validates the bearer token and injects its claims into the
// context. It does not look the user up again.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if _, ok := roleSet[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied. Required role(s): " + rolesString(roles),
			})
			return
		}
		c.Next()
	}
}

// StaffOnly admits employees and superusers.
func StaffOnly() gin.HandlerFunc {
	return RoleRequired(models.StaffRoles...)
}

func rolesString(roles []models.UserRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// GetClaims returns the claims stored by AuthRequired.
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*security.Claims)
	return claims, ok && claims != nil
}

// GetUserID extracts caller user ID from context, or 0 for anonymous callers.
func GetUserID(c *gin.Context) uint {
	claims, ok := GetClaims(c)
	if !ok {
		return 0
	}
	return claims.UserID
}
