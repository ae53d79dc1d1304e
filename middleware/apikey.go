package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/models"
	"cocktail-bar-api/service"
)

const apiKeyHeader = "X-API-Key"

type APIKeyValidator interface {
	Validate(ctx context.Context, key string) (models.APIKey, error)
}

// APIKeyRequired reads the key from the X-API-Key header or the apiKey query
// parameter. A missing key is 401, an unknown one 403.
func APIKeyRequired(keys APIKeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			key = c.Query("apiKey")
		}

		if _, err := keys.Validate(c.Request.Context(), key); err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			case errors.Is(err, service.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			default:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}
		c.Next()
	}
}
