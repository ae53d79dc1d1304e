package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cocktail-bar-api/service"
)

// Check reports the health of one dependency.
type Check func(ctx context.Context) error

type Deps struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Orders      *service.OrderService
	Cocktails   *service.CocktailService
	APIKeys     *service.APIKeyService
	Checks      map[string]Check
	Environment string
	Log         zerolog.Logger
}

type Handler struct {
	auth        *service.AuthService
	users       *service.UserService
	orders      *service.OrderService
	cocktails   *service.CocktailService
	apiKeys     *service.APIKeyService
	checks      map[string]Check
	environment string
	log         zerolog.Logger
}

func New(d Deps) *Handler {
	return &Handler{
		auth:        d.Auth,
		users:       d.Users,
		orders:      d.Orders,
		cocktails:   d.Cocktails,
		apiKeys:     d.APIKeys,
		checks:      d.Checks,
		environment: d.Environment,
		log:         d.Log,
	}
}

// respondError maps service errors onto status codes. Unexpected errors are
// logged and only described to the client outside production.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid identifier or password"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		body := gin.H{"error": "internal server error"}
		if h.environment != "production" {
			body["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID parses the :id route parameter and answers 400 when it is not a
// positive integer.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
