package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/middleware"
	"cocktail-bar-api/models"
	"cocktail-bar-api/service"
)

// UserRequest is used for create and partial update.
type UserRequest struct {
	Identifier *string          `json:"identifier"`
	Password   *string          `json:"password"`
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Email      *string          `json:"email"`
	Role       *models.UserRole `json:"role"`
}

func (r UserRequest) input() service.UserInput {
	return service.UserInput{
		Identifier: r.Identifier,
		Password:   r.Password,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Role:       r.Role,
	}
}

// OrderSummary aggregates orders by status for the admin dashboard
func (h *Handler) OrderSummary(c *gin.Context) {
	summary, err := h.orders.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListUsers returns all users (superuser only)
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateAPIKey issues a catalog key. The key is only shown in this
// response.
func (h *Handler) GenerateAPIKey(c *gin.Context) {
	key, err := h.apiKeys.Generate(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "API key generated, store it now: it will not be shown again",
		"apiKey":  key,
	})
}
