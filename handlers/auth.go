package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/middleware"
	"cocktail-bar-api/service"
)

// LoginRequest accepts the secret as either "password" or "secret".
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Secret     string `json:"secret"`
}

func (r LoginRequest) secret() string {
	if r.Password != "" {
		return r.Password
	}
	return r.Secret
}

type RegisterSuperuserRequest struct {
	LoginRequest
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type GoogleLoginRequest struct {
	GoogleID  string `json:"googleId"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login authenticates a staff member and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Identifier, req.secret())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// RegisterSuperuser creates an admin account
func (h *Handler) RegisterSuperuser(c *gin.Context) {
	var req RegisterSuperuserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.auth.RegisterSuperuser(c.Request.Context(), service.RegisterInput{
		Identifier: req.Identifier,
		Password:   req.secret(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Superuser created successfully",
		"user":    gin.H{"id": user.ID},
	})
}

// GoogleLogin signs in with a Google profile, creating a customer account
// on first use.
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.auth.ExternalLogin(c.Request.Context(), service.ExternalIdentity{
		GoogleID:  req.GoogleID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// Me returns the verified token claims
func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.respondError(c, service.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, claims)
}
