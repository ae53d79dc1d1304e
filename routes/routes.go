package routes

import (
	"cocktail-bar-api/handlers"
	"cocktail-bar-api/middleware"
	"cocktail-bar-api/models"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Handler      *handlers.Handler
	Tokens       middleware.TokenVerifier
	APIKeys      middleware.APIKeyValidator
	LoginLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, d Deps) {
	h := d.Handler
	auth := middleware.AuthRequired(d.Tokens)

	r.GET("/health", h.Health)

	api := r.Group("/api/v1")

	// ── Public routes ──────────────────────────────────────────────
	{
		login := api.Group("/auth")
		if d.LoginLimiter != nil {
			login.Use(d.LoginLimiter.Handler())
		}
		login.POST("/login", h.Login)
		login.POST("/register-superuser", h.RegisterSuperuser)
		login.POST("/google/login", h.GoogleLogin)

		api.GET("/cocktails", h.ListCocktails)
		api.GET("/cocktails/:id", h.GetCocktail)

		// Customers order without an account and can follow every order.
		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.PlaceOrder)

		api.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── API key routes ─────────────────────────────────────────────
	public := api.Group("/public")
	public.Use(middleware.APIKeyRequired(d.APIKeys))
	{
		public.GET("/cocktails", h.PublicCocktails)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := api.Group("")
	authed.Use(auth)
	{
		authed.GET("/auth/me", h.Me)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := api.Group("")
	staff.Use(auth, middleware.StaffOnly())
	{
		staff.POST("/cocktails", h.CreateCocktail)
		staff.PUT("/cocktails/:id", h.UpdateCocktail)
		staff.DELETE("/cocktails/:id", h.DeleteCocktail)

		staff.GET("/orders/summary", h.OrderSummary)
		staff.GET("/orders/:id", h.GetOrder)
		staff.PUT("/orders/:id", h.UpdateOrder)
		staff.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		staff.DELETE("/orders/:id", h.DeleteOrder)
		staff.GET("/orders/:id/history", h.OrderHistory)
	}

	// ── Superuser routes ───────────────────────────────────────────
	admin := api.Group("")
	admin.Use(auth, middleware.RoleRequired(models.RoleSuperuser))
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.POST("/api-keys/generate", h.GenerateAPIKey)
	}
}
