package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/service"
)

// CocktailRequest is used for create and partial update. Price accepts a
// JSON number or string.
type CocktailRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	Price        *decimal.Decimal `json:"price"`
	Category     *string          `json:"category"`
	IsAvailable  *bool            `json:"isAvailable"`
	Ingredients  *[]string        `json:"ingredients"`
	Instructions *string          `json:"instructions"`
	Origin       *string          `json:"origin"`
	Status       *string          `json:"status"`
}

func (r CocktailRequest) input() service.CocktailInput {
	return service.CocktailInput{
		Name:         r.Name,
		Description:  r.Description,
		Image:        r.Image,
		Price:        r.Price,
		Category:     r.Category,
		IsAvailable:  r.IsAvailable,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Origin:       r.Origin,
		Status:       r.Status,
	}
}

// ListCocktails returns the menu, newest first.
// Filters: ?category=, ?available=true|false, ?search=.
func (h *Handler) ListCocktails(c *gin.Context) {
	filter, ok := cocktailFilter(c)
	if !ok {
		return
	}
	cocktails, err := h.cocktails.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cocktails)
}

// PublicCocktails serves the catalog to API key holders
func (h *Handler) PublicCocktails(c *gin.Context) {
	filter, ok := cocktailFilter(c)
	if !ok {
		return
	}
	cocktails, err := h.cocktails.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cocktails})
}

func (h *Handler) GetCocktail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cocktail, err := h.cocktails.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cocktail)
}

func (h *Handler) CreateCocktail(c *gin.Context) {
	var req CocktailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cocktail, err := h.cocktails.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cocktail)
}

// UpdateCocktail applies only the fields present in the body
func (h *Handler) UpdateCocktail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CocktailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cocktail, err := h.cocktails.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cocktail)
}

func (h *Handler) DeleteCocktail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.cocktails.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func cocktailFilter(c *gin.Context) (repository.CocktailFilter, bool) {
	filter := repository.CocktailFilter{
		Category: models.CocktailCategory(c.Query("category")),
		Search:   c.Query("search"),
	}
	if available := c.Query("available"); available != "" {
		v, err := strconv.ParseBool(available)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available must be true or false"})
			return repository.CocktailFilter{}, false
		}
		filter.Available = &v
	}
	return filter, true
}
