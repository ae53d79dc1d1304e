package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/middleware"
	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/service"
)

type OrderItemRequest struct {
	CocktailID uint `json:"cocktail_id"`
	Quantity   int  `json:"quantity"`
}

// OrderRequest is the body of POST and PUT /orders. Status is ignored on
// create.
type OrderRequest struct {
	TableNumber int                `json:"table_number"`
	Cocktails   []OrderItemRequest `json:"cocktails"`
	Status      models.OrderStatus `json:"status"`
}

func (r OrderRequest) input() service.OrderInput {
	items := make([]service.OrderItemInput, len(r.Cocktails))
	for i, item := range r.Cocktails {
		items[i] = service.OrderItemInput{CocktailID: item.CocktailID, Quantity: item.Quantity}
	}
	return service.OrderInput{TableNumber: r.TableNumber, Items: items, Status: r.Status}
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
	Note   string             `json:"note"`
}

// PlaceOrder creates a new order. No account is needed.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var actor *uint
	if id := middleware.GetUserID(c); id != 0 {
		actor = &id
	}

	order, err := h.orders.Create(c.Request.Context(), req.input(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns every order, newest first. Filters: ?status= and ?table=.
func (h *Handler) ListOrders(c *gin.Context) {
	filter := repository.OrderFilter{Status: models.OrderStatus(c.Query("status"))}
	if table := c.Query("table"); table != "" {
		n, err := strconv.Atoi(table)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table must be a positive integer"})
			return
		}
		filter.TableNumber = n
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder replaces table, cocktails and optionally status.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, req.input(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order to any declared status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status, req.Note, middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrderHistory returns the status audit trail of an order
func (h *Handler) OrderHistory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	history, err := h.orders.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "count": len(history), "history": history})
}
