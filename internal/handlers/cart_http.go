package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/service"
)

type CartHTTP struct {
	S   service.CartService
	Log *slog.Logger
}

func NewCartHTTP(s service.CartService, log *slog.Logger) *CartHTTP {
	return &CartHTTP{S: s, Log: log}
}

func (h *CartHTTP) Get(c *gin.Context) {
	cart, err := h.S.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch cart")
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

func (h *CartHTTP) Add(c *gin.Context) {
	var in struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	cart, err := h.S.Add(c.Request.Context(), sessionID(c), in.ProductID)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

func (h *CartHTTP) UpdateQuantity(c *gin.Context) {
	var in struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	cart, err := h.S.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("productId"), *in.Quantity)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

func (h *CartHTTP) Remove(c *gin.Context) {
	cart, err := h.S.Remove(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		respondError(c, h.Log, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

func (h *CartHTTP) Clear(c *gin.Context) {
	cart, err := h.S.Clear(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, cart.View())
}
