package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/service"
)

type OrdersHTTP struct {
	S   service.OrderService
	Log *slog.Logger
}

func NewOrdersHTTP(s service.OrderService, log *slog.Logger) *OrdersHTTP {
	return &OrdersHTTP{S: s, Log: log}
}

// Checkout places an order from the session's cart.
func (h *OrdersHTTP) Checkout(c *gin.Context) {
	var info model.DeliveryInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		badJSON(c)
		return
	}
	o, err := h.S.PlaceOrder(c.Request.Context(), sessionID(c), info)
	if err != nil {
		respondError(c, h.Log, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Mine lists the signed-in customer's orders; RequireUser runs first.
func (h *OrdersHTTP) Mine(c *gin.Context) {
	list, err := h.S.List(c.Request.Context(), service.OrderFilter{CustomerID: c.GetString(ctxUserID)})
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, list)
}

func filterFromQuery(c *gin.Context) service.OrderFilter {
	f := service.OrderFilter{
		CustomerID: c.Query("customer"),
		Query:      c.Query("q"),
	}
	if st := c.Query("status"); st != "" && st != "all" {
		f.Status = model.OrderStatus(st)
	}
	return f
}

func (h *OrdersHTTP) List(c *gin.Context) {
	list, err := h.S.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrdersHTTP) Create(c *gin.Context) {
	var in model.Order
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	o, err := h.S.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Log, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrdersHTTP) SetStatus(c *gin.Context) {
	var in struct {
		Status  model.OrderStatus `json:"status" binding:"required"`
		Version int               `json:"version"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	o, err := h.S.SetStatus(c.Request.Context(), c.Param("id"), in.Status, in.Version)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrdersHTTP) SetNotes(c *gin.Context) {
	var in struct {
		AdminNotes string `json:"adminNotes"`
		Version    int    `json:"version"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	o, err := h.S.SetAdminNotes(c.Request.Context(), c.Param("id"), in.AdminNotes, in.Version)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update order notes")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrdersHTTP) Stats(c *gin.Context) {
	counts, err := h.S.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch order stats")
		return
	}
	c.JSON(http.StatusOK, counts)
}
