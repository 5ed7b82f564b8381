package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/service"
)

type PaymentsHTTP struct {
	S   service.PaymentService
	Log *slog.Logger
}

func NewPaymentsHTTP(s service.PaymentService, log *slog.Logger) *PaymentsHTTP {
	return &PaymentsHTTP{S: s, Log: log}
}

type gatewayView struct {
	model.PaymentGateway
	Configured bool `json:"configured"`
}

func viewGateway(g model.PaymentGateway) gatewayView {
	return gatewayView{PaymentGateway: g.Redacted(), Configured: g.Configured()}
}

func (h *PaymentsHTTP) List(c *gin.Context) {
	gs, err := h.S.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch payment gateways")
		return
	}
	out := make([]gatewayView, 0, len(gs))
	for _, g := range gs {
		out = append(out, viewGateway(g))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PaymentsHTTP) Update(c *gin.Context) {
	var in service.GatewayPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	g, err := h.S.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update payment gateway")
		return
	}
	c.JSON(http.StatusOK, viewGateway(g))
}

func (h *PaymentsHTTP) SetCredentials(c *gin.Context) {
	var in map[string]string
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	g, err := h.S.SetCredentials(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update payment credentials")
		return
	}
	c.JSON(http.StatusOK, viewGateway(g))
}
