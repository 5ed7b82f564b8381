package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/service"
)

type ContentHTTP struct {
	S   service.ContentService
	Log *slog.Logger
}

func NewContentHTTP(s service.ContentService, log *slog.Logger) *ContentHTTP {
	return &ContentHTTP{S: s, Log: log}
}

func (h *ContentHTTP) Get(c *gin.Context) {
	doc, err := h.S.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch content")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ContentHTTP) ReplaceSection(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	doc, err := h.S.ReplaceSection(c.Request.Context(), c.Param("section"), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update content")
		return
	}
	c.JSON(http.StatusOK, doc)
}
