package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/service"
)

type CatalogHTTP struct {
	S   service.CatalogService
	Log *slog.Logger
}

func NewCatalogHTTP(s service.CatalogService, log *slog.Logger) *CatalogHTTP {
	return &CatalogHTTP{S: s, Log: log}
}

func rawBody(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		badJSON(c)
		return nil, false
	}
	return body, true
}

func (h *CatalogHTTP) ListProducts(c *gin.Context) {
	ps, err := h.S.ListProducts(c.Request.Context(), false)
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *CatalogHTTP) PublicProducts(c *gin.Context) {
	ps, err := h.S.ListProducts(c.Request.Context(), true)
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *CatalogHTTP) CreateProduct(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	p, err := h.S.CreateProduct(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHTTP) UpdateProduct(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	p, err := h.S.UpdateProduct(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c *gin.Context) {
	if err := h.S.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CatalogHTTP) ListServingIdeas(c *gin.Context) {
	list, err := h.S.ListServingIdeas(c.Request.Context(), false)
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch serving ideas")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHTTP) PublicServingIdeas(c *gin.Context) {
	list, err := h.S.ListServingIdeas(c.Request.Context(), true)
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch serving ideas")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHTTP) CreateServingIdea(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	si, err := h.S.CreateServingIdea(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to create serving idea")
		return
	}
	c.JSON(http.StatusCreated, si)
}

func (h *CatalogHTTP) UpdateServingIdea(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	si, err := h.S.UpdateServingIdea(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update serving idea")
		return
	}
	c.JSON(http.StatusOK, si)
}

func (h *CatalogHTTP) DeleteServingIdea(c *gin.Context) {
	if err := h.S.DeleteServingIdea(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err, "Failed to delete serving idea")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CatalogHTTP) Settings(c *gin.Context) {
	st, err := h.S.Settings(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch site settings")
		return
	}
	c.JSON(http.StatusOK, st)
}

// PublicSettings answers {} until settings have been written once.
func (h *CatalogHTTP) PublicSettings(c *gin.Context) {
	st, err := h.S.PublicSettings(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch settings")
		return
	}
	if st == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CatalogHTTP) UpdateSettings(c *gin.Context) {
	body, ok := rawBody(c)
	if !ok {
		return
	}
	st, err := h.S.UpdateSettings(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update site settings")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CatalogHTTP) Initialize(c *gin.Context) {
	seeded, err := h.S.Initialize(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to initialize data")
		return
	}
	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Data already initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default data initialized successfully"})
}
