package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niranjan1960/banos-dessert/internal/service"
)

type AuthHTTP struct {
	S   service.AuthService
	Log *slog.Logger
}

func NewAuthHTTP(s service.AuthService, log *slog.Logger) *AuthHTTP {
	return &AuthHTTP{S: s, Log: log}
}

func (h *AuthHTTP) Signup(c *gin.Context) {
	var in struct {
		service.SignupInput
		ConfirmPassword *string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	if in.ConfirmPassword != nil && *in.ConfirmPassword != in.Password {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	u, err := h.S.Signup(c.Request.Context(), sessionID(c), in.SignupInput)
	if err != nil {
		respondError(c, h.Log, err, "Signup failed. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": u})
}

func (h *AuthHTTP) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	u, err := h.S.Login(c.Request.Context(), sessionID(c), in.Email, in.Password)
	if err != nil {
		respondError(c, h.Log, err, "Login failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

// Logout signs the session out but keeps the session scope, and with it
// the cart.
func (h *AuthHTTP) Logout(c *gin.Context) {
	if err := h.S.Logout(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, h.Log, err, "Logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHTTP) Me(c *gin.Context) {
	u, err := h.S.Current(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to load session")
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// RequireUser rejects anonymous sessions.
func (h *AuthHTTP) RequireUser(c *gin.Context) {
	u, err := h.S.Current(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.Log, err, "Failed to load session")
		c.Abort()
		return
	}
	if u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	c.Set(ctxUserID, u.ID)
	c.Next()
}

const ctxUserID = "userID"
