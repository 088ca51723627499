// Package httpapi serves the authority's session endpoints: login, logout
// and status.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/server/users"
	"github.com/dmitrijs2005/pokegate/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionService is the part of users.Service the handlers call.
type SessionService interface {
	Login(ctx context.Context, subject, secret string) (*users.Session, error)
	Logout() session.CookieAttributes
}

type Handler struct {
	users    SessionService
	verifier session.Verifier
	logger   logging.Logger
}

func NewHandler(users SessionService, verifier session.Verifier, logger logging.Logger) *Handler {
	return &Handler{users: users, verifier: verifier, logger: logger}
}

// Register mounts the endpoints on the /api/auth group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/status", h.Status)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sess, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.logger.Info(ctx, "login rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error(ctx, "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	http.SetCookie(c.Writer, sess.Cookie.HTTPCookie())
	h.logger.Info(ctx, "logged in", "username", sess.Identity.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout always succeeds, with or without a session.
func (h *Handler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.users.Logout().HTTPCookie())
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Status never fails: an absent or invalid session is {"success":false}.
func (h *Handler) Status(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	res := h.verifier.Verify(c.Request)
	if !res.OK() {
		c.JSON(http.StatusOK, session.StatusResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, session.StatusResponse{Success: true, User: res.Identity})
}
