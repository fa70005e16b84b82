package handler

import (
	"errors"
	"net/http"

	"expensetracker/internal/middleware"
	"expensetracker/internal/model"
	"expensetracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service      service.AuthService
	log          *logrus.Logger
	cookieSecure bool
	cookieMaxAge int
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is in seconds and
// should match the token TTL.
func NewAuthHandler(s service.AuthService, log *logrus.Logger, cookieSecure bool, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{service: s, log: log, cookieSecure: cookieSecure, cookieMaxAge: cookieMaxAge}
}

// setTokenCookie stores the token in an HTTP-only, SameSite=Lax cookie
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(c, http.StatusConflict, "Username already exists. Please choose another.")
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, "Email already registered. Please login.")
		case errors.Is(err, service.ErrDuplicateUser):
			respondError(c, http.StatusConflict, "Username or email already registered.")
		default:
			h.log.WithError(err).Error("registration failed")
			respondError(c, http.StatusInternalServerError, "Server error occurred during registration.")
		}
		return
	}

	h.setTokenCookie(c, token)
	respondAuth(c, http.StatusCreated, "Registration successful!", user, token)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			// One message for unknown username and wrong password alike
			respondError(c, http.StatusUnauthorized, "Invalid username or password.")
		case errors.Is(err, service.ErrRoleMismatch):
			respondError(c, http.StatusForbidden, "Access denied. Please select the correct role for this account.")
		default:
			h.log.WithError(err).Error("login failed")
			respondError(c, http.StatusInternalServerError, "Server error occurred during login.")
		}
		return
	}

	h.setTokenCookie(c, token)
	respondAuth(c, http.StatusOK, "Login successful.", user, token)
}

// Logout clears the client's cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.cookieSecure, true)
	respondMessage(c, http.StatusOK, "Logged out successfully.")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}
