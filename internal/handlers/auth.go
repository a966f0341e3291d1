package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"precon-tracker/internal/auth"
	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

// SessionStore is the part of the session store the auth handlers use.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	tokens   *auth.TokenService
	sessions SessionStore
}

func NewAuthHandler(tokens *auth.TokenService, sessions SessionStore) *AuthHandler {
	return &AuthHandler{tokens: tokens, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    uint            `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Login checks credentials and issues a bearer token. A bad email and a
// bad password return the same message.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		jsonError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		jsonError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !user.Active {
		jsonError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		jsonError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, sessionID, err := h.tokens.Generate(&user)
	if err != nil {
		internalError(c, err)
		return
	}
	if err := h.sessions.Create(c.Request.Context(), sessionID, user.ID, h.tokens.TTL()); err != nil {
		internalError(c, err)
		return
	}

	zap.L().Info("user logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// Logout revokes the session behind the presented token. Requires auth,
// so the token has already been verified by the middleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims, err := h.tokens.Verify(tokenString)
	if err != nil {
		jsonError(c, http.StatusUnauthorized, "invalid token")
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), claims.SessionID); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated identity; clients use it to rehydrate
// after a page load.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "authorization required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
