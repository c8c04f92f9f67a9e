package server

import (
	"context"
	"net/http"
	"time"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface the auth and users handlers need.
type UserStore interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AuthHandler serves authentication.
type AuthHandler struct {
	users    UserStore
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users UserStore, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a bearer token as {"jwt": ...}.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to look up user", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := GenerateToken(user.Email, user.Type, h.secret, h.tokenTTL)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.String("email", user.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	h.logger.Info("User logged in", zap.String("email", user.Email), zap.String("type", user.Type))
	c.JSON(http.StatusOK, gin.H{"jwt": token})
}
